package cards

import "fmt"

// Stat identifies one of the four contested star stats.
type Stat string

const (
	StatAura      Stat = "aura"
	StatTalent    Stat = "talent"
	StatInfluence Stat = "influence"
	StatLegacy    Stat = "legacy"
)

// AllStats returns the four stats in display order.
func AllStats() []Stat {
	return []Stat{StatAura, StatTalent, StatInfluence, StatLegacy}
}

// Valid reports whether s names a real stat.
func (s Stat) Valid() bool {
	switch s {
	case StatAura, StatTalent, StatInfluence, StatLegacy:
		return true
	}
	return false
}

// Kind is the closed set of card variants.
type Kind int

const (
	KindStar Kind = iota
	KindModifyStat
	KindStealStar
	KindEvent
	KindFan
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "STAR"
	case KindModifyStat:
		return "MODIFY_STAT"
	case KindStealStar:
		return "STEAL_STAR"
	case KindEvent:
		return "EVENT"
	case KindFan:
		return "FAN"
	default:
		return fmt.Sprintf("KIND_%d", int(k))
	}
}

// ContestType determines how contest scores are compared.
type ContestType string

const (
	ContestHighest ContestType = "highest"
	// ContestLowest is reserved; no catalog card uses it yet.
	ContestLowest ContestType = "lowest"
)

// Card is the sealed card variant set. The unexported marker keeps the set
// closed to this package: every switch over Kind() is exhaustive for all
// types that can exist.
type Card interface {
	CardID() string
	CardName() string
	Kind() Kind
	card()
}

// StarCard is a playable celebrity with four contested stats. Attachment
// lists and the exhausted flag are per-instance mutable state; the star
// exclusively owns its attachments.
type StarCard struct {
	ID        string
	Name      string
	Aura      int
	Talent    int
	Influence int
	Legacy    int
	Tags      []string

	Fans      []*FanCard
	Powers    []*ModifyStatCard
	Exhausted bool
}

func (c *StarCard) CardID() string   { return c.ID }
func (c *StarCard) CardName() string { return c.Name }
func (c *StarCard) Kind() Kind       { return KindStar }
func (c *StarCard) card()            {}

// GetStat returns the star's current value for s. Modifier deltas are folded
// into the base stats at attach time, so this is a plain read.
func (c *StarCard) GetStat(s Stat) int {
	switch s {
	case StatAura:
		return c.Aura
	case StatTalent:
		return c.Talent
	case StatInfluence:
		return c.Influence
	case StatLegacy:
		return c.Legacy
	}
	return 0
}

// ApplyModifiers adds each delta to the matching base stat, flooring at 0.
// Called exactly once per attached power card.
func (c *StarCard) ApplyModifiers(mods map[Stat]int) {
	for stat, delta := range mods {
		v := c.GetStat(stat) + delta
		if v < 0 {
			v = 0
		}
		switch stat {
		case StatAura:
			c.Aura = v
		case StatTalent:
			c.Talent = v
		case StatInfluence:
			c.Influence = v
		case StatLegacy:
			c.Legacy = v
		}
	}
}

// FanBonus sums the bonus of every fan attached to this star. Fan tags are
// inert: the bonus counts unconditionally.
func (c *StarCard) FanBonus() int {
	total := 0
	for _, fan := range c.Fans {
		total += fan.Bonus
	}
	return total
}

// HasTag reports whether the star carries the given tag.
func (c *StarCard) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ModifyStatCard is a power card carrying signed stat deltas. Its deltas are
// applied once when attached; the card stays on the star as an audit trail.
type ModifyStatCard struct {
	ID          string
	Name        string
	Description string
	Modifiers   map[Stat]int
}

func (c *ModifyStatCard) CardID() string   { return c.ID }
func (c *ModifyStatCard) CardName() string { return c.Name }
func (c *ModifyStatCard) Kind() Kind       { return KindModifyStat }
func (c *ModifyStatCard) card()            {}

// StealStarCard is a power card with no numeric fields; its whole effect is
// the steal operation.
type StealStarCard struct {
	ID          string
	Name        string
	Description string
}

func (c *StealStarCard) CardID() string   { return c.ID }
func (c *StealStarCard) CardName() string { return c.Name }
func (c *StealStarCard) Kind() Kind       { return KindStealStar }
func (c *StealStarCard) card()            {}

// StatContestEvent pits one star per player against each other on a chosen
// stat. StatOptions is non-empty and ordered; the first option is the
// default when the engine must pick for the event owner.
type StatContestEvent struct {
	ID          string
	Name        string
	Description string
	StatOptions []Stat
	ContestType ContestType
	FanReward   int
}

func (c *StatContestEvent) CardID() string   { return c.ID }
func (c *StatContestEvent) CardName() string { return c.Name }
func (c *StatContestEvent) Kind() Kind       { return KindEvent }
func (c *StatContestEvent) card()            {}

// HasStatOption reports whether s is eligible for this contest.
func (c *StatContestEvent) HasStatOption(s Stat) bool {
	for _, opt := range c.StatOptions {
		if opt == s {
			return true
		}
	}
	return false
}

// DefaultStat is the stat used when no explicit choice is made.
func (c *StatContestEvent) DefaultStat() Stat {
	if len(c.StatOptions) == 0 {
		return StatAura
	}
	return c.StatOptions[0]
}

// FanCard is a victory point attached to a star. Bonus is 1 for a Fan and 2
// for a Superfan. Tag is carried for display but never affects counting.
type FanCard struct {
	ID    string
	Name  string
	Bonus int
	Tag   string
}

func (c *FanCard) CardID() string   { return c.ID }
func (c *FanCard) CardName() string { return c.Name }
func (c *FanCard) Kind() Kind       { return KindFan }
func (c *FanCard) card()            {}
