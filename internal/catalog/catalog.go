// Package catalog holds the hardcoded Star Power card set and builds the
// game decks from it. Every call instantiates fresh card values with new
// unique IDs, so two games never share card instances.
package catalog

import (
	"github.com/google/uuid"
	"github.com/starpower/starpower-server-go/internal/game/cards"
)

// FanTags are the tags fan cards are printed for.
var FanTags = []string{"Rapper", "Pop", "DJ", "R&B", "Producer", "Alternative", "Latin", "Country", "Legend"}

type starDef struct {
	name                            string
	aura, talent, influence, legacy int
	tags                            []string
}

// Stat totals place each star in a tier: legendary 35-40, high 27-34,
// mid 20-26, low-mid 15-19, low 10-14.
var starDefs = []starDef{
	{"Beyoncé", 10, 10, 10, 10, []string{"Pop", "R&B", "Legend"}},
	{"Michael Jackson", 10, 10, 10, 10, []string{"Pop", "Legend"}},
	{"Jay-Z", 9, 8, 9, 10, []string{"Rapper", "Mogul", "Legend"}},
	{"Madonna", 9, 8, 9, 10, []string{"Pop", "Legend"}},
	{"Dolly Parton", 9, 9, 7, 10, []string{"Country", "Legend"}},
	{"Taylor Swift", 9, 8, 9, 8, []string{"Pop"}},
	{"Kendrick Lamar", 7, 9, 8, 7, []string{"Rapper"}},
	{"Daft Punk", 8, 9, 8, 9, []string{"DJ", "Producer"}},
	{"Drake", 8, 7, 8, 6, []string{"Rapper", "Pop"}},
	{"Shakira", 8, 7, 7, 8, []string{"Latin", "Pop"}},
	{"Ariana Grande", 7, 8, 7, 5, []string{"Pop"}},
	{"The Weeknd", 7, 8, 7, 5, []string{"Pop", "R&B"}},
	{"Bruno Mars", 7, 8, 6, 5, []string{"Pop", "R&B"}},
	{"Billie Eilish", 7, 7, 7, 4, []string{"Pop", "Alternative"}},
	{"Bad Bunny", 7, 6, 7, 4, []string{"Latin", "Rapper"}},
	{"Calvin Harris", 6, 7, 6, 5, []string{"DJ", "Producer"}},
	{"SZA", 6, 7, 6, 4, []string{"R&B"}},
	{"Cardi B", 7, 5, 7, 3, []string{"Rapper", "Pop"}},
	{"Post Malone", 5, 5, 6, 3, []string{"Pop", "Rapper"}},
	{"Morgan Wallen", 5, 6, 5, 2, []string{"Country"}},
	{"Ice Spice", 6, 4, 6, 2, []string{"Rapper"}},
	{"Olivia Rodrigo", 6, 6, 5, 2, []string{"Pop"}},
	{"Lil Pump", 4, 3, 4, 2, []string{"Rapper"}},
	{"Bhad Bhabie", 5, 2, 4, 1, []string{"Rapper"}},
	{"Rebecca Black", 3, 4, 3, 2, []string{"Pop"}},
	{"Vanilla Ice", 4, 3, 3, 3, []string{"Rapper"}},
}

type powerDef struct {
	name        string
	description string
	modifiers   map[cards.Stat]int
}

var powerDefs = []powerDef{
	{"Record Deal", "Major label contract boosts talent and influence", map[cards.Stat]int{cards.StatTalent: 2, cards.StatInfluence: 1}},
	{"Viral Moment", "Social media fame skyrockets influence", map[cards.Stat]int{cards.StatInfluence: 3, cards.StatAura: 1}},
	{"Award Show Win", "Industry recognition increases legacy and aura", map[cards.Stat]int{cards.StatLegacy: 2, cards.StatAura: 2}},
	{"Skill Training", "Dedicated practice improves raw talent", map[cards.Stat]int{cards.StatTalent: 3}},
	{"PR Campaign", "Marketing push enhances public image", map[cards.Stat]int{cards.StatAura: 2, cards.StatInfluence: 1}},
}

type stealDef struct {
	name        string
	description string
}

var stealDefs = []stealDef{
	{"Poaching Offer", "Lure a star away from the rival label"},
	{"Contract Buyout", "Buy out a star's contract, entourage and all"},
}

type eventDef struct {
	name        string
	description string
	stats       []cards.Stat
}

var eventDefs = []eventDef{
	{"Rap Battle", "Who has the best skills?", []cards.Stat{cards.StatTalent}},
	{"Red Carpet Event", "Who has the most star power?", []cards.Stat{cards.StatAura}},
	{"Social Media Battle", "Who has the biggest reach?", []cards.Stat{cards.StatInfluence}},
	{"Hall of Fame", "Who has the greatest legacy?", []cards.Stat{cards.StatLegacy}},
	{"Talent Showcase", "Pure skill competition", []cards.Stat{cards.StatTalent}},
	{"Award Show", "Who shines brightest?", []cards.Stat{cards.StatAura}},
	{"Viral Moment", "Who trends harder?", []cards.Stat{cards.StatInfluence}},
	{"Icon Status", "Who's more legendary?", []cards.Stat{cards.StatLegacy}},
}

// Stars instantiates every star card in the catalog.
func Stars() []*cards.StarCard {
	out := make([]*cards.StarCard, 0, len(starDefs))
	for _, d := range starDefs {
		out = append(out, newStar(d))
	}
	return out
}

func newStar(d starDef) *cards.StarCard {
	tags := make([]string, len(d.tags))
	copy(tags, d.tags)
	return &cards.StarCard{
		ID:        uuid.New().String(),
		Name:      d.name,
		Aura:      d.aura,
		Talent:    d.talent,
		Influence: d.influence,
		Legacy:    d.legacy,
		Tags:      tags,
	}
}

// Powers instantiates every modify-stat power card in the catalog.
func Powers() []*cards.ModifyStatCard {
	out := make([]*cards.ModifyStatCard, 0, len(powerDefs))
	for _, d := range powerDefs {
		out = append(out, newPower(d))
	}
	return out
}

func newPower(d powerDef) *cards.ModifyStatCard {
	mods := make(map[cards.Stat]int, len(d.modifiers))
	for k, v := range d.modifiers {
		mods[k] = v
	}
	return &cards.ModifyStatCard{
		ID:          uuid.New().String(),
		Name:        d.name,
		Description: d.description,
		Modifiers:   mods,
	}
}

// StealCards instantiates every steal card in the catalog.
func StealCards() []*cards.StealStarCard {
	out := make([]*cards.StealStarCard, 0, len(stealDefs))
	for _, d := range stealDefs {
		out = append(out, &cards.StealStarCard{
			ID:          uuid.New().String(),
			Name:        d.name,
			Description: d.description,
		})
	}
	return out
}

// Events instantiates every contest event card. All current events are
// single-stat, highest-wins, one fan reward.
func Events() []*cards.StatContestEvent {
	out := make([]*cards.StatContestEvent, 0, len(eventDefs))
	for _, d := range eventDefs {
		stats := make([]cards.Stat, len(d.stats))
		copy(stats, d.stats)
		out = append(out, &cards.StatContestEvent{
			ID:          uuid.New().String(),
			Name:        d.name,
			Description: d.description,
			StatOptions: stats,
			ContestType: cards.ContestHighest,
			FanReward:   1,
		})
	}
	return out
}

func newFan(name string, bonus int, tag string) *cards.FanCard {
	return &cards.FanCard{ID: newID(), Name: name, Bonus: bonus, Tag: tag}
}

func newID() string { return uuid.New().String() }
