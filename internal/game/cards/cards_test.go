package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStat(t *testing.T) {
	star := &StarCard{Name: "Test Star", Aura: 5, Talent: 7, Influence: 3, Legacy: 9}

	assert.Equal(t, 5, star.GetStat(StatAura))
	assert.Equal(t, 7, star.GetStat(StatTalent))
	assert.Equal(t, 3, star.GetStat(StatInfluence))
	assert.Equal(t, 9, star.GetStat(StatLegacy))
	assert.Equal(t, 0, star.GetStat(Stat("charisma")))
}

func TestApplyModifiers(t *testing.T) {
	star := &StarCard{Name: "Test Star", Aura: 5, Talent: 7, Influence: 3, Legacy: 9}

	star.ApplyModifiers(map[Stat]int{StatTalent: 2, StatAura: -1})

	assert.Equal(t, 9, star.Talent)
	assert.Equal(t, 4, star.Aura)
	assert.Equal(t, 3, star.Influence, "untouched stat must not change")
}

func TestApplyModifiersFloorsAtZero(t *testing.T) {
	star := &StarCard{Name: "Test Star", Aura: 2}

	star.ApplyModifiers(map[Stat]int{StatAura: -5})

	assert.Equal(t, 0, star.Aura)
}

func TestFanBonusIgnoresTags(t *testing.T) {
	star := &StarCard{
		Name: "Test Star",
		Tags: []string{"Pop"},
		Fans: []*FanCard{
			{Name: "Generic Fan", Bonus: 1},
			{Name: "Pop Superfan", Bonus: 2, Tag: "Pop"},
			{Name: "Rapper Fan", Bonus: 1, Tag: "Rapper"},
		},
	}

	// Tag matching is inert: every bonus counts once, matching or not.
	assert.Equal(t, 4, star.FanBonus())
}

func TestStatValid(t *testing.T) {
	for _, s := range AllStats() {
		assert.True(t, s.Valid(), "stat %s", s)
	}
	assert.False(t, Stat("charisma").Valid())
	assert.False(t, Stat("").Valid())
}

func TestEventStatOptions(t *testing.T) {
	event := &StatContestEvent{
		Name:        "Rap Battle",
		StatOptions: []Stat{StatTalent, StatAura},
		ContestType: ContestHighest,
		FanReward:   1,
	}

	assert.True(t, event.HasStatOption(StatTalent))
	assert.True(t, event.HasStatOption(StatAura))
	assert.False(t, event.HasStatOption(StatLegacy))
	assert.Equal(t, StatTalent, event.DefaultStat())
}

func TestKindString(t *testing.T) {
	cases := []struct {
		card Card
		want string
	}{
		{&StarCard{}, "STAR"},
		{&ModifyStatCard{}, "MODIFY_STAT"},
		{&StealStarCard{}, "STEAL_STAR"},
		{&StatContestEvent{}, "EVENT"},
		{&FanCard{}, "FAN"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.card.Kind().String())
	}
}
