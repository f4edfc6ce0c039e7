package game

import (
	"fmt"
	"sort"

	"github.com/starpower/starpower-server-go/internal/game/cards"
	"github.com/starpower/starpower-server-go/internal/game/deck"
)

// Resolution is the outcome of a contest. It carries who won, both scores
// and the fan deltas; the engine performs the actual fan drawing and
// exhaustion marking.
type Resolution struct {
	Winner      *int
	Scores      [2]int
	FansWon     [2]int
	FansLost    [2]int
	Description string
}

// ResolveContest computes a contest outcome without side effects. A nil or
// exhausted star is treated as non-participation; a sole participant wins by
// default. Equal scores are a tie with no winner and no fan movement.
func ResolveContest(event *cards.StatContestEvent, stars [2]*cards.StarCard, stats [2]cards.Stat) Resolution {
	var res Resolution

	participates := [2]bool{}
	for i, star := range stars {
		if star == nil || star.Exhausted {
			continue
		}
		participates[i] = true
		res.Scores[i] = star.GetStat(stats[i])
	}

	switch {
	case !participates[0] && !participates[1]:
		res.Description = fmt.Sprintf("%s: no star competed", event.Name)
		return res
	case participates[0] && !participates[1]:
		winner := 0
		res.Winner = &winner
		res.FansWon[0] = event.FanReward
		res.Description = fmt.Sprintf("%s: %s wins by default", event.Name, stars[0].Name)
		return res
	case participates[1] && !participates[0]:
		winner := 1
		res.Winner = &winner
		res.FansWon[1] = event.FanReward
		res.Description = fmt.Sprintf("%s: %s wins by default", event.Name, stars[1].Name)
		return res
	}

	s0, s1 := res.Scores[0], res.Scores[1]
	if event.ContestType == cards.ContestLowest {
		s0, s1 = s1, s0
	}

	switch {
	case s0 > s1:
		winner := 0
		res.Winner = &winner
	case s1 > s0:
		winner := 1
		res.Winner = &winner
	default:
		res.Description = fmt.Sprintf("%s: it's a tie", event.Name)
		return res
	}

	res.FansWon[*res.Winner] = event.FanReward
	res.Description = fmt.Sprintf("%s: %s wins", event.Name, stars[*res.Winner].Name)
	return res
}

// drawFans draws up to count fan cards, stopping early if the deck empties.
func drawFans(fanDeck *deck.Deck, count int) []*cards.FanCard {
	var drawn []*cards.FanCard
	for i := 0; i < count; i++ {
		c, ok := fanDeck.Draw()
		if !ok {
			break
		}
		fan, ok := c.(*cards.FanCard)
		if !ok {
			// Fan deck only ever holds fan cards; anything else is a
			// catalog bug. Skip it rather than corrupt an attachment list.
			continue
		}
		drawn = append(drawn, fan)
	}
	return drawn
}

// removeFans strips up to count fan cards from the player's board stars,
// lowest bonus first, and returns how many were removed. Removed fans go to
// the discard pile. Only penalty events exercise this.
func removeFans(p *Player, count int, discard *[]cards.Card) int {
	type attached struct {
		star *cards.StarCard
		fan  *cards.FanCard
	}
	var all []attached
	for _, star := range p.Board {
		for _, fan := range star.Fans {
			all = append(all, attached{star, fan})
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].fan.Bonus < all[j].fan.Bonus })

	removed := 0
	for _, a := range all {
		if removed >= count {
			break
		}
		for i, fan := range a.star.Fans {
			if fan == a.fan {
				a.star.Fans = append(a.star.Fans[:i], a.star.Fans[i+1:]...)
				*discard = append(*discard, fan)
				removed++
				break
			}
		}
	}
	return removed
}
