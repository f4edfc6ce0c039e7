package game

import (
	"math/rand"

	"github.com/starpower/starpower-server-go/internal/game/cards"
	"go.uber.org/zap"
)

// ComputerPlayer is the scripted opponent. It inspects engine state to find
// legal actions but issues every decision as a command through the same
// dispatch path a human client uses; it has no privileged mutation access.
type ComputerPlayer struct {
	index  int
	rng    *rand.Rand
	logger *zap.Logger
}

func newComputerPlayer(index int, rng *rand.Rand, logger *zap.Logger) *ComputerPlayer {
	return &ComputerPlayer{index: index, rng: rng, logger: logger}
}

// TakeTurn plays at most one star, one power and one event, in that order.
func (c *ComputerPlayer) TakeTurn(e *Engine) {
	c.tryPlayStar(e)
	c.tryPlayPower(e)
	c.tryPlayEvent(e)
}

// tryPlayStar plays a uniformly random star from hand. A full board replaces
// the star with the fewest attached fans to minimize value lost.
func (c *ComputerPlayer) tryPlayStar(e *Engine) {
	if e.starsPlayed[c.index] >= e.cfg.StarCardsPerTurnLimit {
		return
	}
	p := e.players[c.index]
	indices := handIndicesOfKind(p, cards.KindStar)
	if len(indices) == 0 {
		return
	}
	cmd := Command{
		Type:      CommandPlayCard,
		Player:    c.index,
		HandIndex: indices[c.rng.Intn(len(indices))],
	}
	if len(p.Board) >= e.cfg.MaxStarsOnBoard {
		replace := fewestFansIndex(p.Board)
		cmd.ReplaceStarIndex = &replace
	}
	e.Dispatch(cmd)
}

// tryPlayPower plays a random power card from hand. Steal cards target the
// opponent's highest-value star; other power cards attach to a random own
// board star.
func (c *ComputerPlayer) tryPlayPower(e *Engine) {
	if e.powersPlayed[c.index] >= e.cfg.PowerCardsPerTurnLimit {
		return
	}
	p := e.players[c.index]
	opponent := e.players[e.other(c.index)]

	modifyIndices := handIndicesOfKind(p, cards.KindModifyStat)
	stealIndices := handIndicesOfKind(p, cards.KindStealStar)

	// Drop candidates whose preconditions cannot be met this turn.
	if len(p.Board) == 0 {
		modifyIndices = nil
	}
	if len(opponent.Board) == 0 {
		stealIndices = nil
	}
	candidates := append(append([]int{}, modifyIndices...), stealIndices...)
	if len(candidates) == 0 {
		return
	}

	handIndex := candidates[c.rng.Intn(len(candidates))]
	cmd := Command{Type: CommandPlayCard, Player: c.index, HandIndex: handIndex}

	switch p.Hand[handIndex].Kind() {
	case cards.KindStealStar:
		target := highestValueIndex(opponent.Board)
		cmd.TargetStarIndex = &target
		if len(p.Board) >= e.cfg.MaxStarsOnBoard {
			sacrifice := fewestFansIndex(p.Board)
			cmd.ReplaceStarIndex = &sacrifice
		}
	default:
		target := c.rng.Intn(len(p.Board))
		cmd.TargetStarIndex = &target
	}
	e.Dispatch(cmd)
}

// tryPlayEvent plays a random event card with a random non-exhausted star,
// provided no event is already active.
func (c *ComputerPlayer) tryPlayEvent(e *Engine) {
	if e.eventsPlayed[c.index] >= e.cfg.EventCardsPerTurnLimit || e.event != nil {
		return
	}
	p := e.players[c.index]
	eventIndices := handIndicesOfKind(p, cards.KindEvent)
	if len(eventIndices) == 0 {
		return
	}
	available := nonExhaustedIndices(p.Board)
	if len(available) == 0 {
		return
	}
	star := available[c.rng.Intn(len(available))]
	e.Dispatch(Command{
		Type:            CommandPlayCard,
		Player:          c.index,
		HandIndex:       eventIndices[c.rng.Intn(len(eventIndices))],
		TargetStarIndex: &star,
	})
}

// SelectForEvent answers an opponent-initiated event with a random
// non-exhausted star and a random eligible stat.
func (c *ComputerPlayer) SelectForEvent(e *Engine) {
	if e.event == nil || e.event.owner == c.index {
		return
	}
	p := e.players[c.index]
	available := nonExhaustedIndices(p.Board)
	if len(available) == 0 {
		c.logger.Debug("computer has no star available for event",
			zap.String("player", p.Name),
			zap.String("event", e.event.card.Name),
		)
		return
	}
	options := e.event.card.StatOptions
	stat := e.event.card.DefaultStat()
	if len(options) > 1 {
		stat = options[c.rng.Intn(len(options))]
	}
	e.Dispatch(Command{
		Type:      CommandSelectStarForEvent,
		Player:    c.index,
		StarIndex: available[c.rng.Intn(len(available))],
		Stat:      stat,
	})
}

func handIndicesOfKind(p *Player, kind cards.Kind) []int {
	var indices []int
	for i, c := range p.Hand {
		if c.Kind() == kind {
			indices = append(indices, i)
		}
	}
	return indices
}

func nonExhaustedIndices(board []*cards.StarCard) []int {
	var indices []int
	for i, star := range board {
		if !star.Exhausted {
			indices = append(indices, i)
		}
	}
	return indices
}

// fewestFansIndex returns the board star with the fewest attached fans,
// ties broken by list order.
func fewestFansIndex(board []*cards.StarCard) int {
	best := 0
	for i, star := range board {
		if len(star.Fans) < len(board[best].Fans) {
			best = i
		}
	}
	return best
}

// highestValueIndex scores each star as 2x fan count plus power count and
// returns the highest, ties broken by list order.
func highestValueIndex(board []*cards.StarCard) int {
	value := func(s *cards.StarCard) int { return 2*len(s.Fans) + len(s.Powers) }
	best := 0
	for i, star := range board {
		if value(star) > value(board[best]) {
			best = i
		}
	}
	return best
}
