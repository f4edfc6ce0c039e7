package game

import "github.com/starpower/starpower-server-go/internal/game/cards"

// Player owns a hand and a board of played stars. A player's fan total is
// always derived from attached fan cards, never cached.
type Player struct {
	Name  string
	Human bool
	Hand  []cards.Card
	Board []*cards.StarCard
}

// NewPlayer creates a player with an empty hand and board.
func NewPlayer(name string, human bool) *Player {
	return &Player{Name: name, Human: human}
}

// FanCount sums the bonus of every fan card attached to every star on the
// player's board.
func (p *Player) FanCount() int {
	total := 0
	for _, star := range p.Board {
		total += star.FanBonus()
	}
	return total
}

// removeFromHand removes and returns the card at i. Callers validate i.
func (p *Player) removeFromHand(i int) cards.Card {
	c := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return c
}

// removeFromBoard removes and returns the star at i. Callers validate i.
func (p *Player) removeFromBoard(i int) *cards.StarCard {
	s := p.Board[i]
	p.Board = append(p.Board[:i], p.Board[i+1:]...)
	return s
}

// ownsBoardStar reports whether star is currently on the player's board.
func (p *Player) ownsBoardStar(star *cards.StarCard) bool {
	for _, s := range p.Board {
		if s == star {
			return true
		}
	}
	return false
}
