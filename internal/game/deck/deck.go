// Package deck provides the ordered card sequence shared by the main,
// event and fan decks. Index 0 is the top of the deck.
package deck

import (
	"math/rand"

	"github.com/starpower/starpower-server-go/internal/game/cards"
)

// Deck is a named, ordered, mutable sequence of cards.
type Deck struct {
	name  string
	cards []cards.Card
}

// New creates a deck holding the given cards in order.
func New(name string, cs []cards.Card) *Deck {
	d := &Deck{name: name, cards: make([]cards.Card, len(cs))}
	copy(d.cards, cs)
	return d
}

// Name returns the deck's display name.
func (d *Deck) Name() string { return d.name }

// Draw removes and returns the top card. The second return is false when the
// deck is empty; an empty draw is a normal outcome, not an error.
func (d *Deck) Draw() (cards.Card, bool) {
	if len(d.cards) == 0 {
		return nil, false
	}
	top := d.cards[0]
	d.cards = d.cards[1:]
	return top, true
}

// Shuffle permutes the deck uniformly at random.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Add appends a card to the bottom of the deck.
func (d *Deck) Add(c cards.Card) {
	d.cards = append(d.cards, c)
}

// AddMany appends cards to the bottom of the deck in order.
func (d *Deck) AddMany(cs []cards.Card) {
	d.cards = append(d.cards, cs...)
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int { return len(d.cards) }

// IsEmpty reports whether the deck has no cards left.
func (d *Deck) IsEmpty() bool { return len(d.cards) == 0 }
