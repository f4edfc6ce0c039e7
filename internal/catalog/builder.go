package catalog

import (
	"fmt"
	"math/rand"

	"github.com/starpower/starpower-server-go/internal/game/cards"
	"github.com/starpower/starpower-server-go/internal/game/deck"
)

// MainDeckComposition sets how many cards of each type the main deck mix
// holds. Event cards ride in the main deck; the separate event deck is
// legacy and stays empty.
type MainDeckComposition struct {
	StarCards  int `mapstructure:"star_cards"`
	PowerCards int `mapstructure:"power_cards"`
	StealCards int `mapstructure:"steal_cards"`
	EventCards int `mapstructure:"event_cards"`
}

// FanDeckComposition sets the fan deck mix. Tag counts are per tag.
type FanDeckComposition struct {
	GenericFans      int `mapstructure:"generic_fans"`
	GenericSuperfans int `mapstructure:"generic_superfans"`
	TagFans          int `mapstructure:"tag_fans"`
	TagSuperfans     int `mapstructure:"tag_superfans"`
}

// Composition bundles the deck-composition weights.
type Composition struct {
	Main MainDeckComposition `mapstructure:"main_deck"`
	Fan  FanDeckComposition  `mapstructure:"fan_deck"`
}

// DefaultComposition mirrors the standard deck mix.
func DefaultComposition() Composition {
	return Composition{
		Main: MainDeckComposition{StarCards: 24, PowerCards: 10, StealCards: 2, EventCards: 8},
		Fan:  FanDeckComposition{GenericFans: 10, GenericSuperfans: 2, TagFans: 2, TagSuperfans: 1},
	}
}

// BuildDecks instantiates the three decks from the catalog per the
// composition weights, each shuffled once. Definitions cycle when a count
// exceeds the catalog, every copy a fresh instance with its own ID.
func BuildDecks(comp Composition, rng *rand.Rand) (main, event, fan *deck.Deck) {
	var mix []cards.Card

	stars := sampleStars(comp.Main.StarCards, rng)
	for _, s := range stars {
		mix = append(mix, s)
	}
	for i := 0; i < comp.Main.PowerCards; i++ {
		mix = append(mix, newPower(powerDefs[i%len(powerDefs)]))
	}
	for i := 0; i < comp.Main.StealCards; i++ {
		d := stealDefs[i%len(stealDefs)]
		mix = append(mix, &cards.StealStarCard{ID: newID(), Name: d.name, Description: d.description})
	}
	events := Events()
	for i := 0; i < comp.Main.EventCards; i++ {
		if i < len(events) {
			mix = append(mix, events[i])
			continue
		}
		extra := Events()
		mix = append(mix, extra[i%len(extra)])
	}

	main = deck.New("Main Deck", mix)
	main.Shuffle(rng)

	event = deck.New("Event Deck", nil)

	fan = deck.New("Fan Deck", buildFanCards(comp.Fan))
	fan.Shuffle(rng)
	return main, event, fan
}

// sampleStars picks count distinct stars at random, cycling the catalog
// only when count exceeds it.
func sampleStars(count int, rng *rand.Rand) []*cards.StarCard {
	var out []*cards.StarCard
	for len(out) < count {
		remaining := count - len(out)
		batch := Stars()
		rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
		if remaining < len(batch) {
			batch = batch[:remaining]
		}
		out = append(out, batch...)
	}
	return out
}

func buildFanCards(comp FanDeckComposition) []cards.Card {
	var out []cards.Card
	for i := 0; i < comp.GenericFans; i++ {
		out = append(out, newFan("Generic Fan", 1, ""))
	}
	for i := 0; i < comp.GenericSuperfans; i++ {
		out = append(out, newFan("Generic Superfan", 2, ""))
	}
	for _, tag := range FanTags {
		for i := 0; i < comp.TagFans; i++ {
			out = append(out, newFan(fmt.Sprintf("%s Fan", tag), 1, tag))
		}
		for i := 0; i < comp.TagSuperfans; i++ {
			out = append(out, newFan(fmt.Sprintf("%s Superfan", tag), 2, tag))
		}
	}
	return out
}
