package game

import (
	"math/rand"
	"testing"

	"github.com/starpower/starpower-server-go/internal/game/cards"
	"github.com/starpower/starpower-server-go/internal/game/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newAIEngine builds an engine where player 1 is a computer.
func newAIEngine(t *testing.T, mainCards []cards.Card, fanCount int) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.StartingHandSize = 0
	players := [2]*Player{NewPlayer("Toph", true), NewPlayer("CPU", false)}
	decks := Decks{
		Main:  deck.New("Main Deck", mainCards),
		Event: deck.New("Event Deck", nil),
		Fan:   fanDeckOf(fanCount),
	}
	return New(players, decks, cfg, zap.NewNop(), rand.New(rand.NewSource(7)))
}

func TestComputerTurnRunsInsideEndTurn(t *testing.T) {
	e := newAIEngine(t, nil, 0)
	star := testStar("CPU Star", 5, 5, 5, 5)
	e.players[1].Hand = []cards.Card{star}

	res := e.Dispatch(Command{Type: CommandEndTurn})

	assert.True(t, res.Accepted)
	assert.Equal(t, 0, e.CurrentPlayer(), "control returns to the human after the computer's turn")
	assert.Equal(t, 2, e.Round())
	require.Len(t, e.players[1].Board, 1)
	assert.Same(t, star, e.players[1].Board[0])
	assert.Empty(t, e.players[1].Hand)
}

func TestComputerPlaysPowerOnOwnStar(t *testing.T) {
	e := newAIEngine(t, nil, 0)
	star := testStar("CPU Star", 5, 5, 5, 5)
	e.players[1].Board = []*cards.StarCard{star}
	e.players[1].Hand = []cards.Card{
		&cards.ModifyStatCard{ID: "p", Name: "Skill Training", Modifiers: map[cards.Stat]int{cards.StatTalent: 2}},
	}

	e.Dispatch(Command{Type: CommandEndTurn})

	assert.Equal(t, 7, star.Talent)
	require.Len(t, star.Powers, 1)
	assert.Empty(t, e.players[1].Hand)
}

func TestComputerSkipsPowerWithoutBoardStar(t *testing.T) {
	e := newAIEngine(t, nil, 0)
	e.players[1].Hand = []cards.Card{
		&cards.ModifyStatCard{ID: "p", Name: "Skill Training", Modifiers: map[cards.Stat]int{cards.StatTalent: 2}},
	}

	res := e.Dispatch(Command{Type: CommandEndTurn})

	assert.True(t, res.Accepted)
	assert.Len(t, e.players[1].Hand, 1, "unplayable power card stays in hand")
	assert.Equal(t, 0, e.CurrentPlayer())
}

func TestComputerStealsHighestValueStar(t *testing.T) {
	e := newAIEngine(t, nil, 0)
	plain := testStar("Plain", 3, 3, 3, 3)
	prized := testStar("Prized", 4, 4, 4, 4)
	prized.Fans = []*cards.FanCard{{ID: "f1", Bonus: 1}, {ID: "f2", Bonus: 1}}
	e.players[0].Board = []*cards.StarCard{plain, prized}
	e.players[1].Hand = []cards.Card{&cards.StealStarCard{ID: "s", Name: "Poaching Offer"}}

	e.Dispatch(Command{Type: CommandEndTurn})

	require.Len(t, e.players[1].Board, 1)
	assert.Same(t, prized, e.players[1].Board[0], "steal prefers the star with the most attachments")
	require.Len(t, e.players[0].Board, 1)
	assert.Same(t, plain, e.players[0].Board[0])
}

func TestComputerReplacesFewestFansStarOnFullBoard(t *testing.T) {
	e := newAIEngine(t, nil, 0)
	e.cfg.MaxStarsOnBoard = 2
	kept := testStar("Kept", 3, 3, 3, 3)
	kept.Fans = []*cards.FanCard{{ID: "f", Bonus: 1}}
	dropped := testStar("Dropped", 5, 5, 5, 5)
	e.players[1].Board = []*cards.StarCard{kept, dropped}
	incoming := testStar("Incoming", 6, 6, 6, 6)
	e.players[1].Hand = []cards.Card{incoming}

	e.Dispatch(Command{Type: CommandEndTurn})

	require.Len(t, e.players[1].Board, 2)
	assert.Contains(t, e.players[1].Board, kept, "the star with fans survives the replacement")
	assert.Contains(t, e.players[1].Board, incoming)
	assert.Contains(t, e.discard, cards.Card(dropped))
}

func TestComputerAnswersEventAndContestResolves(t *testing.T) {
	e := newAIEngine(t, nil, 2)
	humanStar := testStar("Human Star", 9, 9, 9, 9)
	cpuStar := testStar("CPU Star", 3, 3, 3, 3)
	e.players[0].Board = []*cards.StarCard{humanStar}
	e.players[1].Board = []*cards.StarCard{cpuStar}
	e.players[0].Hand = []cards.Card{testEvent("Rap Battle", cards.StatTalent)}

	require.True(t, e.Dispatch(Command{Type: CommandPlayCard, Player: 0, HandIndex: 0, TargetStarIndex: intp(0)}).Accepted)
	e.Dispatch(Command{Type: CommandEndTurn})

	// The computer selected during its turn and the contest resolved on the
	// way back to the owner.
	assert.Nil(t, e.event)
	assert.Equal(t, 0, e.CurrentPlayer())
	assert.Equal(t, 1, humanStar.FanBonus())
	assert.Zero(t, cpuStar.FanBonus())
	assert.True(t, cpuStar.Exhausted, "the computer's star competed rather than forfeiting")
}

func TestComputerInitiatedEventResolvesBeforeItsNextTurn(t *testing.T) {
	e := newAIEngine(t, nil, 2)
	cpuStar := testStar("CPU Star", 8, 8, 8, 8)
	e.players[1].Board = []*cards.StarCard{cpuStar}
	e.players[1].Hand = []cards.Card{testEvent("Award Show", cards.StatAura)}

	e.Dispatch(Command{Type: CommandEndTurn})
	require.NotNil(t, e.event, "the computer's event waits through the human's turn")
	assert.Equal(t, 1, e.event.owner)

	e.Dispatch(Command{Type: CommandEndTurn})

	assert.Nil(t, e.event)
	assert.Equal(t, 1, cpuStar.FanBonus(), "unopposed computer star wins by default")
	assert.Equal(t, 0, e.CurrentPlayer())
}

func TestComputerRespectsPerTurnLimits(t *testing.T) {
	e := newAIEngine(t, nil, 0)
	e.players[1].Hand = []cards.Card{
		testStar("A", 1, 1, 1, 1),
		testStar("B", 2, 2, 2, 2),
		testStar("C", 3, 3, 3, 3),
	}

	e.Dispatch(Command{Type: CommandEndTurn})

	assert.Len(t, e.players[1].Board, 1, "one star per turn")
	assert.Len(t, e.players[1].Hand, 2)
}

func TestFewestFansIndex(t *testing.T) {
	a := testStar("A", 1, 1, 1, 1)
	a.Fans = []*cards.FanCard{{Bonus: 1}}
	b := testStar("B", 1, 1, 1, 1)
	c := testStar("C", 1, 1, 1, 1)
	c.Fans = []*cards.FanCard{{Bonus: 1}, {Bonus: 1}}

	assert.Equal(t, 1, fewestFansIndex([]*cards.StarCard{a, b, c}))
	assert.Equal(t, 0, fewestFansIndex([]*cards.StarCard{b, a, c}), "ties break toward the earliest index")
}

func TestHighestValueIndex(t *testing.T) {
	plain := testStar("Plain", 1, 1, 1, 1)
	fanned := testStar("Fanned", 1, 1, 1, 1)
	fanned.Fans = []*cards.FanCard{{Bonus: 1}}
	powered := testStar("Powered", 1, 1, 1, 1)
	powered.Powers = []*cards.ModifyStatCard{{ID: "p"}}

	// One fan outweighs one power.
	assert.Equal(t, 1, highestValueIndex([]*cards.StarCard{plain, fanned, powered}))
	assert.Equal(t, 0, highestValueIndex([]*cards.StarCard{plain}))
}
