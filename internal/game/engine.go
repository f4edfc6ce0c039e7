package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/starpower/starpower-server-go/internal/game/cards"
	"github.com/starpower/starpower-server-go/internal/game/deck"
	"go.uber.org/zap"
)

// Phase is the engine's top-level state.
type Phase int

const (
	PhasePlay Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlay:
		return "play"
	case PhaseGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("phase_%d", int(p))
	}
}

// Config holds the engine's read-only rule knobs.
type Config struct {
	StartingHandSize       int `mapstructure:"starting_hand_size"`
	CardsDrawnPerTurn      int `mapstructure:"cards_drawn_per_turn"`
	StarCardsPerTurnLimit  int `mapstructure:"star_cards_per_turn_limit"`
	PowerCardsPerTurnLimit int `mapstructure:"power_cards_per_turn_limit"`
	EventCardsPerTurnLimit int `mapstructure:"event_cards_per_turn_limit"`
	FansToWin              int `mapstructure:"fans_to_win"`
	MaxStarsOnBoard        int `mapstructure:"max_stars_on_board"`
	MaxHandSize            int `mapstructure:"max_hand_size"`
}

// DefaultConfig returns the standard Star Power rule set.
func DefaultConfig() Config {
	return Config{
		StartingHandSize:       2,
		CardsDrawnPerTurn:      1,
		StarCardsPerTurnLimit:  1,
		PowerCardsPerTurnLimit: 1,
		EventCardsPerTurnLimit: 1,
		FansToWin:              10,
		MaxStarsOnBoard:        4,
		MaxHandSize:            7,
	}
}

// Decks bundles the three decks supplied at construction. The event deck is
// legacy: event cards are mixed into the main deck, but the third deck is
// kept so the construction and snapshot shapes stay stable.
type Decks struct {
	Main  *deck.Deck
	Event *deck.Deck
	Fan   *deck.Deck
}

// activeEvent tracks the contest currently in play.
type activeEvent struct {
	card          *cards.StatContestEvent
	owner         int
	playedOnRound int
}

// eventSelection is one player's competing star and stat for the active
// event. The star pointer, not the index, is authoritative: the board can
// shift underneath the index before resolution.
type eventSelection struct {
	star      *cards.StarCard
	starIndex int
	stat      cards.Stat
}

// If both players are computers nothing external ever interrupts the turn
// chain, so cap it instead of spinning until someone wins.
const maxComputerTurnChain = 500

// Engine is the single owner of all mutable game state. It is not
// thread-safe: callers serialize access per instance.
type Engine struct {
	logger *zap.Logger
	rng    *rand.Rand
	cfg    Config

	players   [2]*Player
	mainDeck  *deck.Deck
	eventDeck *deck.Deck
	fanDeck   *deck.Deck
	discard   []cards.Card

	round   int
	current int
	phase   Phase

	event      *activeEvent
	selections [2]*eventSelection

	starsPlayed  [2]int
	powersPlayed [2]int
	eventsPlayed [2]int

	winner         *int
	gameOverReason string

	ai [2]*ComputerPlayer
}

// New creates an engine for the two players and decks, deals starting hands
// and leaves player 0 on turn. A nil rng gets a time-seeded one; a nil
// logger is replaced with a no-op.
func New(players [2]*Player, decks Decks, cfg Config, logger *zap.Logger, rng *rand.Rand) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{
		logger:    logger,
		rng:       rng,
		cfg:       cfg,
		players:   players,
		mainDeck:  decks.Main,
		eventDeck: decks.Event,
		fanDeck:   decks.Fan,
		round:     1,
		current:   0,
		phase:     PhasePlay,
	}
	for i, p := range players {
		if !p.Human {
			e.ai[i] = newComputerPlayer(i, rng, logger)
		}
	}
	e.dealStartingHands()
	return e
}

func (e *Engine) dealStartingHands() {
	for _, p := range e.players {
		for i := 0; i < e.cfg.StartingHandSize; i++ {
			card, ok := e.mainDeck.Draw()
			if !ok {
				return
			}
			p.Hand = append(p.Hand, card)
		}
	}
}

// Dispatch validates and applies a single command. Rule violations reject
// the command, leave all state untouched and surface a reason code.
func (e *Engine) Dispatch(cmd Command) Result {
	if rej := e.apply(cmd); rej != nil {
		e.logger.Debug("command rejected",
			zap.String("command", string(cmd.Type)),
			zap.Int("player", cmd.Player),
			zap.String("reason", string(rej.Code)),
			zap.String("detail", rej.Detail),
		)
		return Result{Accepted: false, Reason: rej.Code, Detail: rej.Detail, Snapshot: e.Snapshot()}
	}
	return Result{Accepted: true, Snapshot: e.Snapshot()}
}

func (e *Engine) apply(cmd Command) *Rejection {
	if e.phase == PhaseGameOver {
		return reject(RejectGameOver, "the game is over; no further commands are accepted")
	}
	switch cmd.Type {
	case CommandPlayCard:
		return e.handlePlayCard(cmd)
	case CommandEndTurn:
		e.endCurrentTurn()
		return nil
	case CommandSelectStarForEvent:
		return e.handleSelectStar(cmd)
	case CommandResolveEvent:
		return e.handleResolveEvent()
	default:
		return reject(RejectUnknownCommand, "unknown command type %q", cmd.Type)
	}
}

func (e *Engine) handlePlayCard(cmd Command) *Rejection {
	if cmd.Player < 0 || cmd.Player > 1 {
		return reject(RejectInvalidPlayer, "player index %d out of range", cmd.Player)
	}
	if cmd.Player != e.current {
		return reject(RejectNotYourTurn, "it is player %d's turn", e.current)
	}
	p := e.players[e.current]
	if cmd.HandIndex < 0 || cmd.HandIndex >= len(p.Hand) {
		return reject(RejectInvalidHandIndex, "%s has no hand card at index %d", p.Name, cmd.HandIndex)
	}

	switch card := p.Hand[cmd.HandIndex].(type) {
	case *cards.StarCard:
		return e.playStar(cmd, p)
	case *cards.ModifyStatCard:
		return e.playPower(cmd, p)
	case *cards.StealStarCard:
		return e.playSteal(cmd, p)
	case *cards.StatContestEvent:
		return e.playEvent(cmd, p, card)
	case *cards.FanCard:
		return reject(RejectWrongCardKind, "fan cards cannot be played from hand")
	default:
		// cards.Card is sealed; reaching this is a programming error.
		panic(fmt.Sprintf("unhandled card kind %T", card))
	}
}

func (e *Engine) playStar(cmd Command, p *Player) *Rejection {
	if e.starsPlayed[e.current] >= e.cfg.StarCardsPerTurnLimit {
		return reject(RejectLimitReached, "%s already played %d star card(s) this turn", p.Name, e.starsPlayed[e.current])
	}
	star, rej := playStarFromHand(p, cmd.HandIndex, cmd.ReplaceStarIndex, &e.discard, e.cfg.MaxStarsOnBoard)
	if rej != nil {
		return rej
	}
	e.starsPlayed[e.current]++
	e.logger.Info("star played",
		zap.String("player", p.Name),
		zap.String("card", star.Name),
		zap.Int("round", e.round),
	)
	return nil
}

func (e *Engine) playPower(cmd Command, p *Player) *Rejection {
	if e.powersPlayed[e.current] >= e.cfg.PowerCardsPerTurnLimit {
		return reject(RejectLimitReached, "%s already played %d power card(s) this turn", p.Name, e.powersPlayed[e.current])
	}
	if cmd.TargetStarIndex == nil {
		return reject(RejectMissingTarget, "a modify-stat card needs a target star index")
	}
	power, target, rej := playPowerFromHand(p, cmd.HandIndex, *cmd.TargetStarIndex)
	if rej != nil {
		return rej
	}
	e.powersPlayed[e.current]++
	e.logger.Info("power played",
		zap.String("player", p.Name),
		zap.String("card", power.Name),
		zap.String("target", target.Name),
	)
	return nil
}

func (e *Engine) playSteal(cmd Command, p *Player) *Rejection {
	if e.powersPlayed[e.current] >= e.cfg.PowerCardsPerTurnLimit {
		return reject(RejectLimitReached, "%s already played %d power card(s) this turn", p.Name, e.powersPlayed[e.current])
	}
	if cmd.TargetStarIndex == nil {
		return reject(RejectMissingTarget, "a steal card needs an opponent star index")
	}
	victim := e.players[e.other(e.current)]
	stolen, rej := stealStarFromOpponent(p, victim, cmd.HandIndex, *cmd.TargetStarIndex, cmd.ReplaceStarIndex, &e.discard, e.cfg.MaxStarsOnBoard)
	if rej != nil {
		return rej
	}
	e.powersPlayed[e.current]++
	e.logger.Info("star stolen",
		zap.String("player", p.Name),
		zap.String("victim", victim.Name),
		zap.String("card", stolen.Name),
	)
	return nil
}

// playEvent establishes the contest and the owner's selection in one atomic
// step. The owner's stat is auto-derived, so no second round-trip exists for
// the owner.
func (e *Engine) playEvent(cmd Command, p *Player, event *cards.StatContestEvent) *Rejection {
	if e.eventsPlayed[e.current] >= e.cfg.EventCardsPerTurnLimit {
		return reject(RejectLimitReached, "%s already played %d event card(s) this turn", p.Name, e.eventsPlayed[e.current])
	}
	if e.event != nil {
		return reject(RejectEventAlreadyActive, "event %q is already active", e.event.card.Name)
	}
	if cmd.TargetStarIndex == nil {
		return reject(RejectMissingTarget, "an event card needs a competing star index")
	}
	starIndex := *cmd.TargetStarIndex
	if starIndex < 0 || starIndex >= len(p.Board) {
		return reject(RejectInvalidBoardIndex, "%s has no board star at index %d", p.Name, starIndex)
	}
	star := p.Board[starIndex]
	if star.Exhausted {
		return reject(RejectStarExhausted, "%s is exhausted and cannot compete", star.Name)
	}

	p.removeFromHand(cmd.HandIndex)
	e.event = &activeEvent{card: event, owner: e.current, playedOnRound: e.round}
	e.selections[e.current] = &eventSelection{star: star, starIndex: starIndex, stat: event.DefaultStat()}
	e.selections[e.other(e.current)] = nil
	e.eventsPlayed[e.current]++
	e.logger.Info("event played",
		zap.String("player", p.Name),
		zap.String("event", event.Name),
		zap.String("star", star.Name),
		zap.String("stat", string(event.DefaultStat())),
		zap.Int("round", e.round),
	)
	return nil
}

// handleSelectStar records the non-owning player's competing star and stat
// against the active event. It never triggers resolution by itself.
func (e *Engine) handleSelectStar(cmd Command) *Rejection {
	if e.event == nil {
		return reject(RejectNoActiveEvent, "no event is active")
	}
	if cmd.Player < 0 || cmd.Player > 1 {
		return reject(RejectInvalidPlayer, "player index %d out of range", cmd.Player)
	}
	if cmd.Player == e.event.owner {
		return reject(RejectEventOwnerSelect, "the event owner's star was selected when the event was played")
	}
	p := e.players[cmd.Player]
	if cmd.StarIndex < 0 || cmd.StarIndex >= len(p.Board) {
		return reject(RejectInvalidBoardIndex, "%s has no board star at index %d", p.Name, cmd.StarIndex)
	}
	star := p.Board[cmd.StarIndex]
	if star.Exhausted {
		return reject(RejectStarExhausted, "%s is exhausted and cannot compete", star.Name)
	}
	stat := cmd.Stat
	if stat == "" {
		stat = e.event.card.DefaultStat()
	}
	if !e.event.card.HasStatOption(stat) {
		return reject(RejectInvalidStat, "%q is not an eligible stat for %s", stat, e.event.card.Name)
	}

	e.selections[cmd.Player] = &eventSelection{star: star, starIndex: cmd.StarIndex, stat: stat}
	e.logger.Info("star selected for event",
		zap.String("player", p.Name),
		zap.String("event", e.event.card.Name),
		zap.String("star", star.Name),
		zap.String("stat", string(stat)),
	)
	return nil
}

func (e *Engine) handleResolveEvent() *Rejection {
	if e.event == nil {
		return reject(RejectNoActiveEvent, "no event is active")
	}
	e.resolveActiveEvent()
	if e.phase != PhaseGameOver {
		e.advanceLoop()
	}
	return nil
}

// endCurrentTurn implements the EndTurn transition: if the player about to
// take the next turn owns the active event, the contest resolves now, so the
// owner sees the outcome exactly at the start of their next turn.
func (e *Engine) endCurrentTurn() {
	if e.event != nil && e.event.owner == e.other(e.current) {
		e.resolveActiveEvent()
		if e.phase == PhaseGameOver {
			return
		}
	}
	e.advanceLoop()
}

// advanceLoop advances to the next turn and keeps going while the new
// current player is a computer: the AI's whole turn runs synchronously in
// this call stack, then its turn ends the same way a human's would.
func (e *Engine) advanceLoop() {
	for i := 0; ; i++ {
		e.advanceOnce()
		if e.phase == PhaseGameOver || e.players[e.current].Human {
			return
		}
		e.runComputerTurn()
		if e.phase == PhaseGameOver {
			return
		}
		if e.event != nil && e.event.owner == e.other(e.current) {
			e.resolveActiveEvent()
			if e.phase == PhaseGameOver {
				return
			}
		}
		if i >= maxComputerTurnChain {
			e.logger.Warn("computer turn chain cap reached", zap.Int("turns", i))
			return
		}
	}
}

// advanceOnce flips the current player, bumps the round on wraparound,
// resets the new player's per-turn counters and draws their card.
func (e *Engine) advanceOnce() {
	e.current = e.other(e.current)
	if e.current == 0 {
		e.round++
	}
	e.starsPlayed[e.current] = 0
	e.powersPlayed[e.current] = 0
	e.eventsPlayed[e.current] = 0

	p := e.players[e.current]
	for i := 0; i < e.cfg.CardsDrawnPerTurn; i++ {
		if len(p.Hand) >= e.cfg.MaxHandSize {
			// At the hand limit the draw is silently skipped.
			break
		}
		card, ok := e.mainDeck.Draw()
		if !ok {
			break
		}
		p.Hand = append(p.Hand, card)
	}
	e.logger.Debug("turn advanced",
		zap.Int("round", e.round),
		zap.Int("current_player", e.current),
		zap.String("name", p.Name),
	)
}

func (e *Engine) runComputerTurn() {
	ai := e.ai[e.current]
	if ai == nil {
		return
	}
	ai.TakeTurn(e)
	if e.event != nil && e.event.owner != e.current && e.selections[e.current] == nil {
		ai.SelectForEvent(e)
	}
}

// resolveActiveEvent runs the contest: rest every star, score the contest,
// move fans, exhaust the competitors, check the win condition, then discard
// the event and clear the selections. Clearing the event before the next
// EndTurn makes double resolution impossible.
func (e *Engine) resolveActiveEvent() {
	ev := e.event

	// Stars rest between contests: every board star recovers just before
	// scores are computed.
	for _, p := range e.players {
		for _, star := range p.Board {
			star.Exhausted = false
		}
	}

	var stars [2]*cards.StarCard
	var stats [2]cards.Stat
	for i, sel := range e.selections {
		if sel == nil {
			continue
		}
		// A selected star may have been replaced or stolen since selection;
		// it only competes if it is still on its player's board.
		if !e.players[i].ownsBoardStar(sel.star) {
			continue
		}
		stars[i] = sel.star
		stats[i] = sel.stat
	}

	res := ResolveContest(ev.card, stars, stats)

	for i := range e.players {
		if res.FansWon[i] > 0 && stars[i] != nil {
			fans := drawFans(e.fanDeck, res.FansWon[i])
			stars[i].Fans = append(stars[i].Fans, fans...)
		}
		if res.FansLost[i] > 0 {
			removeFans(e.players[i], res.FansLost[i], &e.discard)
		}
		if stars[i] != nil {
			stars[i].Exhausted = true
		}
	}

	e.logger.Info("event resolved",
		zap.String("event", ev.card.Name),
		zap.String("outcome", res.Description),
		zap.Int("p0_score", res.Scores[0]),
		zap.Int("p1_score", res.Scores[1]),
	)

	e.checkWinCondition()

	e.discard = append(e.discard, ev.card)
	e.event = nil
	e.selections[0] = nil
	e.selections[1] = nil
}

// checkWinCondition ends the game once a player's derived fan total reaches
// the threshold. Player 0 is evaluated first, so player 0 wins a
// simultaneous crossing.
func (e *Engine) checkWinCondition() {
	for i, p := range e.players {
		if p.FanCount() >= e.cfg.FansToWin {
			winner := i
			e.winner = &winner
			e.phase = PhaseGameOver
			e.gameOverReason = fmt.Sprintf("%s reached %d fans", p.Name, p.FanCount())
			e.logger.Info("game over",
				zap.String("winner", p.Name),
				zap.Int("fans", p.FanCount()),
				zap.Int("round", e.round),
			)
			return
		}
	}
}

func (e *Engine) other(i int) int { return 1 - i }

// Round returns the current round counter.
func (e *Engine) Round() int { return e.round }

// CurrentPlayer returns the index of the player whose turn it is.
func (e *Engine) CurrentPlayer() int { return e.current }

// Phase returns the engine phase.
func (e *Engine) Phase() Phase { return e.phase }

// Winner returns the winning player index, or nil while the game runs.
func (e *Engine) Winner() *int {
	if e.winner == nil {
		return nil
	}
	w := *e.winner
	return &w
}
