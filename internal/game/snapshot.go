package game

import "github.com/starpower/starpower-server-go/internal/game/cards"

// Snapshot is the complete, self-sufficient projection of engine state. It
// is the only channel through which callers observe a game; a client needs
// nothing beyond it to render.
type Snapshot struct {
	Round          int               `json:"round"`
	CurrentPlayer  int               `json:"current_player"`
	Phase          string            `json:"phase"`
	ActiveEvent    *ActiveEventView  `json:"active_event,omitempty"`
	Selections     [2]*SelectionView `json:"selections"`
	Players        [2]PlayerView     `json:"players"`
	MainDeckSize   int               `json:"main_deck_size"`
	EventDeckSize  int               `json:"event_deck_size"`
	FanDeckSize    int               `json:"fan_deck_size"`
	DiscardSize    int               `json:"discard_size"`
	GameOver       bool              `json:"game_over"`
	Winner         *int              `json:"winner,omitempty"`
	GameOverReason string            `json:"game_over_reason,omitempty"`
	Config         ConfigView        `json:"config"`
}

// ConfigView exposes the thresholds a client needs to validate input
// locally.
type ConfigView struct {
	FansToWin       int `json:"fans_to_win"`
	MaxStarsOnBoard int `json:"max_stars_on_board"`
	MaxHandSize     int `json:"max_hand_size"`
}

// ActiveEventView describes the contest in play.
type ActiveEventView struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	StatOptions   []cards.Stat `json:"stat_options"`
	ContestType   string       `json:"contest_type"`
	FanReward     int          `json:"fan_reward"`
	Owner         int          `json:"owner"`
	PlayedOnRound int          `json:"played_on_round"`
}

// SelectionView is a player's pending competing star and stat.
type SelectionView struct {
	StarIndex int        `json:"star_index"`
	StarName  string     `json:"star_name"`
	Stat      cards.Stat `json:"stat"`
}

// PlayerView is one player's full visible state.
type PlayerView struct {
	Name     string     `json:"name"`
	Human    bool       `json:"human"`
	FanCount int        `json:"fan_count"`
	Hand     []CardView `json:"hand"`
	Board    []StarView `json:"board"`
}

// CardView is a hand card with play-eligibility metadata for the client.
// Stat fields are only meaningful for star cards.
type CardView struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Kind        string             `json:"kind"`
	Description string             `json:"description,omitempty"`
	Aura        int                `json:"aura,omitempty"`
	Talent      int                `json:"talent,omitempty"`
	Influence   int                `json:"influence,omitempty"`
	Legacy      int                `json:"legacy,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Modifiers   map[cards.Stat]int `json:"modifiers,omitempty"`
	StatOptions []cards.Stat       `json:"stat_options,omitempty"`
	FanReward   int                `json:"fan_reward,omitempty"`
	Bonus       int                `json:"bonus,omitempty"`
	Tag         string             `json:"tag,omitempty"`
	Playable    bool               `json:"playable"`
	NeedsTarget bool               `json:"needs_target,omitempty"`
}

// StarView is a boarded star with its attachments.
type StarView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Aura      int         `json:"aura"`
	Talent    int         `json:"talent"`
	Influence int         `json:"influence"`
	Legacy    int         `json:"legacy"`
	Tags      []string    `json:"tags,omitempty"`
	Exhausted bool        `json:"exhausted"`
	FanBonus  int         `json:"fan_bonus"`
	Fans      []FanView   `json:"fans"`
	Powers    []PowerView `json:"powers"`
}

// FanView is an attached fan card.
type FanView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Bonus int    `json:"bonus"`
	Tag   string `json:"tag,omitempty"`
}

// PowerView is an attached modify-stat card (audit trail of applied deltas).
type PowerView struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Modifiers map[cards.Stat]int `json:"modifiers"`
}

// Snapshot builds the current projection.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Round:          e.round,
		CurrentPlayer:  e.current,
		Phase:          e.phase.String(),
		MainDeckSize:   e.mainDeck.Size(),
		EventDeckSize:  e.eventDeck.Size(),
		FanDeckSize:    e.fanDeck.Size(),
		DiscardSize:    len(e.discard),
		GameOver:       e.phase == PhaseGameOver,
		Winner:         e.Winner(),
		GameOverReason: e.gameOverReason,
		Config: ConfigView{
			FansToWin:       e.cfg.FansToWin,
			MaxStarsOnBoard: e.cfg.MaxStarsOnBoard,
			MaxHandSize:     e.cfg.MaxHandSize,
		},
	}

	if e.event != nil {
		ev := e.event.card
		snap.ActiveEvent = &ActiveEventView{
			ID:            ev.ID,
			Name:          ev.Name,
			Description:   ev.Description,
			StatOptions:   ev.StatOptions,
			ContestType:   string(ev.ContestType),
			FanReward:     ev.FanReward,
			Owner:         e.event.owner,
			PlayedOnRound: e.event.playedOnRound,
		}
	}
	for i, sel := range e.selections {
		if sel == nil {
			continue
		}
		snap.Selections[i] = &SelectionView{
			StarIndex: sel.starIndex,
			StarName:  sel.star.Name,
			Stat:      sel.stat,
		}
	}
	for i, p := range e.players {
		snap.Players[i] = e.buildPlayerView(i, p)
	}
	return snap
}

func (e *Engine) buildPlayerView(index int, p *Player) PlayerView {
	view := PlayerView{
		Name:     p.Name,
		Human:    p.Human,
		FanCount: p.FanCount(),
		Hand:     make([]CardView, 0, len(p.Hand)),
		Board:    make([]StarView, 0, len(p.Board)),
	}
	for _, c := range p.Hand {
		view.Hand = append(view.Hand, e.buildCardView(index, p, c))
	}
	for _, star := range p.Board {
		view.Board = append(view.Board, buildStarView(star))
	}
	return view
}

func (e *Engine) buildCardView(index int, p *Player, c cards.Card) CardView {
	view := CardView{
		ID:   c.CardID(),
		Name: c.CardName(),
		Kind: c.Kind().String(),
	}
	switch card := c.(type) {
	case *cards.StarCard:
		view.Aura = card.Aura
		view.Talent = card.Talent
		view.Influence = card.Influence
		view.Legacy = card.Legacy
		view.Tags = card.Tags
		view.Playable = e.canPlayStar(index)
	case *cards.ModifyStatCard:
		view.Description = card.Description
		view.Modifiers = card.Modifiers
		view.Playable = e.canPlayPower(index) && len(p.Board) > 0
		view.NeedsTarget = true
	case *cards.StealStarCard:
		view.Description = card.Description
		view.Playable = e.canPlayPower(index) && len(e.players[e.other(index)].Board) > 0
		view.NeedsTarget = true
	case *cards.StatContestEvent:
		view.Description = card.Description
		view.StatOptions = card.StatOptions
		view.FanReward = card.FanReward
		view.Playable = e.canPlayEvent(index, p)
		view.NeedsTarget = true
	case *cards.FanCard:
		view.Bonus = card.Bonus
		view.Tag = card.Tag
	}
	return view
}

func (e *Engine) canPlayStar(index int) bool {
	return e.phase == PhasePlay && index == e.current &&
		e.starsPlayed[index] < e.cfg.StarCardsPerTurnLimit
}

func (e *Engine) canPlayPower(index int) bool {
	return e.phase == PhasePlay && index == e.current &&
		e.powersPlayed[index] < e.cfg.PowerCardsPerTurnLimit
}

func (e *Engine) canPlayEvent(index int, p *Player) bool {
	if e.phase != PhasePlay || index != e.current || e.event != nil {
		return false
	}
	if e.eventsPlayed[index] >= e.cfg.EventCardsPerTurnLimit {
		return false
	}
	for _, star := range p.Board {
		if !star.Exhausted {
			return true
		}
	}
	return false
}

func buildStarView(star *cards.StarCard) StarView {
	view := StarView{
		ID:        star.ID,
		Name:      star.Name,
		Aura:      star.Aura,
		Talent:    star.Talent,
		Influence: star.Influence,
		Legacy:    star.Legacy,
		Tags:      star.Tags,
		Exhausted: star.Exhausted,
		FanBonus:  star.FanBonus(),
		Fans:      make([]FanView, 0, len(star.Fans)),
		Powers:    make([]PowerView, 0, len(star.Powers)),
	}
	for _, fan := range star.Fans {
		view.Fans = append(view.Fans, FanView{ID: fan.ID, Name: fan.Name, Bonus: fan.Bonus, Tag: fan.Tag})
	}
	for _, power := range star.Powers {
		view.Powers = append(view.Powers, PowerView{ID: power.ID, Name: power.Name, Modifiers: power.Modifiers})
	}
	return view
}
