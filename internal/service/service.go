package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/starpower/starpower-server-go/internal/catalog"
	"github.com/starpower/starpower-server-go/internal/game"
)

// Store persists game records. A nil store keeps games in memory only.
type Store interface {
	SaveGame(ctx context.Context, rec GameRecord) error
	DeleteGame(ctx context.Context, id string) error
}

// GameRecord is the persisted shape of a game.
type GameRecord struct {
	ID        string
	Players   [2]string
	Status    string
	Winner    *int
	State     game.Snapshot
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session is one running game. The engine is single-threaded, so every
// access goes through the session mutex.
type Session struct {
	ID         string
	CreateTime time.Time

	engine *game.Engine
	names  [2]string
	mu     sync.Mutex
}

// Dispatch forwards a command to the engine under the session lock.
func (s *Session) Dispatch(cmd game.Command) game.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Dispatch(cmd)
}

// Snapshot returns the current state projection.
func (s *Session) Snapshot() game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// GameSummary is the list-view shape of a session.
type GameSummary struct {
	ID            string    `json:"id"`
	Players       [2]string `json:"players"`
	Round         int       `json:"round"`
	CurrentPlayer int       `json:"current_player"`
	GameOver      bool      `json:"game_over"`
	Winner        *int      `json:"winner,omitempty"`
	CreateTime    time.Time `json:"create_time"`
}

// CreateGameParams describes a new game. An empty OpponentName defaults to
// a computer opponent.
type CreateGameParams struct {
	PlayerName   string `json:"player_name"`
	OpponentName string `json:"opponent_name"`
	VsComputer   bool   `json:"vs_computer"`
}

// Options configures a GameService.
type Options struct {
	Logger *zap.Logger
	Store  Store
	Rules  game.Config
	Decks  catalog.Composition
	// Seed fixes deck shuffles and computer decisions; zero means time-seeded.
	Seed int64
}

// GameService owns all running sessions.
type GameService struct {
	logger *zap.Logger
	store  Store
	rules  game.Config
	decks  catalog.Composition
	seed   int64

	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewGameService creates an empty service.
func NewGameService(opts Options) *GameService {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		logger:   logger,
		store:    opts.Store,
		rules:    opts.Rules,
		decks:    opts.Decks,
		seed:     opts.Seed,
		sessions: make(map[string]*Session),
	}
}

// CreateGame builds fresh decks, creates and registers a session and
// returns it together with the opening snapshot.
func (s *GameService) CreateGame(ctx context.Context, params CreateGameParams) (*Session, game.Snapshot, error) {
	if params.PlayerName == "" {
		return nil, game.Snapshot{}, fmt.Errorf("player name is required")
	}
	opponentName := params.OpponentName
	vsComputer := params.VsComputer
	if opponentName == "" {
		opponentName = "Computer"
		vsComputer = true
	}

	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	mainDeck, eventDeck, fanDeck := catalog.BuildDecks(s.decks, rng)
	players := [2]*game.Player{
		game.NewPlayer(params.PlayerName, true),
		game.NewPlayer(opponentName, !vsComputer),
	}

	session := &Session{
		ID:         uuid.New().String(),
		CreateTime: time.Now(),
		names:      [2]string{params.PlayerName, opponentName},
	}
	session.engine = game.New(players, game.Decks{
		Main:  mainDeck,
		Event: eventDeck,
		Fan:   fanDeck,
	}, s.rules, s.logger.With(zap.String("game_id", session.ID)), rng)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	snap := session.Snapshot()
	s.persist(ctx, session, snap)

	s.logger.Info("game created",
		zap.String("game_id", session.ID),
		zap.String("player", params.PlayerName),
		zap.String("opponent", opponentName),
		zap.Bool("vs_computer", vsComputer),
	)
	return session, snap, nil
}

// GetGame retrieves a session by ID.
func (s *GameService) GetGame(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

// Dispatch routes a command to the named game and persists the outcome.
func (s *GameService) Dispatch(ctx context.Context, gameID string, cmd game.Command) (game.Result, error) {
	session, ok := s.GetGame(gameID)
	if !ok {
		return game.Result{}, fmt.Errorf("game %s not found", gameID)
	}
	res := session.Dispatch(cmd)
	if res.Accepted {
		s.persist(ctx, session, res.Snapshot)
	}
	return res, nil
}

// DeleteGame removes a session and its persisted record.
func (s *GameService) DeleteGame(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("game %s not found", id)
	}
	if s.store != nil {
		if err := s.store.DeleteGame(ctx, id); err != nil {
			s.logger.Warn("delete game record", zap.String("game_id", id), zap.Error(err))
		}
	}
	s.logger.Info("game deleted", zap.String("game_id", id))
	return nil
}

// ListGames returns a summary of every running session.
func (s *GameService) ListGames() []GameSummary {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()

	summaries := make([]GameSummary, 0, len(sessions))
	for _, session := range sessions {
		snap := session.Snapshot()
		summaries = append(summaries, GameSummary{
			ID:            session.ID,
			Players:       session.names,
			Round:         snap.Round,
			CurrentPlayer: snap.CurrentPlayer,
			GameOver:      snap.GameOver,
			Winner:        snap.Winner,
			CreateTime:    session.CreateTime,
		})
	}
	return summaries
}

// GameCount returns the number of running sessions.
func (s *GameService) GameCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *GameService) persist(ctx context.Context, session *Session, snap game.Snapshot) {
	if s.store == nil {
		return
	}
	status := "in_progress"
	if snap.GameOver {
		status = "finished"
	}
	rec := GameRecord{
		ID:        session.ID,
		Players:   session.names,
		Status:    status,
		Winner:    snap.Winner,
		State:     snap,
		CreatedAt: session.CreateTime,
		UpdatedAt: time.Now(),
	}
	if err := s.store.SaveGame(ctx, rec); err != nil {
		s.logger.Warn("save game record", zap.String("game_id", session.ID), zap.Error(err))
	}
}
