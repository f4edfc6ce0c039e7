package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/starpower/starpower-server-go/internal/service"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         UUID PRIMARY KEY,
	player_one TEXT NOT NULL,
	player_two TEXT NOT NULL,
	status     TEXT NOT NULL,
	winner     INT,
	state      JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

// NewPool connects to PostgreSQL and verifies the connection.
func NewPool(ctx context.Context, url string, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("database connection established",
		zap.Int32("max_conns", pool.Config().MaxConns),
	)
	return pool, nil
}

// GameStore persists game records in PostgreSQL.
type GameStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewGameStore creates the store and ensures the games table exists.
func NewGameStore(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) (*GameStore, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("create games table: %w", err)
	}
	return &GameStore{pool: pool, logger: logger}, nil
}

// SaveGame upserts a game record, replacing the stored snapshot.
func (s *GameStore) SaveGame(ctx context.Context, rec service.GameRecord) error {
	state, err := json.Marshal(rec.State)
	if err != nil {
		return fmt.Errorf("marshal game state: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO games (id, player_one, player_two, status, winner, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status     = EXCLUDED.status,
			winner     = EXCLUDED.winner,
			state      = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at`,
		rec.ID, rec.Players[0], rec.Players[1], rec.Status, rec.Winner, state, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", rec.ID, err)
	}
	return nil
}

// DeleteGame removes a game record. Deleting an absent record is not an
// error.
func (s *GameStore) DeleteGame(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}
