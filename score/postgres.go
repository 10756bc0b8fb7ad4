package score

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS high_scores (
		id         UUID PRIMARY KEY,
		score      INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

// Postgres records every score offered in the high_scores table. The high
// score is the best of them.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to dsn and makes sure the table exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	p := NewPostgres(db)
	if err := p.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create high_scores table: %w", err)
	}
	return nil
}

// Read returns ErrNotFound when no score was recorded yet.
func (p *Postgres) Read(ctx context.Context) (int, error) {
	var best sql.NullInt64
	if err := p.db.QueryRowContext(ctx, "SELECT MAX(score) FROM high_scores").Scan(&best); err != nil {
		return 0, fmt.Errorf("failed to query high score: %w", err)
	}
	if !best.Valid {
		return 0, ErrNotFound
	}
	return int(best.Int64), nil
}

func (p *Postgres) Write(ctx context.Context, v int) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO high_scores (id, score, created_at) VALUES ($1, $2, $3)",
		uuid.New(), v, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error { return p.db.Close() }
