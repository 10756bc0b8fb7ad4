// Package score keeps the best score across games. Stores come in three
// flavours: a local text file, a Postgres table and a remote score server.
package score

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// ErrNotFound is returned by stores that can tell an empty store apart from a
// stored score of 0.
var ErrNotFound = errors.New("no high score stored")

type Store interface {
	// Read returns the best score stored.
	Read(ctx context.Context) (int, error)
	// Write offers a score to the store. Stores keep the best of what they
	// have and what they're given.
	Write(ctx context.Context, score int) error
	io.Closer
}

type Options struct {
	File string // path of the local scores file
	DSN  string // Postgres connection string, takes precedence over File
	Addr string // score server address, takes precedence over DSN and File
}

// Open returns the store the options point to.
func Open(ctx context.Context, o Options) (Store, error) {
	switch {
	case o.Addr != "":
		r, err := DialRemote(o.Addr)
		if err != nil {
			return nil, fmt.Errorf("failed to dial score server: %w", err)
		}
		return r, nil
	case o.DSN != "":
		p, err := OpenPostgres(ctx, o.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return p, nil
	default:
		return NewFile(o.File), nil
	}
}

// OpenOrFile opens the store the options point to. A store that can't be
// opened is logged and replaced by the local file, so a game still starts.
func OpenOrFile(ctx context.Context, o Options, l *slog.Logger) Store {
	s, err := Open(ctx, o)
	if err != nil {
		l.Warn("unable to open score store, falling back to the local file",
			slog.String("file", o.File),
			slog.String("error", err.Error()),
		)
		return NewFile(o.File)
	}
	return s
}

// Recorder adapts a Store to the game. A store that fails is logged and reads
// as 0 so a broken store never stops a game.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	timeout time.Duration
}

func NewRecorder(s Store, l *slog.Logger) *Recorder {
	return &Recorder{store: s, logger: l, timeout: 2 * time.Second}
}

func (r *Recorder) ReadHighScore() int {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	v, err := r.store.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Warn("unable to read high score", slog.String("error", err.Error()))
		}
		return 0
	}
	return v
}

func (r *Recorder) WriteHighScore(v int) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if err := r.store.Write(ctx, v); err != nil {
		r.logger.Error("unable to write high score", slog.Int("score", v), slog.String("error", err.Error()))
		return
	}
	r.logger.Info("new high score", slog.Int("score", v))
}
