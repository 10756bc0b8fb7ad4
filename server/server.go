// Package server shares one high score store over gRPC and HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"tetrisgo/proto"
	"tetrisgo/score"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var errNegativeScore = errors.New("score must not be negative")

// Scores is the high score store shared by the gRPC and HTTP front ends.
// Submissions are serialised so a read after a write sees it.
type Scores struct {
	store  score.Store
	logger *slog.Logger
	mu     sync.Mutex
}

func (h *Scores) best(ctx context.Context) (int, error) {
	v, err := h.store.Read(ctx)
	if errors.Is(err, score.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read high score: %w", err)
	}
	return v, nil
}

// submit offers v to the store and returns the resulting high score.
func (h *Scores) submit(ctx context.Context, v int) (int, error) {
	if v < 0 {
		return 0, errNegativeScore
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Write(ctx, v); err != nil {
		return 0, fmt.Errorf("failed to write score: %w", err)
	}
	h.logger.Info("score submitted", slog.Int("score", v))
	return h.best(ctx)
}

func NewScores(s score.Store, l *slog.Logger) *Scores {
	return &Scores{store: s, logger: l}
}

type scoreServer struct {
	proto.UnimplementedHighScoreServiceServer
	scores *Scores
}

func New(s *Scores) proto.HighScoreServiceServer {
	return &scoreServer{scores: s}
}

func (s *scoreServer) GetHighScore(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.Int64Value, error) {
	v, err := s.scores.best(ctx)
	if err != nil {
		s.scores.logger.Error("GetHighScore failed", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Int64(int64(v)), nil
}

func (s *scoreServer) SubmitScore(ctx context.Context, in *wrapperspb.Int64Value) (*wrapperspb.Int64Value, error) {
	v, err := s.scores.submit(ctx, int(in.GetValue()))
	switch {
	case errors.Is(err, errNegativeScore):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case err != nil:
		s.scores.logger.Error("SubmitScore failed", slog.String("error", err.Error()))
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.Int64(int64(v)), nil
}
