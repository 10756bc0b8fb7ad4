package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tetrisgo/config"
	"tetrisgo/proto"
	"tetrisgo/score"
	"tetrisgo/server"
	"time"

	"google.golang.org/grpc"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	grpcAddr := net.JoinHostPort("", config.GetEnv("SCORE_GRPC_PORT", "9000"))
	httpAddr := net.JoinHostPort("", config.GetEnv("SCORE_HTTP_PORT", "8080"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the server is the end of the line, it never forwards to another one.
	store, err := score.Open(ctx, score.Options{File: cfg.ScoreFile, DSN: cfg.ScoreDSN})
	if err != nil {
		log.Fatalf("failed to open score store: %v", err)
	}
	defer store.Close()
	scores := server.NewScores(store, logger)

	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	defer lis.Close()
	s := grpc.NewServer()
	proto.RegisterHighScoreServiceServer(s, server.New(scores))

	hs := &http.Server{
		Addr:              httpAddr,
		Handler:           server.NewHTTPHandler(scores),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting gRPC server", slog.String("addr", grpcAddr))
		if err := s.Serve(lis); err != nil {
			logger.Error("gRPC server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()
	go func() {
		logger.Info("starting HTTP server", slog.String("addr", httpAddr))
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		logger.Error("unable to shut down HTTP server", slog.String("error", err.Error()))
	}
	s.GracefulStop()
}
