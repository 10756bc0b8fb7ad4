package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"tetrisgo/audio"
	"tetrisgo/client"
	"tetrisgo/config"
	"tetrisgo/input"
	"tetrisgo/score"
	"tetrisgo/terminal"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/tetris_host_key"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store := score.OpenOrFile(context.Background(), score.Options{File: cfg.ScoreFile, DSN: cfg.ScoreDSN, Addr: cfg.ScoreAddr}, logger)
	defer store.Close()
	scores := score.NewRecorder(store, logger)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(cfg, scores, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", slog.String("host", host), slog.String("port", port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-done
	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}
}

// gameMiddleware runs a game client on every SSH session. There's no sound
// over SSH, so sessions get a silent player.
func gameMiddleware(cfg *config.Config, scores *score.Recorder, l *slog.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			logger := l.With(slog.String("user", sess.User()))
			keys := input.StartStream(sess)
			defer keys.Close()

			c, err := client.New(logger, &client.Options{
				Input:   keys,
				Writer:  sess,
				Audio:   audio.NewSilent(),
				Scores:  scores,
				NoGhost: cfg.NoGhost,
				Seed:    cfg.Seed,
			})
			if err != nil {
				logger.Error("unable to start client", slog.String("error", err.Error()))
				fmt.Fprintln(sess, "unable to start the game")
				return
			}

			fmt.Fprint(sess, terminal.HideCursor)
			c.Start()
			fmt.Fprint(sess, terminal.ShowCursor)
			next(sess)
		}
	}
}
