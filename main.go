package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"tetrisgo/audio"
	"tetrisgo/client"
	"tetrisgo/config"
	"tetrisgo/input"
	"tetrisgo/score"
	"tetrisgo/terminal"

	"golang.org/x/term"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		log.Fatalf("unable to load config: %v", err)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("tetris needs to run in a terminal")
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("unable to open log file: %v", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))

	store := score.OpenOrFile(context.Background(), score.Options{File: cfg.ScoreFile, DSN: cfg.ScoreDSN, Addr: cfg.ScoreAddr}, logger)
	defer store.Close()

	var player audio.Player = audio.NewSilent()
	if !cfg.NoSound {
		player = audio.NewMixer(cfg.Assets, logger)
	}
	defer player.Close()

	restore := startRawConsole()
	defer restore()

	kb, err := input.OpenKeyboard(logger)
	if err != nil {
		logger.Error("unable to open keyboard", slog.String("error", err.Error()))
		return
	}
	defer kb.Close()

	c, err := client.New(logger, &client.Options{
		Input:   kb,
		Writer:  os.Stdout,
		Audio:   player,
		Scores:  score.NewRecorder(store, logger),
		NoGhost: cfg.NoGhost,
		Seed:    cfg.Seed,
	})
	if err != nil {
		logger.Error("unable to create client", slog.String("error", err.Error()))
		return
	}
	c.Start()
}

func startRawConsole() func() {
	fmt.Print(terminal.HideCursor)
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Error setting terminal to raw mode: %v", err)
	}

	return func() {
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			log.Printf("unable to restore the terminal original state: %v", err)
		}
		fmt.Print(terminal.ShowCursor)
	}
}
