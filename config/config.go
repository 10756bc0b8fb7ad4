// Package config gathers the game's settings from a .env file, the
// environment and command-line flags, in that order of precedence from low to
// high.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ScoreFile string // local high score file
	ScoreDSN  string // Postgres connection string
	ScoreAddr string // score server address
	Assets    string // directory holding audio/
	LogFile   string
	NoSound   bool
	NoGhost   bool
	Seed      uint64 // 0 picks a random seed
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// LoadEnv loads .env into the environment unless running in production. A
// missing file is fine.
func LoadEnv() error {
	if os.Getenv("APP_ENV") == "production" {
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads the environment, then parses args over it. Usage goes to out.
func Load(args []string, out io.Writer) (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}
	c := &Config{
		ScoreFile: GetEnv("TETRIS_SCORE_FILE", "scores.txt"),
		ScoreDSN:  GetEnv("TETRIS_SCORE_DSN", ""),
		ScoreAddr: GetEnv("TETRIS_SCORE_ADDR", ""),
		Assets:    GetEnv("TETRIS_ASSETS", "assets"),
		LogFile:   GetEnv("TETRIS_LOG_FILE", "tetris.log"),
	}
	var err error
	if c.NoSound, err = envBool("TETRIS_NO_SOUND"); err != nil {
		return nil, err
	}
	if c.NoGhost, err = envBool("TETRIS_NO_GHOST"); err != nil {
		return nil, err
	}
	if s := GetEnv("TETRIS_SEED", ""); s != "" {
		if c.Seed, err = strconv.ParseUint(s, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid TETRIS_SEED %q: %w", s, err)
		}
	}

	flags := flag.NewFlagSet("tetris", flag.ContinueOnError)
	flags.SetOutput(out)
	flags.StringVar(&c.ScoreFile, "scores", c.ScoreFile, "high score file")
	flags.StringVar(&c.ScoreDSN, "dsn", c.ScoreDSN, "postgres connection string for high scores")
	flags.StringVar(&c.ScoreAddr, "addr", c.ScoreAddr, "score server address, e.g. localhost:9000")
	flags.StringVar(&c.Assets, "assets", c.Assets, "assets directory")
	flags.StringVar(&c.LogFile, "log", c.LogFile, "log file")
	flags.BoolVar(&c.NoSound, "no-sound", c.NoSound, "disable sound")
	flags.BoolVar(&c.NoGhost, "no-ghost", c.NoGhost, "disable the ghost piece")
	flags.Uint64Var(&c.Seed, "seed", c.Seed, "random seed, 0 for a random one")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func envBool(key string) (bool, error) {
	s := GetEnv(key, "")
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return b, nil
}
