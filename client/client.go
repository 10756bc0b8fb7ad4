// Package client runs the menus and the game sessions of one player, reading
// keys from an input.Source and drawing on a terminal.
package client

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"tetrisgo/audio"
	"tetrisgo/input"
	"tetrisgo/terminal"
	"tetrisgo/tetris"
	"time"

	"github.com/google/uuid"
)

const frameTime = time.Second / 60

type renderer interface {
	Game(*tetris.Snapshot)
	Menu(terminal.Menu)
	Clear()
}

type Client struct {
	keys      <-chan input.KeyPress
	render    renderer
	audio     audio.Player
	scores    tetris.HighScores
	options   *Options
	logger    *slog.Logger
	clock     tetris.Clock
	newTicker func(time.Duration) tetris.Ticker
	games     uint64
}

type Options struct {
	Input   input.Source
	Writer  io.Writer
	Audio   audio.Player      // audio.NewSilent() when nil
	Scores  tetris.HighScores // no high score is kept when nil
	Config  *tetris.Config    // tetris.DefaultConfig() when nil
	NoGhost bool
	Seed    uint64 // a fixed piece sequence per game when not 0
}

func New(l *slog.Logger, o *Options) (*Client, error) {
	r, err := terminal.New(o.Writer, l, o.NoGhost)
	if err != nil {
		return nil, fmt.Errorf("failed to load renderer: %w", err)
	}
	a := o.Audio
	if a == nil {
		a = audio.NewSilent()
	}
	return &Client{
		keys:      o.Input.Keys(),
		render:    r,
		audio:     a,
		scores:    o.Scores,
		options:   o,
		logger:    l,
		clock:     tetris.SystemClock{},
		newTicker: tetris.NewTicker,
	}, nil
}

// Start shows the main menu and returns when the player quits or the key
// source closes.
func (c *Client) Start() {
	c.render.Clear()
	selected := optStart
	for {
		c.audio.PlayMusic(audio.MenuTrack)
		c.render.Menu(mainMenu(c.highScore(), selected))
		k, ok := c.nextKey()
		if !ok {
			return
		}
		switch {
		case k.Key == input.KeyUp:
			selected = wrap(selected, -1, 3)
			c.audio.PlaySound(audio.Move)
		case k.Key == input.KeyDown:
			selected = wrap(selected, 1, 3)
			c.audio.PlaySound(audio.Move)
		case k.Key == input.KeyEsc || k.Is('q'):
			return
		case k.Key == input.KeyEnter:
			c.audio.PlaySound(audio.Drop)
			switch selected {
			case optStart:
				if c.play() == tetris.Quit {
					return
				}
				c.render.Clear()
			case optSettings:
				if !c.settings() {
					return
				}
			case optQuit:
				return
			}
		}
	}
}

// play runs games until the player leaves for the menu or quits.
func (c *Client) play() tetris.Outcome {
	for {
		if out := c.session(); out != tetris.Restart {
			return out
		}
	}
}

// session runs a single game from its first piece to its outcome.
func (c *Client) session() tetris.Outcome {
	c.games++
	logger := c.logger.With(slog.String("session", uuid.New().String()))
	s := tetris.NewSession(tetris.Options{
		Config: c.options.Config,
		Clock:  c.clock,
		Rand:   c.rand(),
		Events: c.audio,
		Scores: c.scores,
	})
	controls := input.NewControls(c.clock, input.DefaultHoldWindow)
	logger.Info("session started")

	ticker := c.newTicker(frameTime)
	defer ticker.Stop()
	c.audio.PlayMusic(audio.GameTrack)
	c.render.Clear()
	c.render.Game(s.Snapshot())

	for {
		select {
		case k, ok := <-c.keys:
			if !ok || k.Key == input.KeyCtrlC {
				logger.Info("session closed", slog.Int("score", s.Score()))
				return tetris.Quit
			}
			controls.Feed(k)
			continue
		case <-ticker.C():
		}

		s.Tick(controls)
		c.render.Game(s.Snapshot())
		switch s.State() {
		case tetris.Paused:
			c.audio.PauseMusic()
			if out := c.pause(); out != tetris.Continue {
				logger.Info("session left", slog.String("outcome", string(out)), slog.Int("score", s.Score()))
				c.audio.StopMusic()
				return out
			}
			s.Resume()
			controls.Reset()
			c.audio.ResumeMusic()
			c.render.Clear()
			c.render.Game(s.Snapshot())
		case tetris.GameOver:
			c.audio.StopMusic()
			logger.Info("game over",
				slog.Int("score", s.Score()),
				slog.Int("high_score", s.HighScore()),
				slog.Int("lines", s.Lines()),
			)
			return c.gameOver(s)
		}
	}
}

// pause shows the pause menu over a paused session.
func (c *Client) pause() tetris.Outcome {
	selected := optContinue
	for {
		c.render.Menu(pauseMenu(c.audio, selected))
		k, ok := c.nextKey()
		if !ok {
			return tetris.Quit
		}
		switch {
		case k.Key == input.KeyUp:
			selected = wrap(selected, -1, 8)
			c.audio.PlaySound(audio.Move)
		case k.Key == input.KeyDown:
			selected = wrap(selected, 1, 8)
			c.audio.PlaySound(audio.Move)
		case k.Key == input.KeyEsc || k.Is('p') || k.Is('P'):
			return tetris.Continue
		case k.Key == input.KeyEnter:
			c.audio.PlaySound(audio.Drop)
			switch selected {
			case optContinue:
				return tetris.Continue
			case optMusicUp:
				c.audio.SetMusicVolume(c.audio.MusicVolume() + audio.VolumeStep)
			case optMusicDown:
				c.audio.SetMusicVolume(c.audio.MusicVolume() - audio.VolumeStep)
			case optEffectsUp:
				c.audio.SetEffectsVolume(c.audio.EffectsVolume() + audio.VolumeStep)
			case optEffectsDown:
				c.audio.SetEffectsVolume(c.audio.EffectsVolume() - audio.VolumeStep)
			case optRestart:
				return tetris.Restart
			case optMainMenu:
				return tetris.Menu
			case optPauseQuit:
				return tetris.Quit
			}
		}
	}
}

func (c *Client) gameOver(s *tetris.Session) tetris.Outcome {
	selected := optPlayAgain
	for {
		c.render.Menu(gameOverMenu(s.Score(), s.HighScore(), selected))
		k, ok := c.nextKey()
		if !ok {
			return tetris.Quit
		}
		switch {
		case k.Key == input.KeyUp:
			selected = wrap(selected, -1, 3)
			c.audio.PlaySound(audio.Move)
		case k.Key == input.KeyDown:
			selected = wrap(selected, 1, 3)
			c.audio.PlaySound(audio.Move)
		case k.Key == input.KeyEsc:
			return tetris.Menu
		case k.Key == input.KeyEnter:
			c.audio.PlaySound(audio.Drop)
			switch selected {
			case optPlayAgain:
				return tetris.Restart
			case optBackToMenu:
				return tetris.Menu
			default:
				return tetris.Quit
			}
		}
	}
}

// settings shows the volume settings. It reports false when the player quit.
func (c *Client) settings() bool {
	selected := optMusic
	for {
		c.render.Menu(settingsMenu(c.audio, selected))
		k, ok := c.nextKey()
		if !ok {
			return false
		}
		step := 0.0
		switch {
		case k.Key == input.KeyUp:
			selected = wrap(selected, -1, 3)
			c.audio.PlaySound(audio.Move)
		case k.Key == input.KeyDown:
			selected = wrap(selected, 1, 3)
			c.audio.PlaySound(audio.Move)
		case k.Key == input.KeyLeft:
			step = -audio.VolumeStep
		case k.Key == input.KeyRight:
			step = audio.VolumeStep
		case k.Key == input.KeyEsc:
			return true
		case k.Key == input.KeyEnter && selected == optBack:
			c.audio.PlaySound(audio.Drop)
			return true
		}
		if step == 0 {
			continue
		}
		switch selected {
		case optMusic:
			c.audio.SetMusicVolume(c.audio.MusicVolume() + step)
		case optEffects:
			c.audio.SetEffectsVolume(c.audio.EffectsVolume() + step)
		default:
			continue
		}
		c.audio.PlaySound(audio.Drop)
	}
}

// nextKey blocks for a key press. It reports false once the player can't be
// heard anymore, or pressed ctrl+c.
func (c *Client) nextKey() (input.KeyPress, bool) {
	k, ok := <-c.keys
	if !ok {
		c.logger.Debug("key source closed")
		return k, false
	}
	return k, k.Key != input.KeyCtrlC
}

func (c *Client) highScore() int {
	if c.scores == nil {
		return 0
	}
	return c.scores.ReadHighScore()
}

func (c *Client) rand() *rand.Rand {
	if c.options.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(c.options.Seed, c.games))
}
