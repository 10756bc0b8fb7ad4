// Package audio plays the game's sound effects and music.
package audio

import (
	"math"
	"sync"
	"tetrisgo/tetris"
)

type Sound string

const (
	Move     Sound = "move"
	Rotate   Sound = "rotate"
	Drop     Sound = "drop"
	Clear    Sound = "clear"
	LevelUp  Sound = "level_up"
	GameOver Sound = "game_over"
	Rocket   Sound = "rocket"
	Pause    Sound = "pause"
)

type Track string

const (
	MenuTrack Track = "menu"
	GameTrack Track = "game"
)

// EffectFiles and MusicFiles map every sound and track to its file under the
// assets directory.
var (
	EffectFiles = map[Sound]string{
		Move:     "audio/effects/move_piece.wav",
		Rotate:   "audio/effects/rotate_piece.wav",
		Drop:     "audio/effects/piece_landed.wav",
		Clear:    "audio/effects/line_clear.wav",
		LevelUp:  "audio/effects/level_up_jingle.wav",
		GameOver: "audio/effects/game_over.wav",
		Rocket:   "audio/effects/rocket_ending_sound.wav",
		Pause:    "audio/effects/pause.wav",
	}
	MusicFiles = map[Track]string{
		MenuTrack: "audio/music/main_theme.mp3",
		GameTrack: "audio/music/game_theme.mp3",
	}
)

const (
	DefaultMusicVolume   = 0.5
	DefaultEffectsVolume = 0.7
	VolumeStep           = 0.1
)

// Player is what the game and its menus talk to.
type Player interface {
	tetris.EventSink
	PlaySound(Sound)
	PlayMusic(Track)
	PauseMusic()
	ResumeMusic()
	StopMusic()
	MusicVolume() float64
	EffectsVolume() float64
	SetMusicVolume(float64)
	SetEffectsVolume(float64)
	Close() error
}

// SoundFor returns the effect played for a game event. A hard drop is heard
// through the lock that follows it.
func SoundFor(e tetris.Event) (Sound, bool) {
	switch e {
	case tetris.EventMove:
		return Move, true
	case tetris.EventRotate:
		return Rotate, true
	case tetris.EventLock:
		return Drop, true
	case tetris.EventLineClear:
		return Clear, true
	case tetris.EventTetris:
		return Rocket, true
	case tetris.EventLevelUp:
		return LevelUp, true
	case tetris.EventPause:
		return Pause, true
	case tetris.EventGameOver:
		return GameOver, true
	}
	return "", false
}

// Clamp keeps v in [0,1] rounded to a tenth, so repeated steps don't drift.
func Clamp(v float64) float64 {
	return math.Round(max(0, min(1, v))*10) / 10
}

// Percent renders a volume for menus.
func Percent(v float64) int { return int(math.Round(v * 100)) }

// levels is the volume model shared by every Player.
type levels struct {
	mu      sync.Mutex
	music   float64
	effects float64
}

func newLevels() levels {
	return levels{music: DefaultMusicVolume, effects: DefaultEffectsVolume}
}

func (l *levels) MusicVolume() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.music
}

func (l *levels) EffectsVolume() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.effects
}

func (l *levels) setMusic(v float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.music = Clamp(v)
	return l.music
}

func (l *levels) setEffects(v float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.effects = Clamp(v)
	return l.effects
}

// Silent is a Player with no sound device. It keeps the volume model so menus
// behave the same with or without sound.
type Silent struct {
	levels
	track Track
}

func NewSilent() *Silent { return &Silent{levels: newLevels()} }

func (s *Silent) Emit(tetris.Event)          {}
func (s *Silent) PlaySound(Sound)            {}
func (s *Silent) PlayMusic(t Track)          { s.track = t }
func (s *Silent) PauseMusic()                {}
func (s *Silent) ResumeMusic()               {}
func (s *Silent) StopMusic()                 { s.track = "" }
func (s *Silent) SetMusicVolume(v float64)   { s.setMusic(v) }
func (s *Silent) SetEffectsVolume(v float64) { s.setEffects(v) }
func (s *Silent) Close() error               { return nil }

// Track returns the music that would be playing.
func (s *Silent) Track() Track { return s.track }
