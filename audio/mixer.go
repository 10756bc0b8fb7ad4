package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"tetrisgo/tetris"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

// there can only be one audio context per process.
var (
	contextOnce sync.Once
	sharedCtx   *audio.Context
)

func audioContext() *audio.Context {
	contextOnce.Do(func() { sharedCtx = audio.NewContext(sampleRate) })
	return sharedCtx
}

// stream is a decoded file of known length.
type stream interface {
	io.ReadSeeker
	Length() int64
}

func decode(path string, r io.ReadSeeker) (stream, error) {
	var (
		s   stream
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		s, err = wav.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		s, err = mp3.DecodeWithSampleRate(sampleRate, r)
	case ".ogg":
		s, err = vorbis.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// loadEffects decodes every effect file found under dir into PCM. Files that
// can't be loaded are reported and skipped.
func loadEffects(dir string, files map[Sound]string) (map[Sound][]byte, []error) {
	effects := make(map[Sound][]byte, len(files))
	var errs []error
	for name, rel := range files {
		b, err := loadEffect(filepath.Join(dir, rel))
		if err != nil {
			errs = append(errs, fmt.Errorf("sound %s: %w", name, err))
			continue
		}
		effects[name] = b
	}
	return effects, errs
}

func loadEffect(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := decode(path, f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	b, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return b, nil
}

// Mixer plays through the sound device with ebiten's audio.
type Mixer struct {
	levels
	ctx     *audio.Context
	logger  *slog.Logger
	effects map[Sound][]byte
	tracks  map[Track]*audio.Player
	files   []io.Closer

	mu      sync.Mutex
	current Track
	paused  bool
}

// NewMixer loads every sound and track under assets. Missing files are logged
// and play nothing.
func NewMixer(assets string, l *slog.Logger) *Mixer {
	m := &Mixer{
		levels: newLevels(),
		ctx:    audioContext(),
		logger: l,
		tracks: make(map[Track]*audio.Player),
	}
	var errs []error
	m.effects, errs = loadEffects(assets, EffectFiles)
	for name, rel := range MusicFiles {
		if err := m.loadTrack(name, filepath.Join(assets, rel)); err != nil {
			errs = append(errs, fmt.Errorf("track %s: %w", name, err))
		}
	}
	for _, err := range errs {
		l.Warn("audio file not loaded", slog.String("error", err.Error()))
	}
	return m
}

func (m *Mixer) loadTrack(name Track, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	s, err := decode(path, f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	p, err := m.ctx.NewPlayer(audio.NewInfiniteLoop(s, s.Length()))
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to create player for %s: %w", path, err)
	}
	m.tracks[name] = p
	m.files = append(m.files, f)
	return nil
}

func (m *Mixer) Emit(e tetris.Event) {
	if s, ok := SoundFor(e); ok {
		m.PlaySound(s)
	}
}

func (m *Mixer) PlaySound(name Sound) {
	b, ok := m.effects[name]
	if !ok {
		m.logger.Warn("sound not loaded", slog.String("sound", string(name)))
		return
	}
	p := m.ctx.NewPlayerFromBytes(b)
	p.SetVolume(m.EffectsVolume())
	p.Play()
}

// PlayMusic switches to t. The track keeps playing if it's already on.
func (m *Mixer) PlayMusic(t Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.tracks[t]
	if !ok {
		m.logger.Warn("music track not loaded", slog.String("track", string(t)))
		return
	}
	if t == m.current && (p.IsPlaying() || m.paused) {
		if m.paused {
			p.Play()
			m.paused = false
		}
		return
	}
	m.stop()
	if err := p.Rewind(); err != nil {
		m.logger.Error("unable to rewind track", slog.String("track", string(t)), slog.String("error", err.Error()))
	}
	p.SetVolume(m.MusicVolume())
	p.Play()
	m.current = t
	m.paused = false
}

func (m *Mixer) PauseMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.tracks[m.current]; ok && p.IsPlaying() {
		p.Pause()
		m.paused = true
	}
}

func (m *Mixer) ResumeMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.tracks[m.current]; ok && m.paused {
		p.Play()
		m.paused = false
	}
}

func (m *Mixer) StopMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop()
}

func (m *Mixer) stop() {
	if p, ok := m.tracks[m.current]; ok {
		p.Pause()
	}
	m.current = ""
	m.paused = false
}

func (m *Mixer) SetMusicVolume(v float64) {
	v = m.setMusic(v)
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.tracks[m.current]; ok {
		p.SetVolume(v)
	}
}

// SetEffectsVolume applies to effects played from now on.
func (m *Mixer) SetEffectsVolume(v float64) { m.setEffects(v) }

func (m *Mixer) Close() error {
	m.StopMusic()
	var errs []error
	for _, p := range m.tracks {
		errs = append(errs, p.Close())
	}
	for _, f := range m.files {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}
