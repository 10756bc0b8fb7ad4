package client

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"tetrisgo/audio"
	"tetrisgo/input"
	"tetrisgo/terminal"
	"tetrisgo/tetris"
	"time"
)

// mockRender reports every call as "clear", "game" or "menu:<title>". Frames
// of a session that isn't playing are reported as "game:<state>".
type mockRender struct {
	calls chan string

	mu   sync.Mutex
	last terminal.Menu
}

func newMockRender() *mockRender { return &mockRender{calls: make(chan string, 4096)} }

func (m *mockRender) Clear() { m.calls <- "clear" }
func (m *mockRender) Game(s *tetris.Snapshot) {
	if s.State != tetris.Playing {
		m.calls <- "game:" + s.State.String()
		return
	}
	m.calls <- "game"
}
func (m *mockRender) Menu(menu terminal.Menu) {
	m.mu.Lock()
	m.last = menu
	m.mu.Unlock()
	m.calls <- "menu:" + menu.Title
}

func (m *mockRender) lastMenu() terminal.Menu {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// await reads calls until want shows up.
func (m *mockRender) await(t *testing.T, want string) {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case got := <-m.calls:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timeout waiting for %q", want)
		}
	}
}

// next returns the next call that isn't a clear.
func (m *mockRender) next(t *testing.T) string {
	t.Helper()
	for {
		select {
		case got := <-m.calls:
			if got != "clear" {
				return got
			}
		case <-time.After(time.Second):
			t.Fatalf("timeout waiting for a render")
		}
	}
}

type memScores struct {
	mu   sync.Mutex
	best int
}

func (m *memScores) ReadHighScore() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best
}

func (m *memScores) WriteHighScore(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = max(m.best, v)
}

type testClient struct {
	*Client
	keys   chan input.KeyPress
	ticker *tetris.MockTicker
	render *mockRender
	clock  *tetris.FakeClock
	audio  *audio.Silent
	scores *memScores
	done   chan struct{}
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()
	tc := &testClient{
		keys:   make(chan input.KeyPress),
		ticker: tetris.NewMockTicker(),
		render: newMockRender(),
		clock:  tetris.NewFakeClock(),
		audio:  audio.NewSilent(),
		scores: &memScores{},
		done:   make(chan struct{}),
	}
	tc.Client = &Client{
		keys:      tc.keys,
		render:    tc.render,
		audio:     tc.audio,
		scores:    tc.scores,
		options:   &Options{Seed: 7},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:     tc.clock,
		newTicker: func(time.Duration) tetris.Ticker { return tc.ticker },
	}
	go func() {
		tc.Start()
		close(tc.done)
	}()
	tc.render.await(t, "menu:"+titleMain)
	return tc
}

func (tc *testClient) press(keys ...input.KeyPress) {
	for _, k := range keys {
		tc.keys <- k
	}
}

func (tc *testClient) wait(t *testing.T) {
	t.Helper()
	select {
	case <-tc.done:
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for the client to quit")
	}
}

var (
	up    = input.KeyPress{Key: input.KeyUp}
	down  = input.KeyPress{Key: input.KeyDown}
	left  = input.KeyPress{Key: input.KeyLeft}
	right = input.KeyPress{Key: input.KeyRight}
	enter = input.KeyPress{Key: input.KeyEnter}
	esc   = input.KeyPress{Key: input.KeyEsc}
	space = input.KeyPress{Key: input.KeySpace}
)

func TestMainMenuQuit(t *testing.T) {
	tests := []struct {
		name string
		keys []input.KeyPress
	}{
		{name: "quit option", keys: []input.KeyPress{down, down, enter}},
		{name: "quit option wrapping up", keys: []input.KeyPress{up, enter}},
		{name: "esc", keys: []input.KeyPress{esc}},
		{name: "q", keys: []input.KeyPress{{Key: input.KeyRune, Rune: 'q'}}},
		{name: "ctrl+c", keys: []input.KeyPress{{Key: input.KeyCtrlC}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestClient(t)
			tc.press(tt.keys...)
			tc.wait(t)
			if got := tc.audio.Track(); got != audio.MenuTrack {
				t.Errorf("wanted the menu music playing, got %q", got)
			}
		})
	}

	t.Run("closed key source", func(t *testing.T) {
		tc := newTestClient(t)
		close(tc.keys)
		tc.wait(t)
	})
}

func TestSettings(t *testing.T) {
	tc := newTestClient(t)
	tc.press(down, enter)
	tc.render.await(t, "menu:"+titleSettings)

	// music is selected first.
	tc.press(right, right)
	tc.render.await(t, "menu:"+titleSettings)
	tc.render.await(t, "menu:"+titleSettings)
	if got := tc.audio.MusicVolume(); got != 0.7 {
		t.Errorf("wanted music volume 0.7, got %v", got)
	}

	tc.press(down, left)
	tc.render.await(t, "menu:"+titleSettings)
	tc.render.await(t, "menu:"+titleSettings)
	if got := tc.audio.EffectsVolume(); got != 0.6 {
		t.Errorf("wanted effects volume 0.6, got %v", got)
	}
	want := []string{"Music volume: 70%", "Effects volume: 60%", "Back"}
	m := tc.render.lastMenu()
	for i, o := range want {
		if m.Options[i] != o {
			t.Errorf("wanted option %q, got %q", o, m.Options[i])
		}
	}
	if m.Selected != optEffects {
		t.Errorf("wanted effects selected, got %d", m.Selected)
	}

	// back to the main menu, with Quit two steps below Start.
	tc.press(esc)
	tc.render.await(t, "menu:"+titleMain)
	tc.press(down, enter)
	tc.wait(t)
}

func TestSession(t *testing.T) {
	tc := newTestClient(t)
	tc.press(enter)
	tc.render.await(t, "game")
	if got := tc.audio.Track(); got != audio.GameTrack {
		t.Errorf("wanted the game music playing, got %q", got)
	}

	// every tick draws a frame.
	for range 3 {
		tc.ticker.Tick()
		if got := tc.render.next(t); got != "game" {
			t.Fatalf("wanted a frame, got %q", got)
		}
	}

	// esc pauses the game on the next tick.
	tc.press(esc)
	tc.ticker.Tick()
	tc.render.await(t, "menu:"+titlePaused)

	// music up twice from the pause menu.
	tc.press(down, enter, enter)
	tc.render.await(t, "menu:"+titlePaused)
	tc.render.await(t, "menu:"+titlePaused)
	tc.render.await(t, "menu:"+titlePaused)
	if got := tc.audio.MusicVolume(); got != 0.7 {
		t.Errorf("wanted music volume 0.7, got %v", got)
	}
	if !strings.Contains(tc.render.lastMenu().Lines[0], "Music 70%") {
		t.Errorf("wanted the volume shown, got %q", tc.render.lastMenu().Lines)
	}

	// p continues.
	tc.press(input.KeyPress{Key: input.KeyRune, Rune: 'p'})
	tc.ticker.Tick()
	tc.render.await(t, "game")

	// pause again and go back to the main menu.
	tc.press(esc)
	tc.ticker.Tick()
	tc.render.await(t, "menu:"+titlePaused)
	tc.press(up, up, enter)
	tc.render.await(t, "menu:"+titleMain)
	if !tc.ticker.IsStop() {
		t.Errorf("wanted the ticker stopped")
	}
	if got := tc.audio.Track(); got != audio.MenuTrack {
		t.Errorf("wanted the menu music playing, got %q", got)
	}

	tc.press(esc)
	tc.wait(t)
}

func TestRestart(t *testing.T) {
	tc := newTestClient(t)
	tc.press(enter)
	tc.render.await(t, "game")

	// restart from the pause menu starts a new game.
	tc.press(esc)
	tc.ticker.Tick()
	tc.render.await(t, "menu:"+titlePaused)
	tc.press(up, up, up, enter)
	tc.render.await(t, "clear")
	tc.render.await(t, "game")
	if tc.games != 2 {
		t.Errorf("wanted 2 games, got %d", tc.games)
	}

	// quit from the pause menu leaves the client.
	tc.press(esc)
	tc.ticker.Tick()
	tc.render.await(t, "menu:"+titlePaused)
	tc.press(up, enter)
	tc.wait(t)
}

func TestGameOver(t *testing.T) {
	tc := newTestClient(t)
	tc.press(enter)
	tc.render.await(t, "game")

	// hard drops pile pieces over the spawn column until the stack tops out.
	// each drop is a new press once the last one is no longer held.
	over := false
	for i := 0; i < 40 && !over; i++ {
		tc.clock.Advance(input.DefaultHoldWindow)
		tc.press(space)
		tc.ticker.Tick()
		switch got := tc.render.next(t); got {
		case "game":
		case "game:game over":
			over = true
		default:
			t.Fatalf("wanted a frame, got %q", got)
		}
	}
	if !over {
		t.Fatalf("wanted the game to be over")
	}
	tc.render.await(t, "menu:"+titleGameOver)
	if tc.audio.Track() != "" {
		t.Errorf("wanted the music stopped, got %q", tc.audio.Track())
	}
	m := tc.render.lastMenu()
	if len(m.Lines) != 2 || !strings.HasPrefix(m.Lines[0], "Score: ") || !strings.HasPrefix(m.Lines[1], "High score: ") {
		t.Errorf("wanted score and high score, got %q", m.Lines)
	}

	tc.press(down, enter)
	tc.render.await(t, "menu:"+titleMain)
	tc.press(esc)
	tc.wait(t)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		selected, d, n, want int
	}{
		{0, 1, 3, 1},
		{2, 1, 3, 0},
		{0, -1, 3, 2},
		{7, 1, 8, 0},
	}
	for _, tt := range tests {
		if got := wrap(tt.selected, tt.d, tt.n); got != tt.want {
			t.Errorf("wrap(%d, %d, %d): wanted %d, got %d", tt.selected, tt.d, tt.n, tt.want, got)
		}
	}
}
