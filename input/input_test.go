package input

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"tetrisgo/tetris"
	"time"

	"github.com/eiannone/keyboard"
)

func TestStream(t *testing.T) {
	tests := []struct {
		name  string
		bytes string
		want  []KeyPress
	}{
		{
			name:  "arrows",
			bytes: "\x1b[A\x1b[B\x1b[C\x1b[D",
			want:  []KeyPress{{Key: KeyUp}, {Key: KeyDown}, {Key: KeyRight}, {Key: KeyLeft}},
		},
		{
			name:  "application mode arrows",
			bytes: "\x1bOD",
			want:  []KeyPress{{Key: KeyLeft}},
		},
		{
			name:  "lone escape",
			bytes: "\x1b",
			want:  []KeyPress{{Key: KeyEsc}},
		},
		{
			name:  "escape followed by a key",
			bytes: "\x1bpq",
			want:  []KeyPress{{Key: KeyEsc}, {Key: KeyRune, Rune: 'p'}, {Key: KeyRune, Rune: 'q'}},
		},
		{
			name:  "enter space and ctrl-c",
			bytes: "\r\n \x03",
			want:  []KeyPress{{Key: KeyEnter}, {Key: KeyEnter}, {Key: KeySpace}, {Key: KeyCtrlC}},
		},
		{
			name:  "runes",
			bytes: "wasd",
			want: []KeyPress{
				{Key: KeyRune, Rune: 'w'},
				{Key: KeyRune, Rune: 'a'},
				{Key: KeyRune, Rune: 's'},
				{Key: KeyRune, Rune: 'd'},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := StartStream(strings.NewReader(tt.bytes))
			var got []KeyPress
			timeout := time.After(time.Second)
		read:
			for {
				select {
				case k, ok := <-s.Keys():
					if !ok {
						break read
					}
					got = append(got, k)
				case <-timeout:
					t.Fatal("timeout waiting for the stream to close")
				}
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("wanted %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("close stops a blocked reader", func(t *testing.T) {
		s := StartStream(strings.NewReader(strings.Repeat("a", 500)))
		if err := s.Close(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if err := s.Close(); err != nil {
			t.Errorf("unexpected error closing twice: %v", err)
		}
		timeout := time.After(time.Second)
		for {
			select {
			case _, ok := <-s.Keys():
				if !ok {
					return
				}
			case <-timeout:
				t.Fatal("timeout waiting for the stream to close")
			}
		}
	})
}

func TestFromKeyboard(t *testing.T) {
	tests := []struct {
		event  keyboard.KeyEvent
		want   KeyPress
		wantOK bool
	}{
		{keyboard.KeyEvent{Key: keyboard.KeyArrowUp}, KeyPress{Key: KeyUp}, true},
		{keyboard.KeyEvent{Key: keyboard.KeyArrowDown}, KeyPress{Key: KeyDown}, true},
		{keyboard.KeyEvent{Key: keyboard.KeyArrowLeft}, KeyPress{Key: KeyLeft}, true},
		{keyboard.KeyEvent{Key: keyboard.KeyArrowRight}, KeyPress{Key: KeyRight}, true},
		{keyboard.KeyEvent{Key: keyboard.KeyEnter}, KeyPress{Key: KeyEnter}, true},
		{keyboard.KeyEvent{Key: keyboard.KeyEsc}, KeyPress{Key: KeyEsc}, true},
		{keyboard.KeyEvent{Key: keyboard.KeySpace}, KeyPress{Key: KeySpace}, true},
		{keyboard.KeyEvent{Key: keyboard.KeyCtrlC}, KeyPress{Key: KeyCtrlC}, true},
		{keyboard.KeyEvent{Rune: 'p'}, KeyPress{Key: KeyRune, Rune: 'p'}, true},
		{keyboard.KeyEvent{Key: keyboard.KeyF1}, KeyPress{}, false},
	}
	for _, tt := range tests {
		got, ok := fromKeyboard(tt.event)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("event %+v: wanted %v %t, got %v %t", tt.event, tt.want, tt.wantOK, got, ok)
		}
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		key  KeyPress
		want tetris.Action
	}{
		{KeyPress{Key: KeyLeft}, tetris.MoveLeft},
		{KeyPress{Key: KeyRune, Rune: 'a'}, tetris.MoveLeft},
		{KeyPress{Key: KeyRight}, tetris.MoveRight},
		{KeyPress{Key: KeyRune, Rune: 'd'}, tetris.MoveRight},
		{KeyPress{Key: KeyUp}, tetris.Rotate},
		{KeyPress{Key: KeyRune, Rune: 'e'}, tetris.Rotate},
		{KeyPress{Key: KeyDown}, tetris.SoftDrop},
		{KeyPress{Key: KeyRune, Rune: 's'}, tetris.SoftDrop},
		{KeyPress{Key: KeySpace}, tetris.HardDrop},
		{KeyPress{Key: KeyEsc}, tetris.Pause},
		{KeyPress{Key: KeyRune, Rune: 'p'}, tetris.Pause},
	}
	for _, tt := range tests {
		got, ok := ActionFor(tt.key)
		if !ok || got != tt.want {
			t.Errorf("key %v: wanted %q, got %q", tt.key, tt.want, got)
		}
	}

	for _, k := range []KeyPress{{Key: KeyEnter}, {Key: KeyCtrlC}, {Key: KeyRune, Rune: 'z'}} {
		if a, ok := ActionFor(k); ok {
			t.Errorf("key %v: wanted no action, got %q", k, a)
		}
	}
}

func TestControls(t *testing.T) {
	clock := tetris.NewFakeClock()
	c := NewControls(clock, 0)

	if c.Feed(KeyPress{Key: KeyEnter}) {
		t.Errorf("wanted enter to be ignored")
	}
	if !c.Feed(KeyPress{Key: KeyLeft}) || !c.Feed(KeyPress{Key: KeySpace}) {
		t.Fatalf("wanted game keys to be accepted")
	}

	want := []tetris.InputEvent{{Action: tetris.MoveLeft}, {Action: tetris.HardDrop}}
	if got := c.Events(); !slices.Equal(got, want) {
		t.Errorf("wanted %v, got %v", want, got)
	}
	if got := c.Events(); len(got) != 0 {
		t.Errorf("wanted events to be handed out once, got %v", got)
	}

	if !c.Held(tetris.MoveLeft) {
		t.Errorf("wanted left to be held right after the press")
	}
	clock.Advance(DefaultHoldWindow - time.Millisecond)
	if !c.Held(tetris.MoveLeft) {
		t.Errorf("wanted left to be held within the hold window")
	}
	clock.Advance(time.Millisecond)
	if c.Held(tetris.MoveLeft) {
		t.Errorf("wanted left to be released after the hold window")
	}

	// a repeated press keeps the key held without pressing it again.
	c.Feed(KeyPress{Key: KeyLeft})
	clock.Advance(DefaultHoldWindow / 2)
	c.Feed(KeyPress{Key: KeyLeft})
	clock.Advance(DefaultHoldWindow / 2)
	if !c.Held(tetris.MoveLeft) {
		t.Errorf("wanted left to stay held while presses repeat")
	}
	want = []tetris.InputEvent{{Action: tetris.MoveLeft}}
	if got := c.Events(); !slices.Equal(got, want) {
		t.Errorf("wanted a single press, got %v", got)
	}

	c.Reset()
	if c.Held(tetris.MoveLeft) || len(c.Events()) != 0 {
		t.Errorf("wanted reset to forget every press")
	}
}

// TestControlsAutoRepeat holds right the way a terminal reports it: one press,
// then after the terminal's repeat delay, a repeat every 33ms.
func TestControlsAutoRepeat(t *testing.T) {
	clock := tetris.NewFakeClock()
	s := tetris.NewSession(tetris.Options{Clock: clock, Rand: rand.New(rand.NewPCG(1, 2))})
	c := NewControls(clock, 0)
	right := KeyPress{Key: KeyRight}

	presses, maxRepeats := 0, 0
	for ms := 0; ms <= 600; ms++ {
		if ms == 0 || (ms >= 250 && (ms-250)%33 == 0) {
			c.Feed(right)
		}
		if ms%16 == 0 {
			presses += len(c.events)
			s.Tick(c)
			maxRepeats = max(maxRepeats, s.Timers().Right.Repeats)
		}
		clock.Advance(time.Millisecond)
	}

	// the press, and the first repeat which comes after the hold window.
	if presses != 2 {
		t.Errorf("wanted 2 presses, got %d", presses)
	}
	if maxRepeats == 0 {
		t.Errorf("wanted the held key to auto repeat")
	}
	rightmost := 0
	for _, p := range s.Current().Cells() {
		rightmost = max(rightmost, p.X)
	}
	if rightmost != tetris.Width-1 {
		t.Errorf("wanted the piece against the right wall, got its right edge at %d", rightmost)
	}
}
