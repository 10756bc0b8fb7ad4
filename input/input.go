// Package input turns key presses, from a local keyboard or from the byte
// stream of a remote terminal, into game actions.
//
// Terminals only report presses. A key counts as held for a short window
// after its last press, which the terminal's own key repeat keeps refreshing.
package input

import (
	"tetrisgo/tetris"
	"time"
)

type Key int

const (
	KeyRune Key = iota // a printable character, see KeyPress.Rune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEsc
	KeySpace
	KeyCtrlC
)

type KeyPress struct {
	Key  Key
	Rune rune
}

func (k KeyPress) Is(r rune) bool { return k.Key == KeyRune && k.Rune == r }

// Source is anything that produces key presses. The channel is closed once the
// source can't produce any more.
type Source interface {
	Keys() <-chan KeyPress
	Close() error
}

// DefaultHoldWindow is how long a key counts as held after its last press.
const DefaultHoldWindow = 100 * time.Millisecond

// ActionFor returns the game action bound to a key.
func ActionFor(k KeyPress) (tetris.Action, bool) {
	switch k.Key {
	case KeyLeft:
		return tetris.MoveLeft, true
	case KeyRight:
		return tetris.MoveRight, true
	case KeyUp:
		return tetris.Rotate, true
	case KeyDown:
		return tetris.SoftDrop, true
	case KeySpace:
		return tetris.HardDrop, true
	case KeyEsc:
		return tetris.Pause, true
	case KeyRune:
		switch k.Rune {
		case 'a', 'A', 'h':
			return tetris.MoveLeft, true
		case 'd', 'D', 'l':
			return tetris.MoveRight, true
		case 'w', 'W', 'e', 'E', 'k':
			return tetris.Rotate, true
		case 's', 'S', 'j':
			return tetris.SoftDrop, true
		case 'p', 'P':
			return tetris.Pause, true
		}
	}
	return "", false
}

// Controls collects presses between two ticks and reports them to a session
// as a tetris.Input.
type Controls struct {
	clock  tetris.Clock
	window time.Duration
	events []tetris.InputEvent
	last   map[tetris.Action]time.Time
}

func NewControls(clock tetris.Clock, window time.Duration) *Controls {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &Controls{
		clock:  clock,
		window: window,
		last:   make(map[tetris.Action]time.Time),
	}
}

// Feed records a key press. It reports false for keys with no game action.
// A press of a key that is still held is the terminal repeating it: it keeps
// the key held but isn't a new press, so the session's own auto-repeat runs.
func (c *Controls) Feed(k KeyPress) bool {
	a, ok := ActionFor(k)
	if !ok {
		return false
	}
	if !c.Held(a) {
		c.events = append(c.events, tetris.InputEvent{Action: a})
	}
	c.last[a] = c.clock.Now()
	return true
}

// Events returns the presses fed since the last call.
func (c *Controls) Events() []tetris.InputEvent {
	e := c.events
	c.events = nil
	return e
}

func (c *Controls) Held(a tetris.Action) bool {
	t, ok := c.last[a]
	return ok && c.clock.Now().Sub(t) < c.window
}

// Reset forgets every press, so nothing carries over from a menu into a game.
func (c *Controls) Reset() {
	c.events = nil
	clear(c.last)
}
