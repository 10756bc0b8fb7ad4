package tetris

import "time"

// Timers holds every time based counter of a session. They only move inside
// Tick while the session is playing, so pausing freezes them as they are.
type Timers struct {
	Fall  time.Duration // time since the piece last fell a row
	Level time.Duration // time played, drives the one-off speed up

	LockDelay   time.Duration // time grounded since the lock delay started
	LockRunning bool

	Left, Right AutoRepeat
}

// AutoRepeat tracks a held direction. Repeats are due at DAS, DAS+ARR,
// DAS+2*ARR... after the press, measured on the time held and not on frames.
type AutoRepeat struct {
	Held    time.Duration
	Repeats int

	// set by a press so the frame of the press doesn't count as held time.
	pressed bool
}

func (a *AutoRepeat) press() {
	a.Held = 0
	a.Repeats = 0
	a.pressed = true
}

func (a *AutoRepeat) reset() {
	*a = AutoRepeat{}
}

// advance adds dt of held time and returns how many repeats became due.
func (a *AutoRepeat) advance(dt, das, arr time.Duration) int {
	if a.pressed {
		a.pressed = false
		return 0
	}
	a.Held += dt
	if a.Held < das {
		return 0
	}
	due := Width
	if arr > 0 {
		due = 1 + int((a.Held-das)/arr)
	}
	n := due - a.Repeats
	a.Repeats = due
	return n
}

func (t *Timers) resetLockDelay() {
	t.LockDelay = 0
	t.LockRunning = false
}
