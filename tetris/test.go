package tetris

import (
	"math/rand/v2"
	"sync"
	"time"
)

// MockTicker is a mock implementation of the Ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// FakeClock is a Clock that only moves when told to.
type FakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func NewFakeClock() *FakeClock { return &FakeClock{now: time.Unix(0, 0)} }

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestInput is an Input fed by hand. Events are handed out once.
type TestInput struct {
	events []InputEvent
	held   map[Action]bool
}

func NewTestInput() *TestInput { return &TestInput{held: map[Action]bool{}} }

func (i *TestInput) Press(a Action) *TestInput {
	i.events = append(i.events, InputEvent{Action: a})
	return i
}

func (i *TestInput) Hold(a Action, held bool) *TestInput {
	i.held[a] = held
	return i
}

func (i *TestInput) Events() []InputEvent {
	e := i.events
	i.events = nil
	return e
}

func (i *TestInput) Held(a Action) bool { return i.held[a] }

// RecordingSink keeps every event it's given.
type RecordingSink struct {
	Events []Event
}

func (r *RecordingSink) Emit(e Event) { r.Events = append(r.Events, e) }

// NewTestSession creates a session with a fixed seed and a current piece of the
// given shape, driven by the returned clock.
func NewTestSession(shape Shape) (*Session, *FakeClock) {
	clock := NewFakeClock()
	s := NewSession(Options{
		Clock: clock,
		Rand:  rand.New(rand.NewPCG(1, 2)),
	})
	s.current = Spawn(shape)
	return s, clock
}
