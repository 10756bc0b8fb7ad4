package tetris

import (
	"math/rand/v2"
	"time"
)

type Action string

const (
	MoveLeft  Action = "left"     // Moves the piece one column to the left.
	MoveRight Action = "right"    // Moves the piece one column to the right.
	Rotate    Action = "rotate"   // Rotates the piece to its next state, wall kicking if needed.
	SoftDrop  Action = "softdrop" // Moves the piece one row down. Held, it speeds up gravity.
	HardDrop  Action = "harddrop" // Drops the piece down the stack and locks it.
	Pause     Action = "pause"    // Pauses or resumes the session.
)

// InputEvent is a press, or a release, of an action.
type InputEvent struct {
	Action   Action
	Released bool
}

// Input is what a session reads each tick: the events since the last tick and
// which actions are held down right now.
type Input interface {
	Events() []InputEvent
	Held(Action) bool
}

// Event is something that happened in the game that collaborators, like the
// audio, may want to react to.
type Event string

const (
	EventMove      Event = "move"
	EventRotate    Event = "rotate"
	EventDrop      Event = "drop"
	EventLock      Event = "lock"
	EventLineClear Event = "line-clear"
	EventTetris    Event = "tetris"
	EventLevelUp   Event = "level-up"
	EventPause     Event = "pause"
	EventGameOver  Event = "game-over"
)

// EventSink receives game events. Emit must not block.
type EventSink interface {
	Emit(Event)
}

// HighScores is the store the best score is kept in.
type HighScores interface {
	ReadHighScore() int
	WriteHighScore(int)
}

type Clock interface {
	Now() time.Time
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Ticker drives the frames of whatever runs a session.
type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func NewTicker(d time.Duration) Ticker { return &wrappedTicker{ticker: time.NewTicker(d)} }

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

type State int

const (
	Playing State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	}
	return "unknown"
}

// Outcome is how a session, or a menu on top of it, ended.
type Outcome string

const (
	Continue Outcome = "continue"
	Restart  Outcome = "restart"
	Menu     Outcome = "menu"
	Quit     Outcome = "quit"
)

type Config struct {
	FallInterval   time.Duration // time between gravity steps
	SpeedUpAfter   time.Duration // play time before the one-off speed up
	SpeedUpFall    time.Duration // fall interval after the speed up
	LockDelay      time.Duration // grace period of a grounded piece
	DAS            time.Duration // hold time before a direction starts repeating
	ARR            time.Duration // time between repeats
	SoftDropFactor int           // gravity multiplier while soft drop is held
}

func DefaultConfig() Config {
	return Config{
		FallInterval:   270 * time.Millisecond,
		SpeedUpAfter:   60 * time.Second,
		SpeedUpFall:    180 * time.Millisecond,
		LockDelay:      500 * time.Millisecond,
		DAS:            170 * time.Millisecond,
		ARR:            50 * time.Millisecond,
		SoftDropFactor: 10,
	}
}

type Options struct {
	Config *Config    // DefaultConfig() when nil
	Clock  Clock      // SystemClock when nil
	Rand   *rand.Rand // randomly seeded when nil
	Events EventSink
	Scores HighScores
}

// Session is one game, from the first piece to game over. It's driven by
// calling Tick once per frame and is not safe for concurrent use.
type Session struct {
	cfg    Config
	clock  Clock
	rand   *rand.Rand
	events EventSink
	scores HighScores

	board     *Board
	current   Piece
	next      Shape
	score     int
	highScore int
	lines     int
	state     State

	fallInterval   time.Duration
	speedUpApplied bool
	lastTick       time.Time
	timers         Timers
}

func NewSession(o Options) *Session {
	s := &Session{
		cfg:    DefaultConfig(),
		clock:  o.Clock,
		rand:   o.Rand,
		events: o.Events,
		scores: o.Scores,
		board:  NewBoard(),
		state:  Playing,
	}
	if o.Config != nil {
		s.cfg = *o.Config
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.scores != nil {
		s.highScore = s.scores.ReadHighScore()
	}
	s.fallInterval = s.cfg.FallInterval
	s.current = Spawn(RandomShape(s.rand))
	s.next = RandomShape(s.rand)
	s.lastTick = s.clock.Now()
	return s
}

// Tick advances the session by the time passed since the previous tick.
func (s *Session) Tick(in Input) {
	now := s.clock.Now()
	dt := max(now.Sub(s.lastTick), 0)
	s.lastTick = now

	switch s.state {
	case GameOver:
		return
	case Paused:
		// only the pause key gets through, to resume.
		for _, e := range in.Events() {
			if e.Action == Pause && !e.Released {
				s.Resume()
				return
			}
		}
		return
	}

	s.timers.Fall += dt
	s.timers.Level += dt
	if s.timers.Level >= s.cfg.SpeedUpAfter && !s.speedUpApplied {
		s.speedUpApplied = true
		s.fallInterval = s.cfg.SpeedUpFall
		s.emit(EventLevelUp)
	}

	for _, e := range in.Events() {
		s.handle(e)
		if s.state != Playing {
			return
		}
	}

	s.autoRepeat(in, dt)
	s.gravity(in, dt)
}

func (s *Session) handle(e InputEvent) {
	switch e.Action {
	case MoveLeft, MoveRight:
		ar, dx := &s.timers.Left, -1
		if e.Action == MoveRight {
			ar, dx = &s.timers.Right, 1
		}
		if e.Released {
			ar.reset()
			return
		}
		ar.press()
		s.shift(dx)
	case Rotate:
		if e.Released {
			return
		}
		if p, ok := TryRotate(s.current, s.board); ok {
			s.current = p
			s.timers.resetLockDelay()
			s.emit(EventRotate)
		}
	case SoftDrop:
		if e.Released {
			return
		}
		if p := s.current.Moved(0, 1); IsValid(p, s.board) {
			s.current = p
			s.emit(EventMove)
		}
	case HardDrop:
		if e.Released {
			return
		}
		s.current = s.current.Moved(0, dropDistance(s.current, s.board))
		s.emit(EventDrop)
		s.lock()
	case Pause:
		if !e.Released {
			s.Pause()
		}
	}
}

// shift moves the piece sideways if there's room for it.
func (s *Session) shift(dx int) bool {
	p := s.current.Moved(dx, 0)
	if !IsValid(p, s.board) {
		return false
	}
	s.current = p
	s.timers.resetLockDelay()
	s.emit(EventMove)
	return true
}

func (s *Session) autoRepeat(in Input, dt time.Duration) {
	for _, d := range []struct {
		action Action
		dx     int
		timer  *AutoRepeat
	}{
		{MoveLeft, -1, &s.timers.Left},
		{MoveRight, 1, &s.timers.Right},
	} {
		if !in.Held(d.action) {
			d.timer.reset()
			continue
		}
		n := min(d.timer.advance(dt, s.cfg.DAS, s.cfg.ARR), Width)
		for range n {
			if !s.shift(d.dx) {
				break
			}
		}
	}
}

func (s *Session) gravity(in Input, dt time.Duration) {
	interval := s.fallInterval
	if in.Held(SoftDrop) && s.cfg.SoftDropFactor > 1 {
		interval /= time.Duration(s.cfg.SoftDropFactor)
	}

	if isGrounded(s.current, s.board) {
		if !s.timers.LockRunning {
			s.timers.LockRunning = true
			s.timers.LockDelay = 0
		} else {
			s.timers.LockDelay += dt
		}
		if s.timers.LockDelay >= s.cfg.LockDelay {
			s.lock()
		}
		return
	}

	s.timers.resetLockDelay()
	if s.timers.Fall < interval {
		return
	}
	s.timers.Fall = 0
	p := s.current.Moved(0, 1)
	if !IsValid(p, s.board) {
		s.lock()
		return
	}
	s.current = p
}

// lock moves the current piece into the board, brings in the next piece,
// clears rows and scores them.
func (s *Session) lock() {
	s.board.lock(s.current)
	s.current = Spawn(s.next)
	s.next = RandomShape(s.rand)
	s.timers.resetLockDelay()
	s.timers.Fall = 0
	s.emit(EventLock)

	rows := ClearRows(s.board)
	s.score += Points(rows)
	s.lines += rows
	if rows > 0 {
		s.emit(EventLineClear)
	}
	if rows == 4 {
		s.emit(EventTetris)
	}

	if CheckLost(s.board) {
		s.gameOver()
	}
}

func (s *Session) gameOver() {
	s.state = GameOver
	s.emit(EventGameOver)
	if s.scores != nil && s.score > s.highScore {
		s.scores.WriteHighScore(s.score)
	}
	// a store that lost the write still shows the score just made.
	best := s.score
	if s.scores != nil {
		best = max(best, s.scores.ReadHighScore())
	}
	s.highScore = max(best, s.highScore)
}

// Pause freezes the session. Nothing moves and no timer runs until Resume.
func (s *Session) Pause() {
	if s.state != Playing {
		return
	}
	s.state = Paused
	s.emit(EventPause)
}

// Resume continues a paused session as if no time had passed.
func (s *Session) Resume() {
	if s.state != Paused {
		return
	}
	s.state = Playing
	s.lastTick = s.clock.Now()
}

func (s *Session) emit(e Event) {
	if s.events != nil {
		s.events.Emit(e)
	}
}

func (s *Session) State() State   { return s.state }
func (s *Session) Score() int     { return s.score }
func (s *Session) HighScore() int { return s.highScore }
func (s *Session) Lines() int     { return s.lines }
func (s *Session) Current() Piece { return s.current }
func (s *Session) Next() Shape    { return s.next }
func (s *Session) Board() *Board  { return s.board }
func (s *Session) Timers() Timers { return s.timers }

// SpeedUpApplied reports whether the one-off speed up already happened.
func (s *Session) SpeedUpApplied() bool { return s.speedUpApplied }

// Snapshot is a read-only copy of what's on screen.
type Snapshot struct {
	Grid       [Height][Width]Cell
	Piece      []Point
	PieceColor Color
	Ghost      []Point
	Next       Shape
	Score      int
	HighScore  int
	Lines      int
	State      State
	SpeedUp    bool
}

func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		Grid:       s.board.Grid(),
		Piece:      s.current.Cells(),
		PieceColor: s.current.Shape.Color(),
		Ghost:      s.current.Moved(0, dropDistance(s.current, s.board)).Cells(),
		Next:       s.next,
		Score:      s.score,
		HighScore:  s.highScore,
		Lines:      s.lines,
		State:      s.state,
		SpeedUp:    s.speedUpApplied,
	}
}
