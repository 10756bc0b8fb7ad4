package input

import (
	"bufio"
	"io"
	"sync"
)

// Stream reads key presses from a raw terminal byte stream, such as an SSH
// session. Arrow keys arrive as ESC [ A..D escape sequences.
type Stream struct {
	keys chan KeyPress
	done chan struct{}
	once sync.Once
}

// StartStream spawns a goroutine that parses r until it fails or the stream
// is closed.
func StartStream(r io.Reader) *Stream {
	s := &Stream{
		keys: make(chan KeyPress, 128),
		done: make(chan struct{}),
	}
	go s.read(bufio.NewReader(r))
	return s
}

func (s *Stream) Keys() <-chan KeyPress { return s.keys }

func (s *Stream) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *Stream) read(r *bufio.Reader) {
	defer close(s.keys)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		select {
		case s.keys <- parseByte(b, r):
		case <-s.done:
			return
		}
	}
}

// parseByte turns b, and the rest of its escape sequence if any, into a key.
// A lone ESC with nothing buffered behind it is the escape key.
func parseByte(b byte, r *bufio.Reader) KeyPress {
	switch b {
	case 0x1b:
		if r.Buffered() < 2 {
			return KeyPress{Key: KeyEsc}
		}
		seq, err := r.Peek(2)
		if err != nil || (seq[0] != '[' && seq[0] != 'O') {
			return KeyPress{Key: KeyEsc}
		}
		k, ok := arrows[seq[1]]
		if !ok {
			return KeyPress{Key: KeyEsc}
		}
		_, _ = r.Discard(2)
		return KeyPress{Key: k}
	case '\r', '\n':
		return KeyPress{Key: KeyEnter}
	case ' ':
		return KeyPress{Key: KeySpace}
	case 0x03:
		return KeyPress{Key: KeyCtrlC}
	}
	return KeyPress{Key: KeyRune, Rune: rune(b)}
}

var arrows = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}
