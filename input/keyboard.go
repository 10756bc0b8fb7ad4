package input

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/eiannone/keyboard"
)

// Keyboard reads the local keyboard.
type Keyboard struct {
	keys   chan KeyPress
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func OpenKeyboard(l *slog.Logger) (*Keyboard, error) {
	events, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	k := &Keyboard{
		keys:   make(chan KeyPress, 20),
		done:   make(chan struct{}),
		logger: l,
	}
	go k.listen(events)
	return k, nil
}

func (k *Keyboard) Keys() <-chan KeyPress { return k.keys }

func (k *Keyboard) Close() error {
	var err error
	k.once.Do(func() {
		close(k.done)
		err = keyboard.Close()
	})
	return err
}

func (k *Keyboard) listen(events <-chan keyboard.KeyEvent) {
	defer close(k.keys)
	for {
		var event keyboard.KeyEvent
		var ok bool
		select {
		case event, ok = <-events:
		case <-k.done:
			return
		}
		if !ok {
			k.logger.Error("keyboard events channel closed unexpectedly")
			return
		}
		if event.Err != nil {
			k.logger.Error("keyboard event error", slog.String("error", event.Err.Error()))
			return
		}
		kp, ok := fromKeyboard(event)
		if !ok {
			continue
		}
		select {
		case k.keys <- kp:
		case <-k.done:
			return
		}
	}
}

func fromKeyboard(e keyboard.KeyEvent) (KeyPress, bool) {
	switch e.Key {
	case keyboard.KeyArrowUp:
		return KeyPress{Key: KeyUp}, true
	case keyboard.KeyArrowDown:
		return KeyPress{Key: KeyDown}, true
	case keyboard.KeyArrowLeft:
		return KeyPress{Key: KeyLeft}, true
	case keyboard.KeyArrowRight:
		return KeyPress{Key: KeyRight}, true
	case keyboard.KeyEnter:
		return KeyPress{Key: KeyEnter}, true
	case keyboard.KeyEsc:
		return KeyPress{Key: KeyEsc}, true
	case keyboard.KeySpace:
		return KeyPress{Key: KeySpace}, true
	case keyboard.KeyCtrlC:
		return KeyPress{Key: KeyCtrlC}, true
	}
	if e.Rune != 0 {
		return KeyPress{Key: KeyRune, Rune: e.Rune}, true
	}
	return KeyPress{}, false
}
