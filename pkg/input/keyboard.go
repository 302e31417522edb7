package input

import (
	"sync"

	"github.com/eiannone/keyboard"
	"github.com/trytobebee/snake_deluxe/pkg/game"
)

// Key is a backend-independent key identifier
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeySpace
	KeyRune
	KeyInterrupt // Ctrl+C
	KeyResize    // terminal changed size, redraw
)

// Press represents a single decoded key press
type Press struct {
	Key  Key
	Rune rune // set for KeyRune
}

// Source delivers key presses from a terminal backend
type Source interface {
	Start() error
	Stop()
	Presses() <-chan Press
}

// Command maps a press to a game command: arrows/WASD steer, p or space
// pauses, Enter resumes, Esc/q/Ctrl+C quit.
func (p Press) Command() game.Command {
	switch p.Key {
	case KeyUp:
		return game.CmdUp
	case KeyDown:
		return game.CmdDown
	case KeyLeft:
		return game.CmdLeft
	case KeyRight:
		return game.CmdRight
	case KeySpace:
		return game.CmdPause
	case KeyEnter:
		return game.CmdResume
	case KeyEscape, KeyInterrupt:
		return game.CmdQuit
	case KeyRune:
		switch p.Rune {
		case 'w', 'W':
			return game.CmdUp
		case 's', 'S':
			return game.CmdDown
		case 'a', 'A':
			return game.CmdLeft
		case 'd', 'D':
			return game.CmdRight
		case 'p', 'P', ' ':
			return game.CmdPause
		case 'q', 'Q':
			return game.CmdQuit
		}
	}
	return game.CmdNone
}

// IsPrintable reports whether the press carries a rune usable in a player name
func (p Press) IsPrintable() bool {
	return (p.Key == KeyRune && p.Rune >= ' ' && p.Rune != 0x7f) || p.Key == KeySpace
}

// Text returns the character typed, for name entry
func (p Press) Text() rune {
	if p.Key == KeySpace {
		return ' '
	}
	return p.Rune
}

// KeyboardHandler reads raw keys with eiannone/keyboard (ANSI backend)
type KeyboardHandler struct {
	inputChan chan Press
	done      chan struct{}
	stopOnce  sync.Once
}

// NewKeyboardHandler creates a new keyboard input handler
func NewKeyboardHandler() *KeyboardHandler {
	return &KeyboardHandler{
		inputChan: make(chan Press, 32),
		done:      make(chan struct{}),
	}
}

// Start begins listening for keyboard input
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			if p := FromKeyboard(char, key); p.Key != KeyNone {
				if !h.forward(p) {
					return
				}
			}
		}
	}()

	return nil
}

// forward hands p to the reader; false once the handler is stopped
func (h *KeyboardHandler) forward(p Press) bool {
	select {
	case h.inputChan <- p:
		return true
	case <-h.done:
		return false
	}
}

// Stop stops the keyboard handler
func (h *KeyboardHandler) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		keyboard.Close()
	})
}

// Presses returns the input channel
func (h *KeyboardHandler) Presses() <-chan Press {
	return h.inputChan
}

// FromKeyboard decodes an eiannone/keyboard event
func FromKeyboard(char rune, key keyboard.Key) Press {
	switch key {
	case keyboard.KeyArrowUp:
		return Press{Key: KeyUp}
	case keyboard.KeyArrowDown:
		return Press{Key: KeyDown}
	case keyboard.KeyArrowLeft:
		return Press{Key: KeyLeft}
	case keyboard.KeyArrowRight:
		return Press{Key: KeyRight}
	case keyboard.KeyEnter:
		return Press{Key: KeyEnter}
	case keyboard.KeyEsc:
		return Press{Key: KeyEscape}
	case keyboard.KeyBackspace, keyboard.KeyBackspace2:
		return Press{Key: KeyBackspace}
	case keyboard.KeySpace:
		return Press{Key: KeySpace}
	case keyboard.KeyCtrlC:
		return Press{Key: KeyInterrupt}
	}
	if char != 0 {
		return Press{Key: KeyRune, Rune: char}
	}
	return Press{}
}
