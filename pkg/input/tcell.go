package input

import "github.com/gdamore/tcell/v2"

// TcellHandler forwards key and resize events from a tcell screen
type TcellHandler struct {
	screen    tcell.Screen
	inputChan chan Press
}

// NewTcellHandler creates a handler polling screen; the screen must already be initialized
func NewTcellHandler(screen tcell.Screen) *TcellHandler {
	return &TcellHandler{
		screen:    screen,
		inputChan: make(chan Press, 32),
	}
}

// Start begins polling; the loop ends once the screen is finalized
func (h *TcellHandler) Start() error {
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if p := FromTcell(ev); p.Key != KeyNone {
					h.inputChan <- p
				}
			case *tcell.EventResize:
				h.inputChan <- Press{Key: KeyResize}
			}
		}
	}()
	return nil
}

// Stop is a no-op; finalizing the screen ends polling
func (h *TcellHandler) Stop() {}

// Presses returns the input channel
func (h *TcellHandler) Presses() <-chan Press {
	return h.inputChan
}

// FromTcell decodes a tcell key event
func FromTcell(ev *tcell.EventKey) Press {
	return decodeTcell(ev.Key(), ev.Rune())
}

func decodeTcell(key tcell.Key, r rune) Press {
	switch key {
	case tcell.KeyUp:
		return Press{Key: KeyUp}
	case tcell.KeyDown:
		return Press{Key: KeyDown}
	case tcell.KeyLeft:
		return Press{Key: KeyLeft}
	case tcell.KeyRight:
		return Press{Key: KeyRight}
	case tcell.KeyEnter:
		return Press{Key: KeyEnter}
	case tcell.KeyEscape:
		return Press{Key: KeyEscape}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Press{Key: KeyBackspace}
	case tcell.KeyCtrlC:
		return Press{Key: KeyInterrupt}
	case tcell.KeyRune:
		if r == ' ' {
			return Press{Key: KeySpace}
		}
		return Press{Key: KeyRune, Rune: r}
	}
	return Press{}
}
