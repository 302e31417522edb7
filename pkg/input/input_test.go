package input

import (
	"testing"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/gdamore/tcell/v2"
	"github.com/trytobebee/snake_deluxe/pkg/game"
)

func TestPressCommand(t *testing.T) {
	tests := []struct {
		name  string
		press Press
		want  game.Command
	}{
		{"arrow up", Press{Key: KeyUp}, game.CmdUp},
		{"arrow down", Press{Key: KeyDown}, game.CmdDown},
		{"arrow left", Press{Key: KeyLeft}, game.CmdLeft},
		{"arrow right", Press{Key: KeyRight}, game.CmdRight},
		{"w", Press{Key: KeyRune, Rune: 'w'}, game.CmdUp},
		{"S", Press{Key: KeyRune, Rune: 'S'}, game.CmdDown},
		{"a", Press{Key: KeyRune, Rune: 'a'}, game.CmdLeft},
		{"d", Press{Key: KeyRune, Rune: 'd'}, game.CmdRight},
		{"p", Press{Key: KeyRune, Rune: 'p'}, game.CmdPause},
		{"space", Press{Key: KeySpace}, game.CmdPause},
		{"enter", Press{Key: KeyEnter}, game.CmdResume},
		{"escape", Press{Key: KeyEscape}, game.CmdQuit},
		{"q", Press{Key: KeyRune, Rune: 'q'}, game.CmdQuit},
		{"ctrl-c", Press{Key: KeyInterrupt}, game.CmdQuit},
		{"other rune", Press{Key: KeyRune, Rune: 'z'}, game.CmdNone},
		{"resize", Press{Key: KeyResize}, game.CmdNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.press.Command(); got != tc.want {
				t.Errorf("Command() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFromKeyboard(t *testing.T) {
	tests := []struct {
		char rune
		key  keyboard.Key
		want Press
	}{
		{0, keyboard.KeyArrowUp, Press{Key: KeyUp}},
		{0, keyboard.KeyArrowLeft, Press{Key: KeyLeft}},
		{0, keyboard.KeyEnter, Press{Key: KeyEnter}},
		{0, keyboard.KeyEsc, Press{Key: KeyEscape}},
		{0, keyboard.KeyBackspace2, Press{Key: KeyBackspace}},
		{0, keyboard.KeySpace, Press{Key: KeySpace}},
		{0, keyboard.KeyCtrlC, Press{Key: KeyInterrupt}},
		{'x', 0, Press{Key: KeyRune, Rune: 'x'}},
		{0, 0, Press{}},
	}
	for _, tc := range tests {
		if got := FromKeyboard(tc.char, tc.key); got != tc.want {
			t.Errorf("FromKeyboard(%q, %v) = %+v, want %+v", tc.char, tc.key, got, tc.want)
		}
	}
}

func TestDecodeTcell(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want Press
	}{
		{tcell.KeyUp, 0, Press{Key: KeyUp}},
		{tcell.KeyRight, 0, Press{Key: KeyRight}},
		{tcell.KeyEnter, 0, Press{Key: KeyEnter}},
		{tcell.KeyEscape, 0, Press{Key: KeyEscape}},
		{tcell.KeyBackspace2, 0, Press{Key: KeyBackspace}},
		{tcell.KeyRune, ' ', Press{Key: KeySpace}},
		{tcell.KeyRune, 'q', Press{Key: KeyRune, Rune: 'q'}},
		{tcell.KeyF1, 0, Press{}},
	}
	for _, tc := range tests {
		if got := decodeTcell(tc.key, tc.r); got != tc.want {
			t.Errorf("decodeTcell(%v, %q) = %+v, want %+v", tc.key, tc.r, got, tc.want)
		}
	}
}

func TestPrintable(t *testing.T) {
	if !(Press{Key: KeyRune, Rune: 'A'}).IsPrintable() {
		t.Error("Letters are printable")
	}
	if !(Press{Key: KeySpace}).IsPrintable() || (Press{Key: KeySpace}).Text() != ' ' {
		t.Error("Space is printable as ' '")
	}
	if (Press{Key: KeyEnter}).IsPrintable() {
		t.Error("Enter is not printable")
	}
}

// TestKeyboardForwardAfterStop fills the buffer, then checks a stopped
// handler drops the next press instead of blocking the reader
func TestKeyboardForwardAfterStop(t *testing.T) {
	h := NewKeyboardHandler()
	sent := 0
	for h.forwardNow(Press{Key: KeyUp}) {
		sent++
	}
	if sent != cap(h.inputChan) {
		t.Fatalf("Expected %d buffered presses, got %d", cap(h.inputChan), sent)
	}

	close(h.done)
	result := make(chan bool, 1)
	go func() { result <- h.forward(Press{Key: KeyDown}) }()
	select {
	case ok := <-result:
		if ok {
			t.Error("A stopped handler should not accept presses")
		}
	case <-time.After(time.Second):
		t.Fatal("forward blocked after Stop")
	}

	first := <-h.Presses()
	if first.Key != KeyUp {
		t.Errorf("Expected buffered presses to stay readable, got %+v", first)
	}
}

// forwardNow is forward without waiting, for filling the buffer
func (h *KeyboardHandler) forwardNow(p Press) bool {
	select {
	case h.inputChan <- p:
		return true
	default:
		return false
	}
}
