package renderer

import (
	"io"
	"os"
	"strings"

	"github.com/trytobebee/snake_deluxe/pkg/game"
	"golang.org/x/term"
)

// ANSI escape sequences
const (
	ansiClear      = "\033[H\033[2J\033[3J"
	ansiHideCursor = "\033[?25l"
	ansiShowCursor = "\033[?25h"
	ansiReset      = "\033[0m"
	ansiBold       = "\033[1m"
)

var ansiColors = map[game.Color]string{
	game.ColorWhite:   "\033[97m",
	game.ColorRed:     "\033[91m",
	game.ColorMagenta: "\033[95m",
	game.ColorYellow:  "\033[93m",
	game.ColorBlue:    "\033[94m",
	game.ColorCyan:    "\033[96m",
	game.ColorGray:    "\033[90m",
	game.ColorDarkRed: "\033[31m",
	game.ColorGreen:   "\033[92m",
}

// TerminalRenderer handles ANSI rendering to a plain terminal
type TerminalRenderer struct {
	out    io.Writer
	canvas *canvas
	buffer strings.Builder
}

// NewTerminalRenderer creates a renderer writing to out and hides the cursor
func NewTerminalRenderer(out io.Writer) *TerminalRenderer {
	r := &TerminalRenderer{
		out:    out,
		canvas: newCanvas(),
	}
	r.HideCursor()
	return r
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	io.WriteString(r.out, ansiShowCursor)
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	io.WriteString(r.out, ansiHideCursor)
}

// Render renders the game state to the terminal
func (r *TerminalRenderer) Render(s game.Snapshot) error {
	composeGame(r.canvas, s)
	return r.flush()
}

// RenderScreen renders a static page
func (r *TerminalRenderer) RenderScreen(v View) error {
	composeScreen(r.canvas, v)
	return r.flush()
}

// Close restores the cursor and default colors
func (r *TerminalRenderer) Close() error {
	_, err := io.WriteString(r.out, ansiReset+ansiShowCursor)
	return err
}

// flush builds the whole frame in one buffer and writes it with a single call
func (r *TerminalRenderer) flush() error {
	r.buffer.Reset()
	r.buffer.WriteString(ansiClear)

	for _, row := range r.canvas.cells {
		var lastColor game.Color = -1
		lastBold := false
		for _, cl := range row {
			if cl.color != lastColor || cl.bold != lastBold {
				r.buffer.WriteString(ansiReset)
				if cl.bold {
					r.buffer.WriteString(ansiBold)
				}
				r.buffer.WriteString(ansiColors[cl.color])
				lastColor, lastBold = cl.color, cl.bold
			}
			r.buffer.WriteRune(cl.ch)
		}
		r.buffer.WriteString(ansiReset)
		r.buffer.WriteString("\n")
	}

	_, err := io.WriteString(r.out, r.buffer.String())
	return err
}

// TerminalSize reports the size of the terminal attached to f; ok is false
// when f is not a terminal
func TerminalSize(f *os.File) (w, h int, ok bool) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0, false
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// FitBoard shrinks a requested board so the whole frame fits a termW x termH
// terminal, never going below minW x minH
func FitBoard(boardW, boardH, termW, termH, minW, minH int) (int, int) {
	needW, needH := RequiredSize(boardW, boardH)
	if needW > termW {
		boardW -= needW - termW
	}
	if needH > termH {
		boardH -= needH - termH
	}
	return max(boardW, minW), max(boardH, minH)
}
