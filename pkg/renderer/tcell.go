package renderer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/trytobebee/snake_deluxe/pkg/game"
)

var tcellColors = map[game.Color]tcell.Color{
	game.ColorWhite:   tcell.ColorWhite,
	game.ColorRed:     tcell.ColorRed,
	game.ColorMagenta: tcell.ColorFuchsia,
	game.ColorYellow:  tcell.ColorYellow,
	game.ColorBlue:    tcell.ColorBlue,
	game.ColorCyan:    tcell.ColorLightCyan,
	game.ColorGray:    tcell.ColorGray,
	game.ColorDarkRed: tcell.ColorDarkRed,
	game.ColorGreen:   tcell.ColorGreen,
}

// TcellRenderer draws frames on a tcell screen
type TcellRenderer struct {
	screen tcell.Screen
	canvas *canvas
}

// NewTcellRenderer wraps an initialized screen
func NewTcellRenderer(screen tcell.Screen) *TcellRenderer {
	screen.HideCursor()
	return &TcellRenderer{
		screen: screen,
		canvas: newCanvas(),
	}
}

// Render draws the game state
func (r *TcellRenderer) Render(s game.Snapshot) error {
	composeGame(r.canvas, s)
	r.draw()
	return nil
}

// RenderScreen draws a static page
func (r *TcellRenderer) RenderScreen(v View) error {
	composeScreen(r.canvas, v)
	r.draw()
	return nil
}

// Close restores the terminal
func (r *TcellRenderer) Close() error {
	r.screen.Fini()
	return nil
}

func (r *TcellRenderer) draw() {
	r.screen.Clear()
	for y, row := range r.canvas.cells {
		for x, cl := range row {
			style := tcell.StyleDefault.Foreground(tcellColors[cl.color])
			if cl.bold {
				style = style.Bold(true)
			}
			r.screen.SetContent(x, y, cl.ch, nil, style)
		}
	}
	r.screen.Show()
}
