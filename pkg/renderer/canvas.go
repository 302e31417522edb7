package renderer

import (
	"fmt"
	"time"

	"github.com/trytobebee/snake_deluxe/pkg/config"
	"github.com/trytobebee/snake_deluxe/pkg/game"
	"github.com/trytobebee/snake_deluxe/pkg/highscore"
)

// Layout of the game frame around the board
const (
	hudRows    = 3 // title, stats, status
	footerRows = 2
)

// Page identifies a full-screen page shown outside a run
type Page int

const (
	PageMenu Page = iota
	PageInstructions
	PageHighscores
	PageNameEntry
)

// MenuItems are the main menu entries, in order
var MenuItems = []string{"New Game", "Instructions", "Highscores", "Quit"}

// View carries everything a static page displays
type View struct {
	Page       Page
	Selected   int // highlighted menu entry
	Highscores []highscore.Entry
	Name       string // name typed so far
	Score      int
	Level      int
}

// Renderer draws game snapshots and static pages on a terminal backend
type Renderer interface {
	Render(s game.Snapshot) error
	RenderScreen(v View) error
	Close() error
}

// RequiredSize returns the terminal cells needed to draw a board of the given size
func RequiredSize(boardW, boardH int) (int, int) {
	return boardW + 2, hudRows + boardH + 2 + footerRows
}

type cell struct {
	ch    rune
	color game.Color
	bold  bool
}

// canvas is the backend-independent frame both renderers draw from
type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas() *canvas {
	return &canvas{}
}

// reset resizes the canvas and blanks every cell, reusing rows when possible
func (c *canvas) reset(w, h int) {
	if w != c.w || h != c.h {
		c.w, c.h = w, h
		c.cells = make([][]cell, h)
		for y := range c.cells {
			c.cells[y] = make([]cell, w)
		}
	}
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = cell{ch: config.CharEmpty, color: game.ColorWhite}
		}
	}
}

func (c *canvas) set(x, y int, ch rune, color game.Color, bold bool) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{ch: ch, color: color, bold: bold}
}

func (c *canvas) text(x, y int, s string, color game.Color, bold bool) {
	for _, ch := range s {
		c.set(x, y, ch, color, bold)
		x++
	}
}

func (c *canvas) centered(y int, s string, color game.Color, bold bool) {
	x := (c.w - len([]rune(s))) / 2
	c.text(x, y, s, color, bold)
}

// row returns the characters of line y, for tests and plain output
func (c *canvas) row(y int) string {
	runes := make([]rune, c.w)
	for x, cl := range c.cells[y] {
		runes[x] = cl.ch
	}
	return string(runes)
}

// composeGame lays out HUD, framed board, footer and any phase overlay
func composeGame(c *canvas, s game.Snapshot) {
	c.reset(RequiredSize(s.Width, s.Height))
	ox, oy := 1, hudRows+1

	c.text(0, 0, "SNAKE DELUXE", game.ColorGreen, true)
	c.text(0, 1, fmt.Sprintf("Score: %d  Level: %d/%d  Length: %d  Speed: %dms",
		s.Score, s.Level, config.MaxLevel, len(s.Snake), s.TickInterval.Milliseconds()), game.ColorWhite, false)
	composeStatus(c, s)

	// Frame
	for x := 0; x < s.Width+2; x++ {
		c.set(x, oy-1, config.CharBorder, game.ColorGray, false)
		c.set(x, oy+s.Height, config.CharBorder, game.ColorGray, false)
	}
	for y := oy - 1; y <= oy+s.Height; y++ {
		c.set(0, y, config.CharBorder, game.ColorGray, false)
		c.set(s.Width+1, y, config.CharBorder, game.ColorGray, false)
	}

	if s.Portals != nil {
		c.set(ox+s.Portals.A.X, oy+s.Portals.A.Y, config.CharPortal, game.ColorCyan, true)
		c.set(ox+s.Portals.B.X, oy+s.Portals.B.Y, config.CharPortal, game.ColorCyan, true)
	}
	for _, obj := range s.Objects() {
		if !obj.IsActive() {
			continue
		}
		p := obj.Position()
		c.set(ox+p.X, oy+p.Y, obj.Symbol(), obj.Color(), false)
	}

	headColor := game.ColorGreen
	if s.ShieldActive {
		headColor = game.ColorBlue
	}
	for i := len(s.Snake) - 1; i >= 0; i-- {
		p := s.Snake[i]
		if i == 0 {
			c.set(ox+p.X, oy+p.Y, config.CharHead, headColor, true)
		} else {
			c.set(ox+p.X, oy+p.Y, config.CharBody, game.ColorGreen, false)
		}
	}

	if s.CrashPoint != nil {
		cp := *s.CrashPoint
		if cp.X >= 0 && cp.X < s.Width && cp.Y >= 0 && cp.Y < s.Height {
			c.set(ox+cp.X, oy+cp.Y, config.CharCrash, game.ColorRed, true)
		}
	}

	footer := oy + s.Height + 1
	c.text(0, footer, "Arrows/WASD move  P pause  Esc quit", game.ColorGray, false)

	mid := oy + s.Height/2
	switch s.Phase {
	case game.Paused:
		c.centered(mid-1, " GAME PAUSED ", game.ColorYellow, true)
		c.centered(mid+1, " Press P or Enter to continue ", game.ColorWhite, false)
		c.centered(mid+2, " Press Esc to quit ", game.ColorWhite, false)
	case game.GameOver:
		c.centered(mid-3, " GAME OVER ", game.ColorRed, true)
		if s.CrashCause != "" {
			c.centered(mid-2, " "+s.CrashCause+" ", game.ColorDarkRed, false)
		}
		composeStats(c, mid, s)
	case game.Victory:
		c.centered(mid-3, " VICTORY! ", game.ColorGreen, true)
		c.centered(mid-2, fmt.Sprintf(" All %d levels cleared ", config.MaxLevel), game.ColorGreen, false)
		composeStats(c, mid, s)
	}
}

func composeStatus(c *canvas, s game.Snapshot) {
	x := 0
	if s.ShieldActive {
		label := fmt.Sprintf("Shield %d  ", s.ShieldTicks)
		c.text(x, 2, label, game.ColorBlue, true)
		x += len(label)
	}
	if s.SpeedBoostActive {
		label := fmt.Sprintf("Boost %d  ", s.SpeedBoostTicks)
		c.text(x, 2, label, game.ColorYellow, true)
		x += len(label)
	}
	if len(s.Events) > 0 {
		if msg := eventMessage(s.Events[len(s.Events)-1]); msg != "" {
			c.text(x, 2, msg, game.ColorMagenta, false)
		}
	}
}

func composeStats(c *canvas, mid int, s game.Snapshot) {
	c.centered(mid, fmt.Sprintf(" Score %d  Level %d ", s.Score, s.Level), game.ColorWhite, true)
	c.centered(mid+1, fmt.Sprintf(" Moves %d  Food %d  Specials %d  Time %s ",
		s.Stats.MovesMade, s.Stats.FoodEaten, s.Stats.SpecialItemsCollected,
		s.Stats.Elapsed.Round(time.Second)), game.ColorWhite, false)
	c.centered(mid+3, " Press Enter to continue ", game.ColorGray, false)
}

func eventMessage(e game.Event) string {
	switch e.Type {
	case game.EventFoodEaten:
		if e.FoodType.IsSpecial() {
			return fmt.Sprintf("+%d %s!", e.FoodType.Value(), e.FoodType)
		}
	case game.EventShieldConsumed:
		return "Shield absorbed the hit!"
	case game.EventTeleported:
		return "Teleported!"
	case game.EventLevelUp:
		return fmt.Sprintf("Level %d!", e.Level)
	case game.EventFoodMissing:
		return "No room for food!"
	}
	return ""
}

var logo = []string{
	` ___           _          ___      _`,
	`/ __|_ _  __ _| |_____   |   \ ___| |_  ___ _____`,
	`\__ \ ' \/ _' | / / -_)  | |) / -_) | || \ \ / -_)`,
	`|___/_||_\__,_|_\_\___|  |___/\___|_|\_,_/_\_\___|`,
}

// composeScreen lays out a static page
func composeScreen(c *canvas, v View) {
	lines := pageLines(v)
	w := 60
	for _, l := range lines {
		w = max(w, len([]rune(l.text))+4)
	}
	c.reset(w, len(lines)+2)
	for i, l := range lines {
		if l.center {
			c.centered(i+1, l.text, l.color, l.bold)
		} else {
			c.text(2, i+1, l.text, l.color, l.bold)
		}
	}
}

type line struct {
	text   string
	color  game.Color
	bold   bool
	center bool
}

func pageLines(v View) []line {
	var lines []line
	add := func(text string, color game.Color, bold bool) {
		lines = append(lines, line{text: text, color: color, bold: bold})
	}

	switch v.Page {
	case PageMenu:
		for _, l := range logo {
			add(l, game.ColorGreen, true)
		}
		add("", game.ColorWhite, false)
		for i, item := range MenuItems {
			if i == v.Selected {
				lines = append(lines, line{text: "> " + item + " <", color: game.ColorGreen, bold: true, center: true})
			} else {
				lines = append(lines, line{text: item, color: game.ColorGray, center: true})
			}
		}
		add("", game.ColorWhite, false)
		add("Up/Down to choose, Enter to select", game.ColorGray, false)

	case PageInstructions:
		add("=== INSTRUCTIONS ===", game.ColorWhite, true)
		add("", game.ColorWhite, false)
		add("Controls:", game.ColorWhite, true)
		add("Arrows or WASD - move the snake", game.ColorWhite, false)
		add("P or Space     - pause, Enter resumes", game.ColorWhite, false)
		add("Esc or Q       - leave the run", game.ColorWhite, false)
		add("", game.ColorWhite, false)
		add("Items:", game.ColorWhite, true)
		for _, ft := range []game.FoodType{game.FoodRegular, game.FoodSpecial, game.FoodSpeedBoost, game.FoodShield, game.FoodPortal} {
			add(fmt.Sprintf("%c  %-12s %2d points%s", ft.Symbol(), ft, ft.Value(), foodNote(ft)), ft.Color(), false)
		}
		add("", game.ColorWhite, false)
		add("Obstacles:", game.ColorWhite, true)
		add(fmt.Sprintf("%c  wall, a collision ends the run", game.ObstacleWall.Symbol()), game.ObstacleWall.Color(), false)
		add(fmt.Sprintf("%c  moving obstacle, very dangerous", game.ObstacleMoving.Symbol()), game.ObstacleMoving.Color(), false)
		add(fmt.Sprintf("%c  portal pair, enter one to leave the other", config.CharPortal), game.ColorCyan, false)
		add("", game.ColorWhite, false)
		add(fmt.Sprintf("Level up every %d points, clear level %d to win.", config.PointsPerLevel, config.MaxLevel), game.ColorWhite, false)
		add("", game.ColorWhite, false)
		add("Press any key to go back...", game.ColorGray, false)

	case PageHighscores:
		add("=== HIGHSCORES ===", game.ColorYellow, true)
		add("", game.ColorWhite, false)
		if len(v.Highscores) == 0 {
			add("No scores recorded yet.", game.ColorGray, false)
		}
		for i, e := range v.Highscores {
			color := game.ColorWhite
			if i < 3 {
				color = game.ColorGreen
			}
			add(fmt.Sprintf("%2d. %-12s %5d pts (level %d)", i+1, e.Name, e.Score, e.Level), color, i < 3)
		}
		add("", game.ColorWhite, false)
		add("Press any key to go back...", game.ColorGray, false)

	case PageNameEntry:
		add("=== NEW HIGHSCORE! ===", game.ColorYellow, true)
		add("", game.ColorWhite, false)
		add(fmt.Sprintf("Score %d at level %d", v.Score, v.Level), game.ColorWhite, false)
		add("", game.ColorWhite, false)
		add("Your name: "+v.Name+"_", game.ColorGreen, true)
		add("", game.ColorWhite, false)
		add("Enter to save, Esc to skip", game.ColorGray, false)
	}
	return lines
}

func foodNote(ft game.FoodType) string {
	switch ft {
	case game.FoodSpeedBoost:
		return fmt.Sprintf(", faster for %d moves", ft.Duration())
	case game.FoodShield:
		return fmt.Sprintf(", absorbs one collision for %d moves", ft.Duration())
	}
	return ""
}
