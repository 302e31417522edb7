package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/trytobebee/snake_deluxe/pkg/config"
	"github.com/trytobebee/snake_deluxe/pkg/game"
)

func main() {
	level := flag.Int("level", 1, "level to generate (1-10)")
	seed := flag.Int64("seed", 1, "random seed")
	width := flag.Int("width", config.DefaultWidth, "board width")
	height := flag.Int("height", config.DefaultHeight, "board height")
	flag.Parse()

	cfg := config.RuntimeConfig{Width: *width, Height: *height}.Normalize()
	if *level < 1 || *level > config.MaxLevel {
		log.Fatalf("Level must be between 1 and %d, got %d", config.MaxLevel, *level)
	}

	cx, cy := cfg.Width/2, cfg.Height/2
	snake := []game.Point{{X: cx, Y: cy}, {X: cx - 1, Y: cy}, {X: cx - 2, Y: cy}}

	layout, err := game.GenerateLevel(*level, cfg.Width, cfg.Height, game.NewOccupancy(snake...), game.NewRand(*seed))
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	fmt.Print(draw(layout, snake, cfg.Width, cfg.Height))

	walls, moving := 0, 0
	for _, o := range layout.Obstacles {
		if o.Type == game.ObstacleMoving {
			moving++
		} else {
			walls++
		}
	}
	fmt.Printf("Level %d (seed %d): %d walls, %d moving, tick %v", *level, *seed, walls, moving, layout.TickInterval)
	if layout.Portals != nil {
		fmt.Printf(", portals %v <-> %v", layout.Portals.A, layout.Portals.B)
	}
	fmt.Println()
}

func draw(layout game.Layout, snake []game.Point, width, height int) string {
	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(config.CharEmpty), width))
	}
	for _, o := range layout.Obstacles {
		grid[o.Pos.Y][o.Pos.X] = config.CharWall
		if o.Type == game.ObstacleMoving {
			grid[o.Pos.Y][o.Pos.X] = config.CharMoving
		}
	}
	if pp := layout.Portals; pp != nil {
		grid[pp.A.Y][pp.A.X] = config.CharPortal
		grid[pp.B.Y][pp.B.X] = config.CharPortal
	}
	for i, p := range snake {
		grid[p.Y][p.X] = config.CharBody
		if i == 0 {
			grid[p.Y][p.X] = config.CharHead
		}
	}

	var sb strings.Builder
	border := strings.Repeat(string(config.CharBorder), width+2)
	sb.WriteString(border + "\n")
	for _, row := range grid {
		sb.WriteRune(config.CharBorder)
		sb.WriteString(string(row))
		sb.WriteRune(config.CharBorder)
		sb.WriteByte('\n')
	}
	sb.WriteString(border + "\n")
	return sb.String()
}
