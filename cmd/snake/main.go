package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/trytobebee/snake_deluxe/pkg/audio"
	"github.com/trytobebee/snake_deluxe/pkg/config"
	"github.com/trytobebee/snake_deluxe/pkg/highscore"
	"github.com/trytobebee/snake_deluxe/pkg/input"
	"github.com/trytobebee/snake_deluxe/pkg/renderer"
)

func main() {
	cfg := config.DefaultConfig().FromEnv()
	flag.IntVar(&cfg.Width, "width", cfg.Width, "board width (min 40)")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "board height (min 20)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 seeds from the clock")
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "terminal backend: tcell or ansi")
	flag.BoolVar(&cfg.Sound, "sound", cfg.Sound, "play sound effects")
	flag.BoolVar(&cfg.Record, "record", cfg.Record, "write a JSONL trace of every run to records/")
	flag.BoolVar(&cfg.AutoPlay, "autoplay", cfg.AutoPlay, "let the autopilot steer")
	flag.StringVar(&cfg.StorageType, "storage", cfg.StorageType, "highscore storage: json, sqlite or postgres")
	flag.StringVar(&cfg.StorageFile, "db-file", cfg.StorageFile, "JSON or SQLite highscore file")
	flag.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection string")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file")
	flag.Parse()
	cfg = cfg.Normalize()

	// The terminal belongs to the game, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Printf("Starting snake: %dx%d backend=%s storage=%s seed=%d", cfg.Width, cfg.Height, cfg.Backend, cfg.StorageType, cfg.Seed)

	store, err := highscore.Open(cfg)
	if err != nil {
		log.Printf("Highscores disabled: %v", err)
	} else {
		defer store.Close()
	}

	sound := audio.NewSoundManager()
	if cfg.Sound {
		if err := sound.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
		}
	}
	defer sound.Cleanup()

	render, source, cfg, err := openTerminal(cfg)
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}

	a := &app{
		cfg:     cfg,
		render:  render,
		presses: source.Presses(),
		store:   store,
		sound:   sound,
	}
	a.run()

	source.Stop()
	render.Close()
	fmt.Println("\n  Thanks for playing!")
}

// openTerminal starts the selected backend and shrinks the board to fit the terminal
func openTerminal(cfg config.RuntimeConfig) (renderer.Renderer, input.Source, config.RuntimeConfig, error) {
	if cfg.Backend == config.BackendANSI {
		if w, h, ok := renderer.TerminalSize(os.Stdout); ok {
			cfg.Width, cfg.Height = renderer.FitBoard(cfg.Width, cfg.Height, w, h, config.MinWidth, config.MinHeight)
		}
		source := input.NewKeyboardHandler()
		if err := source.Start(); err != nil {
			return nil, nil, cfg, fmt.Errorf("opening keyboard: %w", err)
		}
		return renderer.NewTerminalRenderer(os.Stdout), source, cfg, nil
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, nil, cfg, err
	}
	if err := screen.Init(); err != nil {
		return nil, nil, cfg, err
	}
	w, h := screen.Size()
	cfg.Width, cfg.Height = renderer.FitBoard(cfg.Width, cfg.Height, w, h, config.MinWidth, config.MinHeight)

	source := input.NewTcellHandler(screen)
	if err := source.Start(); err != nil {
		screen.Fini()
		return nil, nil, cfg, err
	}
	return renderer.NewTcellRenderer(screen), source, cfg, nil
}
