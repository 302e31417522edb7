package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/trytobebee/snake_deluxe/pkg/game"
	"github.com/trytobebee/snake_deluxe/pkg/renderer"
)

func main() {
	recordDir := flag.String("dir", "records", "directory holding recorded runs")
	speed := flag.Float64("speed", 1.0, "playback speed multiplier")
	flag.Parse()

	if flag.NArg() == 0 {
		listRecordings(*recordDir)
		return
	}

	path := flag.Arg(0)
	if filepath.Dir(path) == "." {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(*recordDir, path)
		}
	}
	if err := replay(path, *speed); err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
}

func listRecordings(dir string) {
	records, err := game.ListRecordings(dir)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", dir, err)
	}
	if len(records) == 0 {
		fmt.Printf("No recordings found in %s\n", dir)
		return
	}

	fmt.Println("Recorded runs (newest first):")
	for _, r := range records {
		fmt.Printf("  %s\n    session %s | %d bytes | %s\n", r.Name, r.SessionID, r.Size, r.Time.Format("2006-01-02 15:04:05"))
	}
	fmt.Println("\nRun: replay <file>")
}

// replay draws every recorded step at its recorded tick interval, scaled by speed
func replay(path string, speed float64) error {
	if speed <= 0 {
		speed = 1
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	render := renderer.NewTerminalRenderer(os.Stdout)
	defer render.Close()

	steps := 0
	var last game.Snapshot
	err = game.ReadRecording(file, func(rec game.StepRecord) error {
		if err := render.Render(rec.Snapshot); err != nil {
			return err
		}
		steps++
		last = rec.Snapshot
		time.Sleep(time.Duration(float64(rec.Snapshot.TickInterval) / speed))
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n  Replayed %d steps: %s, score %d, level %d\n", steps, last.Phase, last.Score, last.Level)
	return nil
}
