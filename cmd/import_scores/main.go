package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/trytobebee/snake_deluxe/pkg/config"
	"github.com/trytobebee/snake_deluxe/pkg/highscore"
)

func main() {
	cfg := config.DefaultConfig().FromEnv()
	src := flag.String("from", "highscores.json", "legacy JSON highscore file (list or map keyed by name)")
	flag.StringVar(&cfg.StorageFile, "db-file", cfg.StorageFile, "SQLite database to import into")
	flag.Parse()

	// 1. Check the source exists
	if _, err := os.Stat(*src); os.IsNotExist(err) {
		log.Fatalf("%s not found. Place your backup highscore file here or pass -from.", *src)
	}

	// 2. Read and parse JSON
	entries, err := highscore.ReadLegacyJSON(*src)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *src, err)
	}

	// 3. Open SQLite
	cfg.StorageType = config.StorageSQLite
	store, err := highscore.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer store.Close()

	sqlite, ok := store.(*highscore.SQLiteStore)
	if !ok {
		log.Fatalf("Expected a SQLite store, got %T", store)
	}

	// 4. Import, skipping rows that are already there
	log.Printf("Found %d scores to import...", len(entries))
	count, err := sqlite.Import(entries)
	if err != nil {
		log.Fatalf("Import stopped after %d rows: %v", count, err)
	}

	fmt.Printf("Import complete! Added %d new scores to %s (the table keeps the best %d)\n", count, cfg.StorageFile, config.HighscoreLimit)
}
