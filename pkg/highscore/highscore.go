package highscore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/trytobebee/snake_deluxe/pkg/config"
)

// Entry is one row of the highscore table
type Entry struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	Level int       `json:"level"`
	Date  time.Time `json:"date"`
}

// Store defines the interface for highscore persistence
type Store interface {
	// Add records an entry; the table keeps only the best config.HighscoreLimit rows
	Add(e Entry) error
	// Top returns up to n entries, best first
	Top(n int) ([]Entry, error)
	Close() error
}

// Open selects a backend from cfg.StorageType
func Open(cfg config.RuntimeConfig) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.StorageType {
	case config.StorageJSON:
		if err := ensureDir(cfg.StorageFile); err != nil {
			return nil, err
		}
		store, err = NewJSONStore(cfg.StorageFile)
	case config.StorageSQLite, "":
		if err := ensureDir(cfg.StorageFile); err != nil {
			return nil, err
		}
		store, err = NewSQLiteStore(cfg.StorageFile)
	case config.StoragePostgres:
		store, err = NewPostgresStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.StorageType)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

// Qualifies reports whether score earns a place in a table holding entries
func Qualifies(entries []Entry, score int) bool {
	if score <= 0 {
		return false
	}
	if len(entries) < config.HighscoreLimit {
		return true
	}
	return score > entries[len(entries)-1].Score
}

// CleanName trims a player name and caps it at config.HighscoreNameMaxChars runes
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > config.HighscoreNameMaxChars {
		name = string(r[:config.HighscoreNameMaxChars])
	}
	if name == "" {
		return "anonymous"
	}
	return name
}

// sortEntries orders best score first; ties go to the earlier date
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Date.Before(entries[j].Date)
	})
}
