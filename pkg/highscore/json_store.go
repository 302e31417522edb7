package highscore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/trytobebee/snake_deluxe/pkg/config"
)

// JSONStore keeps the highscore table in a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	entries  []Entry
}

// NewJSONStore opens filePath, creating it when missing
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{filePath: filePath}

	if _, err := os.Stat(filePath); err == nil {
		entries, err := ReadLegacyJSON(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
		sortEntries(entries)
		store.entries = truncate(entries)
	} else if err := store.saveToFile(); err != nil {
		return nil, fmt.Errorf("failed to create JSON store file: %w", err)
	}

	return store, nil
}

// ReadLegacyJSON parses a highscore file holding either a list of entries or
// a map keyed by player name
func ReadLegacyJSON(path string) ([]Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(content) == 0 {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(content, &entries); err == nil {
		return entries, nil
	}

	var byName map[string]Entry
	if err := json.Unmarshal(content, &byName); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for name, e := range byName {
		if e.Name == "" {
			e.Name = name
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// saveToFile writes the table; callers hold the lock
func (js *JSONStore) saveToFile() error {
	entries := js.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(js.filePath, data, 0644)
}

// Add inserts an entry and rewrites the file
func (js *JSONStore) Add(e Entry) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	js.entries = append(js.entries, e)
	sortEntries(js.entries)
	js.entries = truncate(js.entries)

	if err := js.saveToFile(); err != nil {
		return fmt.Errorf("failed to save highscores: %w", err)
	}
	return nil
}

// Top returns a copy of the best n entries
func (js *JSONStore) Top(n int) ([]Entry, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	if n < 0 || n > len(js.entries) {
		n = len(js.entries)
	}
	return append([]Entry(nil), js.entries[:n]...), nil
}

// Close is a no-op; every Add is already on disk
func (js *JSONStore) Close() error {
	return nil
}

func truncate(entries []Entry) []Entry {
	if len(entries) > config.HighscoreLimit {
		return entries[:config.HighscoreLimit]
	}
	return entries
}
