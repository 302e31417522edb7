package config

import (
	"os"
	"strconv"
	"time"
)

// Game board dimensions
const (
	MinWidth      = 40
	MinHeight     = 20
	DefaultWidth  = 60
	DefaultHeight = 24
)

// Level settings
const (
	MaxLevel           = 10
	PointsPerLevel     = 100 // Score needed per level-up
	InitialSnakeLength = 3
)

// Speed settings
const (
	InitialTickInterval  = 150 * time.Millisecond // Level 0 base, level 1 starts at 140ms
	TickIntervalPerLevel = 10 * time.Millisecond
	MinTickInterval      = 50 * time.Millisecond
	SpeedBoostDivisor    = 2 // Tick interval is divided by this while a speed boost is active
)

// Obstacle and portal placement
const (
	WallsPerLevel         = 2 // Static walls = level * WallsPerLevel
	MovingObstacleLevel   = 5 // First level with moving obstacles
	MovingObstacleInset   = 5 // Moving obstacles spawn this far from every border
	PortalLevel           = 7 // First level with portals
	PortalInset           = 2
	MazeLevel             = 8 // First level with a maze overlay
	MaxPlacementAttempts  = 10000
	SpecialFoodEvery      = 5  // Every Nth food is a special one
	MaxResampleRadius     = 64 // Search radius when relocating a shielded head
	HighscoreLimit        = 10
	HighscoreNameMaxChars = 12
)

// Emoji-free glyphs for rendering (single-cell so both backends line up)
const (
	CharEmpty  = ' '
	CharBorder = '#'
	CharHead   = '@'
	CharBody   = 'o'
	CharCrash  = 'X'
	CharPortal = 'O'
	CharWall   = '█'
	CharMoving = '▲'
)

// Storage backends
const (
	StorageJSON     = "json"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

// Render backends
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// RuntimeConfig carries the settings chosen at startup.
type RuntimeConfig struct {
	Width    int
	Height   int
	Seed     int64 // 0 means seed from the clock
	Backend  string
	Sound    bool
	Record   bool
	AutoPlay bool

	StorageType string
	StorageFile string // JSON file or SQLite database path
	DatabaseURL string // Postgres connection string
	LogFile     string
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Backend:     BackendTcell,
		Sound:       true,
		StorageType: StorageSQLite,
		StorageFile: "data/highscores.db",
		DatabaseURL: "host=localhost user=snake password=snake dbname=snake sslmode=disable",
		LogFile:     "snake.log",
	}
}

// FromEnv overrides storage settings from SNAKE_DB_TYPE, SNAKE_DB_FILE, DATABASE_URL and SNAKE_SEED.
func (c RuntimeConfig) FromEnv() RuntimeConfig {
	if v := os.Getenv("SNAKE_DB_TYPE"); v != "" {
		c.StorageType = v
	}
	if v := os.Getenv("SNAKE_DB_FILE"); v != "" {
		c.StorageFile = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("SNAKE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = seed
		}
	}
	return c
}

// Normalize clamps the board to the minimum playable size.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	if c.Width < MinWidth {
		c.Width = MinWidth
	}
	if c.Height < MinHeight {
		c.Height = MinHeight
	}
	return c
}
