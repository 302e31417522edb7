package game

import (
	"time"

	"github.com/trytobebee/snake_deluxe/pkg/config"
	"github.com/trytobebee/snake_deluxe/pkg/engine"
)

// Game represents the main game state
type Game struct {
	Width  int
	Height int

	Snake   []Point
	Heading Direction
	Phase   Phase
	Score   int
	Level   int

	Foods     []Food
	Obstacles []Obstacle
	Portals   *PortalPair
	Spawner   FoodSpawner

	HasShield       bool
	ShieldTicks     int
	SpeedBoostTicks int

	CrashPoint *Point
	CrashCause string
	Stats      Stats

	tickInterval time.Duration
	queued       *Direction
	events       []Event
	foodMissing  bool
	rng          Rand
	clock        *engine.PausableClock
}

// Option configures a Game at construction
type Option func(*Game)

// WithRand injects the random source used for placement and headings
func WithRand(r Rand) Option {
	return func(g *Game) {
		g.rng = r
	}
}

// WithSeed seeds the default random source
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = NewRand(seed)
	}
}

// WithTimeProvider drives the play-time clock from tp
func WithTimeProvider(tp engine.TimeProvider) Option {
	return func(g *Game) {
		g.clock = engine.NewPausableClock(tp)
	}
}

// New creates a game on a board of at least config.MinWidth x config.MinHeight
func New(width, height int, opts ...Option) (*Game, error) {
	g := &Game{
		Width:  max(width, config.MinWidth),
		Height: max(height, config.MinHeight),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand(0)
	}
	if g.clock == nil {
		g.clock = engine.NewPausableClock(nil)
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset reinitializes the run: three-segment snake at the board center heading
// right, one food, level 1.
func (g *Game) Reset() error {
	cx, cy := g.Width/2, g.Height/2
	g.Snake = g.Snake[:0]
	for i := 0; i < config.InitialSnakeLength; i++ {
		g.Snake = append(g.Snake, Point{X: cx - i, Y: cy})
	}
	g.Heading = Right
	g.Phase = Running
	g.Score = 0
	g.Level = 1
	g.Foods = nil
	g.Obstacles = nil
	g.Portals = nil
	g.Spawner.Reset()
	g.HasShield = false
	g.ShieldTicks = 0
	g.SpeedBoostTicks = 0
	g.CrashPoint = nil
	g.CrashCause = ""
	g.Stats = Stats{}
	g.queued = nil
	g.events = nil

	g.spawnFood()
	if err := g.setupLevel(g.Level); err != nil {
		return err
	}
	g.clock.Reset()
	return nil
}

// setupLevel replaces obstacles and portals with a freshly generated layout
func (g *Game) setupLevel(level int) error {
	g.Obstacles = nil
	g.Portals = nil

	layout, err := GenerateLevel(level, g.Width, g.Height, g.occupancy(), g.rng)
	if err != nil {
		return err
	}
	g.Obstacles = layout.Obstacles
	g.Portals = layout.Portals
	g.tickInterval = layout.TickInterval
	return nil
}

// spawnFood adds one food. On failure it emits EventFoodMissing and the
// next tick tries again.
func (g *Game) spawnFood() error {
	food, err := g.Spawner.Spawn(g.Width, g.Height, g.occupancy(), g.rng)
	g.foodMissing = err != nil
	if err != nil {
		g.emit(Event{Type: EventFoodMissing})
		return err
	}
	g.Foods = append(g.Foods, food)
	return nil
}

// QueueDirection stores the heading to commit on the next tick.
// A reversal of the current heading is silently ignored.
func (g *Game) QueueDirection(d Direction) bool {
	if d == g.Heading.Opposite() {
		return false
	}
	g.queued = &d
	return true
}

// HandleCommand applies a decoded input command. Pause toggles while paused.
func (g *Game) HandleCommand(cmd Command) error {
	if d, ok := cmd.Direction(); ok {
		if g.Phase == Running {
			g.QueueDirection(d)
		}
		return nil
	}

	switch cmd {
	case CmdPause:
		if g.Phase == Paused {
			return g.Resume()
		}
		return g.Pause()
	case CmdResume:
		return g.Resume()
	case CmdQuit:
		g.Quit()
	}
	return nil
}

// Pause stops the simulation; only valid while running
func (g *Game) Pause() error {
	if g.Phase != Running {
		return &InvalidTransitionError{Op: "pause", Phase: g.Phase}
	}
	g.Phase = Paused
	g.clock.Pause()
	return nil
}

// Resume continues a paused simulation
func (g *Game) Resume() error {
	if g.Phase != Paused {
		return &InvalidTransitionError{Op: "resume", Phase: g.Phase}
	}
	g.Phase = Running
	g.clock.Resume()
	return nil
}

// Quit ends the run immediately, regardless of phase
func (g *Game) Quit() {
	if g.Phase.Terminal() {
		return
	}
	g.Phase = GameOver
	g.CrashCause = CauseQuit
	g.clock.Pause()
}

// BaseTickInterval returns the level-derived interval, ignoring boosts
func (g *Game) BaseTickInterval() time.Duration {
	return g.tickInterval
}

// CurrentTickInterval returns the delay before the next tick
func (g *Game) CurrentTickInterval() time.Duration {
	if g.SpeedBoostTicks > 0 {
		return g.tickInterval / config.SpeedBoostDivisor
	}
	return g.tickInterval
}

// Tick advances the simulation by exactly one step. queued, when non-nil,
// overrides a direction stored by QueueDirection.
func (g *Game) Tick(queued *Direction) (Snapshot, error) {
	if g.Phase != Running {
		return g.Snapshot(), &InvalidTransitionError{Op: "tick", Phase: g.Phase}
	}
	g.events = nil

	if queued == nil {
		queued = g.queued
	}
	g.queued = nil
	if queued != nil && *queued != g.Heading.Opposite() {
		g.Heading = *queued
	}

	head := g.Snake[0]
	next := head.Add(g.Heading)
	g.Stats.MovesMade++

	if other, ok := g.Portals.Other(next); ok {
		g.emit(Event{Type: EventTeleported, Pos: other})
		next = other
	}

	// A shielded bounce off the border leaves the head where it was
	hold := false
	if !g.inBounds(next) {
		if !g.consumeShield(next) {
			g.crash(next, CauseWallCollision)
			return g.Snapshot(), nil
		}
		next = g.clamp(next)
		hold = next == head
	}

	if !hold {
		if i := g.obstacleAt(next); i >= 0 {
			if !g.consumeShield(next) {
				g.crash(next, CauseObstacleCollision)
				return g.Snapshot(), nil
			}
			if g.Obstacles[i].Type == ObstacleMoving {
				g.Obstacles = append(g.Obstacles[:i], g.Obstacles[i+1:]...)
			}
			safe, ok := g.resampleNear(head)
			if !ok {
				g.crash(next, CauseObstacleCollision)
				return g.Snapshot(), nil
			}
			next = safe
		}
	}

	g.moveObstacles()

	if !hold && g.hitsBody(next) {
		if !g.consumeShield(next) {
			g.crash(next, CauseSelfCollision)
			return g.Snapshot(), nil
		}
		safe, ok := g.resampleNear(head)
		if !ok {
			g.crash(next, CauseSelfCollision)
			return g.Snapshot(), nil
		}
		next = safe
	}

	ate := false
	if !hold {
		ate = g.eatAt(next)
		g.Snake = append([]Point{next}, g.Snake...)
		if !ate {
			g.Snake = g.Snake[:len(g.Snake)-1]
		}
	}
	if ate || g.foodMissing {
		g.spawnFood()
	}

	g.tickEffects()

	if err := g.checkLevel(); err != nil {
		return g.Snapshot(), err
	}
	return g.Snapshot(), nil
}

func (g *Game) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g *Game) clamp(p Point) Point {
	return Point{
		X: max(0, min(g.Width-1, p.X)),
		Y: max(0, min(g.Height-1, p.Y)),
	}
}

func (g *Game) obstacleAt(p Point) int {
	for i, o := range g.Obstacles {
		if o.Pos == p {
			return i
		}
	}
	return -1
}

// hitsBody checks every segment behind the head
func (g *Game) hitsBody(p Point) bool {
	for _, s := range g.Snake[1:] {
		if s == p {
			return true
		}
	}
	return false
}

// consumeShield spends the shield if active and reports whether it absorbed the hit
func (g *Game) consumeShield(at Point) bool {
	if !g.HasShield {
		return false
	}
	g.HasShield = false
	g.ShieldTicks = 0
	g.emit(Event{Type: EventShieldConsumed, Pos: at})
	return true
}

// resampleNear finds a free in-bounds cell closest to origin, searching square
// rings of growing radius and picking uniformly within the first non-empty ring.
func (g *Game) resampleNear(origin Point) (Point, bool) {
	occ := g.occupancy()
	for r := 1; r <= config.MaxResampleRadius; r++ {
		var ring []Point
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				p := Point{X: origin.X + dx, Y: origin.Y + dy}
				if g.inBounds(p) && !occ.Has(p) {
					ring = append(ring, p)
				}
			}
		}
		if len(ring) > 0 {
			return ring[g.rng.Intn(len(ring))], true
		}
	}
	return Point{}, false
}

// eatAt consumes the food at p, if any, and applies its score and effect
func (g *Game) eatAt(p Point) bool {
	for i, food := range g.Foods {
		if !food.Active || food.Pos != p {
			continue
		}

		g.Score += food.FoodType.Value()
		switch food.FoodType {
		case FoodShield:
			g.HasShield = true
			g.ShieldTicks = food.FoodType.Duration()
		case FoodSpeedBoost:
			g.SpeedBoostTicks += food.FoodType.Duration()
		}

		g.Stats.FoodEaten++
		if food.FoodType.IsSpecial() {
			g.Stats.SpecialItemsCollected++
		}
		g.emit(Event{Type: EventFoodEaten, Pos: p, FoodType: food.FoodType})

		g.Foods = append(g.Foods[:i], g.Foods[i+1:]...)
		return true
	}
	return false
}

func (g *Game) tickEffects() {
	if g.HasShield {
		g.ShieldTicks--
		if g.ShieldTicks <= 0 {
			g.HasShield = false
			g.ShieldTicks = 0
		}
	}
	if g.SpeedBoostTicks > 0 {
		g.SpeedBoostTicks--
	}
}

// checkLevel advances the level when the score reaches the next multiple of
// config.PointsPerLevel; passing the last level wins the game.
func (g *Game) checkLevel() error {
	if g.Score < g.Level*config.PointsPerLevel {
		return nil
	}
	if g.Level >= config.MaxLevel {
		g.Phase = Victory
		g.clock.Pause()
		g.emit(Event{Type: EventVictory, Level: g.Level})
		return nil
	}
	g.Level++
	g.emit(Event{Type: EventLevelUp, Level: g.Level})
	return g.setupLevel(g.Level)
}

func (g *Game) crash(at Point, cause string) {
	g.Phase = GameOver
	g.CrashPoint = &at
	g.CrashCause = cause
	g.clock.Pause()
	g.emit(Event{Type: EventGameOver, Pos: at})
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

// Snapshot returns a copy of the current game state for rendering
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:            g.Phase,
		Width:            g.Width,
		Height:           g.Height,
		Snake:            append([]Point(nil), g.Snake...),
		Heading:          g.Heading,
		Foods:            append([]Food(nil), g.Foods...),
		Obstacles:        append([]Obstacle(nil), g.Obstacles...),
		Score:            g.Score,
		Level:            g.Level,
		ShieldActive:     g.HasShield,
		ShieldTicks:      g.ShieldTicks,
		SpeedBoostActive: g.SpeedBoostTicks > 0,
		SpeedBoostTicks:  g.SpeedBoostTicks,
		TickInterval:     g.CurrentTickInterval(),
		CrashCause:       g.CrashCause,
		Events:           append([]Event(nil), g.events...),
		Stats:            g.Stats,
	}
	s.Stats.Elapsed = g.clock.Elapsed()
	if g.Portals != nil {
		pp := *g.Portals
		s.Portals = &pp
	}
	if g.CrashPoint != nil {
		cp := *g.CrashPoint
		s.CrashPoint = &cp
	}
	return s
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
