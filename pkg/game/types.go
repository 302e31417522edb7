package game

import (
	"math"
	"time"
)

// Point represents a coordinate on the game board
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Clone returns a copy of the point
func (p Point) Clone() Point {
	return Point{X: p.X, Y: p.Y}
}

// Add returns the point one step away in direction d
func (p Point) Add(d Direction) Point {
	v := d.Vector()
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Dist returns the Euclidean distance between two points
func (p Point) Dist(o Point) float64 {
	dx := float64(p.X - o.X)
	dy := float64(p.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Direction is one of the four compass headings.
// Ordered so that (d+2)%4 is the opposite heading.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists all headings in ordinal order
var Directions = [4]Direction{Up, Right, Down, Left}

// Vector returns the unit step of the heading
func (d Direction) Vector() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	}
	return Point{}
}

// Opposite returns the heading rotated by 180 degrees
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "unknown"
}

// Command is an ordinal input command decoded by the presentation layer
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdPause
	CmdResume
	CmdQuit
)

// Direction returns the heading for a movement command
func (c Command) Direction() (Direction, bool) {
	switch c {
	case CmdUp:
		return Up, true
	case CmdDown:
		return Down, true
	case CmdLeft:
		return Left, true
	case CmdRight:
		return Right, true
	}
	return 0, false
}

// Phase is the state of the game-state machine
type Phase int

const (
	Running Phase = iota
	Paused
	GameOver
	Victory
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game-over"
	case Victory:
		return "victory"
	}
	return "unknown"
}

// Terminal reports whether no further transitions are possible
func (p Phase) Terminal() bool {
	return p == GameOver || p == Victory
}

// FoodType represents different types of food
type FoodType int

const (
	FoodRegular    FoodType = iota // 10 points
	FoodSpecial                    // 30 points
	FoodSpeedBoost                 // 5 points, 30 ticks of boost
	FoodShield                     // 20 points, 40 ticks of shield
	FoodPortal                     // 15 points, never spawned
)

// Food represents a food item on the board
type Food struct {
	Pos      Point    `json:"pos"`
	FoodType FoodType `json:"foodType"`
	Active   bool     `json:"active"`
}

// ObstacleType distinguishes static walls from moving obstacles
type ObstacleType int

const (
	ObstacleWall ObstacleType = iota
	ObstacleMoving
)

// Obstacle represents a wall cell or a moving obstacle
type Obstacle struct {
	Pos     Point        `json:"pos"`
	Type    ObstacleType `json:"type"`
	Heading Direction    `json:"heading"` // Only meaningful for moving obstacles
}

// PortalPair is a pair of cells that teleport an entering head to each other
type PortalPair struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Other returns the paired endpoint when p is one of the portals
func (pp *PortalPair) Other(p Point) (Point, bool) {
	if pp == nil {
		return Point{}, false
	}
	switch p {
	case pp.A:
		return pp.B, true
	case pp.B:
		return pp.A, true
	}
	return Point{}, false
}

// Kind tags the GameObject union
type Kind int

const (
	KindFood Kind = iota
	KindObstacle
)

// GameObject is a tagged union over the renderable board entities
type GameObject struct {
	Kind     Kind
	Food     *Food
	Obstacle *Obstacle
}

// Position returns the cell the object occupies
func (o GameObject) Position() Point {
	if o.Kind == KindFood {
		return o.Food.Pos
	}
	return o.Obstacle.Pos
}

// Symbol returns the glyph used to draw the object
func (o GameObject) Symbol() rune {
	if o.Kind == KindFood {
		return o.Food.FoodType.Symbol()
	}
	return o.Obstacle.Type.Symbol()
}

// Color returns the display color of the object
func (o GameObject) Color() Color {
	if o.Kind == KindFood {
		return o.Food.FoodType.Color()
	}
	return o.Obstacle.Type.Color()
}

// Value returns the score value (zero for obstacles)
func (o GameObject) Value() int {
	if o.Kind == KindFood {
		return o.Food.FoodType.Value()
	}
	return 0
}

// Duration returns the effect duration in ticks (zero for obstacles)
func (o GameObject) Duration() int {
	if o.Kind == KindFood {
		return o.Food.FoodType.Duration()
	}
	return 0
}

// IsActive reports whether the object is still on the board
func (o GameObject) IsActive() bool {
	if o.Kind == KindFood {
		return o.Food.Active
	}
	return true
}

// Color is a presentation-only palette index
type Color int

const (
	ColorWhite Color = iota
	ColorRed
	ColorMagenta
	ColorYellow
	ColorBlue
	ColorCyan
	ColorGray
	ColorDarkRed
	ColorGreen
)

// EventType identifies something notable that happened during a tick
type EventType int

const (
	EventFoodEaten EventType = iota
	EventShieldConsumed
	EventTeleported
	EventLevelUp
	EventGameOver
	EventVictory
	EventFoodMissing // no free cell for a replacement food
)

// Event is emitted by a tick for sound and messages
type Event struct {
	Type     EventType `json:"type"`
	Pos      Point     `json:"pos"`
	FoodType FoodType  `json:"foodType,omitempty"`
	Level    int       `json:"level,omitempty"`
}

// Crash causes
const (
	CauseWallCollision     = "wall-collision"
	CauseObstacleCollision = "obstacle-collision"
	CauseSelfCollision     = "self-collision"
	CauseQuit              = "quit"
)

// Stats tracks per-run statistics
type Stats struct {
	MovesMade             int           `json:"movesMade"`
	FoodEaten             int           `json:"foodEaten"`
	SpecialItemsCollected int           `json:"specialItemsCollected"`
	Elapsed               time.Duration `json:"elapsed"`
}

// Snapshot is a copy of the game state for rendering
type Snapshot struct {
	Phase            Phase         `json:"phase"`
	Width            int           `json:"width"`
	Height           int           `json:"height"`
	Snake            []Point       `json:"snake"`
	Heading          Direction     `json:"heading"`
	Foods            []Food        `json:"foods"`
	Obstacles        []Obstacle    `json:"obstacles"`
	Portals          *PortalPair   `json:"portals,omitempty"`
	Score            int           `json:"score"`
	Level            int           `json:"level"`
	ShieldActive     bool          `json:"shieldActive"`
	ShieldTicks      int           `json:"shieldTicks"`
	SpeedBoostActive bool          `json:"speedBoostActive"`
	SpeedBoostTicks  int           `json:"speedBoostTicks"`
	TickInterval     time.Duration `json:"tickInterval"`
	CrashPoint       *Point        `json:"crashPoint,omitempty"`
	CrashCause       string        `json:"crashCause,omitempty"`
	Events           []Event       `json:"events,omitempty"`
	Stats            Stats         `json:"stats"`
}

// Objects returns foods and obstacles as GameObjects for generic drawing
func (s Snapshot) Objects() []GameObject {
	objs := make([]GameObject, 0, len(s.Foods)+len(s.Obstacles))
	for i := range s.Obstacles {
		objs = append(objs, GameObject{Kind: KindObstacle, Obstacle: &s.Obstacles[i]})
	}
	for i := range s.Foods {
		objs = append(objs, GameObject{Kind: KindFood, Food: &s.Foods[i]})
	}
	return objs
}
