package game

import (
	"errors"
	"testing"
	"time"

	"github.com/trytobebee/snake_deluxe/pkg/engine"
)

// newTestGame returns a seeded 40x20 game with an empty board besides the snake
func newTestGame(t *testing.T) (*Game, *engine.MockTimeProvider) {
	t.Helper()
	mock := engine.NewMockTimeProvider(time.Unix(0, 0))
	g, err := New(40, 20, WithSeed(42), WithTimeProvider(mock))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g.Foods = nil
	g.Obstacles = nil
	g.Portals = nil
	return g, mock
}

func dir(d Direction) *Direction {
	return &d
}

func countEvents(s Snapshot, et EventType) int {
	n := 0
	for _, e := range s.Events {
		if e.Type == et {
			n++
		}
	}
	return n
}

// TestNewGameInitialState checks the starting layout
func TestNewGameInitialState(t *testing.T) {
	g, err := New(40, 20, WithSeed(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := []Point{{X: 20, Y: 10}, {X: 19, Y: 10}, {X: 18, Y: 10}}
	if len(g.Snake) != len(want) {
		t.Fatalf("Expected snake length %d, got %d", len(want), len(g.Snake))
	}
	for i, p := range want {
		if g.Snake[i] != p {
			t.Errorf("Segment %d: expected %v, got %v", i, p, g.Snake[i])
		}
	}
	if g.Heading != Right || g.Phase != Running || g.Level != 1 || g.Score != 0 {
		t.Errorf("Unexpected start: heading=%v phase=%v level=%d score=%d", g.Heading, g.Phase, g.Level, g.Score)
	}
	if len(g.Foods) != 1 {
		t.Errorf("Expected one food at start, got %d", len(g.Foods))
	}
	if len(g.Obstacles) != 0 || g.Portals != nil {
		t.Error("Level 1 should have no obstacles or portals")
	}
	if g.CurrentTickInterval() != 140*time.Millisecond {
		t.Errorf("Expected 140ms at level 1, got %v", g.CurrentTickInterval())
	}
}

// TestNewGameClampsBoard enforces the minimum board size
func TestNewGameClampsBoard(t *testing.T) {
	g, err := New(10, 5, WithSeed(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if g.Width != 40 || g.Height != 20 {
		t.Errorf("Expected 40x20, got %dx%d", g.Width, g.Height)
	}
}

// TestEatRegularFood is the basic eat scenario on a 40x20 board
func TestEatRegularFood(t *testing.T) {
	g, _ := newTestGame(t)
	g.Foods = []Food{{Pos: Point{X: 21, Y: 10}, FoodType: FoodRegular, Active: true}}

	snap, err := g.Tick(nil)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if snap.Snake[0] != (Point{X: 21, Y: 10}) {
		t.Errorf("Expected head at (21,10), got %v", snap.Snake[0])
	}
	if snap.Score != 10 {
		t.Errorf("Expected score 10, got %d", snap.Score)
	}
	if len(snap.Snake) != 4 {
		t.Errorf("Expected length 4, got %d", len(snap.Snake))
	}
	if len(snap.Foods) != 1 {
		t.Fatalf("Expected a replacement food, got %d foods", len(snap.Foods))
	}
	for _, p := range snap.Snake {
		if snap.Foods[0].Pos == p {
			t.Errorf("Replacement food spawned on the snake at %v", p)
		}
	}
	if countEvents(snap, EventFoodEaten) != 1 {
		t.Error("Expected one food-eaten event")
	}
}

// TestWallCollisionWithoutShield ends the game at the right border
func TestWallCollisionWithoutShield(t *testing.T) {
	g, _ := newTestGame(t)
	g.Snake = []Point{{X: 39, Y: 10}, {X: 38, Y: 10}, {X: 37, Y: 10}}

	snap, err := g.Tick(nil)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if snap.Phase != GameOver {
		t.Fatalf("Expected game over, got %v", snap.Phase)
	}
	if snap.CrashCause != CauseWallCollision {
		t.Errorf("Expected wall collision, got %q", snap.CrashCause)
	}
	if snap.CrashPoint == nil || *snap.CrashPoint != (Point{X: 40, Y: 10}) {
		t.Errorf("Expected crash point (40,10), got %v", snap.CrashPoint)
	}
}

// TestWallCollisionWithShield clamps the head and spends the shield
func TestWallCollisionWithShield(t *testing.T) {
	g, _ := newTestGame(t)
	g.Snake = []Point{{X: 39, Y: 10}, {X: 38, Y: 10}, {X: 37, Y: 10}}
	g.HasShield = true
	g.ShieldTicks = 20

	snap, err := g.Tick(nil)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if snap.Phase != Running {
		t.Fatalf("Expected running, got %v", snap.Phase)
	}
	if snap.Snake[0].X != 39 {
		t.Errorf("Expected head clamped to x=39, got %v", snap.Snake[0])
	}
	if snap.ShieldActive || snap.ShieldTicks != 0 {
		t.Error("Shield should be cleared")
	}
	if len(snap.Snake) != 3 {
		t.Errorf("Length should be preserved, got %d", len(snap.Snake))
	}
	seen := make(map[Point]bool)
	for _, p := range snap.Snake {
		if seen[p] {
			t.Errorf("Two segments share cell %v", p)
		}
		seen[p] = true
	}
	if countEvents(snap, EventShieldConsumed) != 1 {
		t.Error("Expected exactly one shield-consumed event")
	}
}

// TestObstacleCollision covers walls and moving obstacles with and without shield
func TestObstacleCollision(t *testing.T) {
	tests := []struct {
		name          string
		obstacle      ObstacleType
		shield        bool
		wantPhase     Phase
		wantObstacles int
	}{
		{"wall without shield", ObstacleWall, false, GameOver, 1},
		{"moving without shield", ObstacleMoving, false, GameOver, 1},
		{"wall with shield", ObstacleWall, true, Running, 1},
		{"moving with shield", ObstacleMoving, true, Running, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGame(t)
			// Heading up keeps the moving obstacle pinned against its own reversal
			g.Obstacles = []Obstacle{{Pos: Point{X: 21, Y: 10}, Type: tc.obstacle, Heading: Up}}
			g.HasShield = tc.shield
			if tc.shield {
				g.ShieldTicks = 10
			}

			snap, err := g.Tick(nil)
			if err != nil {
				t.Fatalf("Tick failed: %v", err)
			}
			if snap.Phase != tc.wantPhase {
				t.Fatalf("Expected %v, got %v", tc.wantPhase, snap.Phase)
			}
			if len(snap.Obstacles) != tc.wantObstacles {
				t.Errorf("Expected %d obstacles, got %d", tc.wantObstacles, len(snap.Obstacles))
			}
			if !tc.shield {
				if snap.CrashCause != CauseObstacleCollision {
					t.Errorf("Expected obstacle collision, got %q", snap.CrashCause)
				}
				return
			}

			head := snap.Snake[0]
			if head == (Point{X: 21, Y: 10}) {
				t.Error("Head should be relocated off the obstacle")
			}
			if max(abs(head.X-20), abs(head.Y-10)) != 1 {
				t.Errorf("Expected relocation next to the old head, got %v", head)
			}
			if snap.ShieldActive {
				t.Error("Shield should be consumed")
			}
			if len(snap.Snake) != 3 {
				t.Errorf("Length should be preserved, got %d", len(snap.Snake))
			}
		})
	}
}

// TestSelfCollision turns the head into its own body
func TestSelfCollision(t *testing.T) {
	body := []Point{{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 11, Y: 11}, {X: 10, Y: 11}, {X: 9, Y: 11}}

	t.Run("without shield", func(t *testing.T) {
		g, _ := newTestGame(t)
		g.Snake = append([]Point(nil), body...)
		g.Heading = Left

		snap, err := g.Tick(dir(Down))
		if err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
		if snap.Phase != GameOver || snap.CrashCause != CauseSelfCollision {
			t.Errorf("Expected self collision game over, got %v %q", snap.Phase, snap.CrashCause)
		}
	})

	t.Run("with shield", func(t *testing.T) {
		g, _ := newTestGame(t)
		g.Snake = append([]Point(nil), body...)
		g.Heading = Left
		g.HasShield = true
		g.ShieldTicks = 5

		snap, err := g.Tick(dir(Down))
		if err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
		if snap.Phase != Running {
			t.Fatalf("Expected running, got %v", snap.Phase)
		}
		if snap.ShieldActive {
			t.Error("Shield should be consumed")
		}
		if len(snap.Snake) != len(body) {
			t.Errorf("Length should be preserved, got %d", len(snap.Snake))
		}
		for _, p := range snap.Snake[1:] {
			if p == snap.Snake[0] {
				t.Errorf("Relocated head %v overlaps the body", p)
			}
		}
	})
}

// TestReversalIgnored checks a 180-degree turn is never committed
func TestReversalIgnored(t *testing.T) {
	g, _ := newTestGame(t)

	if g.QueueDirection(Left) {
		t.Error("Queueing a reversal should be rejected")
	}

	snap, err := g.Tick(dir(Left))
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if snap.Heading != Right {
		t.Errorf("Heading should stay right, got %v", snap.Heading)
	}
	if snap.Snake[0] != (Point{X: 21, Y: 10}) {
		t.Errorf("Expected head at (21,10), got %v", snap.Snake[0])
	}

	if !g.QueueDirection(Up) {
		t.Error("Queueing a turn should be accepted")
	}
	snap, _ = g.Tick(nil)
	if snap.Heading != Up || snap.Snake[0] != (Point{X: 21, Y: 9}) {
		t.Errorf("Expected queued turn up, got heading %v head %v", snap.Heading, snap.Snake[0])
	}
}

// TestPortalTeleport checks both directions and that a tick teleports once
func TestPortalTeleport(t *testing.T) {
	g, _ := newTestGame(t)
	g.Portals = &PortalPair{A: Point{X: 21, Y: 10}, B: Point{X: 30, Y: 5}}

	snap, _ := g.Tick(nil)
	if snap.Snake[0] != g.Portals.B {
		t.Errorf("Entering A should land on B, got %v", snap.Snake[0])
	}
	if countEvents(snap, EventTeleported) != 1 {
		t.Error("Expected one teleport event")
	}

	snap, _ = g.Tick(nil)
	if snap.Snake[0] != (Point{X: 31, Y: 5}) {
		t.Errorf("Leaving B should continue right, got %v", snap.Snake[0])
	}

	g2, _ := newTestGame(t)
	g2.Portals = &PortalPair{A: Point{X: 5, Y: 5}, B: Point{X: 21, Y: 10}}
	snap, _ = g2.Tick(nil)
	if snap.Snake[0] != g2.Portals.A {
		t.Errorf("Entering B should land on A, got %v", snap.Snake[0])
	}
}

// TestLengthInvariant plays an autopilot game and checks growth per tick
func TestLengthInvariant(t *testing.T) {
	g, err := New(40, 20, WithSeed(7))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	pilot := NewAutopilotController(NewRand(7))

	for i := 0; i < 2000 && g.Phase == Running; i++ {
		before := len(g.Snake)
		prevHeading := g.Heading

		var queued *Direction
		if d, ok := pilot.NextDirection(g.Snapshot()); ok {
			queued = &d
		}
		snap, err := g.Tick(queued)
		if err != nil {
			t.Fatalf("Tick %d failed: %v", i, err)
		}
		if snap.Phase != Running && snap.Phase != Victory {
			break
		}

		want := before
		if countEvents(snap, EventFoodEaten) > 0 {
			want++
		}
		if len(snap.Snake) != want {
			t.Fatalf("Tick %d: length %d -> %d, want %d", i, before, len(snap.Snake), want)
		}
		if snap.Heading == prevHeading.Opposite() {
			t.Fatalf("Tick %d: heading reversed from %v to %v", i, prevHeading, snap.Heading)
		}
		seen := make(map[Point]bool)
		for _, p := range snap.Snake {
			if seen[p] {
				t.Fatalf("Tick %d: two segments share %v", i, p)
			}
			seen[p] = true
		}
	}
	t.Logf("Autopilot reached level %d with score %d", g.Level, g.Score)
}

// TestLevelUp advances exactly at the next multiple of 100
func TestLevelUp(t *testing.T) {
	g, _ := newTestGame(t)
	g.Score = 80
	g.Foods = []Food{{Pos: Point{X: 21, Y: 10}, FoodType: FoodRegular, Active: true}}

	snap, _ := g.Tick(nil)
	if snap.Level != 1 {
		t.Fatalf("Score 90 should stay on level 1, got %d", snap.Level)
	}

	g.Foods = []Food{{Pos: Point{X: 22, Y: 10}, FoodType: FoodRegular, Active: true}}
	snap, err := g.Tick(nil)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if snap.Score != 100 || snap.Level != 2 {
		t.Fatalf("Expected level 2 at score 100, got level %d score %d", snap.Level, snap.Score)
	}
	if countEvents(snap, EventLevelUp) != 1 {
		t.Error("Expected one level-up event")
	}
	walls := 0
	for _, o := range snap.Obstacles {
		if o.Type == ObstacleWall {
			walls++
		}
	}
	if walls != 4 {
		t.Errorf("Expected 4 walls on level 2, got %d", walls)
	}
	if g.BaseTickInterval() != 130*time.Millisecond {
		t.Errorf("Expected 130ms on level 2, got %v", g.BaseTickInterval())
	}
}

// TestVictoryPastLastLevel ends the run instead of building level 11
func TestVictoryPastLastLevel(t *testing.T) {
	g, _ := newTestGame(t)
	g.Level = 10
	g.Score = 990
	g.Foods = []Food{{Pos: Point{X: 21, Y: 10}, FoodType: FoodRegular, Active: true}}

	snap, err := g.Tick(nil)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if snap.Phase != Victory {
		t.Fatalf("Expected victory, got %v", snap.Phase)
	}
	if snap.Level != 10 {
		t.Errorf("Level should stay at 10, got %d", snap.Level)
	}
	if _, err := g.Tick(nil); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Victory is terminal, expected invalid transition, got %v", err)
	}
}

// TestEffects checks pickups and timer expiry
func TestEffects(t *testing.T) {
	g, _ := newTestGame(t)
	g.Foods = []Food{
		{Pos: Point{X: 21, Y: 10}, FoodType: FoodShield, Active: true},
		{Pos: Point{X: 22, Y: 10}, FoodType: FoodSpeedBoost, Active: true},
	}

	snap, _ := g.Tick(nil)
	if !snap.ShieldActive || snap.ShieldTicks != 39 {
		t.Errorf("Expected shield with 39 ticks left, got %v/%d", snap.ShieldActive, snap.ShieldTicks)
	}
	if snap.Score != 20 {
		t.Errorf("Expected score 20, got %d", snap.Score)
	}

	snap, _ = g.Tick(nil)
	if !snap.SpeedBoostActive || snap.SpeedBoostTicks != 29 {
		t.Errorf("Expected boost with 29 ticks left, got %v/%d", snap.SpeedBoostActive, snap.SpeedBoostTicks)
	}
	if g.CurrentTickInterval() != 70*time.Millisecond {
		t.Errorf("Boost should halve 140ms to 70ms, got %v", g.CurrentTickInterval())
	}
	if snap.Stats.SpecialItemsCollected != 2 || snap.Stats.FoodEaten != 2 {
		t.Errorf("Unexpected stats %+v", snap.Stats)
	}

	g.Foods = nil
	g.ShieldTicks = 1
	g.SpeedBoostTicks = 1
	snap, _ = g.Tick(nil)
	if snap.ShieldActive || snap.SpeedBoostActive {
		t.Error("Effects should expire when their timers reach zero")
	}
	if g.CurrentTickInterval() != 140*time.Millisecond {
		t.Errorf("Expected base interval after boost, got %v", g.CurrentTickInterval())
	}
}

// TestTransitions covers pause, resume, quit and invalid calls
func TestTransitions(t *testing.T) {
	g, _ := newTestGame(t)

	if err := g.Resume(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Resume while running should fail, got %v", err)
	}
	if err := g.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	if _, err := g.Tick(nil); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Tick while paused should fail, got %v", err)
	}
	var ite *InvalidTransitionError
	if err := g.Pause(); !errors.As(err, &ite) || ite.Phase != Paused {
		t.Errorf("Pause while paused should report phase, got %v", err)
	}
	if err := g.HandleCommand(CmdPause); err != nil || g.Phase != Running {
		t.Errorf("Pause command while paused should resume, got %v phase=%v", err, g.Phase)
	}

	g.Pause()
	g.Quit()
	if g.Phase != GameOver || g.CrashCause != CauseQuit {
		t.Errorf("Quit should end the game, got %v %q", g.Phase, g.CrashCause)
	}
	if err := g.Pause(); err == nil {
		t.Error("Pause after game over should fail")
	}

	if err := g.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if g.Phase != Running || g.Score != 0 || len(g.Snake) != 3 {
		t.Error("Reset should start a fresh run")
	}
}

// TestPausedTimeNotCharged verifies elapsed play time excludes pauses
func TestPausedTimeNotCharged(t *testing.T) {
	g, mock := newTestGame(t)

	mock.Advance(time.Second)
	g.Pause()
	mock.Advance(5 * time.Second)
	g.Resume()
	mock.Advance(time.Second)

	if got := g.Snapshot().Stats.Elapsed; got != 2*time.Second {
		t.Errorf("Expected 2s of play time, got %v", got)
	}
}

// TestMovingObstaclesAdvance checks obstacles step once per tick
func TestMovingObstaclesAdvance(t *testing.T) {
	g, _ := newTestGame(t)
	g.Obstacles = []Obstacle{
		{Pos: Point{X: 5, Y: 5}, Type: ObstacleMoving, Heading: Right},
		{Pos: Point{X: 7, Y: 5}, Type: ObstacleMoving, Heading: Left},
		{Pos: Point{X: 30, Y: 2}, Type: ObstacleWall},
	}

	g.Tick(nil)

	if g.Obstacles[0].Pos != (Point{X: 6, Y: 5}) {
		t.Errorf("First obstacle should move to (6,5), got %v", g.Obstacles[0].Pos)
	}
	if g.Obstacles[1].Pos != (Point{X: 7, Y: 5}) || g.Obstacles[1].Heading != Right {
		t.Errorf("Second obstacle should bounce in place, got %+v", g.Obstacles[1])
	}
	if g.Obstacles[2].Pos != (Point{X: 30, Y: 2}) {
		t.Error("Walls never move")
	}
}

// TestSnapshotIsCopy ensures rendering cannot mutate game state
func TestSnapshotIsCopy(t *testing.T) {
	g, _ := newTestGame(t)
	g.Portals = &PortalPair{A: Point{X: 2, Y: 2}, B: Point{X: 30, Y: 15}}
	snap := g.Snapshot()

	snap.Snake[0] = Point{X: 0, Y: 0}
	snap.Portals.A = Point{X: 9, Y: 9}

	if g.Snake[0] == (Point{X: 0, Y: 0}) || g.Portals.A == (Point{X: 9, Y: 9}) {
		t.Error("Snapshot shares memory with game state")
	}
	if len(snap.Objects()) != len(snap.Foods)+len(snap.Obstacles) {
		t.Error("Objects should list every food and obstacle")
	}
}

// fixedRand always returns v, clamped to n
type fixedRand struct{ v int }

func (f fixedRand) Intn(n int) int {
	if f.v >= n {
		return n - 1
	}
	return f.v
}

func TestResampleNear(t *testing.T) {
	g, _ := newTestGame(t)
	g.rng = fixedRand{0}

	origin := Point{X: 10, Y: 10}
	if p, ok := g.resampleNear(origin); !ok || p != (Point{X: 9, Y: 9}) {
		t.Errorf("Expected (9,9) from the first ring, got %v ok=%v", p, ok)
	}

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			g.Obstacles = append(g.Obstacles, Obstacle{Pos: Point{X: 10 + dx, Y: 10 + dy}, Type: ObstacleWall})
		}
	}
	if p, ok := g.resampleNear(origin); !ok || p != (Point{X: 8, Y: 8}) {
		t.Errorf("Expected (8,8) once the first ring is blocked, got %v ok=%v", p, ok)
	}

	g.rng = fixedRand{1000}
	p, ok := g.resampleNear(origin)
	if !ok || max(abs(p.X-10), abs(p.Y-10)) != 2 {
		t.Errorf("Expected a radius 2 cell, got %v ok=%v", p, ok)
	}
}

// TestFoodSpawnFailureReported fills the board so the replacement food has
// nowhere to go, then frees it and expects the next tick to retry.
func TestFoodSpawnFailureReported(t *testing.T) {
	g, _ := newTestGame(t)
	g.Foods = []Food{{Pos: Point{X: 21, Y: 10}, FoodType: FoodRegular, Active: true}}

	keep := NewOccupancy(g.Snake...)
	keep.Put(Point{X: 21, Y: 10})
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			if p := (Point{X: x, Y: y}); !keep.Has(p) {
				g.Obstacles = append(g.Obstacles, Obstacle{Pos: p, Type: ObstacleWall})
			}
		}
	}
	spawned := g.Spawner.Total

	snap, err := g.Tick(nil)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if snap.Phase != Running || snap.Score != 10 {
		t.Fatalf("Expected a running game with score 10, got %s score %d", snap.Phase, snap.Score)
	}
	if countEvents(snap, EventFoodMissing) != 1 || len(snap.Foods) != 0 {
		t.Errorf("Expected one missing-food event and no food, got %d events, %d foods",
			countEvents(snap, EventFoodMissing), len(snap.Foods))
	}
	if g.Spawner.Total != spawned {
		t.Errorf("A failed spawn should not advance the counter: %d -> %d", spawned, g.Spawner.Total)
	}

	g.Obstacles = nil
	snap, err = g.Tick(nil)
	if err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if len(snap.Foods) != 1 || countEvents(snap, EventFoodMissing) != 0 {
		t.Errorf("Expected the retry to place a food, got %d foods", len(snap.Foods))
	}
	if g.Spawner.Total != spawned+1 {
		t.Errorf("Expected the counter to advance once, got %d", g.Spawner.Total-spawned)
	}
}

func TestSpawnFailureKeepsCounters(t *testing.T) {
	occ := NewOccupancy()
	for y := 1; y < 19; y++ {
		for x := 1; x < 39; x++ {
			occ.Put(Point{X: x, Y: y})
		}
	}
	s := FoodSpawner{Total: 4, Special: 1}
	if _, err := s.Spawn(40, 20, occ, NewRand(1)); !errors.Is(err, ErrNoFreeCell) {
		t.Fatalf("Expected ErrNoFreeCell, got %v", err)
	}
	if s.Total != 4 || s.Special != 1 {
		t.Errorf("Counters moved on failure: %+v", s)
	}
}
