package game

// Controller defines the brain of the snake (Human or Autopilot)
type Controller interface {
	// NextDirection returns the heading to queue for the coming tick
	NextDirection(s Snapshot) (Direction, bool)
}

// --- Implementation: Manual Controller (Human) ---

// maxQueuedPresses bounds how far ahead the player can type
const maxQueuedPresses = 3

// ManualController buffers the directions pressed by the player, one is
// consumed per tick so quick turns are not lost.
type ManualController struct {
	queue []Direction
}

// SetDirection records a key press. A press repeating or reversing the last
// queued one is dropped, as is any press beyond maxQueuedPresses.
func (c *ManualController) SetDirection(d Direction) bool {
	if n := len(c.queue); n > 0 {
		last := c.queue[n-1]
		if d == last || d == last.Opposite() {
			return false
		}
	}
	if len(c.queue) >= maxQueuedPresses {
		return false
	}
	c.queue = append(c.queue, d)
	return true
}

// NextDirection pops the oldest press that changes the current heading
func (c *ManualController) NextDirection(s Snapshot) (Direction, bool) {
	for len(c.queue) > 0 {
		d := c.queue[0]
		c.queue = c.queue[1:]
		if d != s.Heading && d != s.Heading.Opposite() {
			return d, true
		}
	}
	return 0, false
}

// Pending returns how many presses are waiting
func (c *ManualController) Pending() int {
	return len(c.queue)
}

// --- Implementation: Autopilot Controller (demo mode) ---

// AutopilotController steers toward the most valuable reachable food
type AutopilotController struct {
	rng Rand
}

// NewAutopilotController creates an autopilot; r breaks ties between equal moves
func NewAutopilotController(r Rand) *AutopilotController {
	if r == nil {
		r = NewRand(0)
	}
	return &AutopilotController{rng: r}
}

// NextDirection picks the best heading for the snapshot
func (c *AutopilotController) NextDirection(s Snapshot) (Direction, bool) {
	if len(s.Snake) == 0 || s.Phase != Running {
		return 0, false
	}
	return CalculateBestMove(s, c.rng), true
}
