package game

// Step moves a moving obstacle one cell along its heading. If the destination
// leaves the interior of the board or is blocked, the heading reverses and the
// obstacle stays put. Walls never move.
func (o *Obstacle) Step(width, height int, blocked func(Point) bool) {
	if o.Type != ObstacleMoving {
		return
	}

	next := o.Pos.Add(o.Heading)
	if next.X <= 0 || next.X >= width-1 || next.Y <= 0 || next.Y >= height-1 || blocked(next) {
		o.Heading = o.Heading.Opposite()
		return
	}
	o.Pos = next
}

// moveObstacles advances every moving obstacle once. An obstacle is blocked by
// any cell held by another obstacle at the start of the step or already claimed
// by an obstacle that moved earlier in the same step.
func (g *Game) moveObstacles() {
	start := NewOccupancy()
	for _, o := range g.Obstacles {
		start.Put(o.Pos)
	}
	claimed := NewOccupancy()

	for i := range g.Obstacles {
		o := &g.Obstacles[i]
		if o.Type != ObstacleMoving {
			claimed.Put(o.Pos)
			continue
		}
		o.Step(g.Width, g.Height, func(p Point) bool {
			return start.Has(p) || claimed.Has(p)
		})
		claimed.Put(o.Pos)
	}
}
