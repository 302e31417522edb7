package game

// floodLimit caps the reachable-space search
const floodLimit = 450

// CalculateBestMove computes the best next heading for the snake in s.
// Targets the food with the best value/distance ratio, refuses reversals and
// unsafe cells, and prefers moves that keep enough room to survive.
func CalculateBestMove(s Snapshot, r Rand) Direction {
	head := s.Snake[0]

	var target Point
	foundFood := false
	maxUtility := -1.0
	for _, food := range s.Foods {
		dist := float64(abs(food.Pos.X-head.X) + abs(food.Pos.Y-head.Y))
		if dist == 0 {
			dist = 0.5
		}
		utility := float64(food.FoodType.Value()) / dist
		if utility > maxUtility {
			maxUtility = utility
			target = food.Pos
			foundFood = true
		}
	}

	blocked := blockedCells(s)

	// Shuffle to avoid deterministic behavior when scores are equal
	dirs := Directions
	for i := len(dirs) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}

	bestDir := s.Heading
	bestScore := -1000000.0
	snakeLen := len(s.Snake)

	for _, dir := range dirs {
		if dir == s.Heading.Opposite() {
			continue
		}

		next := head.Add(dir)
		if other, ok := s.Portals.Other(next); ok {
			next = other
		}
		if !isSafe(s, blocked, next) {
			continue
		}

		reachable := countReachableSpace(s, blocked, next)
		score := float64(reachable) * 50.0
		if reachable < snakeLen {
			score -= 5000.0
		}

		if foundFood {
			distToFood := float64(abs(target.X-next.X) + abs(target.Y-next.Y))
			score += (100.0 - distToFood) * 2.0
			if next == target {
				score += 1000.0
			}
		}

		// Low on room: stay near the tail, the cells behind it free up as we move
		survivalThreshold := snakeLen + 10
		if reachable < survivalThreshold {
			tail := s.Snake[snakeLen-1]
			distToTail := float64(abs(tail.X-next.X) + abs(tail.Y-next.Y))
			urgency := float64(survivalThreshold - reachable)
			score += (100.0 - distToTail) * urgency * 0.5
		}

		if score > bestScore {
			bestScore = score
			bestDir = dir
		}
	}

	return bestDir
}

// blockedCells returns obstacle and body cells. The tail counts too: a tick
// checks the head against the whole body before the tail is dropped.
func blockedCells(s Snapshot) Occupancy {
	occ := NewOccupancy()
	for _, o := range s.Obstacles {
		occ.Put(o.Pos)
	}
	occ.Put(s.Snake...)
	return occ
}

// isSafe checks if a position is inside the board and not blocked
func isSafe(s Snapshot, blocked Occupancy, p Point) bool {
	if p.X < 0 || p.X >= s.Width || p.Y < 0 || p.Y >= s.Height {
		return false
	}
	return !blocked.Has(p)
}

// countReachableSpace uses a simple flood fill to count safe tiles
func countReachableSpace(s Snapshot, blocked Occupancy, start Point) int {
	visited := NewOccupancy(start)
	queue := []Point{start}
	count := 0

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		count++

		if count > floodLimit {
			return count
		}

		for _, d := range Directions {
			next := curr.Add(d)
			if !isSafe(s, blocked, next) || visited.Has(next) {
				continue
			}
			visited.Put(next)
			queue = append(queue, next)
		}
	}
	return count
}
