package game

import (
	"time"

	"github.com/trytobebee/snake_deluxe/pkg/config"
)

// Layout is the generated content of one level
type Layout struct {
	Level        int
	Obstacles    []Obstacle
	TickInterval time.Duration
	Portals      *PortalPair
}

// TickInterval returns the base simulation interval for a level: max(50, 150 - 10*level) ms
func TickInterval(level int) time.Duration {
	d := config.InitialTickInterval - time.Duration(level)*config.TickIntervalPerLevel
	if d < config.MinTickInterval {
		return config.MinTickInterval
	}
	return d
}

// GenerateLevel builds the obstacle set, tick interval and portals for a level.
// occ holds the cells that must stay free (snake, foods); it is extended with
// every placed cell.
func GenerateLevel(level, width, height int, occ Occupancy, r Rand) (Layout, error) {
	layout := Layout{
		Level:        level,
		TickInterval: TickInterval(level),
	}
	if level <= 1 {
		return layout, nil
	}

	place := func(o Obstacle) {
		layout.Obstacles = append(layout.Obstacles, o)
		occ.Put(o.Pos)
	}

	for i := 0; i < level*config.WallsPerLevel; i++ {
		p, err := sampleFree(r, occ, 1, width-1, 1, height-1, nil)
		if err != nil {
			return Layout{}, &LevelGenerationError{Level: level, What: "wall", Err: err}
		}
		place(Obstacle{Pos: p, Type: ObstacleWall})
	}

	if level >= config.MovingObstacleLevel {
		inset := config.MovingObstacleInset
		for i := 0; i < level-config.MovingObstacleLevel+1; i++ {
			p, err := sampleFree(r, occ, inset, width-inset, inset, height-inset, nil)
			if err != nil {
				return Layout{}, &LevelGenerationError{Level: level, What: "moving obstacle", Err: err}
			}
			place(Obstacle{Pos: p, Type: ObstacleMoving, Heading: Directions[r.Intn(len(Directions))]})
		}
	}

	if level >= config.MazeLevel {
		for _, p := range MazePattern(level, width, height) {
			if occ.Has(p) {
				continue
			}
			place(Obstacle{Pos: p, Type: ObstacleWall})
		}
	}

	if level >= config.PortalLevel {
		portals, err := generatePortals(width, height, occ, r)
		if err != nil {
			return Layout{}, &LevelGenerationError{Level: level, What: "portal", Err: err}
		}
		layout.Portals = portals
	}

	return layout, nil
}

// MazePattern returns the wall cells of the maze overlay selected by level mod 3.
// Cells may repeat; callers skip occupied ones.
func MazePattern(level, width, height int) []Point {
	var cells []Point

	switch level % 3 {
	case 0: // cross
		for x := width / 4; x < width*3/4; x++ {
			cells = append(cells, Point{X: x, Y: height / 2})
		}
		for y := height / 4; y < height*3/4; y++ {
			cells = append(cells, Point{X: width / 2, Y: y})
		}

	case 1: // three hollow boxes
		size := min(width, height) / 8
		for box := 0; box < 3; box++ {
			bx := width/4 + box*width/6
			by := height / 3
			for i := 0; i < size; i++ {
				cells = append(cells,
					Point{X: bx + i, Y: by},
					Point{X: bx + i, Y: by + size},
					Point{X: bx, Y: by + i},
					Point{X: bx + size, Y: by + i},
				)
			}
		}

	case 2: // bars, odd rows keep only the outer thirds
		startX := width / 6
		endX := width * 5 / 6
		for i := 0; i < 3; i++ {
			y := height/4 + i*height/4
			for x := startX; x < endX; x++ {
				if i%2 == 1 && !(x < startX+width/6 || x > endX-width/6) {
					continue
				}
				cells = append(cells, Point{X: x, Y: y})
			}
		}
	}
	return cells
}

func generatePortals(width, height int, occ Occupancy, r Rand) (*PortalPair, error) {
	inset := config.PortalInset
	a, err := sampleFree(r, occ, inset, width-inset, inset, height-inset, nil)
	if err != nil {
		return nil, err
	}
	minDist := float64(width / 3)
	b, err := sampleFree(r, occ, inset, width-inset, inset, height-inset, func(p Point) bool {
		return p != a && p.Dist(a) > minDist
	})
	if err != nil {
		return nil, err
	}
	occ.Put(a, b)
	return &PortalPair{A: a, B: b}, nil
}
