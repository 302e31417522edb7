package game

import (
	"github.com/trytobebee/snake_deluxe/pkg/config"
	"github.com/zyedidia/generic/mapset"
)

// Occupancy is the set of cells that are not free
type Occupancy struct {
	cells mapset.Set[Point]
}

// NewOccupancy builds an occupancy set from the given cells
func NewOccupancy(points ...Point) Occupancy {
	o := Occupancy{cells: mapset.New[Point]()}
	o.Put(points...)
	return o
}

// Put marks cells as occupied
func (o Occupancy) Put(points ...Point) {
	for _, p := range points {
		o.cells.Put(p)
	}
}

// Has reports whether a cell is occupied
func (o Occupancy) Has(p Point) bool {
	return o.cells.Has(p)
}

// Remove frees a cell
func (o Occupancy) Remove(p Point) {
	o.cells.Remove(p)
}

// Size returns the number of occupied cells
func (o Occupancy) Size() int {
	return o.cells.Size()
}

// occupancy returns every cell held by the snake, foods, obstacles or portals
func (g *Game) occupancy() Occupancy {
	occ := NewOccupancy(g.Snake...)
	for _, f := range g.Foods {
		occ.Put(f.Pos)
	}
	for _, o := range g.Obstacles {
		occ.Put(o.Pos)
	}
	if g.Portals != nil {
		occ.Put(g.Portals.A, g.Portals.B)
	}
	return occ
}

// sampleFree rejection-samples a free cell in [minX,maxX)x[minY,maxY) that also passes accept.
// Gives up after config.MaxPlacementAttempts draws.
func sampleFree(r Rand, occ Occupancy, minX, maxX, minY, maxY int, accept func(Point) bool) (Point, error) {
	for attempts := 0; attempts < config.MaxPlacementAttempts; attempts++ {
		p := Point{
			X: randRange(r, minX, maxX),
			Y: randRange(r, minY, maxY),
		}
		if occ.Has(p) {
			continue
		}
		if accept != nil && !accept(p) {
			continue
		}
		return p, nil
	}
	return Point{}, ErrNoFreeCell
}
