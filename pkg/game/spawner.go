package game

import "github.com/trytobebee/snake_deluxe/pkg/config"

// specialCycle is the rotation used for every config.SpecialFoodEvery-th spawn.
// FoodPortal is deliberately absent: portal food exists in the table but is never spawned.
var specialCycle = [3]FoodType{FoodSpecial, FoodSpeedBoost, FoodShield}

// FoodSpawner decides the type and position of the next food
type FoodSpawner struct {
	Total   int `json:"total"`   // Foods spawned so far
	Special int `json:"special"` // Special foods spawned so far
}

// NextType advances the counters and returns the type of the next food
func (s *FoodSpawner) NextType() FoodType {
	s.Total++
	if s.Total%config.SpecialFoodEvery != 0 {
		return FoodRegular
	}
	t := specialCycle[s.Special%len(specialCycle)]
	s.Special++
	return t
}

// Spawn places the next food on a free interior cell. The counters only
// advance once a cell is found.
func (s *FoodSpawner) Spawn(width, height int, occ Occupancy, r Rand) (Food, error) {
	pos, err := sampleFree(r, occ, 1, width-1, 1, height-1, nil)
	if err != nil {
		return Food{}, err
	}
	occ.Put(pos)
	return Food{Pos: pos, FoodType: s.NextType(), Active: true}, nil
}

// Reset clears both counters
func (s *FoodSpawner) Reset() {
	s.Total = 0
	s.Special = 0
}
