package game

import "github.com/trytobebee/snake_deluxe/pkg/config"

// Value returns the score value of the food type
func (t FoodType) Value() int {
	switch t {
	case FoodRegular:
		return 10
	case FoodSpecial:
		return 30
	case FoodSpeedBoost:
		return 5
	case FoodShield:
		return 20
	case FoodPortal:
		return 15
	default:
		return 1
	}
}

// Duration returns the effect duration in ticks granted by the food type
func (t FoodType) Duration() int {
	switch t {
	case FoodSpeedBoost:
		return 30
	case FoodShield:
		return 40
	default:
		return 0
	}
}

// Symbol returns the glyph for the food type
func (t FoodType) Symbol() rune {
	switch t {
	case FoodRegular:
		return '●'
	case FoodSpecial:
		return '♦'
	case FoodSpeedBoost:
		return '◄'
	case FoodShield:
		return '■'
	case FoodPortal:
		return '○'
	default:
		return '*'
	}
}

// Color returns the display color for the food type
func (t FoodType) Color() Color {
	switch t {
	case FoodRegular:
		return ColorRed
	case FoodSpecial:
		return ColorMagenta
	case FoodSpeedBoost:
		return ColorYellow
	case FoodShield:
		return ColorBlue
	case FoodPortal:
		return ColorCyan
	default:
		return ColorWhite
	}
}

// IsSpecial reports whether the food type counts as a collected special item
func (t FoodType) IsSpecial() bool {
	return t != FoodRegular
}

func (t FoodType) String() string {
	switch t {
	case FoodRegular:
		return "regular"
	case FoodSpecial:
		return "special"
	case FoodSpeedBoost:
		return "speed-boost"
	case FoodShield:
		return "shield"
	case FoodPortal:
		return "portal"
	}
	return "unknown"
}

// Symbol returns the glyph for the obstacle type
func (t ObstacleType) Symbol() rune {
	if t == ObstacleMoving {
		return config.CharMoving
	}
	return config.CharWall
}

// Color returns the display color for the obstacle type
func (t ObstacleType) Color() Color {
	if t == ObstacleMoving {
		return ColorDarkRed
	}
	return ColorGray
}
