package game

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFreeCell is returned when rejection sampling runs out of attempts
	ErrNoFreeCell = errors.New("no free cell found")
	// ErrInvalidTransition is matched by every *InvalidTransitionError
	ErrInvalidTransition = errors.New("invalid state transition")
)

// LevelGenerationError reports that a level layout could not be placed
type LevelGenerationError struct {
	Level int
	What  string // "wall", "moving obstacle", "portal"
	Err   error
}

func (e *LevelGenerationError) Error() string {
	return fmt.Sprintf("level %d: placing %s: %v", e.Level, e.What, e.Err)
}

func (e *LevelGenerationError) Unwrap() error {
	return e.Err
}

// InvalidTransitionError reports an operation called in the wrong phase
type InvalidTransitionError struct {
	Op    string
	Phase Phase
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: not allowed while %s", e.Op, e.Phase)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
