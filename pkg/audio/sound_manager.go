package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/trytobebee/snake_deluxe/pkg/game"
)

const (
	sampleRate    = beep.SampleRate(44100)
	defaultVolume = 0.4
)

// SoundType names a game sound
type SoundType int

const (
	SoundEat SoundType = iota
	SoundSpecial
	SoundWhoosh
	SoundLevelUp
	SoundGameOver
	SoundVictory
)

// SoundFor maps a game event to its sound
func SoundFor(e game.Event) (SoundType, bool) {
	switch e.Type {
	case game.EventFoodEaten:
		if e.FoodType.IsSpecial() {
			return SoundSpecial, true
		}
		return SoundEat, true
	case game.EventShieldConsumed, game.EventTeleported:
		return SoundWhoosh, true
	case game.EventLevelUp:
		return SoundLevelUp, true
	case game.EventGameOver:
		return SoundGameOver, true
	case game.EventVictory:
		return SoundVictory, true
	}
	return 0, false
}

// GetSoundEffect builds a fresh streamer for the sound type
func GetSoundEffect(t SoundType, rate beep.SampleRate, vol float64) beep.Streamer {
	switch t {
	case SoundEat:
		return CreateEatSound(rate, vol)
	case SoundSpecial:
		return CreateChimeSound(rate, vol)
	case SoundWhoosh:
		return CreateWhooshSound(rate, vol)
	case SoundLevelUp:
		return CreateArpeggioSound(rate, vol, 523.25, 659.25, 783.99) // C5 E5 G5
	case SoundGameOver:
		return CreateGameOverSound(rate, vol)
	case SoundVictory:
		return CreateArpeggioSound(rate, vol, 523.25, 659.25, 783.99, 1046.5)
	}
	return nil
}

// SoundManager plays game sounds through the speaker. Until Initialize
// succeeds every call is a no-op, so a machine without audio still plays.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: defaultVolume,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play queues one sound on the mixer
func (sm *SoundManager) Play(t SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := GetSoundEffect(t, sampleRate, sm.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayEvents plays the sound of every event that has one
func (sm *SoundManager) PlayEvents(events []game.Event) {
	for _, e := range events {
		if t, ok := SoundFor(e); ok {
			sm.Play(t)
		}
	}
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}
