package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"golang.org/x/exp/rand"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Effect timings
const (
	blipDuration    = 60 * time.Millisecond
	noteDuration    = 90 * time.Millisecond
	whooshDuration  = 180 * time.Millisecond
	gameOverNote    = 220 * time.Millisecond
	defaultAttack   = 5 * time.Millisecond
	defaultRelease  = 40 * time.Millisecond
	whooshAttack    = 30 * time.Millisecond
	whooshRelease   = 120 * time.Millisecond
	gameOverRelease = 150 * time.Millisecond
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(total-att-rel, 0),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf, so zero means silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, defaultAttack, defaultRelease, rate)
}

// CreateEatSound is a short sine blip for regular food
func CreateEatSound(rate beep.SampleRate, vol float64) beep.Streamer {
	tone, err := generators.SineTone(rate, 660)
	if err != nil {
		return beep.Silence(rate.N(blipDuration))
	}
	blip := beep.Take(rate.N(blipDuration), tone)
	return newVolume(NewEnvelope(blip, blipDuration, defaultAttack, defaultRelease, rate), vol)
}

// CreateChimeSound is a two-note chime for special food
func CreateChimeSound(rate beep.SampleRate, vol float64) beep.Streamer {
	seq := beep.Seq(
		note(987.77, noteDuration, WaveSquare, rate), // B5
		note(1318.51, noteDuration, WaveSquare, rate), // E6
	)
	return newVolume(seq, vol*0.5)
}

// CreateWhooshSound is a noise burst for teleports and a spent shield
func CreateWhooshSound(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewOscillator(0, whooshDuration, WaveNoise, rate)
	return newVolume(NewEnvelope(noise, whooshDuration, whooshAttack, whooshRelease, rate), vol*0.6)
}

// CreateArpeggioSound plays the given notes in sequence
func CreateArpeggioSound(rate beep.SampleRate, vol float64, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		notes = append(notes, note(f, noteDuration, WaveSine, rate))
	}
	return newVolume(beep.Seq(notes...), vol)
}

// CreateGameOverSound is a falling saw phrase
func CreateGameOverSound(rate beep.SampleRate, vol float64) beep.Streamer {
	var notes []beep.Streamer
	for _, f := range []float64{392, 311.13, 233.08} { // G4 Eb4 Bb3
		osc := NewOscillator(f, gameOverNote, WaveSaw, rate)
		notes = append(notes, NewEnvelope(osc, gameOverNote, defaultAttack, gameOverRelease, rate))
	}
	return newVolume(beep.Seq(notes...), vol*0.5)
}
