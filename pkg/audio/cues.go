// Package audio plays procedural sound cues for simulation events
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// DefaultSampleRate is the rate every cue is generated at
const DefaultSampleRate = beep.SampleRate(44100)

// Cue durations
const (
	ExplosionDuration = 400 * time.Millisecond
	DeathDuration     = 900 * time.Millisecond
	BombDropDuration  = 60 * time.Millisecond
)

// rumble is crackling noise over a low sine, fading exponentially. The
// noise comes from a fixed-seed LCG so a cue always sounds the same.
type rumble struct {
	rate  beep.SampleRate
	freq  float64 // rumble frequency, Hz
	decay float64 // envelope decay rate, 1/s
	noise float64 // noise share of the mix
	pos   int
	seed  uint32
}

func newRumble(rate beep.SampleRate, freq, decay, noise float64) *rumble {
	return &rumble{rate: rate, freq: freq, decay: decay, noise: noise, seed: 0x2545f491}
}

func (g *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.rate)
		g.seed = g.seed*1664525 + 1013904223
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1
		tone := math.Sin(2 * math.Pi * g.freq * t)

		v := math.Exp(-t*g.decay) * (g.noise*noise + (1-g.noise)*tone)
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *rumble) Err() error { return nil }

// volume scales s linearly; zero or less is silent
func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Explosion is the cue for a bomb blast or a destroyed structure
func Explosion(rate beep.SampleRate, v float64) beep.Streamer {
	return volume(beep.Take(rate.N(ExplosionDuration), newRumble(rate, 70, 9, 0.7)), v)
}

// Death is the longer, lower cue for the player's ship exploding
func Death(rate beep.SampleRate, v float64) beep.Streamer {
	return volume(beep.Take(rate.N(DeathDuration), newRumble(rate, 45, 4, 0.5)), v)
}

// BombDrop is a short high blip
func BombDrop(rate beep.SampleRate, v float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, 880)
	if err != nil {
		return nil, err
	}
	return volume(beep.Take(rate.N(BombDropDuration), tone), v*0.3), nil
}
