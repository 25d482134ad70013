package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-orbital/pkg/event"
	"github.com/opd-ai/go-orbital/pkg/logging"
)

// Player turns the event record of each tick into sound cues. Every tick
// plays at most one explosion cue however many explosions it had.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	initialized bool
	logger      *logging.Logger

	// play queues a cue; replaced in tests
	play func(beep.Streamer)
}

// NewPlayer creates a player at the given linear volume
func NewPlayer(volume float64, logger *logging.Logger) *Player {
	if logger == nil {
		logger = logging.Discard()
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		rate:   DefaultSampleRate,
		volume: volume,
		logger: logger,
	}
	p.play = p.mix
	return p
}

// Init opens the audio device. Without a device the game runs silent, so
// callers should log the error and carry on.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return logging.WrapError(err, "init speaker")
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Info(context.Background(), "audio initialised", "sample_rate", int(p.rate))
	return nil
}

func (p *Player) mix(s beep.Streamer) {
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Handle plays the cues for one tick's events
func (p *Player) Handle(events event.Events) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case events.PlayerDeath:
		p.play(Death(p.rate, p.volume))
	case len(events.Explosions) > 0:
		p.play(Explosion(p.rate, p.volume))
	}
	if events.BombsDropped > 0 {
		cue, err := BombDrop(p.rate, p.volume)
		if err != nil {
			p.logger.Warn(context.Background(), "bomb drop cue unavailable", "error", err)
			return
		}
		p.play(cue)
	}
}

// Close stops every playing cue
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}
