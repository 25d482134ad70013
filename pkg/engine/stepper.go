// pkg/engine/stepper.go
package engine

import (
	"math"
	"time"
)

// Stepper converts real elapsed time into a whole number of fixed steps,
// carrying the remainder to the next call.
type Stepper struct {
	Dt       float64 // seconds per step
	MaxSteps int     // steps per Advance before the backlog is dropped

	accumulator float64
	dropped     uint64
}

// NewStepper creates a stepper for the given step length
func NewStepper(dt float64, maxSteps int) *Stepper {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &Stepper{Dt: dt, MaxSteps: maxSteps}
}

// Advance adds elapsed time and calls step once per whole Dt. It returns
// the number of steps taken.
func (s *Stepper) Advance(elapsed time.Duration, step func()) int {
	if elapsed > 0 {
		s.accumulator += elapsed.Seconds()
	}

	steps := 0
	for s.accumulator >= s.Dt && steps < s.MaxSteps {
		step()
		s.accumulator -= s.Dt
		steps++
	}

	// Too far behind: forget the backlog rather than spiral.
	if s.accumulator >= s.Dt {
		backlog := math.Floor(s.accumulator / s.Dt)
		s.dropped += uint64(backlog)
		s.accumulator -= backlog * s.Dt
	}
	return steps
}

// Alpha returns how far the carried remainder is into the next step, in
// [0, 1), for render interpolation.
func (s *Stepper) Alpha() float64 {
	return s.accumulator / s.Dt
}

// Dropped returns the number of steps discarded because of backlog
func (s *Stepper) Dropped() uint64 {
	return s.dropped
}

// Reset clears the carried remainder
func (s *Stepper) Reset() {
	s.accumulator = 0
}
