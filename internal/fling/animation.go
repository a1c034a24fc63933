// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"math"
	"time"
)

// Animation simulates the deceleration of a fling: the velocity decays
// exponentially and the travelled distance is emitted incrementally
// through Tick. The simulation clamps; it never bounces past its rest
// position.
type Animation struct {
	t0 time.Time
	v0 float32
	// Distance emitted so far.
	emitted float32
	active  bool
}

const (
	// Time constant of the exponential velocity decay, in seconds.
	decayConstant = 0.335
	// Velocity below which a fling is at rest, in px/s.
	restVelocity = 2
)

// Start begins a fling with the given velocity in px/s. Velocities too
// small to produce visible movement are ignored.
func (f *Animation) Start(now time.Time, velocity float32) {
	if -restVelocity <= velocity && velocity <= restVelocity {
		f.active = false
		return
	}
	f.t0 = now
	f.v0 = velocity
	f.emitted = 0
	f.active = true
}

func (f *Animation) Active() bool {
	return f.active
}

// Stop cancels the remaining fling movement.
func (f *Animation) Stop() {
	f.active = false
}

// Velocity returns the instantaneous velocity at now, in px/s.
func (f *Animation) Velocity(now time.Time) float32 {
	if !f.active {
		return 0
	}
	t := float32(now.Sub(f.t0).Seconds())
	return f.v0 * expf(-t/decayConstant)
}

// Tick advances the simulation to now and returns the distance
// travelled since the previous Tick. The animation deactivates once
// the velocity decays to rest.
func (f *Animation) Tick(now time.Time) float32 {
	if !f.active {
		return 0
	}
	t := float32(now.Sub(f.t0).Seconds())
	decay := expf(-t / decayConstant)
	v := f.v0 * decay
	total := f.v0 * decayConstant * (1 - decay)
	d := total - f.emitted
	f.emitted = total
	if -restVelocity < v && v < restVelocity {
		f.active = false
	}
	return d
}

func expf(x float32) float32 {
	return float32(math.Exp(float64(x)))
}
