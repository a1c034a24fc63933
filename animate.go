// SPDX-License-Identifier: Unlicense OR MIT

package sheet

import (
	"time"

	"github.com/mattermoran/sliding-sheet/internal/fling"
)

const defaultDuration = 300 * time.Millisecond

// contentScroller is the scrolling capability of the sheet content
// that drag gestures and animations are shared with.
type contentScroller interface {
	offset() float32
	maxOffset() float32
	setOffset(offset float32)
	// ballistic hands remaining gesture momentum to the content.
	// Positive velocity scrolls toward larger offsets.
	ballistic(velocity float32)
	flinging() bool
	stop()
}

// animator drives timed transitions of the extent and of the content
// scroll offset. It is a passive state machine advanced once per
// frame by tick; starting a new transition cancels the one in flight
// so the extent only ever has a single writer.
type animator struct {
	ext     *extent
	content contentScroller

	// base is the configured duration of a full-distance snap.
	base time.Duration
	now  time.Time

	// scroll animates the content offset, either back to top ahead
	// of an extent transition or on behalf of ScrollTo.
	scroll struct {
		active   bool
		t0       time.Time
		duration time.Duration
		from, to float32
	}
	// tween is the eased extent transition.
	tween struct {
		active   bool
		t0       time.Time
		duration time.Duration
		from, to float32
		ease     func(float32) float32
	}
	// pending is the extent transition parked behind the scroll
	// phase.
	pending struct {
		valid    bool
		to       float32
		duration time.Duration
		ease     func(float32) float32
	}
	// sim decelerates the sheet when snapping is disabled.
	sim fling.Animation

	onComplete func()
}

func (a *animator) active() bool {
	return a.scroll.active || a.tween.active || a.pending.valid || a.sim.Active()
}

func (a *animator) cancel() {
	a.scroll.active = false
	a.tween.active = false
	a.pending.valid = false
	a.sim.Stop()
	a.onComplete = nil
}

func (a *animator) baseDuration() time.Duration {
	if a.base > 0 {
		return a.base
	}
	return defaultDuration
}

// snapToExtent starts a transition toward target. A zero duration
// selects an adaptive one: proportional to the distance and shortened
// by up to 30% for fast releases. If the content is scrolled away
// from its top, it is first animated back at half the duration so the
// two transitions never fight visually.
func (a *animator) snapToExtent(target, velocity float32, clampTarget bool, duration time.Duration, done func()) {
	a.cancel()
	a.content.stop()
	if clampTarget {
		target = clamp32(target, a.ext.min, a.ext.max)
	}
	if duration == 0 {
		speed := max32(abs32(a.ext.current-target), 0.25)
		if a.ext.max > 0 {
			speed /= a.ext.max
		}
		speed *= 1 - min32(abs32(velocity)/2000, 1)*0.3
		duration = time.Duration(float32(a.baseDuration()) * speed)
	}
	ease := easeInOutCubic
	if abs32(velocity) > slowVelocity {
		ease = easeOutCubic
	}
	a.onComplete = done
	if a.content.offset() > 0 {
		a.scroll.active = true
		a.scroll.t0 = a.now
		a.scroll.duration = duration / 2
		a.scroll.from = a.content.offset()
		a.scroll.to = 0
		a.pending.valid = true
		a.pending.to = target
		a.pending.duration = duration
		a.pending.ease = ease
		return
	}
	a.startTween(target, duration, ease)
}

func (a *animator) startTween(to float32, duration time.Duration, ease func(float32) float32) {
	a.tween.active = true
	a.tween.t0 = a.now
	a.tween.duration = duration
	a.tween.from = a.ext.current
	a.tween.to = to
	a.tween.ease = ease
}

// scrollTo animates the content scroll offset without touching the
// extent.
func (a *animator) scrollTo(offset float32, duration time.Duration) {
	a.cancel()
	a.content.stop()
	if duration == 0 {
		duration = a.baseDuration()
	}
	a.scroll.active = true
	a.scroll.t0 = a.now
	a.scroll.duration = duration
	a.scroll.from = a.content.offset()
	a.scroll.to = clamp32(offset, 0, a.content.maxOffset())
}

// goUnsnapped decelerates the sheet freely from the release velocity,
// in px/s toward expansion.
func (a *animator) goUnsnapped(velocity float32) {
	a.cancel()
	a.content.stop()
	a.sim.Start(a.now, velocity)
}

// tick advances all transitions to now and reports whether any of
// them still needs a next frame.
func (a *animator) tick(now time.Time) bool {
	a.now = now
	if a.scroll.active {
		if t, end := a.progress(a.scroll.t0, a.scroll.duration, now); end {
			a.scroll.active = false
			a.content.setOffset(a.scroll.to)
			if a.pending.valid {
				a.pending.valid = false
				a.startTween(a.pending.to, a.pending.duration, a.pending.ease)
			}
		} else {
			f := easeInOutCubic(t)
			a.content.setOffset(a.scroll.from + (a.scroll.to-a.scroll.from)*f)
		}
	}
	if a.tween.active {
		if t, end := a.progress(a.tween.t0, a.tween.duration, now); end {
			a.tween.active = false
			a.ext.setExtent(a.tween.to)
			if done := a.onComplete; done != nil {
				a.onComplete = nil
				done()
			}
		} else {
			f := a.tween.ease(t)
			a.ext.setExtent(a.tween.from + (a.tween.to-a.tween.from)*f)
		}
	}
	if a.sim.Active() {
		v := a.sim.Velocity(now)
		a.ext.applyPixelDelta(a.sim.Tick(now))
		if (v > 0 && a.ext.isAtMax()) || (v < 0 && a.ext.isAtMin()) {
			// The sheet hit a bound; the content gets the
			// remaining momentum. The hand-back velocity is
			// the simulation's instantaneous one, which is
			// tuned for feel rather than physically exact.
			a.sim.Stop()
			a.content.ballistic(v)
		}
	}
	return a.active()
}

func (a *animator) progress(t0 time.Time, d time.Duration, now time.Time) (float32, bool) {
	if d <= 0 {
		return 1, true
	}
	t := float32(now.Sub(t0)) / float32(d)
	if t >= 1 {
		return 1, true
	}
	if t < 0 {
		t = 0
	}
	return t, false
}

// easeOutCubic decelerates toward the end of the transition.
func easeOutCubic(t float32) float32 {
	u := t - 1
	return u*u*u + 1
}

// easeInOutCubic accelerates into and decelerates out of the
// transition.
func easeInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return (t-1)*(2*t-2)*(2*t-2) + 1
}
