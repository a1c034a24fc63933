// SPDX-License-Identifier: Unlicense OR MIT

package sheet

// extent is the single source of truth for how much of the available
// height the sheet covers, as a fraction in [0, 1]. It is mutated by
// drag deltas and by animation ticks, never by both at once, and
// publishes every change through onChange.
type extent struct {
	current float32
	min     float32
	max     float32
	// available is the height the sheet may cover, in pixels.
	available float32
	// target is the height of a fully expanded sheet, in pixels.
	target float32
	// bottomSheet permits travel below min, toward dismissal.
	bottomSheet bool

	onChange func(extent float32)
}

// setExtent stores v clamped to the upper bound. The lower bound is
// deliberately not enforced here; call sites clamp it depending on
// whether the sheet is dismissible, which is what allows a bottom
// sheet to animate past its minimum toward zero.
func (e *extent) setExtent(v float32) {
	v = min32(v, e.max)
	if v == e.current {
		return
	}
	e.current = v
	e.notify()
}

// applyPixelDelta converts a pixel movement into an extent change.
// It is a no-op until the sheet has been measured.
func (e *extent) applyPixelDelta(dx float32) {
	if e.target == 0 || e.available == 0 {
		return
	}
	v := e.current + dx/e.available
	if e.bottomSheet {
		v = clamp32(v, 0, e.max)
	} else {
		v = clamp32(v, e.min, e.max)
	}
	if v == e.current {
		return
	}
	e.current = v
	e.notify()
}

func (e *extent) isAtMin() bool {
	return e.current <= e.min
}

func (e *extent) isAtMax() bool {
	return e.current >= e.max
}

// additionalMinExtent and additionalMaxExtent report how much slack,
// as a fraction of the available height, drags may claim beyond the
// content's own scroll range. They vanish once the respective bound
// is reached, so a sheet with short content can still start a drag.
func (e *extent) additionalMinExtent() float32 {
	if e.isAtMin() {
		return 0
	}
	return 1
}

func (e *extent) additionalMaxExtent() float32 {
	if e.isAtMax() {
		return 0
	}
	return 1
}

func (e *extent) notify() {
	if e.onChange != nil {
		e.onChange(e.current)
	}
}
