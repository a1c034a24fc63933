// SPDX-License-Identifier: Unlicense OR MIT

package sheet

// position fuses sheet dragging with content scrolling: every drag
// delta is routed either to the extent or to the content scroller,
// so a single continuous gesture can move the sheet and then scroll
// its content. It composes a contentScroller rather than overriding
// one; the sheet widget plugs in its viewport and test code plugs in
// fakes.
type position struct {
	ext     *extent
	content contentScroller
	anim    *animator

	// snap selects snapped or free (unsnapped) release behavior.
	snap  bool
	snaps []float32

	// dragUp is the direction of the most recent drag delta,
	// consulted when the release velocity itself is ambiguous.
	dragUp bool

	// dismiss reacts to a dismissal decision; for bottom sheets it
	// animates toward zero and pops the host overlay, otherwise it
	// settles at the minimum extent.
	dismiss func(velocity float32)
}

// applyUserOffset routes one drag delta, in px with positive toward
// collapse, to the sheet or to the content. The content wins only
// when it is already scrolled away from its top, or when the sheet
// has no room left to move in the dragged direction.
func (p *position) applyUserOffset(delta float32) {
	if delta == 0 {
		return
	}
	p.dragUp = delta < 0
	listShouldScroll := p.content.offset() > 0
	atMin, atMax := p.ext.isAtMin(), p.ext.isAtMax()
	moveSheet := !(atMin || atMax) ||
		(atMin && (delta < 0 || p.ext.bottomSheet)) ||
		(atMax && delta > 0)
	if !listShouldScroll && moveSheet {
		p.ext.applyPixelDelta(-delta)
	} else {
		p.content.setOffset(p.content.offset() - delta)
	}
}

// goBallistic reacts to the release of a drag. velocity is in px/s,
// positive toward expansion. Releases that can only concern the
// content are delegated to its own ballistic scrolling; everything
// else resolves to a snap or a free deceleration of the sheet.
func (p *position) goBallistic(velocity float32) {
	listShouldScroll := p.content.offset() > 0
	if velocity == 0 ||
		(velocity < 0 && listShouldScroll) ||
		(velocity > 0 && p.ext.isAtMax()) {
		p.content.ballistic(velocity)
		return
	}
	p.content.stop()
	if p.snap {
		p.goSnapped(velocity)
	} else {
		p.anim.goUnsnapped(velocity)
	}
}

// didEndScroll settles the sheet after a drag that ended without a
// fling, unless an animation is already running.
func (p *position) didEndScroll() {
	if p.anim.active() || p.content.flinging() {
		return
	}
	inRange := !p.ext.isAtMin() && !p.ext.isAtMax()
	listShouldScroll := p.content.offset() > 0
	if p.ext.bottomSheet || (inRange && !listShouldScroll) {
		p.goSnapped(0)
	}
}

func (p *position) goSnapped(velocity float32) {
	d := resolveSnap(p.snaps, p.ext.current, velocity, p.dragUp)
	switch {
	case d.dismiss:
		p.dismiss(d.velocity)
	case d.animate:
		p.anim.snapToExtent(d.target, d.velocity, true, 0, nil)
	}
}
