// SPDX-License-Identifier: Unlicense OR MIT

/*
Package sheet implements a draggable bottom sheet widget for Gio: a
panel that slides up from the bottom of the screen, snaps to
configured stop positions and hands a single continuous gesture over
between moving the sheet and scrolling its content.

The sheet is driven entirely by the frame clock. Its extent, the
fraction of the available height it covers, is the one piece of truth
every other value derives from.
*/
package sheet

import (
	"image"
	"time"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/unit"

	"github.com/mattermoran/sliding-sheet/internal/fling"
)

const inf = 1e6

var touchSlop = unit.Dp(3)

// Sheet is a snap-to-position sliding sheet. The zero value with a
// Behavior is a valid sheet; configuration fields must not be changed
// after the first call to Layout.
type Sheet struct {
	// Behavior configures the snap positions.
	Behavior SnapBehavior
	// Duration is the base duration of snap animations. The zero
	// value selects a default.
	Duration time.Duration
	// BottomSheet hosts the sheet as a dismissible overlay: it
	// slides in when first laid out, may be dragged below its
	// minimum extent and closes on a strong downward fling.
	BottomSheet bool
	// Controller, if set, is attached during the first layout pass.
	Controller *Controller
	// OnDismiss is called once a bottom sheet has finished its
	// dismissal animation and should be removed by the host.
	OnDismiss func()
	// OnStateChanged is invoked with a fresh snapshot after every
	// extent or scroll change once the sheet is laid out.
	OnStateChanged func(State)

	ext  extent
	pos  position
	anim animator
	view viewport

	heights   Heights
	laidOut   bool
	rebuild   bool
	dismissed bool
	wired     bool

	drag     dragState
	scrimTag struct{}
}

// dragState tracks the pointer currently dragging the sheet, with a
// velocity estimator fed from its positions.
type dragState struct {
	dragging  bool
	pid       pointer.ID
	grab      bool
	last      float32
	total     float32
	estimator fling.Extrapolation
}

// wire connects the extent, fusion position, animator and viewport.
// The sheet session lives until the widget is garbage; all of its
// state advances on the frame clock, never concurrently.
func (s *Sheet) wire() {
	if s.wired {
		return
	}
	s.wired = true
	s.ext.bottomSheet = s.BottomSheet
	s.ext.onChange = func(float32) { s.stateChanged() }
	s.view.onScroll = func() { s.stateChanged() }
	s.anim.ext = &s.ext
	s.anim.content = &s.view
	s.anim.base = s.Duration
	s.pos.ext = &s.ext
	s.pos.content = &s.view
	s.pos.anim = &s.anim
	s.pos.snap = s.Behavior.Snap
	s.pos.dismiss = s.dismiss
	if s.Controller != nil {
		s.Controller.sheet = s
	}
}

func (s *Sheet) stateChanged() {
	if s.laidOut && s.OnStateChanged != nil {
		s.OnStateChanged(s.state())
	}
}

// Dismissed reports whether a bottom sheet has completed its
// dismissal.
func (s *Sheet) Dismissed() bool {
	return s.dismissed
}

// dismiss resolves a dismissal decision: bottom sheets animate past
// their minimum to zero and then report OnDismiss, other sheets
// settle at their minimum extent.
func (s *Sheet) dismiss(velocity float32) {
	if !s.BottomSheet {
		s.anim.snapToExtent(s.ext.min, velocity, true, 0, nil)
		return
	}
	s.anim.snapToExtent(0, velocity, false, 0, func() {
		s.dismissed = true
		if s.OnDismiss != nil {
			s.OnDismiss()
		}
	})
}

// measured folds the measurements of a layout pass into the extent
// bounds and the snap set. The first completed pass marks the sheet
// laid out and moves it to its initial snap position.
func (s *Sheet) measured(h Heights) {
	s.heights = h
	s.ext.available = h.Available
	s.ext.target = h.target()
	snaps := makeSnaps(s.Behavior, h, true)
	s.pos.snaps = snaps
	s.ext.min = snaps[0]
	s.ext.max = snaps[len(snaps)-1]
	if !s.laidOut {
		s.laidOut = true
		i := s.Behavior.InitialSnap
		if i < 0 {
			i = 0
		}
		if i >= len(snaps) {
			i = len(snaps) - 1
		}
		if s.BottomSheet {
			// Slide in from the bottom edge.
			s.ext.current = 0
			s.anim.snapToExtent(snaps[i], 0, false, 0, nil)
		} else {
			s.ext.setExtent(snaps[i])
		}
		return
	}
	// Remeasurement may shrink the bounds under the current extent.
	if s.ext.current > s.ext.max {
		s.ext.setExtent(s.ext.max)
	}
	if !s.BottomSheet && s.ext.current < s.ext.min {
		s.ext.setExtent(s.ext.min)
	}
}

// update folds the pointer events since the last frame into the
// fusion position. Drag deltas and wheel scrolling share one routing
// decision; a release feeds the estimated fling velocity into the
// snap resolver.
func (s *Sheet) update(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  s,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: s.scrollRange(),
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Press:
			if s.drag.dragging {
				break
			}
			// The drag takes over as the only writer.
			s.anim.cancel()
			s.view.stop()
			s.drag.dragging = true
			s.drag.pid = e.PointerID
			s.drag.grab = false
			s.drag.last = e.Position.Y
			s.drag.total = 0
			s.drag.estimator = fling.Extrapolation{}
			s.drag.estimator.Sample(e.Time, e.Position.Y)
		case pointer.Drag:
			if !s.drag.dragging || e.PointerID != s.drag.pid {
				break
			}
			s.drag.estimator.Sample(e.Time, e.Position.Y)
			delta := e.Position.Y - s.drag.last
			s.drag.last = e.Position.Y
			if !s.drag.grab {
				s.drag.total += delta
				if abs32(s.drag.total) > float32(gtx.Dp(touchSlop)) {
					s.drag.grab = true
					gtx.Execute(pointer.GrabCmd{Tag: s, ID: s.drag.pid})
				}
			}
			s.pos.applyUserOffset(delta)
		case pointer.Release:
			if !s.drag.dragging || e.PointerID != s.drag.pid {
				break
			}
			s.drag.dragging = false
			est := s.drag.estimator.Estimate()
			var velocity float32
			if slop := float32(gtx.Dp(touchSlop)); est.Distance < -slop || est.Distance > slop {
				// Screen y grows downward, release velocity
				// grows toward expansion.
				velocity = -est.Velocity
			}
			s.pos.goBallistic(velocity)
			s.pos.didEndScroll()
		case pointer.Cancel:
			s.drag.dragging = false
			s.drag.grab = false
		case pointer.Scroll:
			// Wheel deltas enter the same routing as drags;
			// scrolling down expands the sheet before it
			// scrolls the content.
			s.pos.applyUserOffset(-e.Scroll.Y)
		}
	}
}

// scrollRange is the wheel range of the content extended by the
// extent slack, so scroll events keep arriving when the content
// itself cannot move but the sheet still can.
func (s *Sheet) scrollRange() pointer.ScrollRange {
	up := s.view.offset() + s.ext.additionalMinExtent()*s.ext.available
	down := s.view.maxOffset() - s.view.offset() + s.ext.additionalMaxExtent()*s.ext.available
	return pointer.ScrollRange{Min: -int(up), Max: int(down)}
}

// Layout processes events, advances animations with the frame clock
// and lays the sheet out over the bottom of its constraints.
// header and footer may be nil.
func (s *Sheet) Layout(gtx layout.Context, header, content, footer layout.Widget) layout.Dimensions {
	return s.layout(gtx, nil, header, content, footer)
}

func (s *Sheet) layout(gtx layout.Context, st *SheetStyle, header, content, footer layout.Widget) layout.Dimensions {
	s.wire()
	s.anim.tick(gtx.Now)
	s.view.tick(gtx.Now)
	s.update(gtx)
	defer func() {
		// Events or measurement may have started an animation
		// this very frame, so decide about the next one last.
		if s.rebuild || s.anim.active() || s.view.flinging() {
			s.rebuild = false
			gtx.Execute(op.InvalidateCmd{})
		}
	}()
	if st != nil {
		st.update(gtx, s)
	}

	var pad, margin edges
	if st != nil {
		pad = insetPx(gtx, st.Inset)
		margin = insetPx(gtx, st.Margin)
	}
	maxX := gtx.Constraints.Max.X - margin.l - margin.r
	available := gtx.Constraints.Max.Y - margin.t - margin.b
	innerX := maxX - pad.l - pad.r

	// Measure the children at their natural heights.
	cgtx := gtx
	cgtx.Constraints = layout.Constraints{
		Min: image.Pt(innerX, 0),
		Max: image.Pt(innerX, inf),
	}
	record := func(w layout.Widget) (op.CallOp, int) {
		if w == nil {
			return op.CallOp{}, 0
		}
		macro := op.Record(gtx.Ops)
		dims := w(cgtx)
		return macro.Stop(), dims.Size.Y
	}
	hdrCall, hdrH := record(header)
	cntCall, cntH := record(content)
	ftrCall, ftrH := record(footer)
	s.measured(Heights{
		Content:   float32(cntH),
		Header:    float32(hdrH + pad.t),
		Footer:    float32(ftrH + pad.b),
		Available: float32(available),
	})

	sheetH := int(s.ext.current*float32(available) + 0.5)
	top := available - sheetH

	if st != nil {
		st.drawScrim(gtx, s, gtx.Constraints.Max.X, margin.t+top)
	}

	// The whole sheet is one drag area. It is registered outside the
	// extent offset so pointer positions arrive in window
	// coordinates and do not shift with the sheet between frames.
	area := clip.Rect(image.Rect(margin.l, margin.t+top, margin.l+maxX, margin.t+top+sheetH)).Push(gtx.Ops)
	event.Op(gtx.Ops, s)
	area.Pop()

	defer op.Offset(image.Pt(margin.l, margin.t+top)).Push(gtx.Ops).Pop()
	if st != nil {
		// The rounded surface clips the children with it.
		defer st.clipSurface(gtx, maxX, sheetH).Pop()
	}

	if header != nil {
		hdr := op.Offset(image.Pt(pad.l, pad.t)).Push(gtx.Ops)
		hdrCall.Add(gtx.Ops)
		hdr.Pop()
	}
	chromeTop := pad.t + hdrH
	viewH := sheetH - chromeTop - ftrH - pad.b
	if viewH < 0 {
		viewH = 0
	}
	s.view.update(float32(cntH), float32(viewH))
	vp := clip.Rect(image.Rect(pad.l, chromeTop, pad.l+innerX, chromeTop+viewH)).Push(gtx.Ops)
	tr := op.Offset(image.Pt(pad.l, chromeTop-int(s.view.offset()+0.5))).Push(gtx.Ops)
	cntCall.Add(gtx.Ops)
	tr.Pop()
	vp.Pop()
	if footer != nil {
		ftr := op.Offset(image.Pt(pad.l, sheetH-ftrH-pad.b)).Push(gtx.Ops)
		ftrCall.Add(gtx.Ops)
		ftr.Pop()
	}
	if st != nil {
		st.drawHandle(gtx, maxX)
	}

	return layout.Dimensions{Size: gtx.Constraints.Max}
}

// edges is a layout.Inset resolved to pixels.
type edges struct {
	l, t, r, b int
}

func insetPx(gtx layout.Context, in layout.Inset) edges {
	return edges{
		l: gtx.Dp(in.Left),
		t: gtx.Dp(in.Top),
		r: gtx.Dp(in.Right),
		b: gtx.Dp(in.Bottom),
	}
}
