// SPDX-License-Identifier: Unlicense OR MIT

package sheet

import (
	"time"

	"github.com/mattermoran/sliding-sheet/internal/fling"
)

// viewport scrolls the sheet content inside the space the extent
// leaves for it. It is the contentScroller the fusion position and
// the animator share their gestures with.
type viewport struct {
	off float32
	// content and height are the content height and the visible
	// height, in pixels.
	content float32
	height  float32

	now time.Time
	fl  fling.Animation

	onScroll func()
}

func (v *viewport) offset() float32 {
	return v.off
}

func (v *viewport) maxOffset() float32 {
	return max32(v.content-v.height, 0)
}

func (v *viewport) setOffset(off float32) {
	off = clamp32(off, 0, v.maxOffset())
	if off == v.off {
		return
	}
	v.off = off
	if v.onScroll != nil {
		v.onScroll()
	}
}

func (v *viewport) ballistic(velocity float32) {
	v.fl.Start(v.now, velocity)
}

func (v *viewport) flinging() bool {
	return v.fl.Active()
}

func (v *viewport) stop() {
	v.fl.Stop()
}

// update records the measurements of the current layout pass and
// keeps the offset within the scrollable range.
func (v *viewport) update(content, height float32) {
	v.content = content
	v.height = height
	v.off = clamp32(v.off, 0, v.maxOffset())
}

// tick advances momentum scrolling and reports whether a next frame
// is needed.
func (v *viewport) tick(now time.Time) bool {
	v.now = now
	if !v.fl.Active() {
		return false
	}
	v.setOffset(v.off + v.fl.Tick(now))
	if v.off <= 0 || v.off >= v.maxOffset() {
		// The momentum clamps at the scroll bounds.
		v.fl.Stop()
	}
	return v.fl.Active()
}
