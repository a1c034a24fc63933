// SPDX-License-Identifier: Unlicense OR MIT

package sheet

import (
	"testing"
	"time"
)

func newTestPosition(bottomSheet bool) (*position, *extent, *fakeScroller, *[]float32) {
	ext := newTestExtent(bottomSheet)
	content := &fakeScroller{max: 400}
	anim := &animator{ext: ext, content: content}
	anim.tick(time.Now())
	var dismissed []float32
	p := &position{
		ext:     ext,
		content: content,
		anim:    anim,
		snap:    true,
		snaps:   []float32{0, 0.4, 1},
		dismiss: func(v float32) { dismissed = append(dismissed, v) },
	}
	return p, ext, content, &dismissed
}

func TestApplyUserOffsetMovesSheet(t *testing.T) {
	p, ext, content, _ := newTestPosition(false)
	p.applyUserOffset(80)
	if got, want := ext.current, float32(0.4); !near(got, want) {
		t.Errorf("extent = %f, want %f", got, want)
	}
	if content.off != 0 {
		t.Errorf("content offset = %f, want 0", content.off)
	}
	if p.dragUp {
		t.Error("downward drag recorded as upward")
	}
}

func TestApplyUserOffsetScrollsAtMax(t *testing.T) {
	p, ext, content, _ := newTestPosition(false)
	ext.current = 1
	p.applyUserOffset(-50)
	if ext.current != 1 {
		t.Errorf("extent = %f, want unchanged", ext.current)
	}
	if content.off != 50 {
		t.Errorf("content offset = %f, want 50", content.off)
	}
	if !p.dragUp {
		t.Error("upward drag not recorded")
	}
	// Dragging down again peels the sheet away before the content
	// scrolls back.
	content.off = 0
	p.applyUserOffset(80)
	if got, want := ext.current, float32(0.9); !near(got, want) {
		t.Errorf("extent = %f, want %f", got, want)
	}
}

func TestApplyUserOffsetScrolledContentWins(t *testing.T) {
	p, ext, content, _ := newTestPosition(false)
	content.off = 30
	p.applyUserOffset(80)
	if ext.current != 0.5 {
		t.Errorf("extent = %f, want unchanged", ext.current)
	}
	if content.off != 0 {
		t.Errorf("content offset = %f, want 0", content.off)
	}
}

func TestApplyUserOffsetAtMin(t *testing.T) {
	p, ext, content, _ := newTestPosition(false)
	ext.current = ext.min
	p.applyUserOffset(80)
	if ext.current != ext.min {
		t.Errorf("extent = %f, want pinned at the minimum", ext.current)
	}
	if content.off != 0 {
		t.Errorf("content offset = %f, want 0", content.off)
	}

	// A dismissible sheet keeps following the finger below its
	// minimum.
	p, ext, _, _ = newTestPosition(true)
	ext.current = ext.min
	p.applyUserOffset(80)
	if got, want := ext.current, float32(0.1); !near(got, want) {
		t.Errorf("extent = %f, want %f", got, want)
	}
}

func TestGoBallisticDelegatesToContent(t *testing.T) {
	p, ext, content, _ := newTestPosition(false)
	p.goBallistic(0)
	content.off = 30
	p.goBallistic(-500)
	content.off = 0
	ext.current = 1
	p.goBallistic(800)
	if got := len(content.handbacks); got != 3 {
		t.Fatalf("content received %d releases, want 3", got)
	}
	if p.anim.active() {
		t.Error("sheet animation started for a content-only release")
	}
}

func TestGoBallisticSnaps(t *testing.T) {
	p, ext, _, _ := newTestPosition(false)
	p.dragUp = false
	p.goBallistic(-500)
	if !p.anim.active() {
		t.Fatal("no snap animation started")
	}
	now := time.Now()
	for i := 0; i < 100 && p.anim.tick(now); i++ {
		now = now.Add(16 * time.Millisecond)
	}
	if got, want := ext.current, float32(0.4); !near(got, want) {
		t.Errorf("extent settled at %f, want %f", got, want)
	}
}

func TestGoBallisticDismisses(t *testing.T) {
	p, ext, _, dismissed := newTestPosition(true)
	ext.current = 0.1
	p.dragUp = false
	p.goBallistic(-2000)
	if len(*dismissed) != 1 || (*dismissed)[0] != 2000 {
		t.Errorf("dismiss calls = %v, want one at 2000", *dismissed)
	}
}

func TestGoBallisticUnsnapped(t *testing.T) {
	p, _, _, _ := newTestPosition(false)
	p.snap = false
	p.goBallistic(600)
	if !p.anim.active() {
		t.Error("no free deceleration started")
	}
}

func TestDidEndScroll(t *testing.T) {
	p, ext, content, _ := newTestPosition(false)
	ext.current = 0.55
	p.didEndScroll()
	if !p.anim.active() {
		t.Fatal("release between snaps did not settle")
	}

	// An animation already in flight is left alone.
	p, ext, _, _ = newTestPosition(false)
	ext.current = 0.55
	p.anim.snapToExtent(1, 0, true, 100*time.Millisecond, nil)
	p.didEndScroll()
	if p.anim.tween.to != 1 {
		t.Errorf("running animation retargeted to %f", p.anim.tween.to)
	}

	// Scrolled content means the gesture belonged to the content.
	p, ext, content, _ = newTestPosition(false)
	ext.current = 0.55
	content.off = 30
	p.didEndScroll()
	if p.anim.active() {
		t.Error("sheet settled while the content was scrolled")
	}
}

func TestDidEndScrollBottomSheet(t *testing.T) {
	// A dismissible sheet settles even when released beyond the
	// snap range; below its minimum the nearest snap is zero, which
	// dismisses it.
	p, ext, _, dismissed := newTestPosition(true)
	ext.current = 0.15
	p.dragUp = false
	p.didEndScroll()
	if len(*dismissed) != 1 {
		t.Errorf("dismiss calls = %v, want one", *dismissed)
	}
}
