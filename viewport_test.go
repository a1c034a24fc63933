// SPDX-License-Identifier: Unlicense OR MIT

package sheet

import (
	"testing"
	"time"
)

func TestViewportClampsOffset(t *testing.T) {
	v := viewport{content: 1000, height: 400}
	v.setOffset(-10)
	if v.off != 0 {
		t.Errorf("offset = %f, want 0", v.off)
	}
	v.setOffset(900)
	if v.off != 600 {
		t.Errorf("offset = %f, want 600", v.off)
	}
	// Shrinking the content pulls the offset back into range.
	v.update(500, 400)
	if v.off != 100 {
		t.Errorf("offset = %f after remeasure, want 100", v.off)
	}
}

func TestViewportBallistic(t *testing.T) {
	v := viewport{content: 1000, height: 400}
	now := time.Now()
	v.tick(now)
	v.ballistic(800)
	for i := 0; i < 200 && v.flinging(); i++ {
		now = now.Add(16 * time.Millisecond)
		v.tick(now)
	}
	if v.off <= 0 {
		t.Errorf("offset = %f, want momentum to have scrolled", v.off)
	}
	if v.flinging() {
		t.Error("fling still active after coming to rest")
	}
}

func TestViewportBallisticStopsAtBound(t *testing.T) {
	v := viewport{content: 1000, height: 400, off: 590}
	now := time.Now()
	v.tick(now)
	v.ballistic(2000)
	for i := 0; i < 200 && v.flinging(); i++ {
		now = now.Add(16 * time.Millisecond)
		v.tick(now)
	}
	if v.off != 600 {
		t.Errorf("offset = %f, want pinned at 600", v.off)
	}
}
