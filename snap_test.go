// SPDX-License-Identifier: Unlicense OR MIT

package sheet

import "testing"

var testHeights = Heights{Content: 1000, Header: 0, Footer: 0, Available: 800}

func TestMakeSnapsSorted(t *testing.T) {
	b := SnapBehavior{
		Snap:        true,
		Snappings:   []float32{1, 0.4, 0.4, 0},
		Positioning: RelativeToAvailable,
	}
	snaps := makeSnaps(b, testHeights, true)
	want := []float32{0, 0.4, 1}
	if len(snaps) != len(want) {
		t.Fatalf("got %v, want %v", snaps, want)
	}
	for i, s := range snaps {
		if s != want[i] {
			t.Fatalf("got %v, want %v", snaps, want)
		}
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i] <= snaps[i-1] {
			t.Errorf("snaps not strictly ascending: %v", snaps)
		}
	}
	for _, s := range snaps {
		if s < 0 || s > 1 {
			t.Errorf("snap %f outside [0, 1]", s)
		}
	}
}

func TestMakeSnapsEmpty(t *testing.T) {
	snaps := makeSnaps(SnapBehavior{}, testHeights, true)
	if len(snaps) == 0 {
		t.Fatal("empty snap set")
	}
	if got, want := snaps[0], float32(1); got != want {
		t.Errorf("default snap = %f, want %f", got, want)
	}
}

func TestNormalizeRelativePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("relative snapping outside [0, 1] did not panic")
		}
	}()
	normalize(1.5, RelativeToAvailable, testHeights, true)
}

func TestNormalizeCeiling(t *testing.T) {
	// Content shorter than the available height caps the extent.
	h := Heights{Content: 400, Available: 800}
	if got, want := normalize(1, RelativeToAvailable, h, true), float32(0.5); got != want {
		t.Errorf("normalize(1) = %f, want %f", got, want)
	}
}

func TestNormalizePixelExpand(t *testing.T) {
	h := Heights{Content: 200, Available: 800}
	if got, want := normalize(Expand, PixelOffset, h, true), float32(0.25); got != want {
		t.Errorf("normalize(Expand) = %f, want %f", got, want)
	}
}

func TestNormalizePixelOffset(t *testing.T) {
	if got, want := normalize(400, PixelOffset, testHeights, true), float32(0.5); got != want {
		t.Errorf("normalize(400px) = %f, want %f", got, want)
	}
}

func TestNormalizeRelativeToSheetSize(t *testing.T) {
	h := Heights{Content: 400, Available: 800}
	// Half of the sheet's own 400px size is a quarter of the
	// available height.
	if got, want := normalize(0.5, RelativeToSheetSize, h, true), float32(0.25); got != want {
		t.Errorf("normalize(0.5) = %f, want %f", got, want)
	}
}

func TestNormalizeBeforeLayout(t *testing.T) {
	for _, pos := range []Positioning{RelativeToAvailable, RelativeToSheetSize, PixelOffset} {
		if got, want := normalize(0.7, pos, Heights{}, false), float32(0.7); got != want {
			t.Errorf("%v: normalize(0.7) before layout = %f, want %f", pos, got, want)
		}
	}
}

func TestDenormalizeRoundTrip(t *testing.T) {
	for _, x := range []float32{0, 0.25, 0.5, 1} {
		got := denormalize(normalize(x, RelativeToAvailable, testHeights, true), RelativeToAvailable, testHeights, true)
		if d := got - x; d < -1e-6 || d > 1e-6 {
			t.Errorf("round trip of %f = %f", x, got)
		}
	}
}

func TestDenormalizePixel(t *testing.T) {
	if got, want := denormalize(0.5, PixelOffset, testHeights, true), float32(400); got != want {
		t.Errorf("denormalize(0.5) = %f, want %f", got, want)
	}
}
