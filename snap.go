// SPDX-License-Identifier: Unlicense OR MIT

package sheet

import (
	"math"
	"sort"
)

// Positioning determines the unit of the values in
// SnapBehavior.Snappings.
type Positioning uint8

const (
	// RelativeToAvailable interprets a snapping as a fraction in
	// [0, 1] of the height available to the sheet.
	RelativeToAvailable Positioning = iota
	// RelativeToSheetSize interprets a snapping as a fraction in
	// [0, 1] of the sheet's own size, that is the smaller of its
	// total content height and the available height.
	RelativeToSheetSize
	// PixelOffset interprets a snapping as an absolute height in
	// pixels. The Expand sentinel maps to the full available height.
	PixelOffset
)

// Expand is the PixelOffset sentinel for "as high as possible".
var Expand = float32(math.Inf(1))

// SnapBehavior configures the positions a sheet settles at after a
// gesture ends.
type SnapBehavior struct {
	// Snap enables settling at the Snappings. If false, the sheet
	// decelerates freely between its bounds instead.
	Snap bool
	// Snappings are the stop positions, interpreted according to
	// Positioning. The first and last normalized values become the
	// sheet's minimum and maximum extent.
	Snappings []float32
	// Positioning is the unit of Snappings.
	Positioning Positioning
	// InitialSnap indexes into Snappings and selects the position
	// the sheet opens at.
	InitialSnap int
}

// Heights are the pixel measurements of one sheet layout pass.
type Heights struct {
	Content   float32
	Header    float32
	Footer    float32
	Available float32
}

// total is the height of the sheet content including its chrome.
func (h Heights) total() float32 {
	return h.Content + h.Header + h.Footer
}

// target is the height the sheet covers when fully expanded.
func (h Heights) target() float32 {
	return min32(h.total(), h.Available)
}

// maxPossibleExtent is the largest extent the content can actually
// fill.
func (h Heights) maxPossibleExtent() float32 {
	if h.Available <= 0 {
		return 1
	}
	return clamp32(h.target()/h.Available, 0, 1)
}

// normalize converts a configured snapping into an extent in [0, 1].
// Before the first layout pass the heights are unknown and
// normalization degrades to an identity clamp.
//
// Relative snappings outside [0, 1] are programmer errors.
func normalize(raw float32, pos Positioning, h Heights, laidOut bool) float32 {
	if pos != PixelOffset && (raw < 0 || raw > 1) {
		panic("sheet: relative snapping outside [0, 1]")
	}
	if !laidOut {
		if raw == Expand {
			return 1
		}
		return clamp32(raw, 0, 1)
	}
	ceil := h.maxPossibleExtent()
	switch pos {
	case RelativeToAvailable:
		return clamp32(raw, 0, ceil)
	case RelativeToSheetSize:
		if h.Available <= 0 {
			return clamp32(raw, 0, ceil)
		}
		return clamp32(raw*h.target()/h.Available, 0, ceil)
	case PixelOffset:
		if raw == Expand {
			return ceil
		}
		if h.Available <= 0 {
			return clamp32(raw, 0, ceil)
		}
		return clamp32(raw/h.Available, 0, ceil)
	default:
		panic("invalid Positioning")
	}
}

// denormalize is the inverse of normalize, converting an extent back
// into the units the snapping was configured in.
func denormalize(extent float32, pos Positioning, h Heights, laidOut bool) float32 {
	if !laidOut {
		return clamp32(extent, 0, 1)
	}
	switch pos {
	case RelativeToAvailable:
		return extent
	case RelativeToSheetSize:
		if t := h.target(); t > 0 {
			return extent * h.Available / t
		}
		return extent
	case PixelOffset:
		return extent * h.Available
	default:
		panic("invalid Positioning")
	}
}

// makeSnaps normalizes the configured snappings into a non-empty,
// ascending, deduplicated extent sequence.
func makeSnaps(b SnapBehavior, h Heights, laidOut bool) []float32 {
	snaps := make([]float32, 0, len(b.Snappings)+1)
	for _, raw := range b.Snappings {
		snaps = append(snaps, normalize(raw, b.Positioning, h, laidOut))
	}
	if len(snaps) == 0 {
		snaps = append(snaps, normalize(Expand, PixelOffset, h, laidOut))
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i] < snaps[j] })
	dedup := snaps[:1]
	for _, s := range snaps[1:] {
		if s != dedup[len(dedup)-1] {
			dedup = append(dedup, s)
		}
	}
	return dedup
}

func (p Positioning) String() string {
	switch p {
	case RelativeToAvailable:
		return "RelativeToAvailable"
	case RelativeToSheetSize:
		return "RelativeToSheetSize"
	case PixelOffset:
		return "PixelOffset"
	default:
		panic("invalid Positioning")
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
