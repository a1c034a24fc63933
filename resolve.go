// SPDX-License-Identifier: Unlicense OR MIT

package sheet

const (
	// flingThreshold is the release speed, in px/s, above which a
	// gesture counts as a strong directional fling.
	flingThreshold = 1700
	// slowVelocity is the release speed, in px/s, below which the
	// release carries no directional intent.
	slowVelocity = 300
	// projectionFactor scales how far a moderate release speed
	// projects the target extent beyond the current one.
	projectionFactor = 0.45
)

// snapDecision is the outcome of resolving a gesture release.
type snapDecision struct {
	// target is the extent to animate to when animate is set.
	target float32
	// velocity is the release speed, in px/s, carried into the
	// animation or dismissal.
	velocity float32
	animate  bool
	dismiss  bool
}

// resolveSnap picks the snap position a release should settle at.
// velocity is the signed release speed (positive toward expansion)
// and up the direction of the drag that preceded it.
func resolveSnap(snaps []float32, current, velocity float32, up bool) snapDecision {
	absVel := abs32(velocity)
	if absVel > flingThreshold {
		// A strong fling overrides the snap positions: down
		// closes the sheet, up opens it fully.
		if !up {
			return snapDecision{dismiss: true, velocity: absVel}
		}
		if current > 0 {
			return snapDecision{target: snaps[len(snaps)-1], velocity: absVel, animate: true}
		}
		return snapDecision{}
	}
	slow := absVel < slowVelocity
	target := current
	if !slow {
		// Project the release speed into a target extent,
		// scaled down by the remaining headroom.
		dir := float32(-1)
		if up {
			dir = 1
		}
		target += dir * (absVel * projectionFactor * (1 - current)) / flingThreshold
	}
	// Prefer snaps consistent with the drag direction; a slow
	// release considers all of them.
	chosen, ok := nearestSnap(snaps, target, func(s float32) bool {
		switch {
		case slow:
			return true
		case up:
			return s >= target
		default:
			return s <= target
		}
	})
	if !ok {
		chosen, _ = nearestSnap(snaps, target, nil)
	}
	if chosen == 0 {
		// The zero snap is the dismissal sentinel.
		return snapDecision{dismiss: true, velocity: absVel}
	}
	if chosen != current && current > 0 {
		return snapDecision{target: chosen, velocity: absVel, animate: true}
	}
	return snapDecision{}
}

// nearestSnap returns the eligible snap closest to target. A nil
// eligible accepts every snap.
func nearestSnap(snaps []float32, target float32, eligible func(float32) bool) (float32, bool) {
	var (
		best     float32
		bestDist float32
		found    bool
	)
	for _, s := range snaps {
		if eligible != nil && !eligible(s) {
			continue
		}
		d := abs32(s - target)
		if !found || d < bestDist {
			best, bestDist, found = s, d, true
		}
	}
	return best, found
}
