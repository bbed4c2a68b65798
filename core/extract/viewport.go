// ABOUTME: Viewport post selector for multi-post feeds
// ABOUTME: Picks the candidate container closest to the viewport's vertical midpoint

package extract

import (
	"math"

	"revoice-app-api/core/dom"
)

// mostCentered selects the feed container the user is most plausibly reading:
// the one whose vertical center is nearest the viewport midpoint. A candidate
// must be at least partially inside the viewport to be eligible. Strict
// less-than comparison keeps the earliest candidate on ties. When nothing is
// eligible (transient empty viewport during fast scroll) the first candidate
// is returned.
func mostCentered(candidates []*dom.Element, viewportHeight float64) *dom.Element {
	if len(candidates) == 0 {
		return nil
	}

	midpoint := viewportHeight / 2
	var best *dom.Element
	bestDistance := math.Inf(1)

	for _, candidate := range candidates {
		rect, ok := candidate.Rect()
		if !ok {
			continue
		}
		if rect.Bottom <= 0 || rect.Top >= viewportHeight {
			continue
		}

		distance := math.Abs(rect.Center() - midpoint)
		if distance < bestDistance {
			bestDistance = distance
			best = candidate
		}
	}

	if best == nil {
		return candidates[0]
	}
	return best
}
