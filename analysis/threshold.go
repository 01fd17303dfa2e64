// Package analysis implements the hit-rate computation core: threshold
// selection, recent-game windowing, opponent-defense aggregation, and the
// per-player summary engine. Everything here is a pure function of its
// inputs — no I/O, no shared state, safe to call concurrently.
package analysis

import (
	"math"
	"sort"
)

// HitRateThreshold returns the highest stat floor S such that the player
// reached at least S in at least pct percent of the given games.
//
// NaN entries (missing/non-numeric source cells) are dropped before
// computing. An empty set yields 0 — a defined sentinel, not an error.
// The result is always one of the input values, never an interpolation:
// candidate floors are the distinct observed values from highest to lowest,
// and the first one whose hit rate meets the target wins. The scan always
// terminates because the minimum value has a hit rate of 1.0.
func HitRateThreshold(values []float64, pct float64) float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		clean = append(clean, v)
	}
	if len(clean) == 0 {
		return 0
	}

	target := pct / 100.0
	n := float64(len(clean))

	candidates := distinctDesc(clean)
	for _, s := range candidates {
		hits := 0
		for _, v := range clean {
			if v >= s {
				hits++
			}
		}
		if float64(hits)/n >= target {
			return s
		}
	}

	// Unreachable for pct <= 100; the minimum is the terminal floor.
	return candidates[len(candidates)-1]
}

// distinctDesc returns the distinct values sorted from highest to lowest.
func distinctDesc(values []float64) []float64 {
	seen := make(map[float64]struct{}, len(values))
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}
