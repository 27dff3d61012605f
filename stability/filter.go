package stability

import (
	"math"

	"github.com/roach88/emergent/system"
)

// FilterStable returns the candidates whose stability meets the threshold.
//
// Sound and complete with respect to Score: no returned configuration
// scores below the threshold, and no candidate meeting it is dropped.
// Input order is preserved and the candidates are never mutated; the
// returned slice shares the candidate pointers.
//
// A NaN threshold is rejected fast; a structurally broken candidate fails
// the whole call with its validation error.
func (e *Engine) FilterStable(candidates []*system.State, threshold float64) ([]*system.State, error) {
	if math.IsNaN(threshold) {
		return nil, system.NewInvalidRangeError("threshold", threshold)
	}

	out := make([]*system.State, 0, len(candidates))
	for _, c := range candidates {
		score, err := e.Score(c)
		if err != nil {
			return nil, err
		}
		if score >= threshold {
			out = append(out, c)
		}
	}
	return out, nil
}
