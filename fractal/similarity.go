package fractal

import (
	"math"

	"github.com/roach88/emergent/system"
)

// Feature weights for similarity. Stability and histogram shape carry most
// of the signal; entity count is a weak tie-breaker because configurations
// at wildly different scales legitimately differ in size.
const (
	weightStability = 0.4
	weightHistogram = 0.4
	weightCount     = 0.2
)

// Similarity measures the structural similarity of two patterns on [0, 1].
//
// It is one minus a weighted sum of normalized feature distances, clamped
// to [0, 1]. Symmetric: Similarity(a, b) == Similarity(b, a); and a
// pattern compared with itself yields exactly 1.0.
func (an *Analyzer) Similarity(a, b Pattern) float64 {
	dStab := math.Abs(a.Stability-b.Stability) / (1 + math.Abs(a.Stability) + math.Abs(b.Stability))

	// Maximum L2 distance between two probability vectors is sqrt(2).
	sum := 0.0
	for i := range a.Histogram {
		diff := a.Histogram[i] - b.Histogram[i]
		sum += diff * diff
	}
	dHist := math.Sqrt(sum) / math.Sqrt2

	dCount := 0.0
	if a.EntityCount != b.EntityCount {
		lo, hi := a.EntityCount, b.EntityCount
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi > 0 {
			dCount = 1 - float64(lo)/float64(hi)
		}
	}

	s := 1 - (weightStability*dStab + weightHistogram*dHist + weightCount*dCount)
	return math.Max(0, math.Min(1, s))
}

// Repetition records one cross-scale pair whose similarity met the
// threshold: the same structural pattern showing up at two scales.
type Repetition struct {
	ScaleA     system.Scale
	ScaleB     system.Scale
	Similarity float64
}

// FindRepetitions scans all unordered pattern pairs and returns those whose
// similarity meets the threshold across DISTINCT scale labels. Same-scale
// pairs are excluded - the property under test is cross-scale universality,
// and two configurations at the same scale resembling each other says
// nothing about it.
//
// Pairs are visited in input order (i < j), so the result is deterministic
// for a given input order.
func (an *Analyzer) FindRepetitions(patterns []Pattern, threshold float64) ([]Repetition, error) {
	if math.IsNaN(threshold) {
		return nil, system.NewInvalidRangeError("threshold", threshold)
	}

	var out []Repetition
	for i := 0; i < len(patterns); i++ {
		for j := i + 1; j < len(patterns); j++ {
			if patterns[i].Scale == patterns[j].Scale {
				continue
			}
			s := an.Similarity(patterns[i], patterns[j])
			if s >= threshold {
				out = append(out, Repetition{
					ScaleA:     patterns[i].Scale,
					ScaleB:     patterns[j].Scale,
					Similarity: s,
				})
			}
		}
	}
	return out, nil
}
