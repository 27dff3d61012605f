package fractal

import (
	"math"

	"github.com/roach88/emergent/system"
)

// Dimension estimates a box-counting-style scaling dimension for a
// configuration: how its coarse-grained mass (cluster count plus surviving
// cross-cluster rule count) shrinks as entities are grouped at increasing
// radii.
//
// At each radius, positioned entities within the radius of each other merge
// into one cluster (single linkage); unpositioned entities always stand
// alone. The dimension is the negated least-squares slope of log(mass)
// against log(radius).
//
// Radii must be positive and finite (invalid-range error otherwise). If
// fewer than two distinct radii yield distinct non-zero masses - a single
// entity, a degenerate arrangement, radii that all coarse-grain to the same
// mass - estimation fails with an insufficient-data error.
func (an *Analyzer) Dimension(st *system.State, radii []float64) (float64, error) {
	if err := st.Validate(); err != nil {
		return 0, err
	}
	for _, r := range radii {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return 0, system.NewInvalidRangeError("grouping_radius", r)
		}
	}

	type sample struct{ logR, logMass float64 }
	var samples []sample
	seenRadii := make(map[float64]bool, len(radii))
	masses := make(map[float64]bool)

	for _, radius := range radii {
		if seenRadii[radius] {
			continue
		}
		seenRadii[radius] = true

		mass := an.coarseGrain(st, radius)
		if mass == 0 {
			continue
		}
		masses[mass] = true
		samples = append(samples, sample{logR: math.Log(radius), logMass: math.Log(mass)})
	}

	if len(samples) < 2 || len(masses) < 2 {
		return 0, system.NewInsufficientDataError(
			"fractal dimension needs at least two distinct radii with distinct non-zero masses (got %d samples, %d distinct masses)",
			len(samples), len(masses))
	}

	// Least-squares slope of logMass over logR.
	var sumX, sumY, sumXY, sumXX float64
	for _, s := range samples {
		sumX += s.logR
		sumY += s.logMass
		sumXY += s.logR * s.logMass
		sumXX += s.logR * s.logR
	}
	n := float64(len(samples))
	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)

	// Mass shrinks as the radius grows, so the slope is negative for any
	// structured arrangement; the dimension is its negation.
	return -slope, nil
}

// coarseGrain groups entities at the given radius and returns the mass:
// cluster count plus the number of rules whose endpoints remain in
// different clusters.
func (an *Analyzer) coarseGrain(st *system.State, radius float64) float64 {
	n := len(st.Entities)
	if n == 0 {
		return 0
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri != rj {
			parent[rj] = ri
		}
	}

	index := make(map[string]int, n)
	positions := make([][]float64, n)
	for i, e := range st.Entities {
		index[e.ID] = i
		if pos, ok := e.Props.Vector(an.positionKey); ok {
			positions[i] = pos
		}
	}

	for i := 0; i < n; i++ {
		if positions[i] == nil {
			continue
		}
		for j := i + 1; j < n; j++ {
			if positions[j] == nil {
				continue
			}
			if distance(positions[i], positions[j]) <= radius {
				union(i, j)
			}
		}
	}

	clusters := make(map[int]bool, n)
	for i := 0; i < n; i++ {
		clusters[find(i)] = true
	}

	crossRules := 0
	for _, r := range st.Rules {
		if find(index[r.A]) != find(index[r.B]) {
			crossRules++
		}
	}

	return float64(len(clusters) + crossRules)
}

// distance is the Euclidean metric over position vectors; a shorter vector
// is treated as zero-padded.
func distance(a, b []float64) float64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		var av, bv float64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		d := av - bv
		sum += d * d
	}
	return math.Sqrt(sum)
}
