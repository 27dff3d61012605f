package fractal

import "github.com/roach88/emergent/system"

// ClassifyFunc resolves the effective interaction type of a rule. Callers
// typically pass dynamics.Classifier.ClassifyRule; injecting a function
// keeps this package dependent only on the model.
type ClassifyFunc func(a, b system.Entity, r system.Rule) system.InteractionType

// Analyzer projects configurations into scale-tagged patterns and measures
// their structural similarity. Stateless and safe for concurrent use.
type Analyzer struct {
	classify ClassifyFunc

	// positionKey names the vector property the dimension estimator
	// clusters on.
	positionKey string
}

// NewAnalyzer creates an Analyzer. A nil classify function panics here
// rather than on the first ruled projection; positionKey defaults to
// "position" when empty.
func NewAnalyzer(classify ClassifyFunc, positionKey string) *Analyzer {
	if classify == nil {
		panic("fractal: classify function must not be nil")
	}
	if positionKey == "" {
		positionKey = "position"
	}
	return &Analyzer{classify: classify, positionKey: positionKey}
}

// Histogram is a normalized interaction-type histogram. Indices follow
// system.InteractionTypes order; entries sum to 1 unless the source state
// had no rules, in which case every entry is zero.
type Histogram [5]float64

// Pattern is a lightweight projection of a configuration used for
// cross-scale comparison. Patterns are immutable values; they are produced
// by Project, compared, and discarded.
type Pattern struct {
	Scale       system.Scale
	Stability   float64
	EntityCount int
	Histogram   Histogram
}

// Project summarizes a configuration into a Pattern. Pure and
// side-effect-free: the state is read, never written.
//
// The state's Stability field is carried into the pattern as-is; callers
// score the configuration (or take an evolution snapshot, which arrives
// scored) before projecting.
func (an *Analyzer) Project(st *system.State) (Pattern, error) {
	if err := st.Validate(); err != nil {
		return Pattern{}, err
	}

	p := Pattern{
		Scale:       st.Scale,
		Stability:   st.Stability,
		EntityCount: len(st.Entities),
	}
	if len(st.Rules) == 0 {
		return p, nil
	}

	index := make(map[system.InteractionType]int, len(system.InteractionTypes))
	for i, t := range system.InteractionTypes {
		index[t] = i
	}
	for _, r := range st.Rules {
		a, _ := st.Entity(r.A)
		b, _ := st.Entity(r.B)
		if i, ok := index[an.classify(a, b, r)]; ok {
			p.Histogram[i]++
		}
	}
	total := float64(len(st.Rules))
	for i := range p.Histogram {
		p.Histogram[i] /= total
	}
	return p, nil
}
