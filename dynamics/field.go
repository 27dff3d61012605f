package dynamics

import (
	"math"

	"github.com/roach88/emergent/system"
)

// Unbounded requests a field with no range cutoff. The field then applies
// the decaying kernel e^-d instead of the bounded kernel, keeping every
// per-entity sum finite. Passing any other non-positive or NaN limit is an
// error; only an explicitly unbounded range gets the convergence-safe path.
var Unbounded = math.Inf(1)

// Field assigns each positioned entity an effective local potential
// contributed by all other entities within the interaction range.
//
// Lower potential means stronger binding: attraction and resonance dig
// potential wells, repulsion raises hills, exchange scales with how
// balanced the transfer is, and neutral pairs contribute nothing. Entities
// without a position vector neither contribute nor receive.
//
// A Field is an immutable derivation of one state snapshot; it is safe for
// concurrent reads.
type Field struct {
	classifier Classifier
	rangeLimit float64

	entities  map[string]system.Entity
	rules     map[string]system.Rule
	order     []string             // positioned entity IDs in declaration order
	positions map[string][]float64 // positioned entities only

	potentials map[string]float64
}

// BuildField derives the interaction field of a state at the given range
// limit. Fails with an invalid-range error for NaN, zero, or negative
// limits; pass Unbounded for an explicitly unlimited range.
//
// Where a rule exists for a pair, its declared strength (and override, if
// any) weights the contribution; unruled pairs couple with unit strength.
func BuildField(st *system.State, rangeLimit float64, classifier Classifier) (*Field, error) {
	if math.IsNaN(rangeLimit) || rangeLimit <= 0 {
		return nil, system.NewInvalidRangeError("range_limit", rangeLimit)
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}

	f := &Field{
		classifier: classifier,
		rangeLimit: rangeLimit,
		entities:   make(map[string]system.Entity, len(st.Entities)),
		rules:      make(map[string]system.Rule, len(st.Rules)),
		positions:  make(map[string][]float64),
		potentials: make(map[string]float64),
	}
	for _, e := range st.Entities {
		f.entities[e.ID] = e
		if pos, ok := e.Props.Vector(classifier.PositionKey); ok {
			f.order = append(f.order, e.ID)
			f.positions[e.ID] = pos
		}
	}
	for _, r := range st.Rules {
		f.rules[r.PairKey()] = r
	}

	for _, id := range f.order {
		f.potentials[id] = f.potentialWith(id, f.positions[id], f.positions)
	}
	return f, nil
}

// RangeLimit returns the limit the field was built with.
func (f *Field) RangeLimit() float64 { return f.rangeLimit }

// EntityIDs returns the positioned entity IDs in declaration order.
func (f *Field) EntityIDs() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Potential returns the local potential of a positioned entity. The second
// result is false for unknown or unpositioned entities.
func (f *Field) Potential(id string) (float64, bool) {
	p, ok := f.potentials[id]
	return p, ok
}

// PotentialAt evaluates the potential the entity would see at an arbitrary
// position, with every other entity held at its field position. This is the
// probe the equilibrium search descends on.
func (f *Field) PotentialAt(id string, pos []float64) float64 {
	return f.potentialWith(id, pos, f.positions)
}

// potentialWith evaluates the potential of id at pos against the supplied
// position assignment. The equilibrium search passes its current iterate so
// entities respond to each other's moves.
func (f *Field) potentialWith(id string, pos []float64, positions map[string][]float64) float64 {
	self, ok := f.entities[id]
	if !ok {
		return 0
	}
	total := 0.0
	for _, otherID := range f.order {
		if otherID == id {
			continue
		}
		other := f.entities[otherID]
		d := euclidean(pos, positions[otherID])
		w := f.kernel(d)
		if w == 0 {
			continue
		}
		total += f.pairCoupling(self, other) * w
	}
	return total
}

// kernel is the distance weighting. Bounded ranges cut off sharply at the
// limit; the unbounded range uses an exponentially decaying kernel so the
// sum converges for any entity count.
func (f *Field) kernel(d float64) float64 {
	if math.IsInf(f.rangeLimit, 1) {
		return math.Exp(-d)
	}
	if d > f.rangeLimit {
		return 0
	}
	return 1 / (1 + d*d)
}

// pairCoupling returns the signed magnitude a pair contributes per unit of
// kernel weight. Negative couplings lower the local potential (binding).
func (f *Field) pairCoupling(a, b system.Entity) float64 {
	strength := 1.0
	var rule system.Rule
	hasRule := false
	if r, ok := f.rules[(system.Rule{A: a.ID, B: b.ID}).PairKey()]; ok {
		rule = r
		hasRule = true
		strength = math.Abs(r.Strength)
	}

	var t system.InteractionType
	if hasRule {
		t = f.classifier.ClassifyRule(a, b, rule)
	} else {
		t = f.classifier.Classify(a, b)
	}

	switch t {
	case system.Attraction, system.Resonance:
		return -strength
	case system.Repulsion:
		return strength
	case system.Exchange:
		// Balanced exchange binds; a wide gap approaches repulsion.
		gap := f.classifier.TransferGap(a, b)
		return -strength * (2/(1+gap) - 1)
	default:
		return 0
	}
}

// euclidean computes the distance between two positions. A shorter vector
// is treated as zero-padded so mixed dimensionality never panics.
func euclidean(a, b []float64) float64 {
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
		diff := av - bv
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
