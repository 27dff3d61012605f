package stability

import (
	"math"

	"github.com/roach88/emergent/dynamics"
	"github.com/roach88/emergent/system"
)

// NoRuleBaseline is the score of a configuration with entities but no
// rules. Isolated entities persist with zero tension - "effortlessly
// stable" - which is distinct from the 0.0 an empty configuration scores.
const NoRuleBaseline = 1.0

// Engine scores configurations and evaluates individual rules.
//
// Engines hold no mutable state and are safe for concurrent use; every
// call operates on the caller's own State instance.
type Engine struct {
	classifier dynamics.Classifier
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassifier sets the classifier used to derive rule types when a rule
// carries no explicit override.
func WithClassifier(c dynamics.Classifier) Option {
	return func(e *Engine) {
		e.classifier = c
	}
}

// New creates an Engine. Without options it classifies with
// dynamics.DefaultClassifier().
func New(opts ...Option) *Engine {
	e := &Engine{classifier: dynamics.DefaultClassifier()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvaluateRule scores one rule in isolation.
//
// Sign convention: positive when the rule's effective type is attraction or
// resonance, negative when repulsion, a signed function of transfer balance
// when exchange, and zero when neutral. This is the exact per-rule
// contribution Score aggregates, exposed for testing and for
// classification cross-checks.
func (e *Engine) EvaluateRule(a, b system.Entity, r system.Rule) float64 {
	magnitude := math.Abs(r.Strength)
	switch e.classifier.ClassifyRule(a, b, r) {
	case system.Attraction, system.Resonance:
		return magnitude
	case system.Repulsion:
		return -magnitude
	case system.Exchange:
		// 2/(1+gap) - 1 maps a balanced exchange (gap 0) to +1 and a
		// badly imbalanced one to -1 asymptotically.
		gap := e.classifier.TransferGap(a, b)
		return magnitude * (2/(1+gap) - 1)
	default:
		return 0
	}
}

// Score computes the stability of a configuration.
//
// Fails with an invalid-configuration error if any rule references an
// absent entity (or the state is otherwise structurally broken). Returns
// exactly 0.0 for a configuration with zero entities; with entities but no
// rules the empty sum leaves exactly the NoRuleBaseline.
//
// Score is pure: it never mutates the state. Callers that want the score
// attached to the snapshot assign it to State.Stability themselves.
func (e *Engine) Score(st *system.State) (float64, error) {
	if err := st.Validate(); err != nil {
		return 0, err
	}
	if len(st.Entities) == 0 {
		return 0.0, nil
	}

	sum := 0.0
	for _, r := range st.Rules {
		a, _ := st.Entity(r.A)
		b, _ := st.Entity(r.B)
		sum += e.EvaluateRule(a, b, r)
	}
	return NoRuleBaseline + sum/float64(len(st.Entities)), nil
}
