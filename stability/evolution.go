package stability

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/roach88/emergent/system"
)

// strainDecay is the factor a surviving negative-contribution rule's
// strength shrinks by each step: tension that does not dissolve outright
// still relaxes.
const strainDecay = 0.9

// TokenGenerator produces run tokens identifying evolution trajectories.
// Implemented by UUIDv7Generator (production) and the fixed generator in
// internal/testutil (tests). Tokens are audit metadata only; they never
// influence the numeric content of a snapshot.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time, which is helpful when correlating trajectory
// logs. Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// EvolveParams configures Evolve. Every numeric knob is an explicit field,
// threaded through the call - never a global.
type EvolveParams struct {
	// MaxIterations caps the number of evolution steps after the initial
	// snapshot. Zero means the trajectory contains exactly the initial
	// snapshot. The cap is the sole cancellation mechanism.
	MaxIterations int

	// ConvergenceThreshold halts the evolution once the stability change
	// between consecutive snapshots falls below it.
	ConvergenceThreshold float64

	// DissolutionThreshold removes any rule whose evaluated contribution
	// falls below it - unstable configurations dissolve.
	DissolutionThreshold float64

	// Jitter scales a seeded uniform perturbation applied to surviving
	// rule strengths each step. Zero disables randomness entirely.
	Jitter float64

	// Seed initializes the perturbation source. Ignored when Jitter is
	// zero. Same input, same seed: identical snapshot sequence.
	Seed uint64
}

// Trajectory is a lazy, finite, single-pass sequence of evolution
// snapshots. Each element is computed only when requested, so a caller can
// stop consuming after detecting whatever it was looking for without
// paying for the remaining iterations.
//
// A trajectory is not rewindable: a second traversal requires re-invoking
// Evolve with the same input and seed. It is not safe for concurrent use.
type Trajectory struct {
	token  string
	engine *Engine
	params EvolveParams

	current *system.State
	rng     *rand.Rand

	started bool
	done    bool
	iters   int
	yielded int
	err     error
}

// Evolve starts an evolution of the given state.
//
// The returned trajectory always yields at least the initial snapshot (a
// scored clone; the input state is never mutated). Each subsequent step
// dissolves rules whose contribution falls below the dissolution
// threshold, decays surviving tension, applies the optional seeded jitter,
// and rescores. The trajectory halts on convergence or on the iteration
// cap, whichever comes first.
//
// Parameter validation is fail-fast: NaN or negative thresholds are
// rejected here, before any iteration begins.
//
// A nil gen defaults to UUIDv7Generator. Tokens identify a run for audit
// and logging; snapshots are byte-identical regardless of generator.
func (e *Engine) Evolve(st *system.State, params EvolveParams, gen TokenGenerator) (*Trajectory, error) {
	if params.MaxIterations < 0 {
		return nil, system.NewInvalidRangeError("max_iterations", float64(params.MaxIterations))
	}
	if math.IsNaN(params.ConvergenceThreshold) || params.ConvergenceThreshold < 0 {
		return nil, system.NewInvalidRangeError("convergence_threshold", params.ConvergenceThreshold)
	}
	if math.IsNaN(params.DissolutionThreshold) {
		return nil, system.NewInvalidRangeError("dissolution_threshold", params.DissolutionThreshold)
	}
	if math.IsNaN(params.Jitter) || params.Jitter < 0 {
		return nil, system.NewInvalidRangeError("jitter", params.Jitter)
	}

	score, err := e.Score(st)
	if err != nil {
		return nil, err
	}

	initial := st.Clone()
	initial.Stability = score

	if gen == nil {
		gen = UUIDv7Generator{}
	}

	t := &Trajectory{
		token:   gen.Generate(),
		engine:  e,
		params:  params,
		current: initial,
	}
	if params.Jitter > 0 {
		t.rng = rand.New(rand.NewPCG(params.Seed, 0))
	}

	slog.Debug("evolution started",
		"token", t.token,
		"entities", len(st.Entities),
		"rules", len(st.Rules),
		"initial_stability", score)

	return t, nil
}

// Token returns the run token identifying this trajectory.
func (t *Trajectory) Token() string { return t.token }

// Steps returns the number of snapshots yielded so far.
func (t *Trajectory) Steps() int { return t.yielded }

// Next returns the next snapshot. The first call yields the initial
// snapshot; subsequent calls advance the evolution one step. The second
// result is false once the trajectory is exhausted - check Err() then to
// distinguish convergence from an exhausted iteration cap.
func (t *Trajectory) Next() (*system.State, bool) {
	if t.done {
		return nil, false
	}
	if !t.started {
		t.started = true
		t.yielded++
		return t.current, true
	}
	if t.iters >= t.params.MaxIterations {
		t.done = true
		t.err = system.NewNonConvergenceError(t.iters)
		return nil, false
	}

	t.iters++
	next := t.step()
	delta := math.Abs(next.Stability - t.current.Stability)
	t.current = next
	t.yielded++

	slog.Debug("evolution step",
		"token", t.token,
		"iteration", t.iters,
		"stability", next.Stability,
		"rules", len(next.Rules),
		"delta", delta)

	if delta < t.params.ConvergenceThreshold {
		t.done = true
	}
	return next, true
}

// Err reports how an exhausted trajectory ended: nil after convergence, a
// non-convergence error after the iteration cap ran out first. Before
// exhaustion it is always nil.
func (t *Trajectory) Err() error { return t.err }

// step produces the next snapshot from the current one. Rules are visited
// in declaration order for determinism.
func (t *Trajectory) step() *system.State {
	next := t.current.Clone()
	kept := next.Rules[:0]
	for _, r := range next.Rules {
		a, _ := next.Entity(r.A)
		b, _ := next.Entity(r.B)
		contribution := t.engine.EvaluateRule(a, b, r)
		if contribution < t.params.DissolutionThreshold {
			continue // unstable configurations dissolve
		}
		if contribution < 0 {
			r.Strength *= strainDecay
		}
		if t.rng != nil {
			r.Strength += t.params.Jitter * (t.rng.Float64()*2 - 1)
		}
		kept = append(kept, r)
	}
	next.Rules = kept

	// The clone already validated as part of scoring the parent; only the
	// strengths changed, and those stay finite.
	score, _ := t.engine.Score(next)
	next.Stability = score
	return next
}
