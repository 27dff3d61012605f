package harness

import (
	"fmt"

	"github.com/roach88/emergent/dynamics"
	"github.com/roach88/emergent/internal/testutil"
	"github.com/roach88/emergent/stability"
	"github.com/roach88/emergent/system"
)

// fixedRunToken identifies every harness trajectory. Scenario runs must be
// byte-reproducible, so the harness never uses UUID tokens.
const fixedRunToken = "scenario-run"

// Result captures the outcome of running a scenario.
type Result struct {
	ScenarioName string

	// Snapshots is the full trajectory, or the single scored initial
	// state when the scenario declares no evolution.
	Snapshots []*system.State

	// Converged is true when the evolution met its convergence threshold
	// (trivially true without an evolution section).
	Converged bool

	// FinalStability is the stability of the last snapshot.
	FinalStability float64

	// Failures collects every assertion that did not hold.
	Failures []error
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// Run executes a scenario and returns its result.
//
// Execution is fully deterministic: a fixed run token, the scenario's
// explicit parameters, and engines that carry no hidden state. An error is
// returned only when the scenario itself is unusable (bad system document,
// bad parameters); assertion failures land in Result.Failures.
func Run(scenario *Scenario) (*Result, error) {
	st, err := scenario.BuildState()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	classifier := dynamics.DefaultClassifier()
	engine := stability.New(stability.WithClassifier(classifier))

	result := &Result{ScenarioName: scenario.Name, Converged: true}

	if scenario.Evolve == nil {
		score, err := engine.Score(st)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		scored := st.Clone()
		scored.Stability = score
		result.Snapshots = []*system.State{scored}
	} else {
		params := stability.EvolveParams{
			MaxIterations:        scenario.Evolve.MaxIterations,
			ConvergenceThreshold: scenario.Evolve.ConvergenceThreshold,
			DissolutionThreshold: scenario.Evolve.DissolutionThreshold,
			Jitter:               scenario.Evolve.Jitter,
			Seed:                 scenario.Evolve.Seed,
		}
		traj, err := engine.Evolve(st, params, testutil.NewFixedTokenGenerator(fixedRunToken))
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		for snapshot, ok := traj.Next(); ok; snapshot, ok = traj.Next() {
			result.Snapshots = append(result.Snapshots, snapshot)
		}
		result.Converged = traj.Err() == nil
	}

	result.FinalStability = result.Snapshots[len(result.Snapshots)-1].Stability

	for _, assertion := range scenario.Assertions {
		if err := evaluateAssertion(assertion, st, classifier, result); err != nil {
			result.Failures = append(result.Failures, err)
		}
	}
	return result, nil
}
