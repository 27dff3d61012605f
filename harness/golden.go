package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/emergent/system"
)

// TraceSnapshot captures the complete trajectory of a scenario run.
// Serialized with the model's canonical JSON for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string
	Converged    bool
	Snapshots    []*system.State
}

// toCanonicalMap converts the trace to the shape MarshalCanonical accepts.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	snapshots := make([]any, len(s.Snapshots))
	for i, st := range s.Snapshots {
		snapshots[i] = st
	}
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"converged":     s.Converged,
		"snapshots":     snapshots,
	}
}

// RunWithGolden executes a scenario and compares its trajectory against a
// golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./harness -update
//
// Returns an error if the scenario itself fails to run; a trace mismatch
// fails the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-computed result's trajectory against the
// named golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TraceSnapshot{
		ScenarioName: scenarioName,
		Converged:    result.Converged,
		Snapshots:    result.Snapshots,
	}
	traceJSON, err := system.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}
	traceJSON = append(traceJSON, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}
