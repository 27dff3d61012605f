package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/emergent/dynamics"
	"github.com/roach88/emergent/system"
)

// AssertionError is returned when a scenario assertion fails. It carries
// enough context to debug the failure without re-running the scenario.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

func evaluateAssertion(a Assertion, st *system.State, classifier dynamics.Classifier, result *Result) error {
	switch a.Type {
	case "classify":
		return assertClassify(a, st, classifier)
	case "stability_gte":
		if result.FinalStability < a.Value {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("final stability >= %v", a.Value),
				Actual:   fmt.Sprintf("%v", result.FinalStability),
			}
		}
		return nil
	case "stability_lte":
		if result.FinalStability > a.Value {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("final stability <= %v", a.Value),
				Actual:   fmt.Sprintf("%v", result.FinalStability),
			}
		}
		return nil
	case "snapshot_count":
		if len(result.Snapshots) != a.Count {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%d snapshots", a.Count),
				Actual:   fmt.Sprintf("%d snapshots", len(result.Snapshots)),
			}
		}
		return nil
	case "converged":
		expected := a.Expect == "true"
		if result.Converged != expected {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("converged == %v", expected),
				Actual:   fmt.Sprintf("converged == %v", result.Converged),
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertClassify checks the classified type of an entity pair, honoring a
// declared rule override when one exists for the pair.
func assertClassify(a Assertion, st *system.State, classifier dynamics.Classifier) error {
	if len(a.Pair) != 2 {
		return fmt.Errorf("classify assertion: pair must list exactly two entities")
	}
	ea, ok := st.Entity(a.Pair[0])
	if !ok {
		return fmt.Errorf("classify assertion: unknown entity %q", a.Pair[0])
	}
	eb, ok := st.Entity(a.Pair[1])
	if !ok {
		return fmt.Errorf("classify assertion: unknown entity %q", a.Pair[1])
	}

	got := classifier.Classify(ea, eb)
	want := system.Rule{A: ea.ID, B: eb.ID}.PairKey()
	for _, r := range st.Rules {
		if r.PairKey() == want && r.Override != system.Unclassified {
			got = r.Override
			break
		}
	}

	if string(got) != a.Expect {
		return &AssertionError{
			Type:     "classify",
			Expected: fmt.Sprintf("%s-%s classifies as %s", a.Pair[0], a.Pair[1], a.Expect),
			Actual:   string(got),
		}
	}
	return nil
}
