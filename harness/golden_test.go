package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Golden traces pin the byte-exact canonical serialization of a scenario's
// full trajectory. Regenerate with: go test ./harness -update
func TestGoldenTraces(t *testing.T) {
	for _, name := range []string{"two-body-initial", "repulsion-dissolves"} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, loadTestScenario(t, name)))
		})
	}
}
