package fractal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/emergent/dynamics"
	"github.com/roach88/emergent/internal/testutil"
	"github.com/roach88/emergent/system"
)

func newTestAnalyzer() *Analyzer {
	c := dynamics.DefaultClassifier()
	return NewAnalyzer(c.ClassifyRule, "")
}

func TestProject_Histogram(t *testing.T) {
	an := newTestAnalyzer()
	st := system.NewState(system.ScaleAtomic,
		[]system.Entity{
			testutil.Charged("a", 1),
			testutil.Charged("b", -1),
			testutil.Charged("c", 1),
			testutil.Charged("d", 1),
		},
		[]system.Rule{
			{A: "a", B: "b", Strength: 0.8}, // attraction
			{A: "c", B: "d", Strength: 0.5}, // repulsion
		},
	)
	st.Stability = 1.2

	p, err := an.Project(st)
	require.NoError(t, err)

	assert.Equal(t, system.ScaleAtomic, p.Scale)
	assert.Equal(t, 1.2, p.Stability, "stability is carried as-is, never recomputed")
	assert.Equal(t, 4, p.EntityCount)
	assert.Equal(t, Histogram{0.5, 0.5, 0, 0, 0}, p.Histogram)
}

func TestProject_NoRulesZeroHistogram(t *testing.T) {
	an := newTestAnalyzer()
	st := system.NewState(system.ScaleSocial,
		[]system.Entity{testutil.Charged("solo", 1)},
		nil,
	)

	p, err := an.Project(st)
	require.NoError(t, err)
	assert.Equal(t, Histogram{}, p.Histogram)
	assert.Equal(t, 1, p.EntityCount)
}

func TestProject_HonorsOverrides(t *testing.T) {
	an := newTestAnalyzer()
	st := testutil.TwoBody(0.8)
	st.Rules[0].Override = system.Neutral

	p, err := an.Project(st)
	require.NoError(t, err)
	assert.Equal(t, Histogram{0, 0, 0, 0, 1}, p.Histogram)
}

func TestProject_InvalidState(t *testing.T) {
	an := newTestAnalyzer()
	st := system.NewState(system.ScaleAtomic,
		[]system.Entity{testutil.Charged("a", 1)},
		[]system.Rule{{A: "a", B: "ghost", Strength: 1}},
	)

	_, err := an.Project(st)
	require.Error(t, err)
	assert.True(t, system.IsInvalidConfiguration(err))
}

func TestNewAnalyzer_DefaultPositionKey(t *testing.T) {
	an := newTestAnalyzer()
	assert.Equal(t, "position", an.positionKey)
}

func TestNewAnalyzer_NilClassifyPanics(t *testing.T) {
	assert.Panics(t, func() { NewAnalyzer(nil, "") })
}
