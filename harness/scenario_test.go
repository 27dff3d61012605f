package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/emergent/system"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "two-body-initial.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "two-body-initial", s.Name)
	assert.NotEmpty(t, s.Description)
	require.NotNil(t, s.Evolve)
	assert.Equal(t, 0, s.Evolve.MaxIterations)
	assert.Equal(t, 0.001, s.Evolve.ConvergenceThreshold)
	assert.Len(t, s.Assertions, 4)
	assert.Equal(t, []string{"proton", "electron"}, s.Assertions[2].Pair)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "scenarios", "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_RequiresName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anonymous.yaml")
	require.NoError(t, os.WriteFile(path, []byte("description: nameless\n"), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no name")
}

func TestBuildState(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "two-body-initial.yaml"))
	require.NoError(t, err)

	st, err := s.BuildState()
	require.NoError(t, err)

	assert.Equal(t, system.ScaleAtomic, st.Scale)
	require.Len(t, st.Entities, 2)
	assert.Equal(t, "electron", st.Entities[0].ID)
	charge, ok := st.Entities[0].Props.Number("charge")
	require.True(t, ok)
	assert.Equal(t, -1.0, charge)

	require.Len(t, st.Rules, 1)
	assert.Equal(t, "proton", st.Rules[0].A)
	assert.Equal(t, 0.8, st.Rules[0].Strength)
	assert.Equal(t, system.Unclassified, st.Rules[0].Override)
}

func TestBuildState_PropertyShapes(t *testing.T) {
	s := &Scenario{
		Name: "shapes",
		System: SystemDoc{
			Scale: "molecular",
			Entities: []EntityDoc{{
				ID: "water",
				Properties: map[string]any{
					"charge":   0,
					"mass":     18.015,
					"phase":    "liquid",
					"position": []any{0, 1.5, 3},
				},
			}},
		},
	}

	st, err := s.BuildState()
	require.NoError(t, err)

	props := st.Entities[0].Props
	charge, ok := props.Number("charge")
	require.True(t, ok)
	assert.Equal(t, 0.0, charge)
	mass, ok := props.Number("mass")
	require.True(t, ok)
	assert.Equal(t, 18.015, mass)
	phase, ok := props.Label("phase")
	require.True(t, ok)
	assert.Equal(t, "liquid", phase)
	pos, ok := props.Vector("position")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1.5, 3}, pos)
}

func TestBuildState_Rejections(t *testing.T) {
	base := func() *Scenario {
		return &Scenario{
			Name: "bad",
			System: SystemDoc{
				Scale:    "atomic",
				Entities: []EntityDoc{{ID: "a"}, {ID: "b"}},
				Rules:    []RuleDoc{{Between: []string{"a", "b"}, Strength: 0.5}},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Scenario)
	}{
		{
			name:   "unknown scale",
			mutate: func(s *Scenario) { s.System.Scale = "cosmic" },
		},
		{
			name:   "rule with one endpoint",
			mutate: func(s *Scenario) { s.System.Rules[0].Between = []string{"a"} },
		},
		{
			name:   "unknown rule type",
			mutate: func(s *Scenario) { s.System.Rules[0].Type = "gravity" },
		},
		{
			name:   "rule references undeclared entity",
			mutate: func(s *Scenario) { s.System.Rules[0].Between = []string{"a", "ghost"} },
		},
		{
			name: "unsupported property value",
			mutate: func(s *Scenario) {
				s.System.Entities[0].Properties = map[string]any{"nested": map[string]any{"x": 1}}
			},
		},
		{
			name: "non-numeric vector element",
			mutate: func(s *Scenario) {
				s.System.Entities[0].Properties = map[string]any{"position": []any{1, "two"}}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			_, err := s.BuildState()
			assert.Error(t, err)
		})
	}
}
