package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validState() *State {
	return NewState(ScaleAtomic,
		[]Entity{
			NewEntity("proton", Properties{"charge": Number(1)}),
			NewEntity("electron", Properties{"charge": Number(-1)}),
		},
		[]Rule{{A: "proton", B: "electron", Strength: 0.8}},
	)
}

func TestState_Validate_OK(t *testing.T) {
	require.NoError(t, validState().Validate())
}

func TestState_Validate_EmptyStateOK(t *testing.T) {
	st := NewState(ScaleQuantum, nil, nil)
	require.NoError(t, st.Validate())
}

func TestState_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State)
	}{
		{
			name:   "unknown scale",
			mutate: func(st *State) { st.Scale = "cosmic" },
		},
		{
			name:   "empty entity ID",
			mutate: func(st *State) { st.Entities[0].ID = "" },
		},
		{
			name: "duplicate entity ID",
			mutate: func(st *State) {
				st.Entities = append(st.Entities, NewEntity("proton", nil))
			},
		},
		{
			name:   "self-pair rule",
			mutate: func(st *State) { st.Rules[0].B = "proton" },
		},
		{
			name:   "missing endpoint A",
			mutate: func(st *State) { st.Rules[0].A = "neutron" },
		},
		{
			name:   "missing endpoint B",
			mutate: func(st *State) { st.Rules[0].B = "neutron" },
		},
		{
			name: "duplicate pair either order",
			mutate: func(st *State) {
				st.Rules = append(st.Rules, Rule{A: "electron", B: "proton", Strength: 0.1})
			},
		},
		{
			name:   "NaN strength",
			mutate: func(st *State) { st.Rules[0].Strength = math.NaN() },
		},
		{
			name:   "infinite strength",
			mutate: func(st *State) { st.Rules[0].Strength = math.Inf(1) },
		},
		{
			name:   "unknown override",
			mutate: func(st *State) { st.Rules[0].Override = "gravity" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := validState()
			tt.mutate(st)
			err := st.Validate()
			require.Error(t, err)
			assert.True(t, IsInvalidConfiguration(err))
		})
	}
}

func TestState_Validate_OverrideOK(t *testing.T) {
	st := validState()
	st.Rules[0].Override = Neutral
	require.NoError(t, st.Validate())
}
