package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Deterministic(t *testing.T) {
	a := validState()
	b := validState()

	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)

	assert.Equal(t, ha, hb, "equal snapshots must hash identically")
	assert.Len(t, ha, 64, "SHA-256 hex digest")
}

func TestHash_SensitiveToContent(t *testing.T) {
	base := MustHash(validState())

	changed := validState()
	changed.Rules[0].Strength = 0.81
	assert.NotEqual(t, base, MustHash(changed))

	relabeled := validState()
	relabeled.Scale = ScaleMolecular
	assert.NotEqual(t, base, MustHash(relabeled))

	scored := validState()
	scored.Stability = 1.4
	assert.NotEqual(t, base, MustHash(scored))
}

func TestHash_ErrorOnNonFinite(t *testing.T) {
	st := validState()
	st.Stability = math.Inf(1)

	_, err := Hash(st)
	assert.Error(t, err)
}

func TestMustHash_PanicsOnError(t *testing.T) {
	st := validState()
	st.Stability = math.NaN()
	assert.Panics(t, func() { MustHash(st) })
}
