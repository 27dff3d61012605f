package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRule_PairKey_Unordered(t *testing.T) {
	ab := Rule{A: "a", B: "b", Strength: 0.5}
	ba := Rule{A: "b", B: "a", Strength: 0.9}

	assert.Equal(t, ab.PairKey(), ba.PairKey(), "pair key must be order-independent")
}

func TestRule_PairKey_NoConcatenationAmbiguity(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not collide.
	r1 := Rule{A: "ab", B: "c"}
	r2 := Rule{A: "a", B: "bc"}

	assert.NotEqual(t, r1.PairKey(), r2.PairKey())
}

func TestInteractionType_Valid(t *testing.T) {
	for _, it := range InteractionTypes {
		assert.True(t, it.Valid(), "expected %q to be valid", it)
	}
	assert.False(t, Unclassified.Valid(), "unclassified is the absence of an override, not a member")
	assert.False(t, InteractionType("gravity").Valid())
}

func TestState_Clone_Independent(t *testing.T) {
	st := NewState(ScaleMolecular,
		[]Entity{
			NewEntity("a", Properties{
				"charge":   Number(1),
				"position": Vector{1, 2, 3},
			}),
		},
		[]Rule{{A: "a", B: "a", Strength: 0.5}},
	)

	clone := st.Clone()
	require.Len(t, clone.Entities, 1)

	// Mutating the clone's vector must not leak into the original.
	vec, ok := clone.Entities[0].Props.Vector("position")
	require.True(t, ok)
	vec[0] = 99
	orig, _ := st.Entities[0].Props.Vector("position")
	assert.Equal(t, 1.0, orig[0])

	clone.Rules[0].Strength = 0.1
	assert.Equal(t, 0.5, st.Rules[0].Strength)
}

func TestState_Entity_Lookup(t *testing.T) {
	st := NewState(ScaleQuantum, []Entity{NewEntity("x", nil)}, nil)

	e, ok := st.Entity("x")
	require.True(t, ok)
	assert.Equal(t, "x", e.ID)

	_, ok = st.Entity("y")
	assert.False(t, ok)
}

func TestProperties_Accessors(t *testing.T) {
	p := Properties{
		"charge": Number(-1),
		"kind":   Label("lepton"),
		"spin":   Vector{0, 0, 0.5},
	}

	n, ok := p.Number("charge")
	require.True(t, ok)
	assert.Equal(t, -1.0, n)

	_, ok = p.Number("kind")
	assert.False(t, ok, "a Label is not a Number")

	l, ok := p.Label("kind")
	require.True(t, ok)
	assert.Equal(t, "lepton", l)

	v, ok := p.Vector("spin")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 0.5}, v)

	_, ok = p.Number("missing")
	assert.False(t, ok)
}
