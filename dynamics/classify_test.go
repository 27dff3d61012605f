package dynamics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/emergent/internal/testutil"
	"github.com/roach88/emergent/system"
)

func TestClassify_Attraction(t *testing.T) {
	c := DefaultClassifier()
	got := c.Classify(testutil.Charged("p", 1), testutil.Charged("e", -1))
	assert.Equal(t, system.Attraction, got)
}

func TestClassify_Repulsion(t *testing.T) {
	c := DefaultClassifier()
	assert.Equal(t, system.Repulsion, c.Classify(testutil.Charged("a", 1), testutil.Charged("b", 2)))
	assert.Equal(t, system.Repulsion, c.Classify(testutil.Charged("a", -1), testutil.Charged("b", -3)))
}

func TestClassify_Resonance(t *testing.T) {
	c := DefaultClassifier()

	got := c.Classify(testutil.Tuned("a", 1.0), testutil.Tuned("b", 1.04))
	assert.Equal(t, system.Resonance, got, "gap within tolerance resonates")

	got = c.Classify(testutil.Tuned("a", 1.0), testutil.Tuned("b", 1.2))
	assert.Equal(t, system.Neutral, got, "detuned pair with no other couplings is neutral")
}

func TestClassify_ResonancePrecedesCharge(t *testing.T) {
	c := DefaultClassifier()
	a := system.NewEntity("a", system.Properties{
		"charge":    system.Number(1),
		"frequency": system.Number(2.0),
	})
	b := system.NewEntity("b", system.Properties{
		"charge":    system.Number(1),
		"frequency": system.Number(2.0),
	})

	assert.Equal(t, system.Resonance, c.Classify(a, b), "matching frequencies win over like charges")
}

func TestClassify_Exchange(t *testing.T) {
	c := DefaultClassifier()

	got := c.Classify(testutil.Energetic("hot", 1.5), testutil.Energetic("cold", 1.0))
	assert.Equal(t, system.Exchange, got)

	got = c.Classify(testutil.Energetic("a", 1.2), testutil.Energetic("b", 1.0))
	assert.Equal(t, system.Neutral, got, "gap at or below the threshold does not exchange")
}

func TestClassify_ZeroChargeProductFallsThrough(t *testing.T) {
	c := DefaultClassifier()
	a := system.NewEntity("a", system.Properties{
		"charge": system.Number(0),
		"energy": system.Number(2.0),
	})
	b := system.NewEntity("b", system.Properties{
		"charge": system.Number(1),
		"energy": system.Number(1.0),
	})

	assert.Equal(t, system.Exchange, c.Classify(a, b), "uncharged side defers to exchange")
}

func TestClassify_NoPropertiesIsNeutral(t *testing.T) {
	c := DefaultClassifier()
	got := c.Classify(system.NewEntity("a", nil), system.NewEntity("b", nil))
	assert.Equal(t, system.Neutral, got)
}

func TestClassify_Symmetric(t *testing.T) {
	c := DefaultClassifier()
	pairs := [][2]system.Entity{
		{testutil.Charged("a", 1), testutil.Charged("b", -1)},
		{testutil.Charged("a", 1), testutil.Charged("b", 1)},
		{testutil.Tuned("a", 1.0), testutil.Tuned("b", 1.01)},
		{testutil.Energetic("a", 1.0), testutil.Energetic("b", 2.0)},
		{system.NewEntity("a", nil), testutil.Charged("b", 1)},
	}
	for _, pair := range pairs {
		assert.Equal(t, c.Classify(pair[0], pair[1]), c.Classify(pair[1], pair[0]))
	}
}

func TestClassifyRule_OverrideWins(t *testing.T) {
	c := DefaultClassifier()
	a := testutil.Charged("a", 1)
	b := testutil.Charged("b", -1)

	derived := c.ClassifyRule(a, b, system.Rule{A: "a", B: "b", Strength: 0.5})
	assert.Equal(t, system.Attraction, derived)

	pinned := c.ClassifyRule(a, b, system.Rule{A: "a", B: "b", Strength: 0.5, Override: system.Neutral})
	assert.Equal(t, system.Neutral, pinned)
}

func TestClassify_CustomKeys(t *testing.T) {
	c := DefaultClassifier()
	c.ChargeKey = "spin"

	a := system.NewEntity("a", system.Properties{"spin": system.Number(0.5)})
	b := system.NewEntity("b", system.Properties{"spin": system.Number(-0.5)})
	assert.Equal(t, system.Attraction, c.Classify(a, b))
}

func TestTransferGap(t *testing.T) {
	c := DefaultClassifier()

	gap := c.TransferGap(testutil.Energetic("a", 1.0), testutil.Energetic("b", 2.5))
	assert.InDelta(t, 1.5, gap, 1e-12)

	gap = c.TransferGap(testutil.Energetic("a", 1.0), system.NewEntity("b", nil))
	assert.Equal(t, 0.0, gap, "missing property means no measurable gap")
}
