package dynamics

import (
	"math"

	"github.com/roach88/emergent/system"
)

// Default property keys and thresholds for classification. The shapes match
// the conventions the model documents: a signed "charge"-like scalar, a
// "frequency" scalar for resonance, and a transferable "energy" scalar for
// exchange.
const (
	DefaultChargeKey    = "charge"
	DefaultFrequencyKey = "frequency"
	DefaultTransferKey  = "energy"
	DefaultPositionKey  = "position"

	DefaultFrequencyTolerance = 0.05
	DefaultExchangeThreshold  = 0.3
)

// Classifier derives interaction types from entity properties.
//
// Every knob is an explicit field - there is no hidden default buried in
// package state. Zero values are not usable; construct via
// DefaultClassifier() and adjust fields as needed.
type Classifier struct {
	// Property keys the classifier reads.
	ChargeKey    string
	FrequencyKey string
	TransferKey  string
	PositionKey  string

	// FrequencyTolerance is the maximum frequency gap still counted as
	// resonance.
	FrequencyTolerance float64

	// ExchangeThreshold is the minimum transferable-property gap that
	// counts as exchange.
	ExchangeThreshold float64
}

// DefaultClassifier returns a classifier with the documented default keys
// and thresholds.
func DefaultClassifier() Classifier {
	return Classifier{
		ChargeKey:          DefaultChargeKey,
		FrequencyKey:       DefaultFrequencyKey,
		TransferKey:        DefaultTransferKey,
		PositionKey:        DefaultPositionKey,
		FrequencyTolerance: DefaultFrequencyTolerance,
		ExchangeThreshold:  DefaultExchangeThreshold,
	}
}

// Classify derives the interaction type for an unordered entity pair.
// Deterministic and symmetric: Classify(a, b) == Classify(b, a).
//
// Resonance is checked first because it is the most specific condition,
// then charge sign (attraction/repulsion), then exchange, then neutral.
func (c Classifier) Classify(a, b system.Entity) system.InteractionType {
	if fa, ok := a.Props.Number(c.FrequencyKey); ok {
		if fb, ok := b.Props.Number(c.FrequencyKey); ok {
			if math.Abs(fa-fb) <= c.FrequencyTolerance {
				return system.Resonance
			}
		}
	}

	if qa, ok := a.Props.Number(c.ChargeKey); ok {
		if qb, ok := b.Props.Number(c.ChargeKey); ok {
			product := qa * qb
			if product < 0 {
				return system.Attraction
			}
			if product > 0 {
				return system.Repulsion
			}
			// Zero product: one side is uncharged, fall through.
		}
	}

	if ta, ok := a.Props.Number(c.TransferKey); ok {
		if tb, ok := b.Props.Number(c.TransferKey); ok {
			if math.Abs(ta-tb) > c.ExchangeThreshold {
				return system.Exchange
			}
		}
	}

	return system.Neutral
}

// ClassifyRule resolves a rule's effective type: an explicit override wins,
// otherwise the pair is classified from properties.
func (c Classifier) ClassifyRule(a, b system.Entity, r system.Rule) system.InteractionType {
	if r.Override != system.Unclassified {
		return r.Override
	}
	return c.Classify(a, b)
}

// TransferGap returns the absolute transferable-property difference between
// two entities, or zero when either side lacks the property. Used by the
// exchange contributions in scoring and field building.
func (c Classifier) TransferGap(a, b system.Entity) float64 {
	ta, okA := a.Props.Number(c.TransferKey)
	tb, okB := b.Props.Number(c.TransferKey)
	if !okA || !okB {
		return 0
	}
	return math.Abs(ta - tb)
}
