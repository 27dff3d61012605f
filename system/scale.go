package system

import "fmt"

// Scale labels the declared scale of a configuration. The set is closed and
// ordered; the order below is significant for deterministic default
// comparisons across scales.
type Scale string

const (
	ScaleQuantum       Scale = "quantum"
	ScaleAtomic        Scale = "atomic"
	ScaleMolecular     Scale = "molecular"
	ScaleCellular      Scale = "cellular"
	ScaleOrganismic    Scale = "organismic"
	ScaleSocial        Scale = "social"
	ScalePlanetary     Scale = "planetary"
	ScaleGalactic      Scale = "galactic"
	ScaleConsciousness Scale = "consciousness"
)

// Scales lists all scales in canonical order.
var Scales = []Scale{
	ScaleQuantum,
	ScaleAtomic,
	ScaleMolecular,
	ScaleCellular,
	ScaleOrganismic,
	ScaleSocial,
	ScalePlanetary,
	ScaleGalactic,
	ScaleConsciousness,
}

// Valid reports whether s is a member of the closed scale set.
func (s Scale) Valid() bool {
	return s.Index() >= 0
}

// Index returns the position of s in the canonical order, or -1 when s is
// not a valid scale.
func (s Scale) Index() int {
	for i, sc := range Scales {
		if sc == s {
			return i
		}
	}
	return -1
}

// ParseScale converts a string into a Scale, rejecting anything outside the
// closed set.
func ParseScale(raw string) (Scale, error) {
	s := Scale(raw)
	if !s.Valid() {
		return "", NewInvalidConfigurationError("unknown scale %q", raw)
	}
	return s, nil
}

// String implements fmt.Stringer.
func (s Scale) String() string { return string(s) }

var _ fmt.Stringer = ScaleQuantum
