package system

import (
	"slices"
	"unicode/utf16"
)

// PropValue is a sealed interface over the value types an entity property
// can carry. Only Number, Label, and Vector implement it.
type PropValue interface {
	propValue() // Sealed - only these types implement it
}

// Number is a scalar numeric property (charge, mass, frequency, energy).
type Number float64

func (Number) propValue() {}

// Label is a categorical property (kind, phase, group membership).
type Label string

func (Label) propValue() {}

// Vector is an ordered numeric property (position, spin axis).
type Vector []float64

func (Vector) propValue() {}

// Properties maps property names to values.
// Use SortedKeys() for deterministic iteration.
type Properties map[string]PropValue

// SortedKeys returns property names in UTF-16 code unit order, matching the
// key order used by canonical serialization.
func (p Properties) SortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysUTF16)
	return keys
}

// Number returns the named scalar property. The second result is false when
// the property is absent or not a Number.
func (p Properties) Number(key string) (float64, bool) {
	v, ok := p[key].(Number)
	return float64(v), ok
}

// Label returns the named categorical property. The second result is false
// when the property is absent or not a Label.
func (p Properties) Label(key string) (string, bool) {
	v, ok := p[key].(Label)
	return string(v), ok
}

// Vector returns the named vector property. The second result is false when
// the property is absent or not a Vector. The returned slice aliases the
// stored value; callers must not mutate it.
func (p Properties) Vector(key string) ([]float64, bool) {
	v, ok := p[key].(Vector)
	return []float64(v), ok
}

// Clone returns a deep copy. Vectors are copied element-wise so snapshots
// never share backing arrays.
func (p Properties) Clone() Properties {
	if p == nil {
		return nil
	}
	out := make(Properties, len(p))
	for k, v := range p {
		if vec, ok := v.(Vector); ok {
			out[k] = Vector(slices.Clone([]float64(vec)))
			continue
		}
		out[k] = v
	}
	return out
}

// compareKeysUTF16 compares strings by UTF-16 code units as required for
// canonical JSON key ordering (RFC 8785). Go's sort.Strings compares UTF-8
// bytes, which produces a different order for strings outside the BMP.
func compareKeysUTF16(a, b string) int {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	for i := 0; i < len(ua) && i < len(ub); i++ {
		if ua[i] != ub[i] {
			if ua[i] < ub[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(ua) < len(ub):
		return -1
	case len(ua) > len(ub):
		return 1
	default:
		return 0
	}
}
