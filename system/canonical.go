package system

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for hashing and golden traces.
// This is the ONLY serialization used for content-addressed snapshot
// identity and golden-file comparison.
//
// Differences from encoding/json:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Floats use shortest round-trip formatting; NaN and Inf are rejected
//  5. No null (returns error)
func MarshalCanonical(v any) ([]byte, error) {
	return marshalCanonical(v)
}

func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case Number:
		return marshalCanonicalFloat(float64(val))
	case Label:
		return marshalCanonicalString(string(val))
	case Vector:
		return marshalCanonicalFloats([]float64(val))
	case Properties:
		return marshalCanonicalProps(val)
	case Entity:
		return marshalCanonicalEntity(val)
	case Rule:
		return marshalCanonicalRule(val)
	case Scale:
		return marshalCanonicalString(string(val))
	case InteractionType:
		return marshalCanonicalString(string(val))
	case *State:
		if val == nil {
			return nil, fmt.Errorf("null state is forbidden in canonical JSON")
		}
		return marshalCanonicalState(val)
	case State:
		return marshalCanonicalState(&val)
	case string:
		return marshalCanonicalString(val)
	case float64:
		return marshalCanonicalFloat(val)
	case float32:
		return marshalCanonicalFloat(float64(val))
	case int:
		return []byte(strconv.Itoa(val)), nil
	case int64:
		return []byte(strconv.FormatInt(val, 10)), nil
	case bool:
		return []byte(strconv.FormatBool(val)), nil
	case []float64:
		return marshalCanonicalFloats(val)
	case []any:
		return marshalCanonicalSlice(val)
	case map[string]any:
		return marshalCanonicalMap(val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalFloat formats a finite float with the shortest
// representation that round-trips, which is deterministic across platforms.
func marshalCanonicalFloat(f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("non-finite float is forbidden in canonical JSON: %v", f)
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

// marshalCanonicalString NFC-normalizes and escapes a string without HTML
// escaping. Only the JSON-mandated escapes are emitted.
func marshalCanonicalString(s string) ([]byte, error) {
	s = norm.NFC.String(s)
	var buf bytes.Buffer
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.Bytes(), nil
}

func marshalCanonicalFloats(fs []float64) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := marshalCanonicalFloat(f)
		if err != nil {
			return nil, fmt.Errorf("vector[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalSlice(vals []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := marshalCanonical(v)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalMap(m map[string]any) ([]byte, error) {
	obj := make(canonicalObject, 0, len(m))
	for k, v := range m {
		obj = append(obj, canonicalField{key: k, value: v})
	}
	obj.sort()
	return obj.marshal()
}

func marshalCanonicalProps(p Properties) ([]byte, error) {
	obj := make(canonicalObject, 0, len(p))
	for _, k := range p.SortedKeys() {
		obj = append(obj, canonicalField{key: k, value: p[k]})
	}
	return obj.marshal()
}

func marshalCanonicalEntity(e Entity) ([]byte, error) {
	obj := canonicalObject{
		{key: "id", value: e.ID},
		{key: "properties", value: e.Props},
	}
	if e.Props == nil {
		obj[1].value = Properties{}
	}
	obj.sort()
	return obj.marshal()
}

func marshalCanonicalRule(r Rule) ([]byte, error) {
	obj := canonicalObject{
		{key: "a", value: r.A},
		{key: "b", value: r.B},
		{key: "strength", value: r.Strength},
	}
	if r.Override != Unclassified {
		obj = append(obj, canonicalField{key: "type", value: r.Override})
	}
	obj.sort()
	return obj.marshal()
}

func marshalCanonicalState(s *State) ([]byte, error) {
	entities := make([]any, len(s.Entities))
	for i, e := range s.Entities {
		entities[i] = e
	}
	rules := make([]any, len(s.Rules))
	for i, r := range s.Rules {
		rules[i] = r
	}
	obj := canonicalObject{
		{key: "entities", value: entities},
		{key: "rules", value: rules},
		{key: "scale", value: s.Scale},
		{key: "stability", value: s.Stability},
	}
	obj.sort()
	return obj.marshal()
}

// canonicalField and canonicalObject implement ordered object marshaling.
type canonicalField struct {
	key   string
	value any
}

type canonicalObject []canonicalField

func (o canonicalObject) sort() {
	for i := 1; i < len(o); i++ {
		for j := i; j > 0 && compareKeysUTF16(o[j].key, o[j-1].key) < 0; j-- {
			o[j], o[j-1] = o[j-1], o[j]
		}
	}
}

func (o canonicalObject) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalCanonicalString(f.key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := marshalCanonical(f.value)
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", f.key, err)
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
