package compiler

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/emergent/system"
)

// CompileString compiles CUE source and builds the state declared under its
// top-level "system" field.
func CompileString(src string) (*system.State, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	sys := v.LookupPath(cue.ParsePath("system"))
	if !sys.Exists() {
		return nil, &CompileError{Field: "system", Message: "system document is required", Pos: v.Pos()}
	}
	return CompileSystem(sys)
}

// CompileSystem parses a CUE value into a validated system.State. The value
// should be the system struct itself (scale, entities, rules).
func CompileSystem(v cue.Value) (*system.State, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	scaleVal := v.LookupPath(cue.ParsePath("scale"))
	if !scaleVal.Exists() {
		return nil, &CompileError{Field: "scale", Message: "scale is required", Pos: v.Pos()}
	}
	rawScale, err := scaleVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	scale, err := system.ParseScale(rawScale)
	if err != nil {
		return nil, &CompileError{Field: "scale", Message: err.Error(), Pos: scaleVal.Pos()}
	}

	entities, err := parseEntities(v)
	if err != nil {
		return nil, err
	}
	rules, err := parseRules(v)
	if err != nil {
		return nil, err
	}

	st := system.NewState(scale, entities, rules)
	if err := st.Validate(); err != nil {
		return nil, &CompileError{Field: "system", Message: err.Error(), Pos: v.Pos()}
	}
	return st, nil
}

func parseEntities(v cue.Value) ([]system.Entity, error) {
	entsVal := v.LookupPath(cue.ParsePath("entities"))
	if !entsVal.Exists() {
		return nil, &CompileError{Field: "entities", Message: "entities list is required", Pos: v.Pos()}
	}
	iter, err := entsVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var entities []system.Entity
	for iter.Next() {
		ev := iter.Value()
		idVal := ev.LookupPath(cue.ParsePath("id"))
		if !idVal.Exists() {
			return nil, &CompileError{Field: "entities.id", Message: "entity id is required", Pos: ev.Pos()}
		}
		id, err := idVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}

		props, err := parseProperties(ev.LookupPath(cue.ParsePath("properties")))
		if err != nil {
			return nil, err
		}
		entities = append(entities, system.NewEntity(id, props))
	}
	return entities, nil
}

// parseProperties converts a CUE struct into model properties: numbers
// become Number, strings become Label, lists of numbers become Vector.
func parseProperties(v cue.Value) (system.Properties, error) {
	if !v.Exists() {
		return nil, nil
	}
	fields, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	props := system.Properties{}
	for fields.Next() {
		name := fields.Selector().String()
		fv := fields.Value()
		switch k := fv.Kind(); {
		case k == cue.StringKind:
			s, err := fv.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			props[name] = system.Label(s)
		case k&cue.NumberKind != 0:
			f, err := fv.Float64()
			if err != nil {
				return nil, formatCUEError(err)
			}
			props[name] = system.Number(f)
		case k == cue.ListKind:
			vec, err := parseVector(fv)
			if err != nil {
				return nil, err
			}
			props[name] = vec
		default:
			return nil, &CompileError{
				Field:   "properties." + name,
				Message: "property must be a number, string, or list of numbers",
				Pos:     fv.Pos(),
			}
		}
	}
	return props, nil
}

func parseVector(v cue.Value) (system.Vector, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var vec system.Vector
	for iter.Next() {
		f, err := iter.Value().Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		vec = append(vec, f)
	}
	return vec, nil
}

func parseRules(v cue.Value) ([]system.Rule, error) {
	rulesVal := v.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return nil, nil // rule-less systems are legal
	}
	iter, err := rulesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var rules []system.Rule
	for iter.Next() {
		rv := iter.Value()
		rule := system.Rule{}

		aVal := rv.LookupPath(cue.ParsePath("a"))
		bVal := rv.LookupPath(cue.ParsePath("b"))
		if !aVal.Exists() || !bVal.Exists() {
			return nil, &CompileError{Field: "rules", Message: "rule endpoints a and b are required", Pos: rv.Pos()}
		}
		if rule.A, err = aVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
		if rule.B, err = bVal.String(); err != nil {
			return nil, formatCUEError(err)
		}

		strengthVal := rv.LookupPath(cue.ParsePath("strength"))
		if !strengthVal.Exists() {
			return nil, &CompileError{Field: "rules.strength", Message: "rule strength is required", Pos: rv.Pos()}
		}
		if rule.Strength, err = strengthVal.Float64(); err != nil {
			return nil, formatCUEError(err)
		}

		typeVal := rv.LookupPath(cue.ParsePath("type"))
		if typeVal.Exists() {
			raw, err := typeVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			override := system.InteractionType(raw)
			if !override.Valid() {
				return nil, &CompileError{
					Field:   "rules.type",
					Message: "unknown interaction type " + raw,
					Pos:     typeVal.Pos(),
				}
			}
			rule.Override = override
		}

		rules = append(rules, rule)
	}
	return rules, nil
}
