package system

import "math"

// Validate checks the structural invariants of a state:
//
//   - every entity has a non-empty, unique ID
//   - the scale is a member of the closed scale set
//   - every rule's endpoints reference entities present in the state
//   - no rule pairs an entity with itself
//   - at most one rule per unordered pair
//   - every rule strength and override is well-formed (finite strength,
//     override either Unclassified or a member of the closed type set)
//
// A nil error means every engine may operate on the state. Engines validate
// before iterating so failures happen fast, never mid-computation.
func (s *State) Validate() error {
	if !s.Scale.Valid() {
		return NewInvalidConfigurationError("unknown scale %q", string(s.Scale))
	}

	ids := make(map[string]bool, len(s.Entities))
	for i, e := range s.Entities {
		if e.ID == "" {
			return NewInvalidConfigurationError("entity %d has an empty ID", i)
		}
		if ids[e.ID] {
			return NewInvalidConfigurationError("duplicate entity ID %q", e.ID)
		}
		ids[e.ID] = true
	}

	pairs := make(map[string]bool, len(s.Rules))
	for _, r := range s.Rules {
		if r.A == r.B {
			return NewInvalidConfigurationError("rule pairs entity %q with itself", r.A)
		}
		if !ids[r.A] {
			return NewInvalidConfigurationError("rule references missing entity %q", r.A)
		}
		if !ids[r.B] {
			return NewInvalidConfigurationError("rule references missing entity %q", r.B)
		}
		key := r.PairKey()
		if pairs[key] {
			return NewInvalidConfigurationError("duplicate rule between %q and %q", r.A, r.B)
		}
		pairs[key] = true
		if math.IsNaN(r.Strength) || math.IsInf(r.Strength, 0) {
			return NewInvalidConfigurationError("rule between %q and %q has non-finite strength", r.A, r.B)
		}
		if r.Override != Unclassified && !r.Override.Valid() {
			return NewInvalidConfigurationError("rule between %q and %q has unknown type override %q", r.A, r.B, string(r.Override))
		}
	}

	return nil
}
