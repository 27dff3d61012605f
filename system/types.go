package system

import "slices"

// InteractionType is the classified nature of a pairwise relation.
// The set is closed: attraction, repulsion, resonance, exchange, neutral.
type InteractionType string

const (
	// Attraction - the pair is naturally drawn together.
	Attraction InteractionType = "attraction"

	// Repulsion - the pair is naturally pushed apart.
	Repulsion InteractionType = "repulsion"

	// Resonance - the pair oscillates in harmony (matching frequencies).
	Resonance InteractionType = "resonance"

	// Exchange - the pair trades a transferable property.
	Exchange InteractionType = "exchange"

	// Neutral - no significant interaction.
	Neutral InteractionType = "neutral"

	// Unclassified is the zero value. On a Rule it means "no explicit
	// override, derive the type from entity properties".
	Unclassified InteractionType = ""
)

// InteractionTypes lists the closed set in canonical order.
var InteractionTypes = []InteractionType{Attraction, Repulsion, Resonance, Exchange, Neutral}

// Valid reports whether t is a member of the closed set.
// Unclassified is not a member; it is the absence of an override.
func (t InteractionType) Valid() bool {
	return slices.Contains(InteractionTypes, t)
}

// Entity is an immutable identifier plus named properties.
// Entities are referenced by ID inside a State; they do not own relations.
type Entity struct {
	ID    string
	Props Properties
}

// NewEntity constructs an entity with the given properties.
func NewEntity(id string, props Properties) Entity {
	return Entity{ID: id, Props: props}
}

// Clone returns a deep copy of the entity.
func (e Entity) Clone() Entity {
	return Entity{ID: e.ID, Props: e.Props.Clone()}
}

// Rule declares an undirected pairwise interaction between two entities,
// with a declared strength and an optional explicit type override.
//
// Rules are identified by their unordered pair: (A, B) and (B, A) are the
// same rule, and a State holds at most one rule per pair.
type Rule struct {
	A        string
	B        string
	Strength float64

	// Override pins the interaction type, bypassing classification.
	// Unclassified means the type is derived from entity properties.
	Override InteractionType
}

// PairKey returns the canonical unordered identity of the rule's endpoints.
// The null separator prevents ambiguity between concatenated IDs.
func (r Rule) PairKey() string {
	if r.A <= r.B {
		return r.A + "\x00" + r.B
	}
	return r.B + "\x00" + r.A
}

// State is a snapshot of entities plus their interaction rules at one point
// in an evolution. Snapshots are immutable once exposed: the evolution
// engine produces a new State per step rather than mutating in place,
// enabling safe replay and audit of a trajectory.
type State struct {
	// Entities in declaration order. Order is significant: engines iterate
	// entities and rules in declaration order for determinism.
	Entities []Entity

	// Rules restricted to entities present in Entities (see Validate).
	Rules []Rule

	// Scale tags the configuration for cross-scale comparison. The core
	// never infers it; callers supply one of the closed Scale set.
	Scale Scale

	// Stability is the snapshot's stability score. It is set when a
	// snapshot is produced by the evolution engine or assigned by the
	// caller after scoring; it is never recomputed implicitly.
	Stability float64
}

// NewState constructs a state snapshot. The slices are used as-is; callers
// hand over ownership.
func NewState(scale Scale, entities []Entity, rules []Rule) *State {
	return &State{Entities: entities, Rules: rules, Scale: scale}
}

// Entity returns the entity with the given ID, if present.
func (s *State) Entity(id string) (Entity, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Clone returns a deep, independent copy of the state. Mutating the clone
// (or its properties) never affects the original snapshot.
func (s *State) Clone() *State {
	out := &State{
		Entities:  make([]Entity, len(s.Entities)),
		Rules:     slices.Clone(s.Rules),
		Scale:     s.Scale,
		Stability: s.Stability,
	}
	for i, e := range s.Entities {
		out.Entities[i] = e.Clone()
	}
	return out
}
