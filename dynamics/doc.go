// Package dynamics classifies pairwise interactions and models the spatial
// interaction field over a set of entities.
//
// Classification is a deterministic rule over declared entity properties.
// Precedence when several conditions hold (most specific first):
//
//  1. Explicit rule override (always wins)
//  2. Resonance - both frequencies within the configured tolerance
//  3. Attraction/Repulsion - opposite/same-signed charge-like properties
//  4. Exchange - transferable-property gap above the configured threshold
//  5. Neutral - nothing else matched
//
// Classify(a, b) == Classify(b, a) for every pair; every condition above is
// symmetric in its inputs.
//
// The interaction field assigns each positioned entity the local potential
// contributed by every other entity within a finite range. An explicitly
// unbounded range switches to a decaying kernel so the per-entity sums stay
// finite instead of diverging.
//
// All numeric knobs travel in explicit configuration values (Classifier,
// EquilibriumParams); there is no global state, and engines here are safe
// for concurrent use on independent states.
package dynamics
