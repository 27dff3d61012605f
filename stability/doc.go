// Package stability scores configurations and simulates their evolution
// toward effortless stability.
//
// The score aggregates one contribution per interaction rule: attraction
// and resonance add the rule's magnitude, repulsion subtracts it, exchange
// contributes a signed function of how balanced the transfer is, and
// neutral rules contribute nothing. The aggregate is normalized by entity
// count and offset by the no-rule baseline of 1.0, so scores stay
// comparable across configurations of different size:
//
//	score = 1.0 + sum(contributions) / len(entities)
//
// A configuration with zero entities scores exactly 0.0 by convention; a
// configuration with entities but no rules scores exactly the 1.0 baseline
// (isolated entities hold together with zero tension, which is distinct
// from "structurally unstable").
//
// Evolution is deterministic: the same input state, parameters, and seed
// produce an identical snapshot sequence, element for element. Each step
// yields a fresh immutable snapshot; prior snapshots are never mutated, so
// a trajectory can be replayed and audited. Trajectories are lazy and
// single-pass - callers stop consuming to abort early, and a second
// traversal requires re-invoking Evolve with the same input and seed.
package stability
