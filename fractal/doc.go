// Package fractal tests whether the same interaction/stability pattern
// recurs across different declared scales.
//
// A configuration is projected into a lightweight Pattern - scale label,
// stability score, entity count, and a normalized interaction-type
// histogram - and patterns are compared pairwise. The property under test
// is cross-scale universality, so repetition search only ever pairs
// patterns with distinct scale labels.
//
// The package depends only on the entity/relation model: the other engines
// are treated as black boxes that produce scored configurations, and rule
// classification is injected as a function.
package fractal
