// Package harness provides a conformance testing framework for the
// emergent engines.
//
// Scenarios are YAML documents declaring a system (scale, entities,
// rules), optional evolution parameters, and assertions on the outcome:
// pair classification, final stability bounds, snapshot counts,
// convergence. The harness builds the state, runs the evolution with a
// fixed run token, and evaluates every assertion, collecting all failures
// rather than stopping at the first.
//
// For golden testing, the full snapshot trajectory is serialized with the
// model's canonical JSON and compared against a golden file via goldie.
// Golden files live in testdata/golden/{scenario.Name}.golden; regenerate
// with:
//
//	go test ./harness -update
//
// Everything the harness runs is deterministic - fixed token, explicit
// parameters, no wall-clock anywhere - so golden traces are byte-stable.
package harness
