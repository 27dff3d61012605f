// Package compiler turns declarative CUE system documents into validated
// model states.
//
// A system document describes a configuration - its scale, entities with
// properties, and interaction rules - in CUE:
//
//	system: {
//		scale: "atomic"
//		entities: [
//			{id: "proton", properties: {charge: 1.0, position: [0, 0, 0]}},
//			{id: "electron", properties: {charge: -1.0, position: [1, 0, 0]}},
//		]
//		rules: [
//			{a: "proton", b: "electron", strength: 0.8},
//		]
//	}
//
// Scalar properties become Numbers, strings become Labels, and lists of
// numbers become Vectors. The compiled state is validated before it is
// returned, so a document whose rules reference undeclared entities fails
// compilation rather than a later engine call.
//
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
package compiler
