// Package system provides the foundational entity and relation model for
// the emergent engines.
//
// This package contains type definitions, structural validation, canonical
// serialization, and error types only. All other packages in this module
// import system; system imports nothing from this module. This keeps the
// model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - States are immutable snapshots. Evolution never mutates a state in
//     place; it produces a fresh instance per step.
//   - At most one rule per unordered entity pair, and every rule endpoint
//     must reference an entity present in the state.
//   - Canonical JSON uses sorted keys (UTF-16 code unit order), NFC
//     normalized strings, and shortest round-trip float formatting so that
//     content hashes and golden traces are byte-stable.
package system
