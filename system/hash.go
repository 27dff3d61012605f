package system

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefix for content-addressed snapshot identity.
// Version suffix enables future algorithm migration.
const domainState = "emergent/state/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash computes the content-addressed identity of a state snapshot.
// The hash is stable across process restarts given the same snapshot, which
// is what makes evolution trajectories auditable: two runs with the same
// input and seed produce snapshot sequences with identical hashes.
func Hash(s *State) (string, error) {
	canonical, err := MarshalCanonical(s)
	if err != nil {
		return "", fmt.Errorf("Hash: failed to marshal: %w", err)
	}
	return hashWithDomain(domainState, canonical), nil
}

// MustHash is like Hash but panics on error.
// Use only in tests or when the state is known to be canonical-safe.
func MustHash(s *State) string {
	h, err := Hash(s)
	if err != nil {
		panic(err)
	}
	return h
}
