// Copyright 2025 Certen Protocol
//
// RNG — the random-number-generator collaborator. Spec.md §1 names RNG
// initialization as out of scope ("consumed as a primitive"); the core
// only ever draws through this interface, never seeds or reseeds one.

package crypto

import "crypto/rand"

// RNG fills p with uniformly random bytes, failing only if the
// underlying source is exhausted or unavailable.
type RNG interface {
	Fill(p []byte) error
}

// SystemRNG is the default RNG, backed by crypto/rand.
type SystemRNG struct{}

// Fill implements RNG using crypto/rand.Read.
func (SystemRNG) Fill(p []byte) error {
	_, err := rand.Read(p)
	return err
}
