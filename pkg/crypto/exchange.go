// Copyright 2025 Certen Protocol
//
// X25519 key exchange. Used two ways by pkg/lockbox: a recipient's
// long-term X25519 key pair (distinct from their Ed25519 signing
// Identity) is the addressing key for an Identity lock; a freshly drawn
// X25519 key pair is the one-shot ephemeral half of that exchange —
// spec.md §4.D requires a Lock be used for exactly one message.

package crypto

import (
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// ExchangeKeySize is the width of an X25519 public or private key.
const ExchangeKeySize = 32

// X25519KeyPair is an X25519 key pair, used both as a long-term
// addressing key and as a one-shot ephemeral key.
type X25519KeyPair struct {
	Public  [ExchangeKeySize]byte
	Private [ExchangeKeySize]byte
}

// GenerateX25519KeyPair draws a fresh X25519 key pair from the given RNG.
func GenerateX25519KeyPair(r RNG) (X25519KeyPair, error) {
	var kp X25519KeyPair
	if err := r.Fill(kp.Private[:]); err != nil {
		return X25519KeyPair{}, fmt.Errorf("crypto: rng failure: %w", err)
	}
	pub, err := curve25519.X25519(kp.Private[:], curve25519.Basepoint)
	if err != nil {
		return X25519KeyPair{}, fmt.Errorf("crypto: key derivation failed: %w", err)
	}
	copy(kp.Public[:], pub)
	return kp, nil
}

// SharedSecret computes the X25519 shared secret between a local
// private scalar and a remote public point.
func SharedSecret(localPrivate, remotePublic [ExchangeKeySize]byte) ([ExchangeKeySize]byte, error) {
	shared, err := curve25519.X25519(localPrivate[:], remotePublic[:])
	if err != nil {
		return [ExchangeKeySize]byte{}, fmt.Errorf("crypto: shared secret derivation failed: %w", err)
	}
	var out [ExchangeKeySize]byte
	copy(out[:], shared)
	return out, nil
}
