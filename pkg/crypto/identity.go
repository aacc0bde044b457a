// Copyright 2025 Certen Protocol
//
// Identity — a versioned Ed25519-class public signing key, and KeyPair,
// the matching private half. Grounded on
// pkg/attestation/strategy/ed25519_strategy.go's key handling.

package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// Identity is a versioned Ed25519 public key, the Value-tree's
// "Identity" variant and the signer field of a Signature.
type Identity struct {
	Version   Version
	PublicKey ed25519.PublicKey
}

// Encode writes the canonical byte form: version byte + 32-byte public key.
func (id Identity) Encode() []byte {
	out := make([]byte, 1+ed25519.PublicKeySize)
	out[0] = byte(id.Version)
	copy(out[1:], id.PublicKey)
	return out
}

// DecodeIdentity parses the canonical byte form produced by Identity.Encode.
func DecodeIdentity(b []byte) (Identity, error) {
	if len(b) != 1+ed25519.PublicKeySize {
		return Identity{}, fmt.Errorf("crypto: bad identity encoding length %d", len(b))
	}
	v := Version(b[0])
	if err := checkVersion(v); err != nil {
		return Identity{}, err
	}
	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pub, b[1:])
	return Identity{Version: v, PublicKey: pub}, nil
}

// Equal compares two identities by version and public key bytes.
func (id Identity) Equal(other Identity) bool {
	if id.Version != other.Version {
		return false
	}
	return id.PublicKey.Equal(other.PublicKey)
}

// KeyPair is a full Ed25519 identity: the public Identity plus the
// private key needed to sign. Lockbox identity locks do not use it; they
// use a separate X25519KeyPair (see exchange.go).
type KeyPair struct {
	Identity Identity
	Private  ed25519.PrivateKey
}

// GenerateKeyPair draws a fresh Ed25519 KeyPair using the given RNG
// collaborator (spec.md §6: "RNG: fill(&mut [u8])").
func GenerateKeyPair(r RNG) (KeyPair, error) {
	seed := make([]byte, ed25519.SeedSize)
	if err := r.Fill(seed); err != nil {
		return KeyPair{}, fmt.Errorf("crypto: rng failure: %w", err)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	return KeyPair{
		Identity: Identity{Version: Version1, PublicKey: pub},
		Private:  priv,
	}, nil
}

// GenerateKeyPairDefault draws a KeyPair directly from crypto/rand,
// bypassing the RNG collaborator — convenient for tests and for the
// example program, where plumbing a collaborator through is unwarranted.
func GenerateKeyPairDefault() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, fmt.Errorf("crypto: key generation failed: %w", err)
	}
	return KeyPair{
		Identity: Identity{Version: Version1, PublicKey: pub},
		Private:  priv,
	}, nil
}

// Sign produces a raw 64-byte Ed25519 signature over pre-hash's digest
// bytes. Callers that need the full Signature wire form (version +
// identity + signature) use pkg/lockbox.Sign instead.
func (kp KeyPair) Sign(preHash Hash) []byte {
	return ed25519.Sign(kp.Private, preHash.Digest[:])
}

// Verify checks a raw Ed25519 signature against pre-hash's digest bytes
// for the given signer identity.
func Verify(signer Identity, preHash Hash, sig []byte) bool {
	if err := checkVersion(signer.Version); err != nil {
		return false
	}
	return ed25519.Verify(signer.PublicKey, preHash.Digest[:], sig)
}
