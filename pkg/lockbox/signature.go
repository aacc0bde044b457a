// Copyright 2025 Certen Protocol
//
// Signature — a detached Ed25519-class signature over a Document's or
// Entry's pre-signature hash. Grounded on
// pkg/attestation/strategy/ed25519_strategy.go's sign/verify shape.

package lockbox

import (
	"crypto/ed25519"
	"errors"

	"github.com/certen/fogdb/pkg/crypto"
)

// SignatureSize is the wire length of one encoded Signature: 1 version
// byte + 32-byte public key + 64-byte signature.
const SignatureSize = 1 + ed25519.PublicKeySize + ed25519.SignatureSize

// Signature is a version tag, the signer's Identity, and an
// Ed25519-class signature over the object's pre-signature hash
// (doc_hash or entry_hash).
type Signature struct {
	Version crypto.Version
	Signer  crypto.Identity
	Sig     [ed25519.SignatureSize]byte
}

// Sign produces a Signature over preHash using kp.
func Sign(kp crypto.KeyPair, preHash crypto.Hash) Signature {
	var s Signature
	s.Version = crypto.Version1
	s.Signer = kp.Identity
	copy(s.Sig[:], kp.Sign(preHash))
	return s
}

// Verify checks that s is a valid signature over preHash by s.Signer.
func (s Signature) Verify(preHash crypto.Hash) bool {
	return crypto.Verify(s.Signer, preHash, s.Sig[:])
}

// Encode writes the canonical tail-append byte form: version ∥
// public-key ∥ signature, per spec.md §4.D.
func (s Signature) Encode() []byte {
	out := make([]byte, 0, SignatureSize)
	out = append(out, byte(s.Version))
	out = append(out, s.Signer.PublicKey...)
	out = append(out, s.Sig[:]...)
	return out
}

// DecodeSignature parses exactly one Signature from the front of b,
// returning the signature and how many bytes it occupied. Signatures
// are fixed-width for Version1, so they are self-delimiting without a
// length prefix.
func DecodeSignature(b []byte) (Signature, int, error) {
	if len(b) < SignatureSize {
		return Signature{}, 0, errTruncatedSignature
	}
	v := crypto.Version(b[0])
	if v != crypto.Version1 {
		return Signature{}, 0, crypto.ErrUnsupportedVersion
	}
	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pub, b[1:1+ed25519.PublicKeySize])
	var s Signature
	s.Version = v
	s.Signer = crypto.Identity{Version: v, PublicKey: pub}
	copy(s.Sig[:], b[1+ed25519.PublicKeySize:SignatureSize])
	return s, SignatureSize, nil
}

// DecodeSignatures parses zero or more concatenated Signatures from b
// until the buffer is exhausted.
func DecodeSignatures(b []byte) ([]Signature, error) {
	var sigs []Signature
	for len(b) > 0 {
		s, n, err := DecodeSignature(b)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, s)
		b = b[n:]
	}
	return sigs, nil
}

var errTruncatedSignature = errors.New("lockbox: truncated signature")
