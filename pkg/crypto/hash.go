// Copyright 2025 Certen Protocol
//
// Hash and HashState — the BLAKE2b-family digest used to identify every
// Document and Entry. Digest width is 64 bytes, produced by the BLAKE2Xb
// extendable-output function (blake2b.NewXOF) with a 64-byte output.

package crypto

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// DigestSize is the width of a Hash's digest, in bytes.
const DigestSize = 64

// Hash is a version tag plus a fixed-width BLAKE2b digest. Equality is
// structural on (version, digest) — see Equal.
type Hash struct {
	Version Version
	Digest  [DigestSize]byte
}

// ZeroHash is the all-zero Hash of Version1, used as a sentinel "no
// schema" / "no parent" value.
var ZeroHash = Hash{Version: Version1}

// Equal reports whether two Hashes have the same version and digest,
// using a constant-time comparison of the digest bytes.
func (h Hash) Equal(other Hash) bool {
	if h.Version != other.Version {
		return false
	}
	return subtle.ConstantTimeCompare(h.Digest[:], other.Digest[:]) == 1
}

// IsZero reports whether h is the all-zero digest.
func (h Hash) IsZero() bool {
	return h.Equal(ZeroHash)
}

// String renders the hash as "v<version>:<hex digest>".
func (h Hash) String() string {
	return fmt.Sprintf("v%d:%s", h.Version, hex.EncodeToString(h.Digest[:]))
}

// Encode writes the canonical byte form of h: one version byte followed
// by the raw digest. This is the form stored inside a Hash Value's
// extension payload.
func (h Hash) Encode() []byte {
	out := make([]byte, 1+DigestSize)
	out[0] = byte(h.Version)
	copy(out[1:], h.Digest[:])
	return out
}

// DecodeHash parses the canonical byte form produced by Hash.Encode.
func DecodeHash(b []byte) (Hash, error) {
	if len(b) != 1+DigestSize {
		return Hash{}, fmt.Errorf("crypto: bad hash encoding length %d", len(b))
	}
	v := Version(b[0])
	if err := checkVersion(v); err != nil {
		return Hash{}, err
	}
	var h Hash
	h.Version = v
	copy(h.Digest[:], b[1:])
	return h, nil
}

// HashState is an incremental BLAKE2Xb (64-byte output) accumulator. It supports
// snapshotting the running digest at arbitrary points (used to capture
// doc_hash/entry_hash before signatures are fed in, then hash again
// after each appended signature) without rewinding — per spec.md §9,
// snapshots are cheap clones of the underlying hash state, not rewinds.
type HashState struct {
	h blake2b.XOF
}

// NewHashState starts a fresh incremental hash of the given version.
func NewHashState(v Version) (*HashState, error) {
	if err := checkVersion(v); err != nil {
		return nil, err
	}
	xof, err := blake2b.NewXOF(DigestSize, nil)
	if err != nil {
		return nil, err
	}
	return &HashState{h: xof}, nil
}

// Write feeds more bytes into the running hash.
func (s *HashState) Write(p []byte) {
	// blake2b.XOF.Write never returns an error.
	_, _ = s.h.Write(p)
}

// Snapshot returns the Hash of everything written so far, without
// disturbing the state so further Write calls may extend it.
func (s *HashState) Snapshot() Hash {
	clone := s.h.Clone()
	var digest [DigestSize]byte
	_, _ = clone.Read(digest[:])
	return Hash{Version: Version1, Digest: digest}
}
