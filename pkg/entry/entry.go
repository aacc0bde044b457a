// Copyright 2025 Certen Protocol
//
// Entry — a value appended under a (doc_hash, field) pair, independently
// hashed and signed. Grounded on original_source/src/entry.rs for the
// exact hash-state feed order, and on pkg/document.Document for the
// surrounding object shape (the two are deliberately parallel).

package entry

import (
	"sync"
	"sync/atomic"

	"github.com/certen/fogdb/pkg/crypto"
	"github.com/certen/fogdb/pkg/limits"
	"github.com/certen/fogdb/pkg/lockbox"
	"github.com/certen/fogdb/pkg/value"
	"github.com/certen/fogdb/pkg/vault"
)

// Entry is the authenticated container described in spec.md §3, keyed
// by the parent (doc_hash, field) pair supplied at construction but not
// carried inside the encoded bytes themselves — retrieval context
// supplies it, per spec.md §6.
type Entry struct {
	mu sync.RWMutex

	raw      []byte
	entryLen int

	hs        *crypto.HashState
	entryHash crypto.Hash
	hash      crypto.Hash
	signedBy  []crypto.Identity

	compressed atomic.Pointer[[]byte]
}

// New builds an Entry for (docHash, field) wrapping body.
//
// entry_hash commits to all three of (doc_hash, field, body): each of
// doc_hash and field is first re-encoded as a top-level Value (a Hash
// value and a Str value respectively) and fed into the same incremental
// hash state as the body bytes, then the hash is snapshotted.
func New(docHash crypto.Hash, field string, body value.Value) (*Entry, error) {
	raw := value.Encode(body)
	if len(raw) > limits.MaxEntrySize {
		return nil, ErrTooLarge
	}

	hs, err := crypto.NewHashState(crypto.Version1)
	if err != nil {
		return nil, err
	}
	hs.Write(value.Encode(value.NewHash(docHash)))
	hs.Write(value.Encode(value.NewStr(field)))
	hs.Write(raw)
	entryHash := hs.Snapshot()

	return &Entry{
		raw:       raw,
		entryLen:  len(raw),
		hs:        hs,
		entryHash: entryHash,
		hash:      entryHash,
	}, nil
}

// Raw returns the entry's full encoded bytes: body followed by any
// appended signatures.
func (e *Entry) Raw() []byte {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.raw
}

// EntryLen returns the length of the body portion of Raw().
func (e *Entry) EntryLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.entryLen
}

// EntryHash returns the hash committing to (doc_hash, field, body) —
// stable across Sign calls.
func (e *Entry) EntryHash() crypto.Hash {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.entryHash
}

// Hash returns the hash of the full raw buffer, including signatures.
func (e *Entry) Hash() crypto.Hash {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hash
}

// SignedBy returns the ordered list of signer identities.
func (e *Entry) SignedBy() []crypto.Identity {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]crypto.Identity, len(e.signedBy))
	copy(out, e.signedBy)
	return out
}

// Body decodes and returns the entry's value.
func (e *Entry) Body() (value.Value, error) {
	e.mu.RLock()
	raw, n := e.raw, e.entryLen
	e.mu.RUnlock()
	v, _, err := value.Decode(raw[:n])
	return v, err
}

// Sign appends a new signature over EntryHash, produced by vault for
// keyID.
func (e *Entry) Sign(v vault.Vault, keyID vault.KeyId) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sig, err := v.Sign(keyID, e.entryHash)
	if err != nil {
		return err
	}
	encoded := sig.Encode()
	if len(e.raw)+len(encoded) > limits.MaxEntrySize {
		return ErrTooLarge
	}
	e.raw = append(e.raw, encoded...)
	e.hs.Write(encoded)
	e.hash = e.hs.Snapshot()
	e.signedBy = append(e.signedBy, sig.Signer)
	e.compressed.Store(nil)
	return nil
}

// VerifySignatures checks every appended signature against EntryHash.
func (e *Entry) VerifySignatures() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sigs, err := lockbox.DecodeSignatures(e.raw[e.entryLen:])
	if err != nil {
		return err
	}
	for _, s := range sigs {
		if !s.Verify(e.entryHash) {
			return ErrSignatureInvalid
		}
	}
	return nil
}

// CompressedCache returns the cached compressed blob, if still valid.
func (e *Entry) CompressedCache() ([]byte, bool) {
	p := e.compressed.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// SetCompressedCache stores a compressed blob for reuse until the next
// Sign call.
func (e *Entry) SetCompressedCache(blob []byte) {
	cp := append([]byte(nil), blob...)
	e.compressed.Store(&cp)
}

// FromParts reconstructs an Entry from already-validated components,
// used by pkg/wire's decode paths.
func FromParts(raw []byte, entryLen int, hs *crypto.HashState, entryHash, hash crypto.Hash, signedBy []crypto.Identity) *Entry {
	return &Entry{
		raw:       raw,
		entryLen:  entryLen,
		hs:        hs,
		entryHash: entryHash,
		hash:      hash,
		signedBy:  signedBy,
	}
}
