// Copyright 2025 Certen Protocol
//
// Document — an immutable, hash-addressed Map value plus zero or more
// appended signatures. Grounded on pkg/merkle.Tree's immutable-once-
// built style (a guard bool plus sync.RWMutex so reads stay concurrent
// while the one mutating operation, here Sign, is exclusive) and on
// pkg/proof/canonical_blob_hash.go's sequential-hash-then-snapshot
// shape.

package document

import (
	"sync"
	"sync/atomic"

	"github.com/certen/fogdb/pkg/crypto"
	"github.com/certen/fogdb/pkg/limits"
	"github.com/certen/fogdb/pkg/lockbox"
	"github.com/certen/fogdb/pkg/value"
	"github.com/certen/fogdb/pkg/vault"
)

// Document is the authenticated container described in spec.md §3.
type Document struct {
	mu sync.RWMutex

	raw    []byte
	docLen int

	hs       *crypto.HashState
	docHash  crypto.Hash
	hash     crypto.Hash
	signedBy []crypto.Identity

	hasSchema  bool
	schemaHash crypto.Hash

	compressed atomic.Pointer[[]byte]
}

// New builds a Document from body, which must be a Map value whose
// optional "" key, if present, must be a Hash (the schema link).
func New(body value.Value) (*Document, error) {
	if body.Kind != value.KindMap {
		return nil, ErrNotAMap
	}
	hasSchema := false
	var schemaHash crypto.Hash
	if linked, ok := body.Get(""); ok {
		if linked.Kind != value.KindHash {
			return nil, ErrSchemaHashKind
		}
		hasSchema = true
		schemaHash = linked.Hash
	}

	raw := value.Encode(body)
	if len(raw) > limits.MaxDocSize {
		return nil, ErrTooLarge
	}

	hs, err := crypto.NewHashState(crypto.Version1)
	if err != nil {
		return nil, err
	}
	hs.Write(raw)
	docHash := hs.Snapshot()

	d := &Document{
		raw:        raw,
		docLen:     len(raw),
		hs:         hs,
		docHash:    docHash,
		hash:       docHash,
		hasSchema:  hasSchema,
		schemaHash: schemaHash,
	}
	return d, nil
}

// Raw returns the document's full encoded bytes: body followed by any
// appended signatures. The returned slice must not be mutated.
func (d *Document) Raw() []byte {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.raw
}

// DocLen returns the length of the body portion of Raw().
func (d *Document) DocLen() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.docLen
}

// DocHash returns the hash of the body only — stable across Sign calls.
func (d *Document) DocHash() crypto.Hash {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.docHash
}

// Hash returns the hash of the full raw buffer, including signatures.
func (d *Document) Hash() crypto.Hash {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.hash
}

// SchemaHash returns the document's linked schema hash, if any.
func (d *Document) SchemaHash() (crypto.Hash, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.schemaHash, d.hasSchema
}

// SignedBy returns the ordered list of signer identities, derived from
// the raw tail in append order.
func (d *Document) SignedBy() []crypto.Identity {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]crypto.Identity, len(d.signedBy))
	copy(out, d.signedBy)
	return out
}

// Body decodes and returns the document's Map body.
func (d *Document) Body() (value.Value, error) {
	d.mu.RLock()
	raw, n := d.raw, d.docLen
	d.mu.RUnlock()
	v, _, err := value.Decode(raw[:n])
	return v, err
}

// Sign appends a new signature over DocHash, produced by vault for
// keyID. Signatures are always computed over the stable doc_hash, not
// the current (possibly already-extended) hash — per spec.md §4.C, this
// lets independent signers append without invalidating each other's
// signatures. Appending a signature invalidates the cached compressed
// blob.
func (d *Document) Sign(v vault.Vault, keyID vault.KeyId) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sig, err := v.Sign(keyID, d.docHash)
	if err != nil {
		return err
	}
	encoded := sig.Encode()
	if len(d.raw)+len(encoded) > limits.MaxDocSize {
		return ErrTooLarge
	}
	d.raw = append(d.raw, encoded...)
	d.hs.Write(encoded)
	d.hash = d.hs.Snapshot()
	d.signedBy = append(d.signedBy, sig.Signer)
	d.compressed.Store(nil)
	return nil
}

// VerifySignatures checks every appended signature against DocHash,
// returning ErrSignatureInvalid on the first one that fails.
func (d *Document) VerifySignatures() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	sigs, err := lockbox.DecodeSignatures(d.raw[d.docLen:])
	if err != nil {
		return err
	}
	for _, s := range sigs {
		if !s.Verify(d.docHash) {
			return ErrSignatureInvalid
		}
	}
	return nil
}

// CompressedCache returns the cached compressed blob, if one is present
// and has not been invalidated by an intervening Sign.
func (d *Document) CompressedCache() ([]byte, bool) {
	p := d.compressed.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// SetCompressedCache stores a compressed blob for reuse until the next
// Sign call. Per SPEC_FULL.md §9 resolution #3, this is safe under
// concurrent readers because Sign itself requires exclusive ownership
// of the Document (spec.md §5).
func (d *Document) SetCompressedCache(blob []byte) {
	cp := append([]byte(nil), blob...)
	d.compressed.Store(&cp)
}

// FromParts reconstructs a Document from already-validated components,
// used by pkg/wire's trusted and strict decode paths, which parse raw
// themselves (via value.Verify and lockbox.DecodeSignatures) and must
// not redundantly re-hash or re-validate here.
func FromParts(raw []byte, docLen int, hs *crypto.HashState, docHash, hash crypto.Hash, hasSchema bool, schemaHash crypto.Hash, signedBy []crypto.Identity) *Document {
	return &Document{
		raw:        raw,
		docLen:     docLen,
		hs:         hs,
		docHash:    docHash,
		hash:       hash,
		hasSchema:  hasSchema,
		schemaHash: schemaHash,
		signedBy:   signedBy,
	}
}
