// Copyright 2025 Certen Protocol
//
// Vault — the key-management collaborator named in spec.md §4.E/§6
// ("Vault::sign(hash, key) -> Signature", "Vault::new_key() -> KeyId").
// The core never holds private key material itself; Document.Sign and
// Entry.Sign always go through a Vault.

package vault

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/certen/fogdb/pkg/crypto"
	"github.com/certen/fogdb/pkg/lockbox"
)

// KeyId identifies a key pair held by a Vault. It is a google/uuid.UUID
// under the hood, matching the teacher's ubiquitous use of uuid.UUID for
// opaque identifiers.
type KeyId uuid.UUID

// String renders the KeyId as a UUID string.
func (k KeyId) String() string { return uuid.UUID(k).String() }

// Vault is implemented outside the core (spec.md §6); pkg/vault ships
// concrete adapters so the core is testable against real dependencies
// rather than hand-rolled fakes.
type Vault interface {
	// Sign produces a Signature over preHash using the key named by id.
	Sign(id KeyId, preHash crypto.Hash) (lockbox.Signature, error)
	// NewKey draws a fresh Ed25519 key pair, stores it under a new
	// KeyId, and returns that id.
	NewKey(rng crypto.RNG) (KeyId, error)
	// Identity looks up the public Identity for a stored key, without
	// exposing the private half.
	Identity(id KeyId) (crypto.Identity, bool)
}

// ErrKeyNotFound is returned by Sign for an unknown KeyId.
var ErrKeyNotFound = fmt.Errorf("vault: key not found")

// MemoryVault is an in-memory Vault, grounded on main.go's MemoryKV
// pattern: a mutex-guarded map, no persistence.
type MemoryVault struct {
	mu   sync.RWMutex
	keys map[KeyId]crypto.KeyPair
}

// NewMemoryVault returns an empty in-memory Vault.
func NewMemoryVault() *MemoryVault {
	return &MemoryVault{keys: make(map[KeyId]crypto.KeyPair)}
}

// Sign implements Vault.
func (v *MemoryVault) Sign(id KeyId, preHash crypto.Hash) (lockbox.Signature, error) {
	v.mu.RLock()
	kp, ok := v.keys[id]
	v.mu.RUnlock()
	if !ok {
		return lockbox.Signature{}, ErrKeyNotFound
	}
	return lockbox.Sign(kp, preHash), nil
}

// NewKey implements Vault.
func (v *MemoryVault) NewKey(rng crypto.RNG) (KeyId, error) {
	kp, err := crypto.GenerateKeyPair(rng)
	if err != nil {
		return KeyId{}, err
	}
	id := KeyId(uuid.New())
	v.mu.Lock()
	v.keys[id] = kp
	v.mu.Unlock()
	return id, nil
}

// Identity implements Vault.
func (v *MemoryVault) Identity(id KeyId) (crypto.Identity, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	kp, ok := v.keys[id]
	if !ok {
		return crypto.Identity{}, false
	}
	return kp.Identity, true
}

// Import adds an already-generated key pair under a caller-chosen id,
// for tests and for loading a key that was provisioned out of band.
func (v *MemoryVault) Import(id KeyId, kp crypto.KeyPair) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.keys[id] = kp
}
