// Copyright 2025 Certen Protocol
//
// PersistentVault — backs key storage with a cometbft-db dbm.DB,
// wrapped exactly the way pkg/kvdb/adapter.go wraps one for ledger.KV.

package vault

import (
	"crypto/ed25519"
	"fmt"
	"sync"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/google/uuid"

	"github.com/certen/fogdb/pkg/crypto"
	"github.com/certen/fogdb/pkg/lockbox"
)

// PersistentVault stores Ed25519 seeds in an underlying dbm.DB, keyed by
// KeyId, and reconstructs key pairs on demand. It caches decoded key
// pairs in memory to avoid re-deriving them on every Sign call.
type PersistentVault struct {
	mu    sync.RWMutex
	db    dbm.DB
	cache map[KeyId]crypto.KeyPair
}

// NewPersistentVault wraps db. With a nil db nothing is persisted or
// loaded: only keys created by NewKey on this instance, held in the
// in-memory cache, are available, mirroring KVAdapter's nil-db
// tolerance.
func NewPersistentVault(db dbm.DB) *PersistentVault {
	return &PersistentVault{db: db, cache: make(map[KeyId]crypto.KeyPair)}
}

func keyDBKey(id KeyId) []byte {
	b := uuid.UUID(id)
	return append([]byte("fogdb/vault/key/"), b[:]...)
}

func (v *PersistentVault) load(id KeyId) (crypto.KeyPair, bool, error) {
	v.mu.RLock()
	if kp, ok := v.cache[id]; ok {
		v.mu.RUnlock()
		return kp, true, nil
	}
	v.mu.RUnlock()

	if v.db == nil {
		return crypto.KeyPair{}, false, nil
	}
	seed, err := v.db.Get(keyDBKey(id))
	if err != nil {
		return crypto.KeyPair{}, false, fmt.Errorf("vault: db get failed: %w", err)
	}
	if seed == nil {
		return crypto.KeyPair{}, false, nil
	}
	if len(seed) != ed25519.SeedSize {
		return crypto.KeyPair{}, false, fmt.Errorf("vault: corrupt seed for key %s", id)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	kp := crypto.KeyPair{
		Identity: crypto.Identity{Version: crypto.Version1, PublicKey: priv.Public().(ed25519.PublicKey)},
		Private:  priv,
	}
	v.mu.Lock()
	v.cache[id] = kp
	v.mu.Unlock()
	return kp, true, nil
}

// Sign implements Vault.
func (v *PersistentVault) Sign(id KeyId, preHash crypto.Hash) (lockbox.Signature, error) {
	kp, ok, err := v.load(id)
	if err != nil {
		return lockbox.Signature{}, err
	}
	if !ok {
		return lockbox.Signature{}, ErrKeyNotFound
	}
	return lockbox.Sign(kp, preHash), nil
}

// NewKey implements Vault: draws a fresh seed, persists it via SetSync
// (durable write, matching KVAdapter.Set's use of SetSync), and caches
// the derived key pair.
func (v *PersistentVault) NewKey(rng crypto.RNG) (KeyId, error) {
	seed := make([]byte, ed25519.SeedSize)
	if err := rng.Fill(seed); err != nil {
		return KeyId{}, fmt.Errorf("vault: rng failure: %w", err)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	kp := crypto.KeyPair{
		Identity: crypto.Identity{Version: crypto.Version1, PublicKey: priv.Public().(ed25519.PublicKey)},
		Private:  priv,
	}
	id := KeyId(uuid.New())
	if v.db != nil {
		if err := v.db.SetSync(keyDBKey(id), seed); err != nil {
			return KeyId{}, fmt.Errorf("vault: db set failed: %w", err)
		}
	}
	v.mu.Lock()
	v.cache[id] = kp
	v.mu.Unlock()
	return id, nil
}

// Identity implements Vault.
func (v *PersistentVault) Identity(id KeyId) (crypto.Identity, bool) {
	kp, ok, err := v.load(id)
	if err != nil || !ok {
		return crypto.Identity{}, false
	}
	return kp.Identity, true
}
