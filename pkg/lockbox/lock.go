// Copyright 2025 Certen Protocol
//
// Lock / Lockbox — the decryption-side state machine and the
// encryption-side constructors. Grounded on
// original_source/src/crypto/lock.rs: a tagged variant (Sealed / Keyed /
// Spent) rather than a mutable bool, per spec.md §9's design note, so a
// Lock can only Decrypt once it is Keyed and only once at all.

package lockbox

import (
	"encoding/binary"

	"github.com/certen/fogdb/pkg/crypto"
)

// LockState is the current phase of a Lock's state machine.
type LockState int

const (
	StateSealed LockState = iota
	StateKeyed
	StateSpent
)

// LockKind distinguishes the two ways a Lockbox can be addressed.
type LockKind byte

const (
	// LockIdentity addresses a specific recipient by their long-term
	// X25519 public key; the recipient derives the shared key via
	// X25519 with the sender's ephemeral public key.
	LockIdentity LockKind = iota
	// LockStream addresses a pre-shared symmetric stream, identified
	// by a 16-byte stream id both parties already share a key for.
	LockStream
)

const streamIDSize = 16

// LockType describes how a Lockbox is addressed: either to a specific
// Identity (with the sender's ephemeral public key attached) or to a
// pre-shared Stream.
type LockType struct {
	Kind        LockKind
	RecipientPK [crypto.ExchangeKeySize]byte // LockIdentity only
	EphemeralPK [crypto.ExchangeKeySize]byte // LockIdentity only
	StreamID    [streamIDSize]byte           // LockStream only
}

// StreamKey is the symmetric secret shared by sender and recipient,
// either pre-shared out of band or derived via X25519 during an
// Identity lock — spec.md GLOSSARY.
type StreamKey struct {
	Key [crypto.AEADKeySize]byte
}

// Lock is the Lockbox decryption/encryption state machine described in
// spec.md §4.D. A Lock must be used for exactly one message: Seal and
// Decrypt both transition to StateSpent.
type Lock struct {
	state      LockState
	typ        LockType
	nonce      [crypto.AEADNonceSize]byte
	key        [crypto.AEADKeySize]byte
	ciphertext []byte // set once Sealed->wire or parsed from wire
}

// Needs reports the LockType a Sealed lock must be keyed with before it
// can decrypt, or nil once the lock is Keyed or Spent.
func (l *Lock) Needs() *LockType {
	if l.state != StateSealed {
		return nil
	}
	t := l.typ
	return &t
}

// State reports the lock's current phase.
func (l *Lock) State() LockState { return l.state }

// ---------------------------------------------------------------------
// Decryption side
// ---------------------------------------------------------------------

// Read parses the wire form of a Lockbox (the opaque bytes carried by a
// Value of kind Lockbox) into a Lock in the Sealed state.
func Read(b []byte) (*Lock, error) {
	if len(b) < 2 {
		return nil, errTruncatedLockbox
	}
	v := crypto.Version(b[0])
	if v != crypto.Version1 {
		return nil, crypto.ErrUnsupportedVersion
	}
	kind := LockKind(b[1])
	o := 2
	var typ LockType
	typ.Kind = kind
	switch kind {
	case LockIdentity:
		if len(b) < o+2*crypto.ExchangeKeySize {
			return nil, errTruncatedLockbox
		}
		copy(typ.RecipientPK[:], b[o:o+crypto.ExchangeKeySize])
		o += crypto.ExchangeKeySize
		copy(typ.EphemeralPK[:], b[o:o+crypto.ExchangeKeySize])
		o += crypto.ExchangeKeySize
	case LockStream:
		if len(b) < o+streamIDSize {
			return nil, errTruncatedLockbox
		}
		copy(typ.StreamID[:], b[o:o+streamIDSize])
		o += streamIDSize
	default:
		return nil, ErrBadKey
	}
	if len(b) < o+crypto.AEADNonceSize {
		return nil, errTruncatedLockbox
	}
	l := &Lock{state: StateSealed, typ: typ}
	copy(l.nonce[:], b[o:o+crypto.AEADNonceSize])
	o += crypto.AEADNonceSize
	l.ciphertext = append([]byte(nil), b[o:]...)
	return l, nil
}

// DecodeStream keys a Sealed Stream lock with a pre-shared StreamKey,
// checking that the lock's stream id matches expectedID.
func (l *Lock) DecodeStream(expectedID [streamIDSize]byte, key StreamKey) error {
	if l.state != StateSealed {
		return ErrLockState
	}
	if l.typ.Kind != LockStream || l.typ.StreamID != expectedID {
		return ErrBadKey
	}
	l.key = key.Key
	l.state = StateKeyed
	return nil
}

// DecodeIdentity keys a Sealed Identity lock using the recipient's
// long-term X25519 key pair, deriving the shared secret via X25519 with
// the sender's attached ephemeral public key.
func (l *Lock) DecodeIdentity(recipient crypto.X25519KeyPair) error {
	if l.state != StateSealed {
		return ErrLockState
	}
	if l.typ.Kind != LockIdentity || l.typ.RecipientPK != recipient.Public {
		return ErrBadKey
	}
	shared, err := crypto.SharedSecret(recipient.Private, l.typ.EphemeralPK)
	if err != nil {
		return ErrBadKey
	}
	l.key = shared
	l.state = StateKeyed
	return nil
}

// Decrypt authenticates and decrypts the lock's ciphertext against
// associated data ad, transitioning to StateSpent. Calling Decrypt
// again, or calling it before the lock is Keyed, returns ErrLockState.
func (l *Lock) Decrypt(ad []byte) ([]byte, error) {
	if l.state != StateKeyed {
		return nil, ErrLockState
	}
	plaintext, err := crypto.Open(l.key, l.nonce, l.ciphertext, ad)
	if err != nil {
		l.state = StateSpent
		return nil, err
	}
	l.state = StateSpent
	return plaintext, nil
}

// ---------------------------------------------------------------------
// Encryption side
// ---------------------------------------------------------------------

// LockFromStream builds a Lock already in the Keyed state, addressed to
// streamID and keyed with key. The caller must still call Seal exactly
// once.
func LockFromStream(r crypto.RNG, streamID [streamIDSize]byte, key StreamKey) (*Lock, error) {
	l := &Lock{
		state: StateKeyed,
		typ:   LockType{Kind: LockStream, StreamID: streamID},
		key:   key.Key,
	}
	if err := r.Fill(l.nonce[:]); err != nil {
		return nil, err
	}
	return l, nil
}

// LockFromIdentity builds a Lock already in the Keyed state, addressed
// to recipientPK via a freshly drawn ephemeral X25519 key pair. It also
// returns the derived StreamKey so the sender can address further
// messages on the same logical stream without another key exchange.
func LockFromIdentity(r crypto.RNG, recipientPK [crypto.ExchangeKeySize]byte) (*Lock, StreamKey, error) {
	ephemeral, err := crypto.GenerateX25519KeyPair(r)
	if err != nil {
		return nil, StreamKey{}, err
	}
	shared, err := crypto.SharedSecret(ephemeral.Private, recipientPK)
	if err != nil {
		return nil, StreamKey{}, err
	}
	l := &Lock{
		state: StateKeyed,
		typ: LockType{
			Kind:        LockIdentity,
			RecipientPK: recipientPK,
			EphemeralPK: ephemeral.Public,
		},
		key: shared,
	}
	if err := r.Fill(l.nonce[:]); err != nil {
		return nil, StreamKey{}, err
	}
	return l, StreamKey{Key: shared}, nil
}

// Seal encrypts plaintext under ad, transitioning to StateSpent, and
// returns the complete wire-encodable Lockbox bytes.
func (l *Lock) Seal(plaintext, ad []byte) ([]byte, error) {
	if l.state != StateKeyed {
		return nil, ErrLockState
	}
	ciphertext, err := crypto.Seal(l.key, l.nonce, plaintext, ad)
	if err != nil {
		return nil, err
	}
	l.ciphertext = ciphertext
	l.state = StateSpent
	return l.Encode(), nil
}

// Encode writes the wire form of the lock: version, kind, type-specific
// fields, nonce, ciphertext(+tag). Valid once the lock carries
// ciphertext (either freshly Sealed or parsed via Read).
func (l *Lock) Encode() []byte {
	out := make([]byte, 0, 2+2*crypto.ExchangeKeySize+crypto.AEADNonceSize+len(l.ciphertext))
	out = append(out, byte(crypto.Version1), byte(l.typ.Kind))
	switch l.typ.Kind {
	case LockIdentity:
		out = append(out, l.typ.RecipientPK[:]...)
		out = append(out, l.typ.EphemeralPK[:]...)
	case LockStream:
		out = append(out, l.typ.StreamID[:]...)
	}
	out = append(out, l.nonce[:]...)
	out = append(out, l.ciphertext...)
	return out
}

// StreamIDFromUint64 is a convenience constructor for deterministic
// stream ids in tests and examples; production callers typically derive
// a StreamID from a google/uuid.UUID's 16 bytes instead.
func StreamIDFromUint64(n uint64) [streamIDSize]byte {
	var id [streamIDSize]byte
	binary.BigEndian.PutUint64(id[8:], n)
	return id
}
