// Copyright 2025 Certen Protocol

package lockbox

import "errors"

// Sentinel errors for signature and lock operations, per spec.md §4.D's
// failure-mode list, in the pkg/database/errors.go sentinel style.
var (
	// ErrBadKey covers lock type mismatch, stream or recipient id
	// mismatch, or a failed X25519 derivation during
	// DecodeStream/DecodeIdentity, and an unknown lock kind byte in Read.
	// An unsupported version byte is reported by Read as
	// crypto.ErrUnsupportedVersion instead.
	ErrBadKey = errors.New("lockbox: bad key")

	// ErrLockState is returned when a Lock method is called out of
	// sequence for its state (e.g. Decrypt on a still-Sealed lock, or
	// on an already-Spent one).
	ErrLockState = errors.New("lockbox: invalid operation for lock state")

	// ErrSignatureInvalid names a signature that does not check out
	// against the claimed signer and pre-hash. Signature.Verify reports
	// that case as false; no function in this package returns this error.
	ErrSignatureInvalid = errors.New("lockbox: signature verification failed")

	errTruncatedLockbox = errors.New("lockbox: truncated lockbox")
)
