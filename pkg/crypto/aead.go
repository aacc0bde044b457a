// Copyright 2025 Certen Protocol
//
// AEAD — XChaCha20-Poly1305 authenticated encryption, used by Lockbox to
// seal plaintext payloads once a Lock has reached the Keyed state.

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// AEADKeySize and AEADNonceSize are the XChaCha20-Poly1305 key and
// (extended) nonce widths.
const (
	AEADKeySize   = chacha20poly1305.KeySize
	AEADNonceSize = chacha20poly1305.NonceSizeX
)

// ErrDecryptFailed is returned when the authentication tag does not
// verify — spec.md §4.D's "DecryptFailed" failure mode.
var ErrDecryptFailed = errors.New("crypto: decryption failed")

// Seal encrypts plaintext under key with nonce and associated data,
// returning ciphertext with the Poly1305 tag appended.
func Seal(key [AEADKeySize]byte, nonce [AEADNonceSize]byte, plaintext, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("crypto: aead init failed: %w", err)
	}
	return aead.Seal(nil, nonce[:], plaintext, ad), nil
}

// Open decrypts and authenticates ciphertext (tag included) under key,
// nonce and associated data, returning ErrDecryptFailed on a bad tag.
func Open(key [AEADKeySize]byte, nonce [AEADNonceSize]byte, ciphertext, ad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key[:])
	if err != nil {
		return nil, fmt.Errorf("crypto: aead init failed: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce[:], ciphertext, ad)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}
