// Copyright 2025 Certen Protocol

package entry

import "errors"

var (
	ErrTooLarge         = errors.New("entry: raw encoding exceeds MAX_ENTRY_SIZE")
	ErrSignatureInvalid = errors.New("entry: signature verification failed")
)
