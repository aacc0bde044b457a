// Copyright 2025 Certen Protocol

package document

import "errors"

// Sentinel errors, in the pkg/database/errors.go style.
var (
	ErrNotAMap          = errors.New("document: body is not a map")
	ErrTooLarge         = errors.New("document: raw encoding exceeds MAX_DOC_SIZE")
	ErrSchemaHashKind   = errors.New("document: \"\" key present but its value is not a Hash")
	ErrSignatureInvalid = errors.New("document: signature verification failed")
)
