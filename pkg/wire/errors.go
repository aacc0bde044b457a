// Copyright 2025 Certen Protocol

package wire

import "errors"

var (
	ErrTruncated      = errors.New("wire: truncated blob")
	ErrFrameTooLarge  = errors.New("wire: decompressed frame exceeds size bound")
	ErrSchemaMismatch = errors.New("wire: document has a schema hash but none was expected")
	ErrSizeExceeded   = errors.New("wire: size exceeds MAX_DOC_SIZE/MAX_ENTRY_SIZE")
)
