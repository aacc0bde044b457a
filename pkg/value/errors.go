// Copyright 2025 Certen Protocol
//
// Codec errors. CodecError carries the byte offset at which decoding
// failed, matching spec.md §7's requirement that codec errors be
// distinguishable from validation errors and carry enough detail to
// locate the fault.

package value

import "fmt"

// CodecError is returned by Decode and Verify for any of the six
// failure modes spec.md §4.B lists: truncation, invalid UTF-8,
// non-canonical map ordering, duplicate map keys, unknown extension tag,
// integer out of representable range.
type CodecError struct {
	Offset int
	Reason string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("value: codec error at offset %d: %s", e.Offset, e.Reason)
}

func codecErr(offset int, format string, args ...any) *CodecError {
	return &CodecError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}
