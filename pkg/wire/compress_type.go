// Copyright 2025 Certen Protocol
//
// CompressType — the one-byte envelope tag described in spec.md §4.F
// and §6. Grounded on original_source/src/no_schema.rs's CompressType
// enum and the corresponding on-wire byte.

package wire

import "errors"

// CompressType identifies how the payload following byte 0 of a stored
// blob is laid out.
type CompressType byte

const (
	// Uncompressed: payload is the raw value bytes plus signature tail.
	Uncompressed CompressType = 0
	// CompressedNoSchema: a zstd frame follows directly, no schema-hash
	// prefix (the body has no "" key).
	CompressedNoSchema CompressType = 1
	// Compressed: an uncompressed schema-hash value precedes a zstd
	// frame over the remainder (the body's "" key, then compressed tail).
	Compressed CompressType = 2
	// DictCompressed: like Compressed, but the zstd frame was built
	// against a dictionary identified by the schema hash.
	DictCompressed CompressType = 3
)

// ErrUnknownCompressType is returned when decoding an envelope whose
// leading byte is not one of the four defined CompressType values.
var ErrUnknownCompressType = errors.New("wire: unknown compress type")

func (c CompressType) String() string {
	switch c {
	case Uncompressed:
		return "uncompressed"
	case CompressedNoSchema:
		return "compressed-no-schema"
	case Compressed:
		return "compressed"
	case DictCompressed:
		return "dict-compressed"
	default:
		return "unknown"
	}
}

func decodeCompressType(b []byte) (CompressType, []byte, error) {
	if len(b) < 1 {
		return 0, nil, ErrTruncated
	}
	c := CompressType(b[0])
	if c > DictCompressed {
		return 0, nil, ErrUnknownCompressType
	}
	return c, b[1:], nil
}
