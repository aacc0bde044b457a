// Copyright 2025 Certen Protocol
//
// MessagePack format byte constants used by the canonical codec.
// Derived from the MessagePack spec with four extension types added
// for Hash, Identity, Lockbox and Timestamp (spec.md §6).

package value

const (
	fmtPosFixintMax = 0x7f // 0x00..0x7f: positive fixint
	fmtFixmapMin    = 0x80 // 0x80..0x8f: fixmap, low nibble = count
	fmtFixmapMax    = 0x8f
	fmtFixarrayMin  = 0x90 // 0x90..0x9f: fixarray, low nibble = count
	fmtFixarrayMax  = 0x9f
	fmtFixstrMin    = 0xa0 // 0xa0..0xbf: fixstr, low 5 bits = length
	fmtFixstrMax    = 0xbf

	fmtNil      = 0xc0
	fmtFalse    = 0xc2
	fmtTrue     = 0xc3
	fmtBin8     = 0xc4
	fmtBin16    = 0xc5
	fmtBin32    = 0xc6
	fmtExt8     = 0xc7
	fmtExt16    = 0xc8
	fmtExt32    = 0xc9
	fmtFloat32  = 0xca
	fmtFloat64  = 0xcb
	fmtUint8    = 0xcc
	fmtUint16   = 0xcd
	fmtUint32   = 0xce
	fmtUint64   = 0xcf
	fmtInt8     = 0xd0
	fmtInt16    = 0xd1
	fmtInt32    = 0xd2
	fmtInt64    = 0xd3
	fmtFixext1  = 0xd4
	fmtFixext2  = 0xd5
	fmtFixext4  = 0xd6
	fmtFixext8  = 0xd7
	fmtFixext16 = 0xd8
	fmtStr8     = 0xd9
	fmtStr16    = 0xda
	fmtStr32    = 0xdb
	fmtArray16  = 0xdc
	fmtArray32  = 0xdd
	fmtMap16    = 0xde
	fmtMap32    = 0xdf

	fmtNegFixintMin = 0xe0 // 0xe0..0xff: negative fixint (-32..-1)
)

// Extension type tags, per spec.md §6.
const (
	extTimestamp int8 = 1
	extHash      int8 = 2
	extIdentity  int8 = 3
	extLockbox   int8 = 4
)
