// Copyright 2025 Certen Protocol
//
// Decode — strict canonical decoding. Rejects truncation, invalid
// UTF-8, non-canonical map key ordering, duplicate map keys, unknown
// extension tags, non-shortest-form integers and non-minimal
// string/bin/array/map/ext length headers. This rejection is what makes
// doc_hash well-defined: a given logical value has exactly one accepted
// encoding (spec.md §4.B).

package value

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/certen/fogdb/pkg/crypto"
)

// Decode parses exactly one top-level Value from b, returning the value
// and whatever bytes follow it.
func Decode(b []byte) (Value, []byte, error) {
	v, n, err := decodeValue(b, 0)
	if err != nil {
		return Value{}, nil, err
	}
	return v, b[n:], nil
}

// Verify confirms b begins with exactly one well-formed, canonical
// Value and returns the number of bytes that value occupies. It shares
// the decoder rather than re-walking the grammar, so the tree it builds
// along the way is discarded; callers that also want the value should
// call Decode directly instead of Verify-then-Decode. Used to locate
// the signature tail following a Document or Entry body.
func Verify(b []byte) (int, error) {
	_, n, err := decodeValue(b, 0)
	return n, err
}

func need(b []byte, offset, n int) error {
	if offset+n > len(b) {
		return codecErr(offset, "truncated: need %d bytes, have %d", n, len(b)-offset)
	}
	return nil
}

// decodeValue parses one value starting at b[offset:] and returns the
// value plus the offset immediately after it.
func decodeValue(b []byte, offset int) (Value, int, error) {
	if err := need(b, offset, 1); err != nil {
		return Value{}, offset, err
	}
	tag := b[offset]

	switch {
	case tag <= fmtPosFixintMax:
		return NewInt(int64(tag)), offset + 1, nil
	case tag >= fmtNegFixintMin:
		return NewInt(int64(int8(tag))), offset + 1, nil
	case tag >= fmtFixmapMin && tag <= fmtFixmapMax:
		return decodeMap(b, offset+1, int(tag&0x0f))
	case tag >= fmtFixarrayMin && tag <= fmtFixarrayMax:
		return decodeArray(b, offset+1, int(tag&0x0f))
	case tag >= fmtFixstrMin && tag <= fmtFixstrMax:
		return decodeStr(b, offset+1, int(tag&0x1f))
	}

	switch tag {
	case fmtNil:
		return Null, offset + 1, nil
	case fmtFalse:
		return NewBool(false), offset + 1, nil
	case fmtTrue:
		return NewBool(true), offset + 1, nil
	case fmtBin8, fmtBin16, fmtBin32:
		return decodeBinHeader(b, offset, tag)
	case fmtFloat32:
		o := offset + 1
		if err := need(b, o, 4); err != nil {
			return Value{}, o, err
		}
		bits := binary.BigEndian.Uint32(b[o : o+4])
		return NewF32(math.Float32frombits(bits)), o + 4, nil
	case fmtFloat64:
		o := offset + 1
		if err := need(b, o, 8); err != nil {
			return Value{}, o, err
		}
		bits := binary.BigEndian.Uint64(b[o : o+8])
		return NewF64(math.Float64frombits(bits)), o + 8, nil
	case fmtInt8:
		o := offset + 1
		if err := need(b, o, 1); err != nil {
			return Value{}, o, err
		}
		i := int64(int8(b[o]))
		if i >= -32 && i <= fmtPosFixintMax {
			return Value{}, o, codecErr(offset, "non-canonical int8 encoding of %d", i)
		}
		return NewInt(i), o + 1, nil
	case fmtInt16:
		o := offset + 1
		if err := need(b, o, 2); err != nil {
			return Value{}, o, err
		}
		i := int64(int16(binary.BigEndian.Uint16(b[o : o+2])))
		if i >= math.MinInt8 && i <= math.MaxInt8 {
			return Value{}, o, codecErr(offset, "non-canonical int16 encoding of %d", i)
		}
		return NewInt(i), o + 2, nil
	case fmtInt32:
		o := offset + 1
		if err := need(b, o, 4); err != nil {
			return Value{}, o, err
		}
		i := int64(int32(binary.BigEndian.Uint32(b[o : o+4])))
		if i >= math.MinInt16 && i <= math.MaxInt16 {
			return Value{}, o, codecErr(offset, "non-canonical int32 encoding of %d", i)
		}
		return NewInt(i), o + 4, nil
	case fmtInt64:
		o := offset + 1
		if err := need(b, o, 8); err != nil {
			return Value{}, o, err
		}
		i := int64(binary.BigEndian.Uint64(b[o : o+8]))
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return Value{}, o, codecErr(offset, "non-canonical int64 encoding of %d", i)
		}
		return NewInt(i), o + 8, nil
	case fmtStr8, fmtStr16, fmtStr32:
		return decodeStrHeader(b, offset, tag)
	case fmtArray16, fmtArray32:
		return decodeArrayHeader(b, offset, tag)
	case fmtMap16, fmtMap32:
		return decodeMapHeader(b, offset, tag)
	case fmtFixext1, fmtFixext2, fmtFixext4, fmtFixext8, fmtFixext16,
		fmtExt8, fmtExt16, fmtExt32:
		return decodeExt(b, offset, tag)
	default:
		return Value{}, offset, codecErr(offset, "unrecognized format byte 0x%02x", tag)
	}
}

func decodeStrHeader(b []byte, offset int, tag byte) (Value, int, error) {
	o := offset + 1
	var n int
	var minLen int
	switch tag {
	case fmtStr8:
		if err := need(b, o, 1); err != nil {
			return Value{}, o, err
		}
		n = int(b[o])
		o++
		minLen = 32
	case fmtStr16:
		if err := need(b, o, 2); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint16(b[o : o+2]))
		o += 2
		minLen = math.MaxUint8 + 1
	case fmtStr32:
		if err := need(b, o, 4); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint32(b[o : o+4]))
		o += 4
		minLen = math.MaxUint16 + 1
	}
	if n < minLen {
		return Value{}, o, codecErr(offset, "non-canonical string length header for length %d", n)
	}
	return decodeStr(b, o, n)
}

func decodeStr(b []byte, offset, n int) (Value, int, error) {
	if err := need(b, offset, n); err != nil {
		return Value{}, offset, err
	}
	s := b[offset : offset+n]
	if !utf8.Valid(s) {
		return Value{}, offset, codecErr(offset, "invalid UTF-8 string")
	}
	return NewStr(string(s)), offset + n, nil
}

func decodeBinHeader(b []byte, offset int, tag byte) (Value, int, error) {
	o := offset + 1
	var n int
	var minLen int
	switch tag {
	case fmtBin8:
		if err := need(b, o, 1); err != nil {
			return Value{}, o, err
		}
		n = int(b[o])
		o++
		minLen = 0
	case fmtBin16:
		if err := need(b, o, 2); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint16(b[o : o+2]))
		o += 2
		minLen = math.MaxUint8 + 1
	case fmtBin32:
		if err := need(b, o, 4); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint32(b[o : o+4]))
		o += 4
		minLen = math.MaxUint16 + 1
	}
	if n < minLen {
		return Value{}, o, codecErr(offset, "non-canonical bin length header for length %d", n)
	}
	if err := need(b, o, n); err != nil {
		return Value{}, o, err
	}
	out := make([]byte, n)
	copy(out, b[o:o+n])
	return NewBin(out), o + n, nil
}

func decodeArrayHeader(b []byte, offset int, tag byte) (Value, int, error) {
	o := offset + 1
	var n int
	var minLen int
	switch tag {
	case fmtArray16:
		if err := need(b, o, 2); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint16(b[o : o+2]))
		o += 2
		minLen = 16
	case fmtArray32:
		if err := need(b, o, 4); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint32(b[o : o+4]))
		o += 4
		minLen = math.MaxUint16 + 1
	}
	if n < minLen {
		return Value{}, o, codecErr(offset, "non-canonical array length header for length %d", n)
	}
	return decodeArray(b, o, n)
}

func decodeArray(b []byte, offset, n int) (Value, int, error) {
	items := make([]Value, n)
	o := offset
	for i := 0; i < n; i++ {
		v, next, err := decodeValue(b, o)
		if err != nil {
			return Value{}, o, err
		}
		items[i] = v
		o = next
	}
	return NewArray(items), o, nil
}

func decodeMapHeader(b []byte, offset int, tag byte) (Value, int, error) {
	o := offset + 1
	var n int
	var minLen int
	switch tag {
	case fmtMap16:
		if err := need(b, o, 2); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint16(b[o : o+2]))
		o += 2
		minLen = 16
	case fmtMap32:
		if err := need(b, o, 4); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint32(b[o : o+4]))
		o += 4
		minLen = math.MaxUint16 + 1
	}
	if n < minLen {
		return Value{}, o, codecErr(offset, "non-canonical map length header for length %d", n)
	}
	return decodeMap(b, o, n)
}

func decodeMap(b []byte, offset, n int) (Value, int, error) {
	entries := make([]MapEntry, n)
	o := offset
	for i := 0; i < n; i++ {
		keyStart := o
		keyVal, next, err := decodeValue(b, o)
		if err != nil {
			return Value{}, o, err
		}
		if keyVal.Kind != KindStr {
			return Value{}, keyStart, codecErr(keyStart, "map key is not a string")
		}
		o = next
		val, next2, err := decodeValue(b, o)
		if err != nil {
			return Value{}, o, err
		}
		o = next2
		entries[i] = MapEntry{Key: keyVal.Str, Value: val}
		if i > 0 {
			if entries[i].Key == entries[i-1].Key {
				return Value{}, keyStart, codecErr(keyStart, "duplicate map key %q", entries[i].Key)
			}
			if entries[i].Key < entries[i-1].Key {
				return Value{}, keyStart, codecErr(keyStart, "non-canonical map key order at %q", entries[i].Key)
			}
		}
	}
	return Value{Kind: KindMap, Map: entries}, o, nil
}

func decodeExt(b []byte, offset int, tag byte) (Value, int, error) {
	o := offset + 1
	var n int
	isFixed := true
	switch tag {
	case fmtFixext1:
		n = 1
	case fmtFixext2:
		n = 2
	case fmtFixext4:
		n = 4
	case fmtFixext8:
		n = 8
	case fmtFixext16:
		n = 16
	case fmtExt8:
		if err := need(b, o, 1); err != nil {
			return Value{}, o, err
		}
		n = int(b[o])
		o++
		isFixed = false
	case fmtExt16:
		if err := need(b, o, 2); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint16(b[o : o+2]))
		o += 2
		isFixed = false
	case fmtExt32:
		if err := need(b, o, 4); err != nil {
			return Value{}, o, err
		}
		n = int(binary.BigEndian.Uint32(b[o : o+4]))
		o += 4
		isFixed = false
	}
	if !isFixed {
		switch n {
		case 1, 2, 4, 8, 16:
			return Value{}, o, codecErr(offset, "non-canonical ext length header for fixed-size length %d", n)
		}
		switch tag {
		case fmtExt16:
			if n <= math.MaxUint8 {
				return Value{}, o, codecErr(offset, "non-canonical ext16 header for length %d", n)
			}
		case fmtExt32:
			if n <= math.MaxUint16 {
				return Value{}, o, codecErr(offset, "non-canonical ext32 header for length %d", n)
			}
		}
	}
	if err := need(b, o, 1); err != nil {
		return Value{}, o, err
	}
	extTag := int8(b[o])
	o++
	if err := need(b, o, n); err != nil {
		return Value{}, o, err
	}
	data := b[o : o+n]
	end := o + n

	switch extTag {
	case extTimestamp:
		if n != 12 {
			return Value{}, offset, codecErr(offset, "timestamp extension has bad length %d", n)
		}
		sec := int64(binary.BigEndian.Uint64(data[0:8]))
		nanos := binary.BigEndian.Uint32(data[8:12])
		ts := Timestamp{Sec: sec, Nanos: nanos}
		if err := ts.Validate(); err != nil {
			return Value{}, offset, codecErr(offset, "%v", err)
		}
		return NewTimestamp(ts), end, nil
	case extHash:
		h, err := crypto.DecodeHash(data)
		if err != nil {
			return Value{}, offset, codecErr(offset, "%v", err)
		}
		return NewHash(h), end, nil
	case extIdentity:
		id, err := crypto.DecodeIdentity(data)
		if err != nil {
			return Value{}, offset, codecErr(offset, "%v", err)
		}
		return NewIdentity(id), end, nil
	case extLockbox:
		out := make([]byte, n)
		copy(out, data)
		return NewLockbox(out), end, nil
	default:
		return Value{}, offset, codecErr(offset, "unknown extension tag %d", extTag)
	}
}
