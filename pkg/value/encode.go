// Copyright 2025 Certen Protocol
//
// Encode — deterministic canonical encoding. Identical Values always
// produce identical bytes: integers use the shortest signed form, Map
// entries are written in ascending key order (NewMap already sorted
// them), floats encode by bit pattern.

package value

import (
	"encoding/binary"
	"math"
)

// Encode returns the canonical byte encoding of v.
func Encode(v Value) []byte {
	var buf []byte
	return appendValue(buf, v)
}

func appendValue(buf []byte, v Value) []byte {
	switch v.Kind {
	case KindNull:
		return append(buf, fmtNil)
	case KindBool:
		if v.Bool {
			return append(buf, fmtTrue)
		}
		return append(buf, fmtFalse)
	case KindInt:
		return appendInt(buf, v.Int)
	case KindF32:
		buf = append(buf, fmtFloat32)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], math.Float32bits(v.F32))
		return append(buf, b[:]...)
	case KindF64:
		buf = append(buf, fmtFloat64)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(v.F64))
		return append(buf, b[:]...)
	case KindStr:
		return appendStr(buf, v.Str)
	case KindBin:
		return appendBin(buf, v.Bin)
	case KindArray:
		buf = appendArrayHeader(buf, len(v.Array))
		for _, e := range v.Array {
			buf = appendValue(buf, e)
		}
		return buf
	case KindMap:
		buf = appendMapHeader(buf, len(v.Map))
		for _, e := range v.Map {
			buf = appendStr(buf, e.Key)
			buf = appendValue(buf, e.Value)
		}
		return buf
	case KindHash:
		return appendExt(buf, extHash, v.Hash.Encode())
	case KindIdentity:
		return appendExt(buf, extIdentity, v.Identity.Encode())
	case KindLockbox:
		return appendExt(buf, extLockbox, v.Lockbox)
	case KindTimestamp:
		var b [12]byte
		binary.BigEndian.PutUint64(b[0:8], uint64(v.Timestamp.Sec))
		binary.BigEndian.PutUint32(b[8:12], v.Timestamp.Nanos)
		return appendExt(buf, extTimestamp, b[:])
	default:
		panic("value: unknown kind in Encode")
	}
}

func appendInt(buf []byte, i int64) []byte {
	switch {
	case i >= 0 && i <= fmtPosFixintMax:
		return append(buf, byte(i))
	case i < 0 && i >= -32:
		return append(buf, byte(fmtNegFixintMin)|byte(i+32))
	case i >= math.MinInt8 && i <= math.MaxInt8:
		return append(buf, fmtInt8, byte(int8(i)))
	case i >= math.MinInt16 && i <= math.MaxInt16:
		buf = append(buf, fmtInt16)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(int16(i)))
		return append(buf, b[:]...)
	case i >= math.MinInt32 && i <= math.MaxInt32:
		buf = append(buf, fmtInt32)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(int32(i)))
		return append(buf, b[:]...)
	default:
		buf = append(buf, fmtInt64)
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(i))
		return append(buf, b[:]...)
	}
}

func appendStr(buf []byte, s string) []byte {
	n := len(s)
	switch {
	case n <= 31:
		buf = append(buf, byte(fmtFixstrMin)|byte(n))
	case n <= math.MaxUint8:
		buf = append(buf, fmtStr8, byte(n))
	case n <= math.MaxUint16:
		buf = append(buf, fmtStr16)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(n))
		buf = append(buf, b[:]...)
	default:
		buf = append(buf, fmtStr32)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		buf = append(buf, b[:]...)
	}
	return append(buf, s...)
}

func appendBin(buf []byte, b []byte) []byte {
	n := len(b)
	switch {
	case n <= math.MaxUint8:
		buf = append(buf, fmtBin8, byte(n))
	case n <= math.MaxUint16:
		buf = append(buf, fmtBin16)
		var h [2]byte
		binary.BigEndian.PutUint16(h[:], uint16(n))
		buf = append(buf, h[:]...)
	default:
		buf = append(buf, fmtBin32)
		var h [4]byte
		binary.BigEndian.PutUint32(h[:], uint32(n))
		buf = append(buf, h[:]...)
	}
	return append(buf, b...)
}

func appendArrayHeader(buf []byte, n int) []byte {
	switch {
	case n <= 15:
		return append(buf, byte(fmtFixarrayMin)|byte(n))
	case n <= math.MaxUint16:
		buf = append(buf, fmtArray16)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(n))
		return append(buf, b[:]...)
	default:
		buf = append(buf, fmtArray32)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		return append(buf, b[:]...)
	}
}

func appendMapHeader(buf []byte, n int) []byte {
	switch {
	case n <= 15:
		return append(buf, byte(fmtFixmapMin)|byte(n))
	case n <= math.MaxUint16:
		buf = append(buf, fmtMap16)
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(n))
		return append(buf, b[:]...)
	default:
		buf = append(buf, fmtMap32)
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(n))
		return append(buf, b[:]...)
	}
}

func appendExt(buf []byte, tag int8, data []byte) []byte {
	n := len(data)
	switch n {
	case 1:
		buf = append(buf, fmtFixext1)
	case 2:
		buf = append(buf, fmtFixext2)
	case 4:
		buf = append(buf, fmtFixext4)
	case 8:
		buf = append(buf, fmtFixext8)
	case 16:
		buf = append(buf, fmtFixext16)
	default:
		switch {
		case n <= math.MaxUint8:
			buf = append(buf, fmtExt8, byte(n))
		case n <= math.MaxUint16:
			buf = append(buf, fmtExt16)
			var b [2]byte
			binary.BigEndian.PutUint16(b[:], uint16(n))
			buf = append(buf, b[:]...)
		default:
			buf = append(buf, fmtExt32)
			var b [4]byte
			binary.BigEndian.PutUint32(b[:], uint32(n))
			buf = append(buf, b[:]...)
		}
	}
	buf = append(buf, byte(tag))
	return append(buf, data...)
}
