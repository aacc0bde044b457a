// Copyright 2025 Certen Protocol
//
// Kind — the Validator tagged-variant discriminant from spec.md §4.G:
// Any | Null | Bool | Int | F32 | F64 | Str | Bin | Hash | Identity |
// Lockbox | Time | Array | Map | Enum | Multi | Ref.

package validator

// Kind identifies which variant a Validator is.
type Kind byte

const (
	KindAny Kind = iota
	KindNull
	KindBool
	KindInt
	KindF32
	KindF64
	KindStr
	KindBin
	KindHash
	KindIdentity
	KindLockbox
	KindTime
	KindArray
	KindMap
	KindEnum
	KindMulti
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindStr:
		return "str"
	case KindBin:
		return "bin"
	case KindHash:
		return "hash"
	case KindIdentity:
		return "identity"
	case KindLockbox:
		return "lockbox"
	case KindTime:
		return "time"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindEnum:
		return "enum"
	case KindMulti:
		return "multi"
	case KindRef:
		return "ref"
	default:
		return "unknown"
	}
}
