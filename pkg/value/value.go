// Copyright 2025 Certen Protocol
//
// Value — the self-describing typed tree stored and signed by Document
// and Entry. Grounded on pkg/commitment/commitment.go's canonical
// discipline (sorted keys, deterministic output), reimplemented as a
// binary codec rather than JSON so the resulting bytes, not just a
// marshaled struct, are the hash-stable wire form.

package value

import (
	"fmt"
	"sort"

	"github.com/certen/fogdb/pkg/crypto"
)

// Kind identifies which variant a Value holds.
type Kind byte

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindF32
	KindF64
	KindStr
	KindBin
	KindArray
	KindMap
	KindHash
	KindIdentity
	KindLockbox
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
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
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindHash:
		return "hash"
	case KindIdentity:
		return "identity"
	case KindLockbox:
		return "lockbox"
	case KindTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("kind(%d)", byte(k))
	}
}

// MapEntry is one key/value pair of a Map value. Map values store their
// entries as a slice, not a Go map, because canonical encoding must
// preserve (and enforce) strict ascending key order — a Go map has no
// stable iteration order to exploit for that.
type MapEntry struct {
	Key   string
	Value Value
}

// Value is the self-describing, typed tree described in spec.md §3.
// Exactly one field is meaningful for a given Kind.
type Value struct {
	Kind Kind

	Bool      bool
	Int       int64
	F32       float32
	F64       float64
	Str       string
	Bin       []byte
	Array     []Value
	Map       []MapEntry
	Hash      crypto.Hash
	Identity  crypto.Identity
	Lockbox   []byte
	Timestamp Timestamp
}

// Null is the Null value.
var Null = Value{Kind: KindNull}

// NewBool wraps a bool.
func NewBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NewInt wraps a signed integer.
func NewInt(i int64) Value { return Value{Kind: KindInt, Int: i} }

// NewF32 wraps a 32-bit float.
func NewF32(f float32) Value { return Value{Kind: KindF32, F32: f} }

// NewF64 wraps a 64-bit float.
func NewF64(f float64) Value { return Value{Kind: KindF64, F64: f} }

// NewStr wraps a UTF-8 string.
func NewStr(s string) Value { return Value{Kind: KindStr, Str: s} }

// NewBin wraps opaque bytes.
func NewBin(b []byte) Value { return Value{Kind: KindBin, Bin: b} }

// NewArray wraps a slice of Values.
func NewArray(a []Value) Value { return Value{Kind: KindArray, Array: a} }

// NewHash wraps a crypto.Hash.
func NewHash(h crypto.Hash) Value { return Value{Kind: KindHash, Hash: h} }

// NewIdentity wraps a crypto.Identity.
func NewIdentity(id crypto.Identity) Value { return Value{Kind: KindIdentity, Identity: id} }

// NewLockbox wraps an opaque, already-encoded lockbox payload.
func NewLockbox(b []byte) Value { return Value{Kind: KindLockbox, Lockbox: b} }

// NewTimestamp wraps a Timestamp.
func NewTimestamp(ts Timestamp) Value { return Value{Kind: KindTimestamp, Timestamp: ts} }

// NewMap builds a Map value from entries, sorting them into canonical
// ascending-key order and rejecting duplicate keys.
func NewMap(entries []MapEntry) (Value, error) {
	sorted := make([]MapEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Key == sorted[i-1].Key {
			return Value{}, fmt.Errorf("value: duplicate map key %q", sorted[i].Key)
		}
	}
	return Value{Kind: KindMap, Map: sorted}, nil
}

// Get looks up key in a Map value. Reports ok=false if v is not a Map
// or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindMap {
		return Value{}, false
	}
	// Map entries are canonically sorted, so a binary search would do,
	// but map sizes in this domain are small enough that linear scan
	// keeps the code simple without a measurable cost.
	for _, e := range v.Map {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// Equal reports deep structural equality between two Values.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindInt:
		return v.Int == other.Int
	case KindF32:
		return v.F32 == other.F32
	case KindF64:
		return v.F64 == other.F64
	case KindStr:
		return v.Str == other.Str
	case KindBin:
		return bytesEqual(v.Bin, other.Bin)
	case KindArray:
		if len(v.Array) != len(other.Array) {
			return false
		}
		for i := range v.Array {
			if !v.Array[i].Equal(other.Array[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Map) != len(other.Map) {
			return false
		}
		for i := range v.Map {
			if v.Map[i].Key != other.Map[i].Key || !v.Map[i].Value.Equal(other.Map[i].Value) {
				return false
			}
		}
		return true
	case KindHash:
		return v.Hash.Equal(other.Hash)
	case KindIdentity:
		return v.Identity.Equal(other.Identity)
	case KindLockbox:
		return bytesEqual(v.Lockbox, other.Lockbox)
	case KindTimestamp:
		return v.Timestamp.Equal(other.Timestamp)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
