// Copyright 2025 Certen Protocol
//
// Validator — the recursive schema constraint tree of spec.md §4.G.
// A single flattened struct plays the role of Rust's per-kind structs
// (IntValidator, ArrayValidator, ...), the same flattening choice
// pkg/value.Value already made for the value tree itself; only the
// fields meaningful for Kind are populated. Grounded on
// original_source/src/validator/array.rs, enum_set.rs, time.rs for the
// field families and defaults, and on
// pkg/attestation/strategy/interface.go's capability-flag style for the
// query-permission bits (Query/Ord/Size/ArrayOk/ContainsOk/UniqueOk/
// SameLenOk/SchemaOk).

package validator

import (
	"math"

	"github.com/certen/fogdb/pkg/crypto"
	"github.com/certen/fogdb/pkg/value"
)

// MaxUint32Len is the default "unbounded" length/size, matching Rust's
// u32::MAX sentinel in array.rs/map length fields.
const MaxUint32Len = math.MaxUint32

// Validator is one node of a schema tree.
type Validator struct {
	Kind    Kind
	Comment string

	// Shared in/nin family (Bool, Int, F32, F64, Str, Bin, Hash,
	// Identity, Time). Compared against decoded values via value.Equal.
	In  []value.Value
	Nin []value.Value

	// Ordered bounds (Int, F32, F64, Time).
	HasMin, HasMax bool
	Min, Max       value.Value
	ExMin, ExMax   bool
	Ord            bool

	// Length bounds (Str, Bin, Array, Map).
	MinLen, MaxLen uint32
	Size           bool

	// Query permission for In/Nin membership (all scalar kinds).
	Query bool

	// Informational only; never enforced.
	Default value.Value

	// Hash-only: optional schema constraint, deferred to the Checklist
	// rather than resolved inline (the core does no I/O — spec.md §5).
	HasSchema  bool
	SchemaHash crypto.Hash
	SchemaOk   bool

	// Array-only.
	Contains    []*Validator
	Items       *Validator
	Prefix      []*Validator
	SameLen     []int
	Unique      bool
	ArrayOk     bool
	ContainsOk  bool
	UniqueOk    bool
	SameLenOk   bool

	// Map-only.
	Req       map[string]*Validator
	Opt       map[string]*Validator
	Keys      *Validator
	Values    *Validator
	UnknownOk bool

	// Enum-only. A nil *Validator entry means a unit variant (bare
	// string on the wire); a non-nil entry means a data variant
	// (single-key map on the wire).
	Variants map[string]*Validator

	// Multi-only: any-of.
	Options []*Validator

	// Ref-only: resolved against the types table passed to every
	// validate call, not eagerly inlined, so recursive schemas work.
	RefName string
}

// NewAny returns the Any validator, which accepts every value.
func NewAny() *Validator { return &Validator{Kind: KindAny} }

// NewNull returns a validator that only accepts Null.
func NewNull() *Validator { return &Validator{Kind: KindNull} }

// NewBool returns a default Bool validator.
func NewBool() *Validator { return &Validator{Kind: KindBool} }

// NewInt returns a default Int validator with unbounded min/max.
func NewInt() *Validator { return &Validator{Kind: KindInt} }

// NewF32 returns a default F32 validator.
func NewF32() *Validator { return &Validator{Kind: KindF32} }

// NewF64 returns a default F64 validator.
func NewF64() *Validator { return &Validator{Kind: KindF64} }

// NewStr returns a default Str validator with MaxLen unbounded.
func NewStr() *Validator { return &Validator{Kind: KindStr, MaxLen: MaxUint32Len} }

// NewBin returns a default Bin validator with MaxLen unbounded.
func NewBin() *Validator { return &Validator{Kind: KindBin, MaxLen: MaxUint32Len} }

// NewHash returns a default Hash validator.
func NewHash() *Validator { return &Validator{Kind: KindHash} }

// NewIdentity returns a default Identity validator.
func NewIdentity() *Validator { return &Validator{Kind: KindIdentity} }

// NewLockbox returns a default Lockbox validator.
func NewLockbox() *Validator { return &Validator{Kind: KindLockbox} }

// NewTime returns a default Time validator.
func NewTime() *Validator { return &Validator{Kind: KindTime} }

// NewArray returns a default Array validator: MaxLen unbounded, Items
// defaults to Any.
func NewArray() *Validator {
	return &Validator{Kind: KindArray, MaxLen: MaxUint32Len, Items: NewAny()}
}

// NewMap returns a default Map validator: MaxLen unbounded, Values
// defaults to Any.
func NewMap() *Validator {
	return &Validator{
		Kind:   KindMap,
		MaxLen: MaxUint32Len,
		Req:    map[string]*Validator{},
		Opt:    map[string]*Validator{},
		Values: NewAny(),
	}
}

// NewEnum returns an Enum validator over the given variant map.
func NewEnum(variants map[string]*Validator) *Validator {
	return &Validator{Kind: KindEnum, Variants: variants}
}

// NewMulti returns a Multi (any-of) validator.
func NewMulti(options []*Validator) *Validator {
	return &Validator{Kind: KindMulti, Options: options}
}

// NewRef returns a validator that resolves name against the types table
// at validate time.
func NewRef(name string) *Validator {
	return &Validator{Kind: KindRef, RefName: name}
}
