// Copyright 2025 Certen Protocol
//
// Validate — the algorithm of spec.md §4.G.1, operating directly on an
// already-decoded value.Value tree rather than Rust's streaming byte
// parser (a deliberate simplification: pkg/value already materializes
// the full tree for Document/Entry bodies, so there is no separate
// zero-copy parser to drive — see DESIGN.md). Grounded on
// original_source/src/validator/array.rs for the Array algorithm shape
// (contains speculation, same_len length comparison) and
// enum_set.rs/time.rs for Enum and Time.

package validator

import (
	"github.com/certen/fogdb/pkg/value"
)

// DefaultMaxDepth bounds validator recursion, per spec.md §5 ("a
// configurable maximum recursion depth").
const DefaultMaxDepth = 64

// ctx threads the type table, checklist, and depth bound through a
// single Validate call.
type ctx struct {
	types    map[string]*Validator
	list     *Checklist
	maxDepth int
}

// withChecklist returns a copy of c that accumulates into list instead
// of c.list, for a speculative attempt whose checklist entries must not
// reach the caller unless the attempt itself succeeds.
func (c *ctx) withChecklist(list *Checklist) *ctx {
	cp := *c
	cp.list = list
	return &cp
}

// Validate checks val against v, resolving any Ref against types.
// checklist may be nil if the caller has no use for deferred schema
// constraints. maxDepth <= 0 selects DefaultMaxDepth.
func Validate(types map[string]*Validator, v *Validator, val value.Value, checklist *Checklist, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	c := &ctx{types: types, list: checklist, maxDepth: maxDepth}
	return c.validate(v, val, "$", 0, nil)
}

// validate dispatches on v.Kind. chain tracks the Ref names resolved
// without consuming a value (i.e. without descending into a child),
// so a Ref cycle at the same logical position is detected and treated
// as already satisfied, per spec.md §4.G's least-fixed-point rule.
// Descending into an actual child resets chain to nil, since that is a
// new logical position.
func (c *ctx) validate(v *Validator, val value.Value, path string, depth int, chain []string) error {
	if depth > c.maxDepth {
		return ErrRecursionDepthExceeded
	}

	switch v.Kind {
	case KindAny:
		return nil
	case KindNull:
		if val.Kind != value.KindNull {
			return failAt(path, "expected null, got %s", val.Kind)
		}
		return nil
	case KindBool:
		return c.validateScalar(v, val, value.KindBool, path)
	case KindInt:
		return c.validateOrdered(v, val, value.KindInt, path, compareInt)
	case KindF32:
		return c.validateOrdered(v, val, value.KindF32, path, compareF32)
	case KindF64:
		return c.validateOrdered(v, val, value.KindF64, path, compareF64)
	case KindStr:
		return c.validateLenBounded(v, val, value.KindStr, path, func(val value.Value) int { return len(val.Str) })
	case KindBin:
		return c.validateLenBounded(v, val, value.KindBin, path, func(val value.Value) int { return len(val.Bin) })
	case KindHash:
		return c.validateHash(v, val, path)
	case KindIdentity:
		return c.validateScalar(v, val, value.KindIdentity, path)
	case KindLockbox:
		return c.validateScalar(v, val, value.KindLockbox, path)
	case KindTime:
		return c.validateTime(v, val, path)
	case KindArray:
		return c.validateArray(v, val, path, depth)
	case KindMap:
		return c.validateMap(v, val, path, depth)
	case KindEnum:
		return c.validateEnum(v, val, path, depth)
	case KindMulti:
		return c.validateMulti(v, val, path, depth, chain)
	case KindRef:
		return c.validateRef(v, val, path, depth, chain)
	default:
		return failAt(path, "unknown validator kind %v", v.Kind)
	}
}

func (c *ctx) validateRef(v *Validator, val value.Value, path string, depth int, chain []string) error {
	for _, name := range chain {
		if name == v.RefName {
			// Re-entering the same ref at the same logical position:
			// least-fixed-point, treat as satisfied.
			return nil
		}
	}
	target, ok := c.types[v.RefName]
	if !ok {
		return failAt(path, "ref to unknown type %q", v.RefName)
	}
	next := append(append([]string(nil), chain...), v.RefName)
	return c.validate(target, val, path, depth+1, next)
}

func (c *ctx) validateMulti(v *Validator, val value.Value, path string, depth int, chain []string) error {
	if len(v.Options) == 0 {
		return failAt(path, "multi validator has no branches")
	}
	var lastErr error
	for _, opt := range v.Options {
		if err := c.validate(opt, val, path, depth+1, chain); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return failAt(path, "no branch of multi validator matched, last error: %v", lastErr)
}

// membershipOK checks the shared in/nin family against val, using
// value.Equal for comparison.
func membershipOK(in, nin []value.Value, val value.Value) (bool, string) {
	if len(in) > 0 {
		found := false
		for _, want := range in {
			if want.Equal(val) {
				found = true
				break
			}
		}
		if !found {
			return false, "value is not on `in` list"
		}
	}
	for _, bad := range nin {
		if bad.Equal(val) {
			return false, "value is on `nin` list"
		}
	}
	return true, ""
}

func (c *ctx) validateScalar(v *Validator, val value.Value, want value.Kind, path string) error {
	if val.Kind != want {
		return failAt(path, "expected %s, got %s", want, val.Kind)
	}
	if ok, reason := membershipOK(v.In, v.Nin, val); !ok {
		return failAt(path, "%s", reason)
	}
	return nil
}

type compareFn func(a, b value.Value) int

func compareInt(a, b value.Value) int {
	switch {
	case a.Int < b.Int:
		return -1
	case a.Int > b.Int:
		return 1
	default:
		return 0
	}
}

func compareF32(a, b value.Value) int {
	switch {
	case a.F32 < b.F32:
		return -1
	case a.F32 > b.F32:
		return 1
	default:
		return 0
	}
}

func compareF64(a, b value.Value) int {
	switch {
	case a.F64 < b.F64:
		return -1
	case a.F64 > b.F64:
		return 1
	default:
		return 0
	}
}

func (c *ctx) validateOrdered(v *Validator, val value.Value, want value.Kind, path string, cmp compareFn) error {
	if val.Kind != want {
		return failAt(path, "expected %s, got %s", want, val.Kind)
	}
	if v.HasMax {
		d := cmp(val, v.Max)
		if v.ExMax && d >= 0 {
			return failAt(path, "value not strictly less than max")
		}
		if !v.ExMax && d > 0 {
			return failAt(path, "value greater than max")
		}
	}
	if v.HasMin {
		d := cmp(val, v.Min)
		if v.ExMin && d <= 0 {
			return failAt(path, "value not strictly greater than min")
		}
		if !v.ExMin && d < 0 {
			return failAt(path, "value less than min")
		}
	}
	if ok, reason := membershipOK(v.In, v.Nin, val); !ok {
		return failAt(path, "%s", reason)
	}
	return nil
}

func (c *ctx) validateLenBounded(v *Validator, val value.Value, want value.Kind, path string, length func(value.Value) int) error {
	if val.Kind != want {
		return failAt(path, "expected %s, got %s", want, val.Kind)
	}
	n := uint32(length(val))
	if n > v.MaxLen {
		return failAt(path, "length %d exceeds max_len %d", n, v.MaxLen)
	}
	if n < v.MinLen {
		return failAt(path, "length %d below min_len %d", n, v.MinLen)
	}
	if ok, reason := membershipOK(v.In, v.Nin, val); !ok {
		return failAt(path, "%s", reason)
	}
	return nil
}

func (c *ctx) validateHash(v *Validator, val value.Value, path string) error {
	if val.Kind != value.KindHash {
		return failAt(path, "expected hash, got %s", val.Kind)
	}
	if ok, reason := membershipOK(v.In, v.Nin, val); !ok {
		return failAt(path, "%s", reason)
	}
	if v.HasSchema {
		c.list.Add(ChecklistEntry{Path: path, Hash: val.Hash, Schema: v.SchemaHash})
	}
	return nil
}

func (c *ctx) validateTime(v *Validator, val value.Value, path string) error {
	if val.Kind != value.KindTimestamp {
		return failAt(path, "expected timestamp, got %s", val.Kind)
	}
	if v.HasMax {
		d := val.Timestamp.Compare(v.Max.Timestamp)
		if v.ExMax && d >= 0 {
			return failAt(path, "timestamp not strictly less than max")
		}
		if !v.ExMax && d > 0 {
			return failAt(path, "timestamp greater than max")
		}
	}
	if v.HasMin {
		d := val.Timestamp.Compare(v.Min.Timestamp)
		if v.ExMin && d <= 0 {
			return failAt(path, "timestamp not strictly greater than min")
		}
		if !v.ExMin && d < 0 {
			return failAt(path, "timestamp less than min")
		}
	}
	if ok, reason := membershipOK(v.In, v.Nin, val); !ok {
		return failAt(path, "%s", reason)
	}
	return nil
}
