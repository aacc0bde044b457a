// Copyright 2025 Certen Protocol
//
// Enum validation, ported from
// original_source/src/validator/enum_set.rs: a wire value is either a
// bare string (unit variant) or a single-key map (data variant). Unit
// variants must map to a nil inner validator; data variants must map
// to a non-nil one and recurse into it.

package validator

import (
	"github.com/certen/fogdb/pkg/value"
)

func (c *ctx) validateEnum(v *Validator, val value.Value, path string, depth int) error {
	var key string
	var hasValue bool
	var inner value.Value

	switch val.Kind {
	case value.KindStr:
		key = val.Str
		hasValue = false
	case value.KindMap:
		if len(val.Map) != 1 {
			return failAt(path, "expected a single-key map for enum, got %d keys", len(val.Map))
		}
		key = val.Map[0].Key
		inner = val.Map[0].Value
		hasValue = true
	default:
		return failAt(path, "expected a string or single-key map for enum, got %s", val.Kind)
	}

	variant, ok := v.Variants[key]
	if !ok {
		return failAt(path, "%q is not in enum list", key)
	}

	switch {
	case variant == nil && !hasValue:
		return nil
	case variant == nil && hasValue:
		return failAt(path, "enum variant %q should not have an associated value", key)
	case variant != nil && !hasValue:
		return failAt(path, "enum variant %q should have an associated value", key)
	default:
		return c.validate(variant, inner, path+"."+key, depth+1, nil)
	}
}
