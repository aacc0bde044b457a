// Copyright 2025 Certen Protocol
//
// Array validation, ported from
// original_source/src/validator/array.rs's validate(): length bounds,
// unique/in/nin over the whole array, contains (at least one item
// satisfies each contains validator), prefix+items per-index dispatch,
// and same_len group-length agreement.

package validator

import (
	"fmt"
	"strings"

	"github.com/certen/fogdb/pkg/value"
)

func (c *ctx) validateArray(v *Validator, val value.Value, path string, depth int) error {
	if val.Kind != value.KindArray {
		return failAt(path, "expected array, got %s", val.Kind)
	}
	items := val.Array
	n := uint32(len(items))
	if n > v.MaxLen {
		return failAt(path, "array length %d exceeds max_len %d", n, v.MaxLen)
	}
	if n < v.MinLen {
		return failAt(path, "array length %d below min_len %d", n, v.MinLen)
	}

	if len(v.In) > 0 || len(v.Nin) > 0 {
		if ok, reason := membershipOK(v.In, v.Nin, val); !ok {
			return failAt(path, "%s", reason)
		}
	}

	if v.Unique {
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if items[i].Equal(items[j]) {
					return failAt(path, "array does not contain unique elements")
				}
			}
		}
	}

	containsPassed := make([]bool, len(v.Contains))
	var sameLenWant int = -1
	sameLenSeen := 0

	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)

		for ci, cv := range v.Contains {
			if containsPassed[ci] {
				continue
			}
			// Speculative: try cv against item without committing any
			// checklist entries the attempt would produce unless it
			// actually succeeds, per the "without committing parser
			// state" requirement for contains matching.
			scratch := &Checklist{}
			if c.withChecklist(scratch).validate(cv, item, itemPath, depth+1, nil) == nil {
				containsPassed[ci] = true
				c.list.Merge(scratch)
			}
		}

		if containsSameLenIndex(v.SameLen, i) {
			switch item.Kind {
			case value.KindNull:
				if sameLenWant >= 0 {
					return failAt(path, "some sub-arrays for same_len are present, but the one at %d is not", i)
				}
			case value.KindArray:
				l := len(item.Array)
				if sameLenWant >= 0 {
					if sameLenWant != l {
						return failAt(path, "expected array of length %d for index %d, got %d", sameLenWant, i, l)
					}
				} else {
					sameLenWant = l
				}
				sameLenSeen++
			default:
				return failAt(itemPath, "same_len expects an array or null")
			}
		}

		var iv *Validator
		if i < len(v.Prefix) {
			iv = v.Prefix[i]
		} else {
			iv = v.Items
		}
		if iv == nil {
			iv = NewAny()
		}
		if err := c.validate(iv, item, itemPath, depth+1, nil); err != nil {
			return err
		}
	}

	if sameLenWant >= 0 && sameLenSeen != len(v.SameLen) {
		return failAt(path, "array had some, but not all, of the indices listed in same_len")
	}

	var missing []string
	for i, ok := range containsPassed {
		if !ok {
			missing = append(missing, fmt.Sprintf("%d", i))
		}
	}
	if len(missing) > 0 {
		return failAt(path, "array was missing items satisfying contains entries: %s", strings.Join(missing, ", "))
	}

	return nil
}

func containsSameLenIndex(sameLen []int, i int) bool {
	for _, idx := range sameLen {
		if idx == i {
			return true
		}
	}
	return false
}
