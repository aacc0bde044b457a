// Copyright 2025 Certen Protocol
//
// Map validation per spec.md §4.G.1: every `req` key must be present;
// each present key routes to its validator (req, then opt, else
// values); unknown keys fail unless unknown_ok; min_len/max_len bound
// entry count. No map.rs was retrieved alongside array.rs/enum_set.rs,
// so the dispatch shape here mirrors validate_array.go's per-index routing
// rather than a second source file.

package validator

import (
	"fmt"

	"github.com/certen/fogdb/pkg/value"
)

func (c *ctx) validateMap(v *Validator, val value.Value, path string, depth int) error {
	if val.Kind != value.KindMap {
		return failAt(path, "expected map, got %s", val.Kind)
	}
	n := uint32(len(val.Map))
	if n > v.MaxLen {
		return failAt(path, "map has %d entries, exceeds max_len %d", n, v.MaxLen)
	}
	if n < v.MinLen {
		return failAt(path, "map has %d entries, below min_len %d", n, v.MinLen)
	}

	seen := make(map[string]bool, len(val.Map))
	for _, entry := range val.Map {
		seen[entry.Key] = true
		entryPath := fmt.Sprintf("%s.%s", path, entry.Key)

		var ev *Validator
		switch {
		case v.Req[entry.Key] != nil:
			ev = v.Req[entry.Key]
		case v.Opt[entry.Key] != nil:
			ev = v.Opt[entry.Key]
		default:
			if !v.UnknownOk {
				return failAt(entryPath, "unknown key not permitted")
			}
			ev = v.Values
		}
		if ev == nil {
			ev = NewAny()
		}
		if err := c.validate(ev, entry.Value, entryPath, depth+1, nil); err != nil {
			return err
		}

		if v.Keys != nil {
			if err := c.validate(v.Keys, value.NewStr(entry.Key), entryPath, depth+1, nil); err != nil {
				return err
			}
		}
	}

	for key := range v.Req {
		if !seen[key] {
			return failAt(path, "missing required key %q", key)
		}
	}

	return nil
}
