// Copyright 2025 Certen Protocol
//
// QueryCheck — spec.md §4.G.2's capability-gated query permission
// check, ported from array.rs/time.rs's query_check/query_check_self
// pair and generalized to every Kind: Any on either side is always
// accepted; Multi on the query side requires every branch accepted;
// matching variants permission-gate their fields; Ref resolves before
// comparing; Enum requires every query variant to exist in the schema
// enum and its inner validator to recurse.

package validator

// QueryCheck reports whether other, sent as a query validator, is
// permitted by the schema validator v. types resolves any Ref on
// either side.
func (v *Validator) QueryCheck(types map[string]*Validator, other *Validator) bool {
	return queryCheck(types, v, other, nil)
}

func queryCheck(types map[string]*Validator, self, other *Validator, chain []string) bool {
	if self.Kind == KindRef {
		resolved, ok := types[self.RefName]
		if !ok {
			return false
		}
		for _, n := range chain {
			if n == self.RefName {
				return true
			}
		}
		return queryCheck(types, resolved, other, append(append([]string(nil), chain...), self.RefName))
	}
	if other.Kind == KindRef {
		resolved, ok := types[other.RefName]
		if !ok {
			return false
		}
		return queryCheck(types, self, resolved, chain)
	}

	if self.Kind == KindAny {
		return true
	}
	if other.Kind == KindMulti {
		for _, opt := range other.Options {
			if !queryCheck(types, self, opt, chain) {
				return false
			}
		}
		return true
	}
	if other.Kind == KindAny {
		// A query-side Any is unconditionally accepted, matching
		// array.rs/time.rs/enum_set.rs's query_check: Any always falls
		// into the `_ => true` arm regardless of the schema's own
		// permission flags.
		return true
	}
	if self.Kind == KindMulti {
		for _, opt := range self.Options {
			if queryCheck(types, opt, other, chain) {
				return true
			}
		}
		return false
	}
	if self.Kind != other.Kind {
		return false
	}

	switch self.Kind {
	case KindNull:
		return true
	case KindBool, KindIdentity, KindLockbox:
		return self.Query || (len(other.In) == 0 && len(other.Nin) == 0)
	case KindInt, KindF32, KindF64:
		return (self.Query || (len(other.In) == 0 && len(other.Nin) == 0)) &&
			(self.Ord || (!other.HasMin && !other.HasMax))
	case KindStr, KindBin:
		return (self.Query || (len(other.In) == 0 && len(other.Nin) == 0)) &&
			(self.Size || (other.MaxLen == MaxUint32Len && other.MinLen == 0))
	case KindHash:
		return (self.Query || (len(other.In) == 0 && len(other.Nin) == 0)) &&
			(self.SchemaOk || !other.HasSchema)
	case KindTime:
		return (self.Query || (len(other.In) == 0 && len(other.Nin) == 0)) &&
			(self.Ord || (!other.ExMin && !other.ExMax && !other.HasMin && !other.HasMax))
	case KindArray:
		return arrayQueryCheck(types, self, other, chain)
	case KindMap:
		return mapQueryCheck(types, self, other, chain)
	case KindEnum:
		return enumQueryCheck(types, self, other, chain)
	default:
		return false
	}
}

func arrayQueryCheck(types map[string]*Validator, self, other *Validator, chain []string) bool {
	ok := (self.Query || (len(other.In) == 0 && len(other.Nin) == 0)) &&
		(self.ArrayOk || (len(other.Prefix) == 0 && other.Items != nil && other.Items.Kind == KindAny)) &&
		(self.ContainsOk || len(other.Contains) == 0) &&
		(self.UniqueOk || !other.Unique) &&
		(self.SameLenOk || len(other.SameLen) == 0) &&
		(self.Size || (other.MaxLen == MaxUint32Len && other.MinLen == 0))
	if !ok {
		return false
	}
	if self.ContainsOk {
		for _, c := range other.Contains {
			matched := queryCheck(types, self.Items, c, chain)
			for _, p := range self.Prefix {
				matched = matched && queryCheck(types, p, c, chain)
			}
			if !matched {
				return false
			}
		}
	}
	if self.ArrayOk {
		if !queryCheck(types, self.Items, other.Items, chain) {
			return false
		}
		n := len(self.Prefix)
		if len(other.Prefix) > n {
			n = len(other.Prefix)
		}
		for i := 0; i < n; i++ {
			mine := self.Items
			if i < len(self.Prefix) {
				mine = self.Prefix[i]
			}
			theirs := other.Items
			if i < len(other.Prefix) {
				theirs = other.Prefix[i]
			}
			if !queryCheck(types, mine, theirs, chain) {
				return false
			}
		}
	}
	return true
}

func mapQueryCheck(types map[string]*Validator, self, other *Validator, chain []string) bool {
	ok := (self.Query || (len(other.In) == 0 && len(other.Nin) == 0)) &&
		(self.UnknownOk || !other.UnknownOk) &&
		(self.Size || (other.MaxLen == MaxUint32Len && other.MinLen == 0))
	if !ok {
		return false
	}
	for key, ov := range other.Req {
		mv := self.Req[key]
		if mv == nil {
			mv = self.Opt[key]
		}
		if mv == nil {
			return false
		}
		if !queryCheck(types, mv, ov, chain) {
			return false
		}
	}
	for key, ov := range other.Opt {
		mv := self.Req[key]
		if mv == nil {
			mv = self.Opt[key]
		}
		if mv == nil {
			return false
		}
		if !queryCheck(types, mv, ov, chain) {
			return false
		}
	}
	return true
}

// enumQueryCheck implements spec.md §4.G.2 rule 5, with the
// not-explicitly-specified case of a Multi validator appearing on the
// schema side of an Enum comparison resolved as: permitted if any one
// of the schema Multi's options accepts the query enum (see
// DESIGN.md's Open Question resolution).
func enumQueryCheck(types map[string]*Validator, self, other *Validator, chain []string) bool {
	for name, otherInner := range other.Variants {
		selfInner, ok := self.Variants[name]
		if !ok {
			return false
		}
		switch {
		case selfInner == nil && otherInner == nil:
			continue
		case selfInner != nil && otherInner != nil:
			if !queryCheck(types, selfInner, otherInner, chain) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
