// Copyright 2025 Certen Protocol
//
// Checklist — the deferred-constraint accumulator named in spec.md
// §4.G.1 ("e.g., this hash must resolve to a document conforming to
// schema X"). The core performs no I/O (spec.md §5), so a Hash
// validator carrying a schema constraint cannot resolve it inline; it
// appends an entry here instead, for the caller to resolve against
// whatever document store it has.

package validator

import "github.com/certen/fogdb/pkg/crypto"

// ChecklistEntry names one deferred constraint: the document at Hash
// must conform to the schema named by Schema.
type ChecklistEntry struct {
	Path   string
	Hash   crypto.Hash
	Schema crypto.Hash
}

// Checklist accumulates ChecklistEntry values produced during a single
// Validate call.
type Checklist struct {
	Entries []ChecklistEntry
}

// Add appends e to the checklist. A nil *Checklist silently discards
// entries, so callers that don't need deferred schema checks can pass
// nil to Validate.
func (c *Checklist) Add(e ChecklistEntry) {
	if c == nil {
		return
	}
	c.Entries = append(c.Entries, e)
}

// Merge appends other's entries onto c, in order. A nil c or other is a
// no-op, so speculative validation attempts (e.g. array `contains`) can
// always build a scratch Checklist and merge it unconditionally once
// the attempt is known to have succeeded.
func (c *Checklist) Merge(other *Checklist) {
	if c == nil || other == nil {
		return
	}
	c.Entries = append(c.Entries, other.Entries...)
}
