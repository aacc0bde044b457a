// Copyright 2025 Certen Protocol
//
// Size limits enforced before any hash is committed — spec.md §4.E:
// "MAX_DOC_SIZE and MAX_ENTRY_SIZE are fixed compile-time constants...
// the spec treats exact values as configuration but requires that they
// be enforced before any hash is committed."

package limits

const (
	// MaxDocSize bounds a Document's entire raw encoding, body plus
	// appended signatures (spec.md §3's literal invariant text: "len(raw)
	// ≤ MAX_DOC_SIZE" is stated as a Document invariant, not scoped to
	// the body alone — see SPEC_FULL.md §9 resolution #1).
	MaxDocSize = 1 << 20 // 1 MiB

	// MaxEntrySize bounds an Entry's entire raw encoding the same way.
	MaxEntrySize = 64 * 1024 // 64 KiB
)
