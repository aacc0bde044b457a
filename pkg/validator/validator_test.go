// Copyright 2025 Certen Protocol

package validator

import (
	"testing"

	"github.com/certen/fogdb/pkg/crypto"
	"github.com/certen/fogdb/pkg/value"
)

func mustMap(t *testing.T, entries []value.MapEntry) value.Value {
	t.Helper()
	v, err := value.NewMap(entries)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return v
}

func TestIntInNin(t *testing.T) {
	v := NewInt()
	v.In = []value.Value{value.NewInt(1), value.NewInt(2)}
	if err := Validate(nil, v, value.NewInt(1), nil, 0); err != nil {
		t.Fatalf("expected 1 to pass in list: %v", err)
	}
	if err := Validate(nil, v, value.NewInt(3), nil, 0); err == nil {
		t.Fatal("expected 3 to fail, not on in list")
	}

	v2 := NewInt()
	v2.Nin = []value.Value{value.NewInt(5)}
	if err := Validate(nil, v2, value.NewInt(5), nil, 0); err == nil {
		t.Fatal("expected 5 to fail, on nin list")
	}
	if err := Validate(nil, v2, value.NewInt(6), nil, 0); err != nil {
		t.Fatalf("expected 6 to pass: %v", err)
	}
}

func TestIntMinMaxExclusive(t *testing.T) {
	v := NewInt()
	v.HasMin, v.Min = true, value.NewInt(0)
	v.HasMax, v.Max = true, value.NewInt(10)
	v.ExMax = true

	if err := Validate(nil, v, value.NewInt(10), nil, 0); err == nil {
		t.Fatal("expected 10 to fail exclusive max")
	}
	if err := Validate(nil, v, value.NewInt(9), nil, 0); err != nil {
		t.Fatalf("expected 9 to pass: %v", err)
	}
	if err := Validate(nil, v, value.NewInt(-1), nil, 0); err == nil {
		t.Fatal("expected -1 to fail min")
	}
}

func TestStrMaxLen(t *testing.T) {
	v := NewStr()
	v.MaxLen = 3
	if err := Validate(nil, v, value.NewStr("abc"), nil, 0); err != nil {
		t.Fatalf("expected abc to pass: %v", err)
	}
	if err := Validate(nil, v, value.NewStr("abcd"), nil, 0); err == nil {
		t.Fatal("expected abcd to fail max_len")
	}
}

func TestArrayMinMaxLen(t *testing.T) {
	v := NewArray()
	v.MinLen, v.MaxLen = 1, 2
	empty := value.NewArray(nil)
	if err := Validate(nil, v, empty, nil, 0); err == nil {
		t.Fatal("expected empty array to fail min_len")
	}
	three := value.NewArray([]value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)})
	if err := Validate(nil, v, three, nil, 0); err == nil {
		t.Fatal("expected 3-element array to fail max_len")
	}
	one := value.NewArray([]value.Value{value.NewInt(1)})
	if err := Validate(nil, v, one, nil, 0); err != nil {
		t.Fatalf("expected 1-element array to pass: %v", err)
	}
}

func TestArrayUnique(t *testing.T) {
	v := NewArray()
	v.Unique = true
	dup := value.NewArray([]value.Value{value.NewInt(1), value.NewInt(1)})
	if err := Validate(nil, v, dup, nil, 0); err == nil {
		t.Fatal("expected duplicate elements to fail unique")
	}
	distinct := value.NewArray([]value.Value{value.NewInt(1), value.NewInt(2)})
	if err := Validate(nil, v, distinct, nil, 0); err != nil {
		t.Fatalf("expected distinct elements to pass: %v", err)
	}
}

func TestArrayPrefixAndItems(t *testing.T) {
	v := NewArray()
	v.Prefix = []*Validator{NewStr(), NewInt()}
	v.Items = NewBool()

	good := value.NewArray([]value.Value{
		value.NewStr("a"), value.NewInt(1), value.NewBool(true), value.NewBool(false),
	})
	if err := Validate(nil, v, good, nil, 0); err != nil {
		t.Fatalf("expected well-typed array to pass: %v", err)
	}

	bad := value.NewArray([]value.Value{value.NewInt(9), value.NewInt(1)})
	if err := Validate(nil, v, bad, nil, 0); err == nil {
		t.Fatal("expected mismatched prefix type to fail")
	}
}

func TestArrayContains(t *testing.T) {
	v := NewArray()
	wantInt := NewInt()
	wantInt.HasMin, wantInt.Min = true, value.NewInt(100)
	v.Contains = []*Validator{wantInt}

	arr := value.NewArray([]value.Value{value.NewInt(1), value.NewInt(200)})
	if err := Validate(nil, v, arr, nil, 0); err != nil {
		t.Fatalf("expected contains to be satisfied: %v", err)
	}

	arr2 := value.NewArray([]value.Value{value.NewInt(1), value.NewInt(2)})
	if err := Validate(nil, v, arr2, nil, 0); err == nil {
		t.Fatal("expected contains to fail, no element >= 100")
	}
}

func TestArrayContainsDiscardsChecklistFromFailedAttempts(t *testing.T) {
	hashWant := NewHash()
	hashWant.HasSchema = true
	hashWant.SchemaHash = crypto.Hash{}

	v := NewArray()
	v.Contains = []*Validator{hashWant}

	// The first element is not a Hash, so matching hashWant against it
	// fails outright; the second element is a Hash and satisfies
	// hashWant, producing exactly one checklist entry.
	arr := value.NewArray([]value.Value{value.NewInt(1), value.NewHash(crypto.Hash{})})

	checklist := &Checklist{}
	if err := Validate(nil, v, arr, checklist, 0); err != nil {
		t.Fatalf("expected contains to be satisfied: %v", err)
	}
	if len(checklist.Entries) != 1 {
		t.Fatalf("expected exactly 1 checklist entry, got %d", len(checklist.Entries))
	}
}

func TestArraySameLen(t *testing.T) {
	v := NewArray()
	v.SameLen = []int{0, 1}

	a1 := value.NewArray([]value.Value{value.NewInt(1)})
	a2 := value.NewArray([]value.Value{value.NewInt(2)})
	ok := value.NewArray([]value.Value{a1, a2})
	if err := Validate(nil, v, ok, nil, 0); err != nil {
		t.Fatalf("expected matching sub-array lengths to pass: %v", err)
	}

	a3 := value.NewArray([]value.Value{value.NewInt(1), value.NewInt(2)})
	mismatched := value.NewArray([]value.Value{a1, a3})
	if err := Validate(nil, v, mismatched, nil, 0); err == nil {
		t.Fatal("expected mismatched sub-array lengths to fail")
	}
}

func TestMapReqOptUnknown(t *testing.T) {
	v := NewMap()
	v.Req["name"] = NewStr()
	v.Opt["age"] = NewInt()

	full := mustMap(t, []value.MapEntry{
		{Key: "name", Value: value.NewStr("a")},
		{Key: "age", Value: value.NewInt(5)},
	})
	if err := Validate(nil, v, full, nil, 0); err != nil {
		t.Fatalf("expected full map to pass: %v", err)
	}

	minimal := mustMap(t, []value.MapEntry{{Key: "name", Value: value.NewStr("a")}})
	if err := Validate(nil, v, minimal, nil, 0); err != nil {
		t.Fatalf("expected minimal map to pass: %v", err)
	}

	missingReq := mustMap(t, []value.MapEntry{{Key: "age", Value: value.NewInt(5)}})
	if err := Validate(nil, v, missingReq, nil, 0); err == nil {
		t.Fatal("expected missing required key to fail")
	}

	unknown := mustMap(t, []value.MapEntry{
		{Key: "name", Value: value.NewStr("a")},
		{Key: "extra", Value: value.Null},
	})
	if err := Validate(nil, v, unknown, nil, 0); err == nil {
		t.Fatal("expected unknown key to fail without unknown_ok")
	}

	v.UnknownOk = true
	if err := Validate(nil, v, unknown, nil, 0); err != nil {
		t.Fatalf("expected unknown key to pass with unknown_ok: %v", err)
	}
}

func TestEnumUnitAndDataVariants(t *testing.T) {
	v := NewEnum(map[string]*Validator{
		"Empty":   nil,
		"Integer": NewInt(),
	})

	if err := Validate(nil, v, value.NewStr("Empty"), nil, 0); err != nil {
		t.Fatalf("expected unit variant to pass: %v", err)
	}

	data := mustMap(t, []value.MapEntry{{Key: "Integer", Value: value.NewInt(5)}})
	if err := Validate(nil, v, data, nil, 0); err != nil {
		t.Fatalf("expected data variant to pass: %v", err)
	}

	badData := mustMap(t, []value.MapEntry{{Key: "Empty", Value: value.Null}})
	if err := Validate(nil, v, badData, nil, 0); err == nil {
		t.Fatal("expected unit variant carrying a value to fail")
	}

	unknownVariant := value.NewStr("Nope")
	if err := Validate(nil, v, unknownVariant, nil, 0); err == nil {
		t.Fatal("expected unknown variant name to fail")
	}
}

func TestMultiAnyOf(t *testing.T) {
	v := NewMulti([]*Validator{NewInt(), NewStr()})
	if err := Validate(nil, v, value.NewInt(1), nil, 0); err != nil {
		t.Fatalf("expected int branch to pass: %v", err)
	}
	if err := Validate(nil, v, value.NewStr("x"), nil, 0); err != nil {
		t.Fatalf("expected str branch to pass: %v", err)
	}
	if err := Validate(nil, v, value.NewBool(true), nil, 0); err == nil {
		t.Fatal("expected bool to fail, no matching branch")
	}
}

func TestRefResolution(t *testing.T) {
	types := map[string]*Validator{"Age": NewInt()}
	v := NewRef("Age")
	if err := Validate(types, v, value.NewInt(5), nil, 0); err != nil {
		t.Fatalf("expected ref to resolve and pass: %v", err)
	}
	if err := Validate(types, v, value.NewStr("x"), nil, 0); err == nil {
		t.Fatal("expected ref-resolved int validator to reject a string")
	}
}

func TestRefUnknownName(t *testing.T) {
	v := NewRef("Missing")
	if err := Validate(nil, v, value.NewInt(5), nil, 0); err == nil {
		t.Fatal("expected unknown ref name to fail")
	}
}

func TestRefCycleTreatedAsSatisfied(t *testing.T) {
	// A recursive type: Node = Ref("Node"). Re-entering the same ref at
	// the same logical position (no value consumed in between) must be
	// treated as already satisfied, per the least-fixed-point rule.
	types := map[string]*Validator{"Node": NewRef("Node")}
	v := NewRef("Node")
	if err := Validate(types, v, value.NewInt(1), nil, 0); err != nil {
		t.Fatalf("expected cyclic self-ref to short-circuit as satisfied: %v", err)
	}
}

func TestMaxDepthExceeded(t *testing.T) {
	// A genuinely recursive array-of-array structure with no base case
	// reachable before depth runs out must hit the depth bound, not
	// loop forever.
	inner := NewArray()
	outer := NewArray()
	outer.Items = inner
	inner.Items = outer

	lvl3 := value.NewArray(nil)
	lvl2 := value.NewArray([]value.Value{lvl3})
	lvl1 := value.NewArray([]value.Value{lvl2})
	val := value.NewArray([]value.Value{lvl1})

	if err := Validate(nil, outer, val, nil, 2); err != ErrRecursionDepthExceeded {
		t.Fatalf("expected ErrRecursionDepthExceeded, got %v", err)
	}
}

func TestQueryCheckScalarGating(t *testing.T) {
	schema := NewInt()
	query := NewInt()
	query.HasMin, query.Min = true, value.NewInt(0)

	if schema.QueryCheck(nil, query) {
		t.Fatal("expected ungated schema to reject a ranged query")
	}

	schema.Ord = true
	if !schema.QueryCheck(nil, query) {
		t.Fatal("expected ord-gated schema to accept a ranged query")
	}
}

func TestQueryCheckAnyAcceptsEverything(t *testing.T) {
	schema := NewAny()
	if !schema.QueryCheck(nil, NewInt()) {
		t.Fatal("expected Any schema to accept any query validator")
	}
}

func TestQueryCheckQuerySideAnyAlwaysAccepted(t *testing.T) {
	schema := NewInt()
	if !schema.QueryCheck(nil, NewAny()) {
		t.Fatal("expected a query-side Any to be accepted regardless of the schema's permission flags")
	}
}

func TestQueryCheckMultiOnQuerySide(t *testing.T) {
	schema := NewInt()
	schema.Ord = true
	ranged := NewInt()
	ranged.HasMin, ranged.Min = true, value.NewInt(0)
	query := NewMulti([]*Validator{NewInt(), ranged})
	if !schema.QueryCheck(nil, query) {
		t.Fatal("expected every branch of query multi to be individually accepted")
	}

	schema2 := NewInt()
	if schema2.QueryCheck(nil, query) {
		t.Fatal("expected query multi to be rejected when one branch is not gated")
	}
}

func TestQueryCheckEnumVariantSubset(t *testing.T) {
	schema := NewEnum(map[string]*Validator{
		"Empty":   nil,
		"Integer": NewInt(),
	})
	query := NewEnum(map[string]*Validator{"Empty": nil})
	if !schema.QueryCheck(nil, query) {
		t.Fatal("expected query using a subset of schema variants to be accepted")
	}

	badQuery := NewEnum(map[string]*Validator{"Nope": nil})
	if schema.QueryCheck(nil, badQuery) {
		t.Fatal("expected query naming an unknown variant to be rejected")
	}
}

func TestSchemaRejectsUnknownRef(t *testing.T) {
	if _, err := NewSchema(NewAny(), map[string]*Validator{"A": NewRef("B")}); err != ErrUnknownType {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestSchemaAcceptsResolvableRefs(t *testing.T) {
	types := map[string]*Validator{"A": NewInt(), "B": NewRef("A")}
	if _, err := NewSchema(NewRef("B"), types); err != nil {
		t.Fatalf("expected resolvable refs to build a schema: %v", err)
	}
}
