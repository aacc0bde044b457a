// Copyright 2025 Certen Protocol

package entry

import (
	"testing"

	"github.com/certen/fogdb/pkg/crypto"
	"github.com/certen/fogdb/pkg/value"
	"github.com/certen/fogdb/pkg/vault"
)

func testDocHash(t *testing.T) crypto.Hash {
	t.Helper()
	hs, err := crypto.NewHashState(crypto.Version1)
	if err != nil {
		t.Fatalf("NewHashState: %v", err)
	}
	hs.Write([]byte("parent document body"))
	return hs.Snapshot()
}

func TestNewEntryHashStable(t *testing.T) {
	docHash := testDocHash(t)
	body := value.NewStr("hello")

	e1, err := New(docHash, "title", body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e2, err := New(docHash, "title", body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !e1.EntryHash().Equal(e2.EntryHash()) {
		t.Errorf("entry hash not deterministic across identical construction")
	}
	if !e1.Hash().Equal(e1.EntryHash()) {
		t.Errorf("unsigned entry's Hash() should equal its EntryHash()")
	}
}

func TestNewEntryHashVariesByField(t *testing.T) {
	docHash := testDocHash(t)
	body := value.NewStr("hello")

	e1, err := New(docHash, "title", body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e2, err := New(docHash, "subtitle", body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e1.EntryHash().Equal(e2.EntryHash()) {
		t.Errorf("entries over different fields must hash differently")
	}
}

func TestNewEntryHashVariesByDocHash(t *testing.T) {
	docHash1 := testDocHash(t)
	hs, _ := crypto.NewHashState(crypto.Version1)
	hs.Write([]byte("a different parent document"))
	docHash2 := hs.Snapshot()

	body := value.NewStr("hello")
	e1, _ := New(docHash1, "title", body)
	e2, _ := New(docHash2, "title", body)
	if e1.EntryHash().Equal(e2.EntryHash()) {
		t.Errorf("entries over different parent doc hashes must hash differently")
	}
}

func TestEntrySignPreservesEntryHash(t *testing.T) {
	docHash := testDocHash(t)
	e, err := New(docHash, "title", value.NewStr("hello"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := e.EntryHash()

	v := vault.NewMemoryVault()
	id, err := v.NewKey(crypto.SystemRNG{})
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	if err := e.Sign(v, id); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !e.EntryHash().Equal(before) {
		t.Errorf("EntryHash changed after Sign, should be stable")
	}
	if e.Hash().Equal(before) {
		t.Errorf("Hash should change after Sign since it covers the appended signature")
	}
	if len(e.SignedBy()) != 1 {
		t.Fatalf("SignedBy = %d entries, want 1", len(e.SignedBy()))
	}
	identity, _ := v.Identity(id)
	if !e.SignedBy()[0].Equal(identity) {
		t.Errorf("SignedBy()[0] does not match signer identity")
	}
	if err := e.VerifySignatures(); err != nil {
		t.Errorf("VerifySignatures: %v", err)
	}
}

func TestEntryMultipleSignersIndependent(t *testing.T) {
	docHash := testDocHash(t)
	e, err := New(docHash, "title", value.NewStr("hello"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	v := vault.NewMemoryVault()
	id1, _ := v.NewKey(crypto.SystemRNG{})
	id2, _ := v.NewKey(crypto.SystemRNG{})

	if err := e.Sign(v, id1); err != nil {
		t.Fatalf("Sign id1: %v", err)
	}
	if err := e.Sign(v, id2); err != nil {
		t.Fatalf("Sign id2: %v", err)
	}
	if len(e.SignedBy()) != 2 {
		t.Fatalf("SignedBy = %d entries, want 2", len(e.SignedBy()))
	}
	if err := e.VerifySignatures(); err != nil {
		t.Errorf("VerifySignatures: %v", err)
	}
}

func TestEntryBodyRoundTrip(t *testing.T) {
	docHash := testDocHash(t)
	want := value.NewStr("hello world")
	e, err := New(docHash, "title", want)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := e.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("Body() = %+v, want %+v", got, want)
	}
}

func TestEntryTooLargeRejected(t *testing.T) {
	docHash := testDocHash(t)
	big := make([]byte, 128*1024)
	_, err := New(docHash, "blob", value.NewBin(big))
	if err != ErrTooLarge {
		t.Errorf("New with oversized body: got %v, want ErrTooLarge", err)
	}
}

func TestEntryCompressedCache(t *testing.T) {
	docHash := testDocHash(t)
	e, err := New(docHash, "title", value.NewStr("hello"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := e.CompressedCache(); ok {
		t.Fatalf("fresh entry should have no compressed cache")
	}
	e.SetCompressedCache([]byte("compressed-blob"))
	blob, ok := e.CompressedCache()
	if !ok || string(blob) != "compressed-blob" {
		t.Fatalf("CompressedCache() = %q, %v", blob, ok)
	}

	v := vault.NewMemoryVault()
	id, _ := v.NewKey(crypto.SystemRNG{})
	if err := e.Sign(v, id); err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, ok := e.CompressedCache(); ok {
		t.Errorf("Sign should invalidate the compressed cache")
	}
}
