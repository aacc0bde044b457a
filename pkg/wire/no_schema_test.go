// Copyright 2025 Certen Protocol

package wire

import (
	"testing"

	"github.com/certen/fogdb/pkg/crypto"
	"github.com/certen/fogdb/pkg/document"
	"github.com/certen/fogdb/pkg/entry"
	"github.com/certen/fogdb/pkg/value"
	"github.com/certen/fogdb/pkg/vault"
)

func mustMap(t *testing.T, entries []value.MapEntry) value.Value {
	t.Helper()
	v, err := value.NewMap(entries)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return v
}

// TestS1DocRoundTrip is spec scenario S1: body {"":H0, "title":"t",
// "description":"d"} round-trips through encode/trusted-decode with an
// identical doc_hash.
func TestS1DocRoundTrip(t *testing.T) {
	body := mustMap(t, []value.MapEntry{
		{Key: "", Value: value.NewHash(crypto.ZeroHash)},
		{Key: "title", Value: value.NewStr("t")},
		{Key: "description", Value: value.NewStr("d")},
	})
	d, err := document.New(body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c := NewCodec()
	wire := c.EncodeDoc(d, nil)
	got, err := c.TrustedDecodeDoc(wire)
	if err != nil {
		t.Fatalf("TrustedDecodeDoc: %v", err)
	}
	if !got.DocHash().Equal(d.DocHash()) {
		t.Errorf("doc_hash mismatch: got %v, want %v", got.DocHash(), d.DocHash())
	}
	gotBody, err := got.Body()
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	wantBody, _ := d.Body()
	if !gotBody.Equal(wantBody) {
		t.Errorf("round-tripped body differs")
	}
}

// TestS2SignThenCompress is spec scenario S2: sign with two keys, then
// compress and strictly decode, preserving doc_hash and signer order.
func TestS2SignThenCompress(t *testing.T) {
	body := mustMap(t, []value.MapEntry{
		{Key: "title", Value: value.NewStr("t")},
		{Key: "description", Value: value.NewStr("d")},
	})
	d, err := document.New(body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	v := vault.NewMemoryVault()
	k1, _ := v.NewKey(crypto.SystemRNG{})
	k2, _ := v.NewKey(crypto.SystemRNG{})
	if err := d.Sign(v, k1); err != nil {
		t.Fatalf("Sign k1: %v", err)
	}
	if err := d.Sign(v, k2); err != nil {
		t.Fatalf("Sign k2: %v", err)
	}

	c := NewCodec()
	compressed, err := c.CompressDoc(d, 3, nil)
	if err != nil {
		t.Fatalf("CompressDoc: %v", err)
	}
	got, err := c.DecodeDoc(compressed)
	if err != nil {
		t.Fatalf("DecodeDoc: %v", err)
	}
	if !got.DocHash().Equal(d.DocHash()) {
		t.Errorf("doc_hash mismatch after compress/decode")
	}
	id1, _ := v.Identity(k1)
	id2, _ := v.Identity(k2)
	signedBy := got.SignedBy()
	if len(signedBy) != 2 || !signedBy[0].Equal(id1) || !signedBy[1].Equal(id2) {
		t.Errorf("signed_by = %+v, want [%v, %v]", signedBy, id1, id2)
	}
}

// TestS3SchemaMismatch is spec scenario S3: a document carrying a
// schema hash, encoded via the uncompressed path, fails strict DecodeDoc
// with a schema-mismatch error.
func TestS3SchemaMismatch(t *testing.T) {
	body := mustMap(t, []value.MapEntry{
		{Key: "", Value: value.NewHash(crypto.ZeroHash)},
		{Key: "title", Value: value.NewStr("t")},
	})
	d, err := document.New(body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c := NewCodec()
	wire := c.EncodeDoc(d, nil)
	if _, err := c.DecodeDoc(wire); err != ErrSchemaMismatch {
		t.Errorf("got %v, want ErrSchemaMismatch", err)
	}
	if _, err := c.TrustedDecodeDoc(wire); err != nil {
		t.Errorf("TrustedDecodeDoc should tolerate a schema hash, got %v", err)
	}
}

// TestS4Tamper is spec scenario S4: flipping a byte in the signature
// tail causes strict DecodeDoc to fail with a signature error.
func TestS4Tamper(t *testing.T) {
	body := mustMap(t, []value.MapEntry{{Key: "title", Value: value.NewStr("t")}})
	d, err := document.New(body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v := vault.NewMemoryVault()
	id, _ := v.NewKey(crypto.SystemRNG{})
	if err := d.Sign(v, id); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	c := NewCodec()
	wire := c.EncodeDoc(d, nil)
	wire[len(wire)-1] ^= 0xFF

	if _, err := c.DecodeDoc(wire); err != document.ErrSignatureInvalid {
		t.Errorf("got %v, want ErrSignatureInvalid", err)
	}
}

func TestHashStableUnderCompression(t *testing.T) {
	body := mustMap(t, []value.MapEntry{
		{Key: "a", Value: value.NewInt(1)},
		{Key: "b", Value: value.NewStr("some longer text to give zstd something to chew on, repeated, repeated, repeated")},
	})
	d, err := document.New(body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v := vault.NewMemoryVault()
	id, _ := v.NewKey(crypto.SystemRNG{})
	if err := d.Sign(v, id); err != nil {
		t.Fatalf("Sign: %v", err)
	}

	c := NewCodec()
	compressed, err := c.CompressDoc(d, 0, nil)
	if err != nil {
		t.Fatalf("CompressDoc: %v", err)
	}
	got, err := c.DecodeDoc(compressed)
	if err != nil {
		t.Fatalf("DecodeDoc: %v", err)
	}
	if !got.Hash().Equal(d.Hash()) {
		t.Errorf("hash not stable across compression: got %v, want %v", got.Hash(), d.Hash())
	}
}

func TestEncodeDecodeEntryRoundTrip(t *testing.T) {
	hs, _ := crypto.NewHashState(crypto.Version1)
	hs.Write([]byte("parent doc"))
	docHash := hs.Snapshot()

	e, err := entry.New(docHash, "field", value.NewStr("value"))
	if err != nil {
		t.Fatalf("entry.New: %v", err)
	}

	c := NewCodec()
	wire := c.EncodeEntry(e, nil)
	got, err := c.DecodeEntry(wire, docHash, "field")
	if err != nil {
		t.Fatalf("DecodeEntry: %v", err)
	}
	if !got.EntryHash().Equal(e.EntryHash()) {
		t.Errorf("entry_hash mismatch")
	}
}

func TestCompressedFrameOverSizeRejected(t *testing.T) {
	body := mustMap(t, []value.MapEntry{{Key: "a", Value: value.NewInt(1)}})
	d, err := document.New(body)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c := &Codec{Zstd: oversizeZstd{}}
	compressed, err := c.CompressDoc(d, 0, nil)
	if err != nil {
		t.Fatalf("CompressDoc: %v", err)
	}
	if _, err := c.TrustedDecodeDoc(compressed); err != ErrFrameTooLarge {
		t.Errorf("got %v, want ErrFrameTooLarge", err)
	}
}

// oversizeZstd wraps DefaultZstd but lies about frame content size, to
// exercise the size-bound-before-allocation check.
type oversizeZstd struct{}

func (oversizeZstd) Compress(dst, src []byte, level int) ([]byte, error) {
	return DefaultZstd{}.Compress(dst, src, level)
}
func (oversizeZstd) Decompress(dst, frame []byte) ([]byte, error) {
	return DefaultZstd{}.Decompress(dst, frame)
}
func (oversizeZstd) FrameContentSize(frame []byte) (uint64, error) {
	return 1 << 62, nil
}
