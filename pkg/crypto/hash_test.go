// Copyright 2025 Certen Protocol

package crypto

import "testing"

func TestHashStateSnapshotIsStable(t *testing.T) {
	s, err := NewHashState(Version1)
	if err != nil {
		t.Fatalf("NewHashState: %v", err)
	}
	s.Write([]byte("hello "))
	mid := s.Snapshot()
	s.Write([]byte("world"))
	end := s.Snapshot()

	if mid.Equal(end) {
		t.Fatalf("snapshot after more writes should differ")
	}

	s2, _ := NewHashState(Version1)
	s2.Write([]byte("hello "))
	if !s2.Snapshot().Equal(mid) {
		t.Errorf("identical prefixes should produce identical snapshots")
	}
}

func TestHashEncodeDecodeRoundTrip(t *testing.T) {
	s, _ := NewHashState(Version1)
	s.Write([]byte("payload"))
	h := s.Snapshot()

	b := h.Encode()
	if len(b) != 1+DigestSize {
		t.Fatalf("encoded length = %d, want %d", len(b), 1+DigestSize)
	}
	got, err := DecodeHash(b)
	if err != nil {
		t.Fatalf("DecodeHash: %v", err)
	}
	if !got.Equal(h) {
		t.Errorf("round-tripped hash mismatch")
	}
}

func TestDecodeHashRejectsUnsupportedVersion(t *testing.T) {
	b := make([]byte, 1+DigestSize)
	b[0] = 9
	if _, err := DecodeHash(b); err != ErrUnsupportedVersion {
		t.Errorf("got %v, want ErrUnsupportedVersion", err)
	}
}

func TestSignVerify(t *testing.T) {
	kp, err := GenerateKeyPairDefault()
	if err != nil {
		t.Fatalf("GenerateKeyPairDefault: %v", err)
	}
	s, _ := NewHashState(Version1)
	s.Write([]byte("doc body"))
	preHash := s.Snapshot()

	sig := kp.Sign(preHash)
	if !Verify(kp.Identity, preHash, sig) {
		t.Errorf("verify failed for valid signature")
	}

	tampered := s.Snapshot()
	tampered.Digest[0] ^= 0xFF
	if Verify(kp.Identity, tampered, sig) {
		t.Errorf("verify succeeded against tampered hash")
	}
}
