// Copyright 2025 Certen Protocol
//
// Codec — the CompressType envelope plus encode/compress/decode entry
// points for Document and Entry, grounded directly on
// original_source/src/no_schema.rs. Named Codec rather than NoSchema
// because this repo has only one concrete implementation (the
// schema-bound WithSchema sibling fog_pack names alongside it isn't
// present in the retrieved source, so it is not reproduced here — see
// DESIGN.md). Its decode paths reject any Compressed/DictCompressed
// frame unconditionally, exactly as the original NoSchema type does,
// and its strict DecodeDoc additionally rejects a body carrying a
// schema hash.

package wire

import (
	"github.com/certen/fogdb/pkg/crypto"
	"github.com/certen/fogdb/pkg/document"
	"github.com/certen/fogdb/pkg/entry"
	"github.com/certen/fogdb/pkg/limits"
	"github.com/certen/fogdb/pkg/lockbox"
	"github.com/certen/fogdb/pkg/value"
)

// Codec encodes and decodes Documents and Entries across the
// compression boundary. The zero value is usable; it defaults to
// DefaultZstd.
type Codec struct {
	Zstd Zstd
}

// NewCodec returns a Codec using the default klauspost/compress/zstd
// backed Zstd implementation.
func NewCodec() *Codec {
	return &Codec{Zstd: DefaultZstd{}}
}

func (c *Codec) zstd() Zstd {
	if c.Zstd == nil {
		return DefaultZstd{}
	}
	return c.Zstd
}

// EncodeDoc appends doc's uncompressed wire form to buf. Never fails:
// Document already enforces MAX_DOC_SIZE at construction time.
func (c *Codec) EncodeDoc(doc *document.Document, buf []byte) []byte {
	buf = append(buf, byte(Uncompressed))
	return append(buf, doc.Raw()...)
}

// CompressDoc appends doc's compressed wire form to buf at the given
// zstd level (0 selects the library default). If doc has a schema hash,
// the "" key's encoded Hash value is written uncompressed ahead of the
// zstd frame so a receiver can inspect it without decompressing.
func (c *Codec) CompressDoc(doc *document.Document, level int, buf []byte) ([]byte, error) {
	raw := doc.Raw()
	docLen := doc.DocLen()

	if schemaHash, ok := doc.SchemaHash(); ok {
		buf = append(buf, byte(Compressed))
		prefixLen := schemaHashPrefixLen(raw[:docLen], schemaHash)
		buf = append(buf, raw[:prefixLen]...)
		return c.zstd().Compress(buf, raw[prefixLen:], level)
	}

	buf = append(buf, byte(CompressedNoSchema))
	return c.zstd().Compress(buf, raw, level)
}

// schemaHashPrefixLen returns the number of leading bytes of raw that
// encode the map header plus the "" -> Hash entry, i.e. the prefix
// compress_doc leaves uncompressed. It locates that entry by searching
// raw for the encoded Hash value rather than trusting a cached offset,
// since Document does not otherwise track it.
func schemaHashPrefixLen(raw []byte, schemaHash crypto.Hash) int {
	want := value.Encode(value.NewHash(schemaHash))
	// The "" entry is the map's first entry in canonical order, since ""
	// sorts before every other valid field name. Its bytes are the
	// fixstr/str8 key header for "" immediately followed by the encoded
	// Hash value; we only need the latter's length to know the prefix.
	idx := indexOf(raw, want)
	if idx < 0 {
		return 0
	}
	return idx + len(want)
}

func indexOf(haystack, needle []byte) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if string(haystack[i:i+len(needle)]) == string(needle) {
			return i
		}
	}
	return -1
}

// EncodeEntry appends e's uncompressed wire form to buf.
func (c *Codec) EncodeEntry(e *entry.Entry, buf []byte) []byte {
	buf = append(buf, byte(Uncompressed))
	return append(buf, e.Raw()...)
}

// CompressEntry appends e's compressed wire form to buf. Entries never
// carry a schema hash of their own, so this always uses
// CompressedNoSchema.
func (c *Codec) CompressEntry(e *entry.Entry, level int, buf []byte) ([]byte, error) {
	buf = append(buf, byte(CompressedNoSchema))
	return c.zstd().Compress(buf, e.Raw(), level)
}

// decodeRawWithZstd strips the CompressType tag from buf, decompressing
// if needed, and returns the plain value+signature bytes plus (if the
// blob was compressed) the original compressed bytes for caching.
// Rejects Compressed/DictCompressed unconditionally, matching the
// grounded NoSchema decode_raw.
func decodeRawWithZstd(maxSize int, buf []byte, z Zstd) (raw []byte, compressedCache []byte, err error) {
	ctype, rest, err := decodeCompressType(buf)
	if err != nil {
		return nil, nil, err
	}
	switch ctype {
	case Uncompressed:
		if len(rest) > maxSize {
			return nil, nil, ErrSizeExceeded
		}
		return rest, nil, nil
	case CompressedNoSchema:
		size, err := z.FrameContentSize(rest)
		if err != nil {
			return nil, nil, ErrTruncated
		}
		if size > uint64(maxSize) {
			return nil, nil, ErrFrameTooLarge
		}
		decoded, err := z.Decompress(make([]byte, 0, size), rest)
		if err != nil {
			return nil, nil, ErrTruncated
		}
		cache := append([]byte{byte(ctype)}, rest...)
		return decoded, cache, nil
	case Compressed, DictCompressed:
		return nil, nil, ErrSchemaMismatch
	default:
		return nil, nil, ErrUnknownCompressType
	}
}

// TrustedDecodeDoc parses buf into a Document doing the minimum work:
// no signature verification. Only safe for blobs from a trusted origin
// (e.g. internal storage). Fails on truncation, malformed value or
// signature-tail bytes, a frame that exceeds MAX_DOC_SIZE, an unknown
// CompressType, a Compressed/DictCompressed blob (ErrSchemaMismatch),
// or a "" key whose value is not a Hash.
func (c *Codec) TrustedDecodeDoc(buf []byte) (*document.Document, error) {
	raw, cache, err := decodeRawWithZstd(limits.MaxDocSize, buf, c.zstd())
	if err != nil {
		return nil, err
	}
	docLen, err := value.Verify(raw)
	if err != nil {
		return nil, err
	}
	hs, err := crypto.NewHashState(crypto.Version1)
	if err != nil {
		return nil, err
	}
	hs.Write(raw[:docLen])
	docHash := hs.Snapshot()
	hash := docHash
	if len(raw) > docLen {
		hs.Write(raw[docLen:])
		hash = hs.Snapshot()
	}

	signedBy, err := signersOf(raw[docLen:])
	if err != nil {
		return nil, err
	}

	hasSchema, schemaHash, err := peekSchemaHash(raw)
	if err != nil {
		return nil, err
	}

	d := document.FromParts(raw, docLen, hs, docHash, hash, hasSchema, schemaHash, signedBy)
	if cache != nil {
		d.SetCompressedCache(cache)
	}
	return d, nil
}

// DecodeDoc parses buf into a Document with full validation: every
// signature is checked against the reconstructed doc_hash, and a body
// carrying a schema hash is rejected (this Codec has no schema-aware
// decode path).
func (c *Codec) DecodeDoc(buf []byte) (*document.Document, error) {
	raw, cache, err := decodeRawWithZstd(limits.MaxDocSize, buf, c.zstd())
	if err != nil {
		return nil, err
	}
	hasSchema, schemaHash, err := peekSchemaHash(raw)
	if err != nil {
		return nil, err
	}
	if hasSchema {
		return nil, ErrSchemaMismatch
	}

	docLen, err := value.Verify(raw)
	if err != nil {
		return nil, err
	}
	hs, err := crypto.NewHashState(crypto.Version1)
	if err != nil {
		return nil, err
	}
	hs.Write(raw[:docLen])
	docHash := hs.Snapshot()
	hash := docHash
	if len(raw) > docLen {
		hs.Write(raw[docLen:])
		hash = hs.Snapshot()
	}

	sigs, err := lockbox.DecodeSignatures(raw[docLen:])
	if err != nil {
		return nil, err
	}
	signedBy := make([]crypto.Identity, 0, len(sigs))
	for _, s := range sigs {
		if !s.Verify(docHash) {
			return nil, document.ErrSignatureInvalid
		}
		signedBy = append(signedBy, s.Signer)
	}

	d := document.FromParts(raw, docLen, hs, docHash, hash, hasSchema, schemaHash, signedBy)
	if cache != nil {
		d.SetCompressedCache(cache)
	}
	return d, nil
}

// TrustedDecodeEntry parses buf into an Entry for the given (docHash,
// field), doing the minimum work: no signature verification.
func (c *Codec) TrustedDecodeEntry(buf []byte, docHash crypto.Hash, field string) (*entry.Entry, error) {
	raw, cache, err := decodeRawWithZstd(limits.MaxEntrySize, buf, c.zstd())
	if err != nil {
		return nil, err
	}
	entryLen, err := value.Verify(raw)
	if err != nil {
		return nil, err
	}

	hs, err := crypto.NewHashState(crypto.Version1)
	if err != nil {
		return nil, err
	}
	hs.Write(value.Encode(value.NewHash(docHash)))
	hs.Write(value.Encode(value.NewStr(field)))
	hs.Write(raw[:entryLen])
	entryHash := hs.Snapshot()
	hash := entryHash
	if len(raw) > entryLen {
		hs.Write(raw[entryLen:])
		hash = hs.Snapshot()
	}

	signedBy, err := signersOf(raw[entryLen:])
	if err != nil {
		return nil, err
	}

	e := entry.FromParts(raw, entryLen, hs, entryHash, hash, signedBy)
	if cache != nil {
		e.SetCompressedCache(cache)
	}
	return e, nil
}

// DecodeEntry parses buf into an Entry for (docHash, field) with full
// signature verification.
func (c *Codec) DecodeEntry(buf []byte, docHash crypto.Hash, field string) (*entry.Entry, error) {
	raw, cache, err := decodeRawWithZstd(limits.MaxEntrySize, buf, c.zstd())
	if err != nil {
		return nil, err
	}
	entryLen, err := value.Verify(raw)
	if err != nil {
		return nil, err
	}

	hs, err := crypto.NewHashState(crypto.Version1)
	if err != nil {
		return nil, err
	}
	hs.Write(value.Encode(value.NewHash(docHash)))
	hs.Write(value.Encode(value.NewStr(field)))
	hs.Write(raw[:entryLen])
	entryHash := hs.Snapshot()
	hash := entryHash
	if len(raw) > entryLen {
		hs.Write(raw[entryLen:])
		hash = hs.Snapshot()
	}

	sigs, err := lockbox.DecodeSignatures(raw[entryLen:])
	if err != nil {
		return nil, err
	}
	signedBy := make([]crypto.Identity, 0, len(sigs))
	for _, s := range sigs {
		if !s.Verify(entryHash) {
			return nil, entry.ErrSignatureInvalid
		}
		signedBy = append(signedBy, s.Signer)
	}

	e := entry.FromParts(raw, entryLen, hs, entryHash, hash, signedBy)
	if cache != nil {
		e.SetCompressedCache(cache)
	}
	return e, nil
}

func signersOf(tail []byte) ([]crypto.Identity, error) {
	sigs, err := lockbox.DecodeSignatures(tail)
	if err != nil {
		return nil, err
	}
	out := make([]crypto.Identity, len(sigs))
	for i, s := range sigs {
		out[i] = s.Signer
	}
	return out, nil
}

// peekSchemaHash reports whether raw's top-level Map carries a ""
// key and, if so, decodes its Hash value.
func peekSchemaHash(raw []byte) (bool, crypto.Hash, error) {
	v, _, err := value.Decode(raw)
	if err != nil {
		return false, crypto.Hash{}, err
	}
	linked, ok := v.Get("")
	if !ok {
		return false, crypto.Hash{}, nil
	}
	if linked.Kind != value.KindHash {
		return false, crypto.Hash{}, document.ErrSchemaHashKind
	}
	return true, linked.Hash, nil
}
