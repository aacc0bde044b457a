// Copyright 2025 Certen Protocol
//
// Zstd — the compression collaborator named in spec.md §6
// ("Zstd: compress, decompress, frame_content_size"). Grounded on
// pkg/kvdb/adapter.go's thin-adapter-over-external-interface style: wrap
// a well-known third-party library behind a small interface so the core
// never imports it directly.

package wire

import (
	"github.com/klauspost/compress/zstd"
)

// Zstd is implemented outside pkg/wire's core encode/decode logic so
// that it can be swapped (e.g. for a dictionary-aware implementation)
// without touching the envelope handling.
type Zstd interface {
	// Compress appends the zstd-compressed form of src to dst at the
	// given level and returns the extended slice.
	Compress(dst, src []byte, level int) ([]byte, error)
	// Decompress appends the decompressed form of a zstd frame to dst
	// and returns the extended slice.
	Decompress(dst, frame []byte) ([]byte, error)
	// FrameContentSize reports the decompressed size declared in a zstd
	// frame's header, without decompressing it.
	FrameContentSize(frame []byte) (uint64, error)
}

// DefaultZstd is the klauspost/compress/zstd-backed Zstd implementation
// used unless a caller supplies its own.
type DefaultZstd struct{}

// Compress implements Zstd.
func (DefaultZstd) Compress(dst, src []byte, level int) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(encoderLevel(level)))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, dst), nil
}

// Decompress implements Zstd.
func (DefaultZstd) Decompress(dst, frame []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(frame, dst)
}

// FrameContentSize implements Zstd.
func (DefaultZstd) FrameContentSize(frame []byte) (uint64, error) {
	var header zstd.Header
	if err := header.Decode(frame); err != nil {
		return 0, err
	}
	return header.FrameContentSize, nil
}

// encoderLevel maps the zstd-style numeric level used in spec.md's
// compress_doc/compress_entry contract onto klauspost/compress/zstd's
// coarser EncoderLevel tiers; 0 means "use the library default".
func encoderLevel(level int) zstd.EncoderLevel {
	switch {
	case level <= 0:
		return zstd.SpeedDefault
	case level <= 3:
		return zstd.SpeedFastest
	case level <= 9:
		return zstd.SpeedDefault
	case level <= 15:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}
