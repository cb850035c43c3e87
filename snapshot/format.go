package snapshot

import "errors"

const (
	// MagicNumber identifies snapshot files (ASCII: "KMNS").
	MagicNumber = 0x4B4D4E53
	// Version is the current snapshot format version.
	Version = 1

	// MaxBodySize is the largest decoded body Load accepts.
	MaxBodySize = 1 << 36

	headerSize = 40

	flagConverged uint8 = 1 << 0
)

var (
	ErrInvalidMagic   = errors.New("invalid magic number")
	ErrInvalidVersion = errors.New("unsupported version")
	ErrChecksum       = errors.New("checksum mismatch")
	ErrCorrupt        = errors.New("corrupt snapshot")
	ErrInvalidModel   = errors.New("invalid model")
)

// Header is the fixed-size header at the start of every snapshot.
type Header struct {
	Magic       uint32
	Version     uint16
	Compression uint8
	Flags       uint8
	Clusters    uint32
	Dimension   uint32
	Points      uint64
	Iterations  uint32
	StoredSize  uint32 // body bytes as written
	RawSize     uint64 // body bytes after decompression
}
