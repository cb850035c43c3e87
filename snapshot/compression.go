package snapshot

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the codec applied to the snapshot body.
type Compression uint8

const (
	// CompressionNone stores the body as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression.
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// maxExpansion returns how many decoded bytes one stored byte can at most
// yield under c, or 0 for an unknown codec. LZ4 tops out near 255:1 and
// ZSTD, through RLE blocks, near 32768:1.
func maxExpansion(c Compression) uint64 {
	switch c {
	case CompressionNone:
		return 1
	case CompressionLZ4:
		return 1 << 10
	case CompressionZSTD:
		return 1 << 16
	default:
		return 0
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxBodySize))
}

// compress encodes raw with c. If compression saves less than 10% the raw
// bytes are returned together with CompressionNone.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if len(raw) == 0 {
		return raw, CompressionNone, nil
	}

	var (
		out []byte
		err error
	)

	switch c {
	case CompressionNone:
		return raw, CompressionNone, nil
	case CompressionLZ4:
		out, err = compressLZ4(raw)
	case CompressionZSTD:
		out, err = compressZSTD(raw)
	default:
		return nil, c, fmt.Errorf("unknown compression %d", uint8(c))
	}

	if err != nil {
		return nil, c, err
	}

	if len(out) == 0 || float64(len(out)) > float64(len(raw))*0.9 {
		return raw, CompressionNone, nil
	}

	return out, c, nil
}

func compressLZ4(raw []byte) ([]byte, error) {
	buf := make([]byte, lz4.CompressBlockBound(len(raw)))

	n, err := lz4.CompressBlock(raw, buf, nil)
	if err != nil {
		return nil, err
	}

	// Incompressible
	if n == 0 {
		return nil, nil
	}

	return buf[:n], nil
}

func compressZSTD(raw []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(raw, make([]byte, 0, len(raw)/2)), nil
}

// decompress reverses compress. rawSize is the expected decoded length.
func decompress(stored []byte, c Compression, rawSize int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(stored) != rawSize {
			return nil, fmt.Errorf("%w: body is %d bytes, want %d", ErrCorrupt, len(stored), rawSize)
		}
		return stored, nil
	case CompressionLZ4:
		raw := make([]byte, rawSize)

		n, err := lz4.UncompressBlock(stored, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrCorrupt, err)
		}

		if n != rawSize {
			return nil, fmt.Errorf("%w: lz4 produced %d bytes, want %d", ErrCorrupt, n, rawSize)
		}

		return raw, nil
	case CompressionZSTD:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)

		raw, err := dec.DecodeAll(stored, make([]byte, 0, rawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
		}

		if len(raw) != rawSize {
			return nil, fmt.Errorf("%w: zstd produced %d bytes, want %d", ErrCorrupt, len(raw), rawSize)
		}

		return raw, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorrupt, uint8(c))
	}
}
