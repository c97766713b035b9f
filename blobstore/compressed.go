package blobstore

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the compression algorithm used by CompressedStore.
type Compression uint8

const (
	// CompressionNone stores blobs as-is behind the frame header.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD compression (better ratio).
	CompressionZSTD Compression = 2
)

// String returns the flag-friendly name of the algorithm.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression maps a name produced by Compression.String back to its value.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return CompressionNone, fmt.Errorf("unknown compression %q", name)
	}
}

// ErrCorruptFrame is returned when a framed blob cannot be decoded.
var ErrCorruptFrame = errors.New("corrupt compressed frame")

// Frame format: [magic 4][type 1][uncompressed size uint32][payload...]
// Blobs without the magic prefix are returned unchanged, so documents written
// before compression was enabled stay readable.
var frameMagic = [4]byte{'N', 'S', 'Z', 0x01}

const frameHeaderSize = 9

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// CompressedStore compresses blobs on Put and transparently decompresses them
// on Get.
type CompressedStore struct {
	inner       Store
	compression Compression
}

// NewCompressedStore wraps inner, compressing new blobs with c.
func NewCompressedStore(inner Store, c Compression) *CompressedStore {
	return &CompressedStore{inner: inner, compression: c}
}

// Get reads and decompresses a blob.
func (s *CompressedStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return decodeFrame(data)
}

// Put compresses and writes a blob.
func (s *CompressedStore) Put(ctx context.Context, key string, data []byte) error {
	framed, err := encodeFrame(data, s.compression)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, key, framed)
}

// Delete removes a blob.
func (s *CompressedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func encodeFrame(data []byte, c Compression) ([]byte, error) {
	var payload []byte
	switch c {
	case CompressionNone:
		payload = data
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// Incompressible
			c, payload = CompressionNone, data
		} else {
			payload = buf[:n]
		}
	case CompressionZSTD:
		enc := getZstdEncoder()
		payload = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("unsupported compression %s", c)
	}

	out := make([]byte, frameHeaderSize+len(payload))
	copy(out, frameMagic[:])
	out[4] = byte(c)
	binary.LittleEndian.PutUint32(out[5:], uint32(len(data)))
	copy(out[frameHeaderSize:], payload)
	return out, nil
}

func decodeFrame(data []byte) ([]byte, error) {
	if len(data) < frameHeaderSize || !bytes.Equal(data[:4], frameMagic[:]) {
		return data, nil
	}

	size := binary.LittleEndian.Uint32(data[5:])
	payload := data[frameHeaderSize:]

	switch Compression(data[4]) {
	case CompressionNone:
		if uint32(len(payload)) != size {
			return nil, fmt.Errorf("%w: size mismatch", ErrCorruptFrame)
		}
		return payload, nil

	case CompressionLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		if uint32(n) != size {
			return nil, fmt.Errorf("%w: size mismatch", ErrCorruptFrame)
		}
		return out, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(payload, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		if uint32(len(out)) != size {
			return nil, fmt.Errorf("%w: size mismatch", ErrCorruptFrame)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrCorruptFrame, data[4])
	}
}
