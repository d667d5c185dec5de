package tracefile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"

	"github.com/sibexico/pagesim/replacement"
)

// Compression represents the compression algorithm used for a trace payload
type Compression uint8

const (
	CompressionNone   Compression = 0
	CompressionLZ4    Compression = 1
	CompressionSnappy Compression = 2
)

// String returns the configuration name of the algorithm
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression resolves a configuration name to a Compression
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return CompressionNone, fmt.Errorf("unsupported compression %q (must be none, lz4, or snappy)", name)
	}
}

// Trace header layout:
// [0-1]: Magic number (0x5054)
// [2]: Compression type (0=none, 1=LZ4, 2=Snappy)
// [3]: Reserved
// [4-7]: Number of references
// [8-11]: Raw payload size
// [12-15]: CRC32 of the raw payload
// [16+]: Payload, zigzag varints, possibly compressed

const (
	TraceMagic      = 0x5054
	TraceHeaderSize = 16

	// MinCompressionSavings is the smallest saving, in bytes, for which a
	// compressed payload is kept.
	MinCompressionSavings = 16

	// maxLZ4Expansion bounds how much an LZ4 block can grow on decode
	maxLZ4Expansion = 255
)

var (
	ErrBadMagic         = errors.New("not a binary trace")
	ErrTruncated        = errors.New("trace truncated")
	ErrChecksumMismatch = errors.New("trace checksum mismatch")
)

// Encode serializes ref into the binary trace format. The requested
// compression falls back to CompressionNone when it does not pay off.
func Encode(ref []replacement.PageID, compression Compression) ([]byte, error) {
	raw := make([]byte, 0, len(ref)*2)
	for _, page := range ref {
		raw = binary.AppendVarint(raw, int64(page))
	}

	payload, used, err := compress(raw, compression)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, TraceHeaderSize+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], TraceMagic)
	buf[2] = uint8(used)
	buf[3] = 0
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(ref)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(raw)))
	binary.LittleEndian.PutUint32(buf[12:16], crc32.ChecksumIEEE(raw))
	copy(buf[TraceHeaderSize:], payload)

	return buf, nil
}

func compress(raw []byte, compression Compression) ([]byte, Compression, error) {
	var compressed []byte

	switch compression {
	case CompressionNone:
		return raw, CompressionNone, nil

	case CompressionLZ4:
		compressed = make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, compressed, nil)
		if err != nil {
			return nil, CompressionNone, fmt.Errorf("LZ4 compression failed: %w", err)
		}
		// n == 0 means the block is incompressible
		if n == 0 {
			return raw, CompressionNone, nil
		}
		compressed = compressed[:n]

	case CompressionSnappy:
		compressed = snappy.Encode(nil, raw)

	default:
		return nil, CompressionNone, fmt.Errorf("unsupported compression type: %d", compression)
	}

	if len(raw)-len(compressed) < MinCompressionSavings {
		return raw, CompressionNone, nil
	}
	return compressed, compression, nil
}

// IsTrace reports whether data starts with the binary trace magic
func IsTrace(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	return binary.LittleEndian.Uint16(data[0:2]) == TraceMagic
}

// Decode parses a binary trace produced by Encode
func Decode(data []byte) ([]replacement.PageID, error) {
	if len(data) < TraceHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), TraceHeaderSize)
	}
	if !IsTrace(data) {
		return nil, fmt.Errorf("%w: magic %04x", ErrBadMagic, binary.LittleEndian.Uint16(data[0:2]))
	}

	compression := Compression(data[2])
	count := binary.LittleEndian.Uint32(data[4:8])
	rawSize := binary.LittleEndian.Uint32(data[8:12])
	checksum := binary.LittleEndian.Uint32(data[12:16])
	payload := data[TraceHeaderSize:]

	raw, err := decompress(payload, compression, int(rawSize))
	if err != nil {
		return nil, err
	}

	if got := crc32.ChecksumIEEE(raw); got != checksum {
		return nil, fmt.Errorf("%w: got %08x, expected %08x", ErrChecksumMismatch, got, checksum)
	}

	// every varint takes at least one byte
	if uint64(count) > uint64(len(raw)) {
		return nil, fmt.Errorf("%w: header says %d references, payload holds at most %d", ErrTruncated, count, len(raw))
	}

	ref := make([]replacement.PageID, 0, count)
	for len(raw) > 0 {
		v, n := binary.Varint(raw)
		if n <= 0 {
			return nil, fmt.Errorf("%w: bad varint after %d references", ErrTruncated, len(ref))
		}
		ref = append(ref, replacement.PageID(v))
		raw = raw[n:]
	}
	if uint32(len(ref)) != count {
		return nil, fmt.Errorf("%w: header says %d references, decoded %d", ErrTruncated, count, len(ref))
	}

	return ref, nil
}

func decompress(payload []byte, compression Compression, rawSize int) ([]byte, error) {
	switch compression {
	case CompressionNone:
		if len(payload) != rawSize {
			return nil, fmt.Errorf("%w: payload is %d bytes, expected %d", ErrTruncated, len(payload), rawSize)
		}
		return payload, nil

	case CompressionLZ4:
		if uint64(rawSize) > maxLZ4Expansion*uint64(len(payload)) {
			return nil, fmt.Errorf("%w: raw size %d exceeds what %d LZ4 bytes can hold", ErrTruncated, rawSize, len(payload))
		}
		raw := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, fmt.Errorf("LZ4 decompression failed: %w", err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("LZ4 decompression size mismatch: got %d, expected %d", n, rawSize)
		}
		return raw, nil

	case CompressionSnappy:
		decodedLen, err := snappy.DecodedLen(payload)
		if err != nil {
			return nil, fmt.Errorf("snappy decompression failed: %w", err)
		}
		if decodedLen != rawSize {
			return nil, fmt.Errorf("snappy decompression size mismatch: got %d, expected %d", decodedLen, rawSize)
		}
		raw, err := snappy.Decode(nil, payload)
		if err != nil {
			return nil, fmt.Errorf("snappy decompression failed: %w", err)
		}
		if len(raw) != rawSize {
			return nil, fmt.Errorf("snappy decompression size mismatch: got %d, expected %d", len(raw), rawSize)
		}
		return raw, nil

	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compression)
	}
}
