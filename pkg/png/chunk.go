package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"unicode/utf8"
)

const (
	lengthSize = 4
	typeSize   = 4
	crcSize    = 4

	// ChunkOverhead is the number of framing bytes around the data of every chunk.
	ChunkOverhead = lengthSize + typeSize + crcSize
)

// Chunk is one length-prefixed, CRC-protected record of the chunk stream.
// A Chunk owns its data; the CRC is always derived from the current type and data.
type Chunk struct {
	chunkType ChunkType
	data      []byte
	crc       uint32
}

// NewChunk builds a chunk from a type and payload. The payload is copied.
func NewChunk(chunkType ChunkType, data []byte) (*Chunk, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrChunkTooLarge, len(data))
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return newChunk(chunkType, owned), nil
}

func newChunk(chunkType ChunkType, data []byte) *Chunk {
	return &Chunk{
		chunkType: chunkType,
		data:      data,
		crc:       checksum(chunkType.code, data),
	}
}

// ParseChunk decodes the chunk record at the start of b:
//
//	[Length(4, big-endian)][Type(4)][Data(Length)][CRC32(4, big-endian)]
//
// It returns the chunk and the number of bytes consumed. Bytes after the
// record are ignored. The CRC is verified before the type characters, so any
// corruption of the type or data region is reported as a CRCError.
func ParseChunk(b []byte) (*Chunk, int, error) {
	if len(b) < ChunkOverhead {
		return nil, 0, &LengthError{What: "chunk", Want: ChunkOverhead, Got: len(b)}
	}

	length := binary.BigEndian.Uint32(b[0:lengthSize])
	total := uint64(ChunkOverhead) + uint64(length)
	if uint64(len(b)) < total {
		return nil, 0, &LengthError{What: "chunk", Want: int(min(total, math.MaxInt)), Got: len(b)}
	}
	n := int(total)

	var code [4]byte
	copy(code[:], b[lengthSize:lengthSize+typeSize])
	body := b[lengthSize+typeSize : n-crcSize]
	stored := binary.BigEndian.Uint32(b[n-crcSize : n])

	if computed := checksum(code, body); computed != stored {
		return nil, 0, &CRCError{Type: string(code[:]), Expected: computed, Actual: stored}
	}

	chunkType, err := ChunkTypeFromBytes(code)
	if err != nil {
		return nil, 0, fmt.Errorf("%w %q: %w", ErrInvalidType, string(code[:]), err)
	}

	data := make([]byte, len(body))
	copy(data, body)
	return newChunk(chunkType, data), n, nil
}

// Length returns the number of data bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

// Type returns the chunk type.
func (c *Chunk) Type() ChunkType {
	return c.chunkType
}

// Data returns the payload. The returned slice is the chunk's own buffer and
// must not be modified.
func (c *Chunk) Data() []byte {
	return c.data
}

// CRC returns the CRC-32 over the type and data bytes.
func (c *Chunk) CRC() uint32 {
	return c.crc
}

// Size returns the encoded size of the chunk including framing.
func (c *Chunk) Size() int {
	return ChunkOverhead + len(c.data)
}

// DataAsString returns the payload as text. It fails for payloads that are not UTF-8.
func (c *Chunk) DataAsString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", fmt.Errorf("%w: chunk %s", ErrInvalidUTF8, c.chunkType)
	}
	return string(c.data), nil
}

// Bytes encodes the chunk in its on-disk record layout.
func (c *Chunk) Bytes() []byte {
	return c.appendTo(make([]byte, 0, c.Size()))
}

func (c *Chunk) appendTo(buf []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, c.Length())
	buf = append(buf, c.chunkType.code[:]...)
	buf = append(buf, c.data...)
	return binary.BigEndian.AppendUint32(buf, c.crc)
}

func (c *Chunk) String() string {
	return fmt.Sprintf("Chunk{Length: %d, Type: %s, Data: %d bytes, Crc: %08x}",
		c.Length(), c.chunkType, len(c.data), c.crc)
}

// checksum computes the ISO-3309 CRC-32 over the type code followed by data.
func checksum(code [4]byte, data []byte) uint32 {
	crc := crc32.Update(0, crc32.IEEETable, code[:])
	return crc32.Update(crc, crc32.IEEETable, data)
}
