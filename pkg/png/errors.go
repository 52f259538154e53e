package png

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is matched by every LengthError.
	ErrInvalidLength = errors.New("invalid length")
	// ErrInvalidCharacter is returned when a chunk type byte is not an ASCII letter.
	ErrInvalidCharacter = errors.New("invalid chunk type character")
	// ErrInvalidType wraps a chunk type error raised while parsing a chunk record.
	ErrInvalidType = errors.New("invalid chunk type")
	// ErrInvalidCRC is matched by every CRCError.
	ErrInvalidCRC = errors.New("invalid crc")
	// ErrInvalidSignature is matched by every SignatureError.
	ErrInvalidSignature = errors.New("invalid png signature")
	// ErrInvalidChunk is matched by every ChunkError.
	ErrInvalidChunk = errors.New("invalid chunk")
	// ErrChunkNotFound is matched by every NotFoundError.
	ErrChunkNotFound = errors.New("chunk not found")
	// ErrChunkTooLarge is returned when chunk data does not fit the 32-bit length field.
	ErrChunkTooLarge = errors.New("chunk data too large")
	// ErrInvalidUTF8 is returned by DataAsString for binary payloads.
	ErrInvalidUTF8 = errors.New("chunk data is not valid utf-8")
)

// LengthError reports a chunk type string of the wrong size or a truncated chunk record.
type LengthError struct {
	What string // "chunk type" or "chunk"
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	if e.What == "chunk type" {
		return fmt.Sprintf("invalid chunk type length %d: want %d", e.Got, e.Want)
	}
	return fmt.Sprintf("truncated %s: need %d bytes, have %d", e.What, e.Want, e.Got)
}

func (e *LengthError) Is(target error) bool { return target == ErrInvalidLength }

// CRCError reports a checksum mismatch. Expected is the value computed over the
// type and data bytes, Actual is the value stored in the record.
type CRCError struct {
	Type     string
	Expected uint32
	Actual   uint32
}

func (e *CRCError) Error() string {
	return fmt.Sprintf("crc mismatch in chunk %q: computed %08x, stored %08x", e.Type, e.Expected, e.Actual)
}

func (e *CRCError) Is(target error) bool { return target == ErrInvalidCRC }

// SignatureError carries the leading bytes found instead of the PNG signature.
type SignatureError struct {
	Found []byte
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("invalid png signature: got % x, want % x", e.Found, Signature[:])
}

func (e *SignatureError) Is(target error) bool { return target == ErrInvalidSignature }

// ChunkError wraps the failure of a single chunk inside a container parse.
type ChunkError struct {
	Index  int
	Offset int64
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("invalid chunk %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *ChunkError) Is(target error) bool { return target == ErrInvalidChunk }

func (e *ChunkError) Unwrap() error { return e.Err }

// NotFoundError names the chunk type that was looked up.
type NotFoundError struct {
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("chunk not found: no chunk of type %q", e.Type)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrChunkNotFound }
