// Package png provides a typed, validated model of the PNG chunk stream.
//
// The package parses a PNG datastream into its chunks, lets callers append,
// look up and remove chunks, and serializes the result back to bytes that
// round-trip exactly. Pixel data is never decoded or decompressed.
//
// # Datastream Format
//
// A PNG file is the 8 byte signature followed by a sequence of chunks:
//
//	89 50 4E 47 0D 0A 1A 0A
//	[Length(4)][Type(4)][Data(Length)][CRC32(4)]
//	[Length(4)][Type(4)][Data(Length)][CRC32(4)]
//	...
//
// Fields:
//   - Length: 32-bit unsigned data length (big-endian)
//   - Type: four ASCII letters, see ChunkType
//   - Data: Length bytes of payload
//   - CRC32: ISO-3309 CRC-32 over Type and Data (big-endian)
//
// # Chunk Types
//
// Bit 5 of each type byte is a property flag:
//   - byte 0: ancillary (set) or critical (clear)
//   - byte 1: private (set) or public (clear)
//   - byte 2: reserved, must be clear
//   - byte 3: safe to copy (set) or unsafe (clear)
//
// Construction only checks that every byte is a letter. A type with the
// reserved bit set still constructs; IsValid reports it.
//
// # Usage
//
//	p, err := png.Parse(data)
//	if err != nil {
//	    return err
//	}
//
//	secret, err := png.NewChunk(png.MustParseChunkType("ruSt"), []byte("hello"))
//	if err != nil {
//	    return err
//	}
//	p.AppendChunk(secret)
//
//	out := p.Bytes()
//
// # Error Handling
//
// Errors can be matched with errors.Is against ErrInvalidLength,
// ErrInvalidCharacter, ErrInvalidType, ErrInvalidCRC, ErrInvalidSignature,
// ErrInvalidChunk and ErrChunkNotFound, or unpacked with errors.As into
// LengthError, CRCError, SignatureError, ChunkError and NotFoundError.
//
// # Thread Safety
//
// Chunk and ChunkType are immutable after creation. A Png is not safe for
// concurrent mutation.
package png
