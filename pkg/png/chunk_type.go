package png

// ChunkType is a validated four byte chunk type code. The zero value is not a
// valid chunk type; construct one with ChunkTypeFromBytes or ParseChunkType.
// ChunkType values are comparable with ==.
type ChunkType struct {
	code [4]byte
}

// Bit 5 of each type byte carries one property flag.
const propertyBit = 0x20

// ChunkTypeFromBytes builds a ChunkType from raw bytes. Every byte must be an
// ASCII letter. The reserved bit is not checked here; see IsValid.
func ChunkTypeFromBytes(b [4]byte) (ChunkType, error) {
	for _, c := range b {
		if !isLetter(c) {
			return ChunkType{}, ErrInvalidCharacter
		}
	}
	return ChunkType{code: b}, nil
}

// ParseChunkType builds a ChunkType from a four character string such as "IHDR".
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &LengthError{What: "chunk type", Want: 4, Got: len(s)}
	}
	var b [4]byte
	copy(b[:], s)
	return ChunkTypeFromBytes(b)
}

// MustParseChunkType is like ParseChunkType but panics on error. It is meant
// for package level variables of well known types.
func MustParseChunkType(s string) ChunkType {
	t, err := ParseChunkType(s)
	if err != nil {
		panic("png: " + err.Error())
	}
	return t
}

// Bytes returns the raw type code.
func (t ChunkType) Bytes() [4]byte {
	return t.code
}

func (t ChunkType) String() string {
	return string(t.code[:])
}

// IsCritical reports whether decoders must understand the chunk (ancillary bit clear).
func (t ChunkType) IsCritical() bool {
	return t.code[0]&propertyBit == 0
}

// IsPublic reports whether the type is part of the public registry (private bit clear).
func (t ChunkType) IsPublic() bool {
	return t.code[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved bit is clear, as required by
// the current version of the format.
func (t ChunkType) IsReservedBitValid() bool {
	return t.code[2]&propertyBit == 0
}

// IsSafeToCopy reports whether editors that do not recognise the chunk may copy it.
func (t ChunkType) IsSafeToCopy() bool {
	return t.code[3]&propertyBit != 0
}

// IsValid reports whether all bytes are letters and the reserved bit is clear.
func (t ChunkType) IsValid() bool {
	for _, c := range t.code {
		if !isLetter(c) {
			return false
		}
	}
	return t.IsReservedBitValid()
}

func isLetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}
