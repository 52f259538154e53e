package png

import (
	"errors"
	"testing"
)

func TestChunkTypeFromBytes(t *testing.T) {
	expected := [4]byte{82, 117, 83, 116}
	actual, err := ChunkTypeFromBytes([4]byte{82, 117, 83, 116})
	if err != nil {
		t.Fatalf("ChunkTypeFromBytes failed: %v", err)
	}
	if actual.Bytes() != expected {
		t.Errorf("Bytes mismatch: got %v, want %v", actual.Bytes(), expected)
	}

	if _, err := ChunkTypeFromBytes([4]byte{'R', 'u', '1', 't'}); !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("Expected ErrInvalidCharacter, got %v", err)
	}
}

func TestParseChunkType(t *testing.T) {
	expected, err := ChunkTypeFromBytes([4]byte{82, 117, 83, 116})
	if err != nil {
		t.Fatalf("ChunkTypeFromBytes failed: %v", err)
	}
	actual, err := ParseChunkType("RuSt")
	if err != nil {
		t.Fatalf("ParseChunkType failed: %v", err)
	}
	if actual != expected {
		t.Errorf("ChunkType mismatch: got %v, want %v", actual, expected)
	}
}

func TestChunkType_Flags(t *testing.T) {
	testCases := []struct {
		code     string
		critical bool
		public   bool
		reserved bool
		safe     bool
		valid    bool
	}{
		{code: "RuSt", critical: true, public: false, reserved: true, safe: true, valid: true},
		{code: "ruSt", critical: false, public: false, reserved: true, safe: true, valid: true},
		{code: "RUSt", critical: true, public: true, reserved: true, safe: true, valid: true},
		{code: "RuST", critical: true, public: false, reserved: true, safe: false, valid: true},
		{code: "Rust", critical: true, public: false, reserved: false, safe: true, valid: false},
		{code: "IHDR", critical: true, public: true, reserved: true, safe: false, valid: true},
		{code: "tEXt", critical: false, public: true, reserved: true, safe: true, valid: true},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			ct, err := ParseChunkType(tc.code)
			if err != nil {
				t.Fatalf("ParseChunkType(%q) failed: %v", tc.code, err)
			}
			if got := ct.IsCritical(); got != tc.critical {
				t.Errorf("IsCritical: got %t, want %t", got, tc.critical)
			}
			if got := ct.IsPublic(); got != tc.public {
				t.Errorf("IsPublic: got %t, want %t", got, tc.public)
			}
			if got := ct.IsReservedBitValid(); got != tc.reserved {
				t.Errorf("IsReservedBitValid: got %t, want %t", got, tc.reserved)
			}
			if got := ct.IsSafeToCopy(); got != tc.safe {
				t.Errorf("IsSafeToCopy: got %t, want %t", got, tc.safe)
			}
			if got := ct.IsValid(); got != tc.valid {
				t.Errorf("IsValid: got %t, want %t", got, tc.valid)
			}
		})
	}
}

func TestParseChunkType_Errors(t *testing.T) {
	t.Run("invalid character", func(t *testing.T) {
		_, err := ParseChunkType("Ru1t")
		if !errors.Is(err, ErrInvalidCharacter) {
			t.Errorf("Expected ErrInvalidCharacter, got %v", err)
		}
	})

	t.Run("too long", func(t *testing.T) {
		_, err := ParseChunkType("Rust!")
		var lengthErr *LengthError
		if !errors.As(err, &lengthErr) {
			t.Fatalf("Expected LengthError, got %v", err)
		}
		if lengthErr.Got != 5 {
			t.Errorf("Expected length 5, got %d", lengthErr.Got)
		}
		if !errors.Is(err, ErrInvalidLength) {
			t.Error("Expected error to match ErrInvalidLength")
		}
	})

	t.Run("length checked before characters", func(t *testing.T) {
		_, err := ParseChunkType("1!")
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("Expected ErrInvalidLength, got %v", err)
		}
	})

	t.Run("multibyte rune counts bytes", func(t *testing.T) {
		_, err := ParseChunkType("Ruéx")
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("Expected ErrInvalidLength, got %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseChunkType("")
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("Expected ErrInvalidLength, got %v", err)
		}
	})
}

func TestChunkType_String(t *testing.T) {
	for _, s := range []string{"RuSt", "IHDR", "IEND", "tEXt", "zzzz", "AAAA"} {
		ct, err := ParseChunkType(s)
		if err != nil {
			t.Fatalf("ParseChunkType(%q) failed: %v", s, err)
		}
		if ct.String() != s {
			t.Errorf("String round trip: got %q, want %q", ct.String(), s)
		}
	}
}

func TestMustParseChunkType(t *testing.T) {
	if MustParseChunkType("IEND").String() != "IEND" {
		t.Error("MustParseChunkType returned wrong type")
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for invalid chunk type")
		}
	}()
	MustParseChunkType("IE1D")
}
