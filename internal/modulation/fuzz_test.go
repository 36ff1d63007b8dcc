package modulation

import (
	"errors"
	"github.com/funvibe/galaxy/internal/ast"
	"testing"
)

// FuzzDecode feeds arbitrary bit strings to the decoder. Whatever decodes
// must encode again to a string that decodes to the same value.
func FuzzDecode(f *testing.F) {
	f.Add("00")
	f.Add("010")
	f.Add("1101100001110110001000")
	f.Add("0111111111")
	f.Add("11")

	f.Fuzz(func(t *testing.T, bits string) {
		if len(bits) > 512 {
			return
		}
		v, err := DecodeFromString(bits)
		if err != nil {
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("DecodeFromString(%q) error %v does not wrap ErrMalformed", bits, err)
			}
			return
		}
		again, err := EncodeToString(v)
		if err != nil {
			t.Fatalf("EncodeToString(%s) failed: %v", v.Inspect(), err)
		}
		back, err := DecodeFromString(again)
		if err != nil {
			t.Fatalf("re-decoding %q failed: %v", again, err)
		}
		if !ast.Equal(v, back) {
			t.Fatalf("round trip of %q: got %s, want %s", bits, back.Inspect(), v.Inspect())
		}
	})
}
