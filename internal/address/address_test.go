package address

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"empty", "", false},
		{"prefix only", "0x", false},
		{"lowercase hex", "0x1111111111111111111111111111111111111111", true},
		{"mixed case", "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01", true},
		{"non hex accepted", "0xzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz", true},
		{"one short", "0x111111111111111111111111111111111111111", false},
		{"one long", "0x11111111111111111111111111111111111111111", false},
		{"uppercase prefix", "0X1111111111111111111111111111111111111111", false},
		{"no prefix", "111111111111111111111111111111111111111111", false},
		{"header", "address", false},
		{"multibyte counted as characters", "0x" + strings.Repeat("é", 40), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValid(tt.in))
		})
	}
}

func TestIsValidLengthSweep(t *testing.T) {
	for n := 0; n <= 60; n++ {
		s := "0x" + strings.Repeat("a", n)
		assert.Equal(t, n == 40, IsValid(s), "length %d", len(s))
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  0xabc  ", "0xabc"},
		{`"0xabc"`, "0xabc"},
		{` "0x"abc" `, "0xabc"},
		{"\t0xabc\r", "0xabc"},
		{"", ""},
		{`""`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "Clean(%q)", tt.in)
	}
}
