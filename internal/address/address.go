// Package address holds the shape check applied to holder addresses.
package address

import (
	"strings"
	"unicode/utf8"
)

const (
	Prefix = "0x"
	Length = 42
)

// IsValid reports whether s looks like an EVM address: "0x" followed by
// enough characters to make 42 in total. Hex digits are not checked.
func IsValid(s string) bool {
	return strings.HasPrefix(s, Prefix) && utf8.RuneCountInString(s) == Length
}

// Clean trims surrounding whitespace and drops every double quote.
func Clean(cell string) string {
	return strings.ReplaceAll(strings.TrimSpace(cell), `"`, "")
}
