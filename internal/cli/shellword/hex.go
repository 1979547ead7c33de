package shellword

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidInput is returned for lines that cannot be tokenized.
var ErrInvalidInput = errors.New("shellword: invalid input")

// UnescapeHex replaces every \xHH sequence (two lowercase hex digits) with
// the byte it names. A match whose preceding character is a backslash is
// copied through unchanged. The decoded result must be valid UTF-8.
func UnescapeHex(s string) (string, error) {
	out := make([]byte, 0, len(s))

	for i := 0; i < len(s); {
		if !isHexEscape(s, i) {
			out = append(out, s[i])
			i++
			continue
		}
		if i > 0 && s[i-1] == '\\' {
			out = append(out, s[i:i+4]...)
		} else {
			out = append(out, hexVal(s[i+2])<<4|hexVal(s[i+3]))
		}
		i += 4
	}

	if !utf8.Valid(out) {
		return "", fmt.Errorf("%w: hex escapes do not form valid UTF-8", ErrInvalidInput)
	}
	return string(out), nil
}

// isHexEscape reports whether s[i:] starts with \xHH.
func isHexEscape(s string, i int) bool {
	return i+4 <= len(s) &&
		s[i] == '\\' &&
		s[i+1] == 'x' &&
		isLowerHex(s[i+2]) &&
		isLowerHex(s[i+3])
}

func isLowerHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}

func hexVal(c byte) byte {
	if c <= '9' {
		return c - '0'
	}
	return c - 'a' + 10
}
