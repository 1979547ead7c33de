package shellword

import (
	"fmt"

	"github.com/kballard/go-shellquote"
)

// Split tokenizes one input line into command words.
//
// Words are separated by whitespace. Single and double quotes group a span
// into one word and are stripped. Outside quotes a backslash escapes the
// next character. Inside double quotes it escapes only $, `, ", \ and
// newline, and stays literal before anything else. An unterminated quote
// or a trailing backslash fails the whole line.
func Split(line string) ([]string, error) {
	decoded, err := UnescapeHex(line)
	if err != nil {
		return nil, err
	}

	words, err := shellquote.Split(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return words, nil
}
