// Package escape encodes and decodes the body of JSON string literals.
package escape

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrInvalidEscape is returned by Unescape when the input is not a valid JSON
// string body.
var ErrInvalidEscape = errors.New("escape: invalid string literal")

// Escape returns s encoded as the body of a JSON string literal, without the
// surrounding quotes. HTML-sensitive characters are left as-is.
func Escape(s string) string {
	if !needsEscape(s) {
		return s
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil || buf.Len() < 2 {
		// strings always encode; keep a usable result anyway
		return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
	}
	b := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return string(b[1 : len(b)-1])
}

// Quote is Escape wrapped in double quotes.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}

// Unescape decodes the body of a JSON string literal (without quotes).
// It fails on unknown escapes, truncated \u sequences, raw control
// characters and unescaped quotes.
func Unescape(s string) (string, error) {
	if err := checkLiteral(s); err != nil {
		return "", err
	}
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEscape, err)
	}
	return out, nil
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c == '"' || c == '\\' || c >= 0x80 {
			return true
		}
	}
	return false
}

// checkLiteral rejects what the JSON grammar forbids inside a string body so
// the decoder only ever sees well-formed input.
func checkLiteral(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c < 0x20:
			return fmt.Errorf("%w: control character at offset %d", ErrInvalidEscape, i)
		case c == '"':
			return fmt.Errorf("%w: unescaped quote at offset %d", ErrInvalidEscape, i)
		case c == '\\':
			if i+1 >= len(s) {
				return fmt.Errorf("%w: truncated escape at offset %d", ErrInvalidEscape, i)
			}
			i++
			switch s[i] {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			case 'u':
				if i+4 >= len(s) {
					return fmt.Errorf("%w: truncated \\u escape at offset %d", ErrInvalidEscape, i-1)
				}
				for j := 1; j <= 4; j++ {
					if !isHex(s[i+j]) {
						return fmt.Errorf("%w: bad \\u escape at offset %d", ErrInvalidEscape, i-1)
					}
				}
				i += 4
			default:
				return fmt.Errorf("%w: unknown escape \\%c at offset %d", ErrInvalidEscape, s[i], i-1)
			}
		}
	}
	return nil
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
