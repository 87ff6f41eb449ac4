// Package path parses document path expressions into steps.
//
// Three surface syntaxes are accepted and detected from the first byte:
//
//	/user/name       JSON Pointer (RFC 6901, ~0 and ~1 escapes)
//	user.name        dot notation
//	items[2].id      bracket indices, combinable with dot notation
//	meta["a.b"]      quoted bracket keys (JSON string escapes)
//
// The empty string denotes the root.
package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/jsondoc/internal/escape"
)

// ErrInvalid is wrapped by every parse failure.
var ErrInvalid = errors.New("invalid path")

// StepKind tells how a step addresses its container.
type StepKind int

const (
	// Key addresses an object member by name.
	Key StepKind = iota
	// Index addresses an array element.
	Index
	// Token is a pointer token or a bare numeric dot segment. It addresses
	// an array element when the container is an array and an object member
	// otherwise.
	Token
	// Append is the pointer token "-": one past the last array element.
	Append
)

func (k StepKind) String() string {
	switch k {
	case Key:
		return "key"
	case Index:
		return "index"
	case Token:
		return "token"
	case Append:
		return "append"
	default:
		return "unknown"
	}
}

// Step is one segment of a parsed path.
type Step struct {
	Kind StepKind
	Name string // object key (Key, Token)
	N    int    // array index (Index, and Token when Numeric)
	// Numeric reports whether a Token is a valid array index.
	Numeric bool
}

// KeyStep, IndexStep and TokenStep build steps programmatically.
func KeyStep(name string) Step { return Step{Kind: Key, Name: name} }
func IndexStep(n int) Step     { return Step{Kind: Index, N: n} }
func TokenStep(tok string) Step {
	s := Step{Kind: Token, Name: tok}
	if n, ok := parseIndex(tok); ok {
		s.N, s.Numeric = n, true
	}
	return s
}

// WantsArray reports whether creating a missing container for this step
// should produce an array.
func (s Step) WantsArray() bool {
	switch s.Kind {
	case Index, Append:
		return true
	case Token:
		return s.Numeric
	default:
		return false
	}
}

func (s Step) String() string {
	switch s.Kind {
	case Index:
		return "[" + strconv.Itoa(s.N) + "]"
	case Append:
		return "-"
	default:
		return s.Name
	}
}

// Parse splits p into steps.
func Parse(p string) ([]Step, error) {
	switch {
	case p == "":
		return nil, nil
	case p[0] == '/':
		return parsePointer(p)
	default:
		return parseDotted(p)
	}
}

// Pointer renders steps as a JSON Pointer.
func Pointer(steps []Step) string {
	if len(steps) == 0 {
		return ""
	}
	var b strings.Builder
	for _, s := range steps {
		b.WriteByte('/')
		switch s.Kind {
		case Index:
			b.WriteString(strconv.Itoa(s.N))
		case Append:
			b.WriteByte('-')
		default:
			b.WriteString(EscapeToken(s.Name))
		}
	}
	return b.String()
}

// EscapeToken applies RFC 6901 escaping to a single reference token.
func EscapeToken(tok string) string {
	if !strings.ContainsAny(tok, "~/") {
		return tok
	}
	return strings.ReplaceAll(strings.ReplaceAll(tok, "~", "~0"), "/", "~1")
}

func parsePointer(p string) ([]Step, error) {
	raw := strings.Split(p[1:], "/")
	steps := make([]Step, 0, len(raw))
	for i, tok := range raw {
		dec, err := unescapeToken(tok)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalid, p, err)
		}
		if dec == "-" && tok == "-" && i == len(raw)-1 {
			steps = append(steps, Step{Kind: Append})
			continue
		}
		steps = append(steps, TokenStep(dec))
	}
	return steps, nil
}

func unescapeToken(tok string) (string, error) {
	if !strings.Contains(tok, "~") {
		return tok, nil
	}
	var b strings.Builder
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(tok) {
			return "", errors.New("dangling ~")
		}
		i++
		switch tok[i] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", fmt.Errorf("bad escape ~%c", tok[i])
		}
	}
	return b.String(), nil
}

// parseDotted handles dot segments with optional bracket suffixes.
func parseDotted(p string) ([]Step, error) {
	var steps []Step
	i := 0
	// expectSegment is true right after a '.' separator.
	expectSegment := true
	for i < len(p) {
		switch c := p[i]; c {
		case '.':
			if expectSegment {
				return nil, fmt.Errorf("%w %q: empty segment at offset %d", ErrInvalid, p, i)
			}
			expectSegment = true
			i++
		case '[':
			step, next, err := parseBracket(p, i)
			if err != nil {
				return nil, err
			}
			steps = append(steps, step)
			expectSegment = false
			i = next
		case ']':
			return nil, fmt.Errorf("%w %q: unbalanced ']' at offset %d", ErrInvalid, p, i)
		default:
			if !expectSegment {
				return nil, fmt.Errorf("%w %q: missing '.' at offset %d", ErrInvalid, p, i)
			}
			j := i
			for j < len(p) && p[j] != '.' && p[j] != '[' && p[j] != ']' {
				j++
			}
			seg := p[i:j]
			if _, ok := parseIndex(seg); ok {
				steps = append(steps, TokenStep(seg))
			} else {
				steps = append(steps, KeyStep(seg))
			}
			expectSegment = false
			i = j
		}
	}
	if expectSegment && len(steps) > 0 {
		return nil, fmt.Errorf("%w %q: trailing '.'", ErrInvalid, p)
	}
	return steps, nil
}

// parseBracket parses "[N]", "[\"key\"]" or "['key']" starting at p[at]=='['.
func parseBracket(p string, at int) (Step, int, error) {
	i := at + 1
	if i < len(p) && (p[i] == '"' || p[i] == '\'') {
		quote := p[i]
		j := i + 1
		for j < len(p) && p[j] != quote {
			if p[j] == '\\' && quote == '"' {
				j++
			}
			j++
		}
		if j >= len(p) || j+1 >= len(p) || p[j+1] != ']' {
			return Step{}, 0, fmt.Errorf("%w %q: unterminated quoted key at offset %d", ErrInvalid, p, at)
		}
		body := p[i+1 : j]
		if quote == '"' {
			dec, err := escape.Unescape(body)
			if err != nil {
				return Step{}, 0, fmt.Errorf("%w %q: %v", ErrInvalid, p, err)
			}
			body = dec
		}
		return KeyStep(body), j + 2, nil
	}
	j := strings.IndexByte(p[i:], ']')
	if j < 0 {
		return Step{}, 0, fmt.Errorf("%w %q: unterminated '[' at offset %d", ErrInvalid, p, at)
	}
	n, ok := parseIndex(p[i : i+j])
	if !ok {
		return Step{}, 0, fmt.Errorf("%w %q: bad array index %q", ErrInvalid, p, p[i:i+j])
	}
	return IndexStep(n), i + j + 1, nil
}

// parseIndex accepts RFC 6901 array indices: "0" or digits without a
// leading zero.
func parseIndex(s string) (int, bool) {
	if s == "" || len(s) > 18 {
		return 0, false
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
