package jsondoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/jsondoc/internal/path"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
// The zero PathRef is the root. PathRef values are immutable: Field and
// Index return extended copies.
type PathRef struct {
	parts []string
}

// RootPath returns the root path.
func RootPath() PathRef { return PathRef{} }

// Field appends an object key, escaping '~' and '/' per RFC 6901.
func (p PathRef) Field(name string) PathRef {
	return p.with(path.EscapeToken(name))
}

// Index appends an array index.
func (p PathRef) Index(i int) PathRef {
	return p.with(strconv.Itoa(i))
}

func (p PathRef) with(tok string) PathRef {
	parts := make([]string, len(p.parts), len(p.parts)+1)
	copy(parts, p.parts)
	return PathRef{parts: append(parts, tok)}
}

// Pointer renders the path; the root is "".
func (p PathRef) Pointer() string {
	if len(p.parts) == 0 {
		return ""
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p PathRef) String() string { return p.Pointer() }

// Issue builds an Issue at p. kv are alternating param names and values.
func (p PathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) >= 2 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}
