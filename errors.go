package jsondoc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by document operations. Wrapped errors carry the
// offending path; test with errors.Is.
var (
	// ErrInvalidPath reports a path expression that cannot be parsed.
	ErrInvalidPath = errors.New("jsondoc: invalid path")
	// ErrPathConflict reports a write whose path crosses an existing node of
	// an incompatible kind. The document is left untouched.
	ErrPathConflict = errors.New("jsondoc: path conflicts with existing value")
	// ErrNotFound reports a missing node where one is required.
	ErrNotFound = errors.New("jsondoc: path not found")
	// ErrSyntax wraps every parse failure.
	ErrSyntax = errors.New("jsondoc: syntax error")
	// ErrUnsupportedType reports a Go value ValueOf cannot convert.
	ErrUnsupportedType = errors.New("jsondoc: unsupported Go type")
	// ErrMalformed reports an internally inconsistent tree.
	ErrMalformed = errors.New("jsondoc: malformed value")
)

// Issue codes
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeDuplicateItem = "duplicate_item"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooFew        = "too_few"
	CodeTooMany       = "too_many"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidConst  = "invalid_const"
	CodeInvalidFormat = "invalid_format"
	CodeNotMultiple   = "not_multiple"
	CodeSchemaFalse   = "schema_false"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
)

// Issue represents a single finding against a document.
type Issue struct {
	Path    string // JSON Pointer of the offending node ("" is the root).
	Code    string // One of the codes listed above.
	Keyword string // Schema keyword that produced the issue, when any.
	Message string
	Hint    string // Optional: remediation hints, first occurrence, etc.
	// Params carries structured parameters (e.g., {"min":1, "got":0}) for
	// i18n and observability.
	Params map[string]any
}

func (it Issue) String() string {
	p := it.Path
	if p == "" {
		p = "/"
	}
	if it.Message == "" {
		return fmt.Sprintf("%s at %s", it.Code, p)
	}
	return fmt.Sprintf("%s at %s: %s", it.Code, p, it.Message)
}

// Issues is a collection of findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		p := iss[i].Path
		if p == "" {
			p = "/"
		}
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", iss[i].Code, p)
	}
	if n := len(iss); n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes lists the issue codes in order, mainly for assertions and logs.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i := range iss {
		out[i] = iss[i].Code
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
