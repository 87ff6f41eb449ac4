package jsondoc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/reoring/jsondoc/internal/engine"
)

// Parse builds a Document from JSON text. Any malformed input (unterminated
// strings, invalid escapes or numbers, mismatched brackets, trailing data)
// yields a nil Document and an error wrapping ErrSyntax; a partial tree is
// never returned.
func Parse(data []byte, opts ...ParseOpt) (*Document, error) {
	opt := lastParseOpt(opts)
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, Issues{{Code: CodeTruncated, Message: "max bytes exceeded"}})
	}
	return ParseFrom(JSONBytes(data), opt)
}

// ParseReader reads a single JSON text from r.
func ParseReader(r io.Reader, opts ...ParseOpt) (*Document, error) {
	return ParseFrom(JSONReader(r), opts...)
}

// FromString is Parse reporting success as a bool.
func FromString(s string) (*Document, bool) {
	d, err := Parse([]byte(s))
	return d, err == nil
}

// ParseFrom consumes exactly one JSON value from src.
func ParseFrom(src Source, opts ...ParseOpt) (*Document, error) {
	opt := lastParseOpt(opts)
	enforced := engine.WrapWithEnforcement(src, engine.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   warnSink(opt.Logger),
	})
	tok, err := enforced.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrSyntax)
		}
		return nil, syntaxError(err)
	}
	root, err := decodeValue(enforced, tok)
	if err != nil {
		return nil, syntaxError(err)
	}
	switch extra, err := enforced.NextToken(); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return nil, syntaxError(err)
	default:
		return nil, fmt.Errorf("%w: trailing %s after top-level value", ErrSyntax, extra.Kind)
	}
	return &Document{root: root}, nil
}

func decodeValue(src Source, tok Token) (Value, error) {
	switch tok.Kind {
	case engine.KindBeginObject:
		return decodeObject(src)
	case engine.KindBeginArray:
		return decodeArray(src)
	case engine.KindString:
		return String(tok.String), nil
	case engine.KindNumber:
		return numberValue(tok.Number)
	case engine.KindBool:
		return Bool(tok.Bool), nil
	case engine.KindNull:
		return Null(), nil
	default:
		return Null(), fmt.Errorf("unexpected %s", tok.Kind)
	}
}

func decodeObject(src Source) (Value, error) {
	out := NewObject()
	for {
		tok, err := nextInside(src)
		if err != nil {
			return Null(), err
		}
		if tok.Kind == engine.KindEndObject {
			return out, nil
		}
		if tok.Kind != engine.KindKey {
			return Null(), fmt.Errorf("expected object key, got %s", tok.Kind)
		}
		vt, err := nextInside(src)
		if err != nil {
			return Null(), err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return Null(), err
		}
		out.obj.Set(tok.String, v)
	}
}

func decodeArray(src Source) (Value, error) {
	out := Value{kind: KindArray, arr: Array{}}
	for {
		tok, err := nextInside(src)
		if err != nil {
			return Null(), err
		}
		if tok.Kind == engine.KindEndArray {
			return out, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return Null(), err
		}
		out.arr = append(out.arr, v)
	}
}

// nextInside reads a token that must exist because a container is open.
func nextInside(src Source) (Token, error) {
	tok, err := src.NextToken()
	if errors.Is(err, io.EOF) {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

// numberValue maps integer literals that fit int64 to Int and everything
// else to Double.
func numberValue(lit string) (Value, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return Int(i), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Null(), fmt.Errorf("number %q: %w", lit, err)
	}
	return Double(f), nil
}

func syntaxError(err error) error {
	var ie engine.IssueError
	if errors.As(err, &ie) {
		return fmt.Errorf("%w: %w", ErrSyntax, Issues{{Path: ie.Path, Code: ie.Code, Message: ie.Message}})
	}
	return fmt.Errorf("%w: %v", ErrSyntax, err)
}

func toEngineDup(s Severity) engine.DuplicateStrictness {
	switch s {
	case Error:
		return engine.DupError
	case Warn:
		return engine.DupWarn
	default:
		return engine.DupIgnore
	}
}

func warnSink(logger *slog.Logger) func(engine.SimpleIssue) {
	if logger == nil {
		return nil
	}
	return func(si engine.SimpleIssue) {
		logger.Warn("jsondoc: parse finding", "code", si.Code, "path", si.Path, "message", si.Message)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	d, err := Parse(data)
	if err != nil {
		return err
	}
	*v = d.root
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	return d.root.UnmarshalJSON(data)
}
