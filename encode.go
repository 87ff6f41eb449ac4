package jsondoc

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/reoring/jsondoc/internal/escape"
)

// ToString renders the document as JSON. indent 0 yields compact output;
// a positive indent pretty-prints with that many spaces per level. Object
// members are written in insertion order.
func (d *Document) ToString(indent int) string {
	return string(d.root.AppendJSON(nil, indent))
}

// ToBytes returns the compact UTF-8 encoding.
func (d *Document) ToBytes() []byte {
	return d.root.AppendJSON(nil, 0)
}

// WriteTo writes the compact encoding to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.ToBytes())
	return int64(n), err
}

// Encode writes v to w with the given indent followed by a newline.
func Encode(w io.Writer, v *Value, indent int) error {
	b := v.AppendJSON(nil, indent)
	_, err := w.Write(append(b, '\n'))
	return err
}

// String renders v compactly.
func (v *Value) String() string { return string(v.AppendJSON(nil, 0)) }

// AppendJSON appends the JSON encoding of v to dst.
func (v *Value) AppendJSON(dst []byte, indent int) []byte {
	e := encoder{buf: bytes.NewBuffer(dst), indent: max(indent, 0)}
	e.value(v, 0)
	return e.buf.Bytes()
}

type encoder struct {
	buf    *bytes.Buffer
	indent int
}

func (e *encoder) newline(depth int) {
	if e.indent == 0 {
		return
	}
	e.buf.WriteByte('\n')
	e.buf.WriteString(strings.Repeat(" ", depth*e.indent))
}

func (e *encoder) value(v *Value, depth int) {
	switch v.Type() {
	case KindNull:
		e.buf.WriteString("null")
	case KindBool:
		e.buf.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		e.buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindDouble:
		e.buf.WriteString(formatDouble(v.f))
	case KindString:
		e.str(v.s)
	case KindArray:
		if len(v.arr) == 0 {
			e.buf.WriteString("[]")
			return
		}
		e.buf.WriteByte('[')
		for i := range v.arr {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			e.value(&v.arr[i], depth+1)
		}
		e.newline(depth)
		e.buf.WriteByte(']')
	case KindObject:
		if v.obj.Len() == 0 {
			e.buf.WriteString("{}")
			return
		}
		e.buf.WriteByte('{')
		for i, k := range v.obj.keys {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			e.str(k)
			e.buf.WriteByte(':')
			if e.indent > 0 {
				e.buf.WriteByte(' ')
			}
			e.value(&v.obj.vals[i], depth+1)
		}
		e.newline(depth)
		e.buf.WriteByte('}')
	}
}

func (e *encoder) str(s string) {
	e.buf.WriteByte('"')
	e.buf.WriteString(escape.Escape(s))
	e.buf.WriteByte('"')
}

// formatDouble writes the shortest text that parses back to the same
// float64. Integral values keep a ".0" so they read back as doubles; NaN
// and infinities have no JSON form and become null.
func formatDouble(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) { return v.AppendJSON(nil, 0), nil }

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) { return d.ToBytes(), nil }
