// Package json adapts encoding/json's streaming tokenizer to the engine's
// token model. It is the default driver: the tokenizer validates the
// grammar between tokens (commas, colons, bracket balance) and string
// escapes and number syntax inside them.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	eng "github.com/reoring/jsondoc/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return s.token(eng.KindBeginObject), nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return s.token(eng.KindBeginArray), nil
		case '}', ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.afterValue()
			if v == '}' {
				return s.token(eng.KindEndObject), nil
			}
			return s.token(eng.KindEndArray), nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				t := s.token(eng.KindKey)
				t.String = v
				return t, nil
			}
		}
		s.afterValue()
		t := s.token(eng.KindString)
		t.String = v
		return t, nil
	case bool:
		s.afterValue()
		t := s.token(eng.KindBool)
		t.Bool = v
		return t, nil
	case json.Number:
		s.afterValue()
		t := s.token(eng.KindNumber)
		t.Number = string(v)
		return t, nil
	case nil:
		s.afterValue()
		return s.token(eng.KindNull), nil
	}
	return eng.Token{}, fmt.Errorf("unexpected token %v (%T)", tok, tok)
}

func (s *jsonSource) token(k eng.Kind) eng.Token {
	return eng.Token{Kind: k, Offset: s.lastOffset}
}

// afterValue marks a completed member value so the next string is a key.
func (s *jsonSource) afterValue() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject {
			top.expectingKey = true
		}
	}
}

func (s *jsonSource) Location() int64 { return s.lastOffset }
