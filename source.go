package jsondoc

import (
	"io"
	"sync"

	"github.com/reoring/jsondoc/internal/engine"
	jsonsrc "github.com/reoring/jsondoc/source/json"
)

// Source is a stream of JSON tokens consumed by the parser. NextToken
// returns io.EOF once the input is exhausted.
type Source = engine.TokenSource

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token = engine.Token

// TokenKind enumerates JSON token kinds.
type TokenKind = engine.Kind

const (
	TokenBeginObject TokenKind = engine.KindBeginObject
	TokenEndObject   TokenKind = engine.KindEndObject
	TokenBeginArray  TokenKind = engine.KindBeginArray
	TokenEndArray    TokenKind = engine.KindEndArray
	TokenKey         TokenKind = engine.KindKey
	TokenString      TokenKind = engine.KindString
	TokenNumber      TokenKind = engine.KindNumber
	TokenBool        TokenKind = engine.KindBool
	TokenNull        TokenKind = engine.KindNull
)

// JSONDriver converts JSON input into a Source. The default implementation
// is based on encoding/json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver used by Parse and ParseReader.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source { return jsonsrc.NewReader(r) }
func (defaultJSONDriver) NewBytes(b []byte) Source     { return jsonsrc.NewBytes(b) }
func (defaultJSONDriver) Name() string                 { return "encoding/json" }

// JSONReader wraps an io.Reader as a Source using the current driver.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a Source using the current driver.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }
