package engine

// Kind represents token kinds produced by a JSON driver.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "'{'"
	case KindEndObject:
		return "'}'"
	case KindBeginArray:
		return "'['"
	case KindEndArray:
		return "']'"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	default:
		return "unknown"
	}
}

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // literal text, interpreted by the consumer
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine. NextToken
// returns io.EOF once the input is exhausted.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}
