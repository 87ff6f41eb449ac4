package jsondoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/reoring/jsondoc/internal/path"
)

// DuplicateKeyError reports a mapping key that appears twice in YAML input.
type DuplicateKeyError struct {
	Key       string
	Path      string
	Line      int
	Column    int
	FirstLine int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q at line %d, column %d (first at line %d)", e.Key, e.Line, e.Column, e.FirstLine)
}

// FromYAML decodes the first YAML document in data. Mapping order is kept,
// aliases are expanded and merge keys are not interpreted. Repeated mapping
// keys follow opts.OnDuplicateKey the same way Parse does; under Error the
// returned error wraps both ErrSyntax and a *DuplicateKeyError.
func FromYAML(data []byte, opts ...ParseOpt) (*Document, error) {
	yd := &yamlDecoder{opt: lastParseOpt(opts), budget: yamlNodeBudget(len(data))}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node yaml.Node
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return New(), nil
		}
		return nil, fmt.Errorf("%w: yaml: %v", ErrSyntax, err)
	}
	v, err := yd.value(&node, "", 0)
	if err != nil {
		return nil, err
	}
	return &Document{root: v}, nil
}

// yaml alias chains can be cyclic; bound the expansion depth.
const maxYAMLDepth = 10000

// Aliases re-expand on every reference, so the decoded tree may hold at most
// yamlExpansionRatio nodes per input byte (plus a small floor).
const (
	yamlExpansionRatio = 64
	yamlMinNodeBudget  = 4096
)

func yamlNodeBudget(size int) int {
	return yamlMinNodeBudget + yamlExpansionRatio*size
}

type yamlDecoder struct {
	opt    ParseOpt
	budget int
}

func (yd *yamlDecoder) value(n *yaml.Node, at string, depth int) (Value, error) {
	if depth > maxYAMLDepth {
		return Null(), fmt.Errorf("%w: yaml nesting too deep at line %d", ErrSyntax, n.Line)
	}
	if n.Kind != yaml.DocumentNode && n.Kind != yaml.AliasNode {
		if yd.budget--; yd.budget < 0 {
			return Null(), fmt.Errorf("%w: yaml alias expansion too large at line %d", ErrSyntax, n.Line)
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return yd.value(n.Content[0], at, depth+1)
	case yaml.AliasNode:
		return yd.value(n.Alias, at, depth+1)
	case yaml.SequenceNode:
		arr := make(Array, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := yd.value(c, at+"/"+strconv.Itoa(i), depth+1)
			if err != nil {
				return Null(), err
			}
			arr = append(arr, v)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case yaml.MappingNode:
		out := NewObject()
		var seen map[string]*yaml.Node
		if yd.opt.OnDuplicateKey != Ignore {
			seen = make(map[string]*yaml.Node, len(n.Content)/2)
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			for k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			child := at + "/" + path.EscapeToken(k.Value)
			if seen != nil {
				if first, dup := seen[k.Value]; dup {
					if err := yd.duplicate(k, first, child); err != nil {
						return Null(), err
					}
				} else {
					seen[k.Value] = k
				}
			}
			v, err := yd.value(n.Content[i+1], child, depth+1)
			if err != nil {
				return Null(), err
			}
			out.obj.Set(k.Value, v)
		}
		return out, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return Null(), fmt.Errorf("%w: unsupported yaml node kind %d at line %d", ErrSyntax, n.Kind, n.Line)
}

func (yd *yamlDecoder) duplicate(k, first *yaml.Node, at string) error {
	de := &DuplicateKeyError{Key: k.Value, Path: at, Line: k.Line, Column: k.Column, FirstLine: first.Line}
	if yd.opt.OnDuplicateKey == Error {
		return fmt.Errorf("%w: %w", ErrSyntax, de)
	}
	if yd.opt.Logger != nil {
		yd.opt.Logger.Warn("jsondoc: parse finding", "code", CodeDuplicateKey, "path", at, "line", de.Line, "message", de.Error())
	}
	return nil
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Null(), fmt.Errorf("%w: yaml bool at line %d: %v", ErrSyntax, n.Line, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return Null(), fmt.Errorf("%w: yaml int at line %d: %v", ErrSyntax, n.Line, err)
		}
		return Double(f), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Null(), fmt.Errorf("%w: yaml float at line %d: %v", ErrSyntax, n.Line, err)
		}
		return Double(f), nil
	default:
		return String(n.Value), nil
	}
}

// ToYAML renders the document as YAML, keeping object insertion order.
func (d *Document) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(&d.root)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v *Value) *yaml.Node {
	switch v.Type() {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.i, 10)}
	case KindDouble:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(v.f)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := range v.arr {
			n.Content = append(n.Content, toYAMLNode(&v.arr[i]))
		}
		return n
	case KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for i, k := range v.obj.keys {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				toYAMLNode(&v.obj.vals[i]))
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return formatDouble(f)
}
