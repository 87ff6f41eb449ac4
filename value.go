package jsondoc

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Kind is the variant tag of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int64"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsContainer reports whether k is KindArray or KindObject.
func (k Kind) IsContainer() bool { return k == KindArray || k == KindObject }

// IsNumber reports whether k is KindInt or KindDouble.
func (k Kind) IsNumber() bool { return k == KindInt || k == KindDouble }

// Value is a JSON node: a closed sum over null, bool, int64, double, string,
// array and object. The zero Value is null.
//
// Only the payload field matching the kind is ever set. Assigning a Value
// copies containers shallowly; use Clone to obtain an independent tree.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  Array
	obj  Object
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an int64 value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Double returns a double value.
func Double(f float64) Value { return Value{kind: KindDouble, f: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// NewArray returns an array value holding clones of vs.
func NewArray(vs ...Value) Value {
	arr := make(Array, len(vs))
	for i := range vs {
		arr[i] = vs[i].Clone()
	}
	return Value{kind: KindArray, arr: arr}
}

// NewObject returns an empty object value.
func NewObject() Value { return Value{kind: KindObject} }

// ArrayValue wraps a clone of a.
func ArrayValue(a Array) Value { return Value{kind: KindArray, arr: a.Clone()} }

// ObjectValue wraps a clone of o.
func ObjectValue(o Object) Value { return Value{kind: KindObject, obj: o.Clone()} }

// ValueOf converts Go natives into a Value. Maps are converted with their
// keys sorted so the result is deterministic.
func ValueOf(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t.Clone(), nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return t.Clone(), nil
	case Array:
		return ArrayValue(t), nil
	case Object:
		return ObjectValue(t), nil
	case *Object:
		if t == nil {
			return NewObject(), nil
		}
		return ObjectValue(*t), nil
	case *Document:
		if t == nil {
			return Null(), nil
		}
		return t.root.Clone(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint:
		return uintValue(uint64(t)), nil
	case uint64:
		return uintValue(t), nil
	case float32:
		return Double(float64(t)), nil
	case float64:
		return Double(t), nil
	case []any:
		arr := make(Array, 0, len(t))
		for i, e := range t {
			ev, err := ValueOf(e)
			if err != nil {
				return Null(), fmt.Errorf("[%d]: %w", i, err)
			}
			arr = append(arr, ev)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewObject()
		for _, k := range keys {
			ev, err := ValueOf(t[k])
			if err != nil {
				return Null(), fmt.Errorf("%s: %w", k, err)
			}
			out.obj.Set(k, ev)
		}
		return out, nil
	}
	// typed slices such as []string or []int
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		arr := make(Array, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return Null(), fmt.Errorf("[%d]: %w", i, err)
			}
			arr = append(arr, ev)
		}
		return Value{kind: KindArray, arr: arr}, nil
	}
	return Null(), fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		return Double(float64(u))
	}
	return Int(int64(u))
}

// Type returns the variant tag.
func (v *Value) Type() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool { return v.Type() == KindNull }

// AsBool returns the payload when v is a bool.
func (v *Value) AsBool() (bool, bool) {
	if v.Type() != KindBool {
		return false, false
	}
	return v.b, true
}

// AsInt returns the payload when v is an int64.
func (v *Value) AsInt() (int64, bool) {
	if v.Type() != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsDouble returns the payload when v is a double.
func (v *Value) AsDouble() (float64, bool) {
	if v.Type() != KindDouble {
		return 0, false
	}
	return v.f, true
}

// AsNumber returns any numeric payload as float64.
func (v *Value) AsNumber() (float64, bool) {
	switch v.Type() {
	case KindInt:
		return float64(v.i), true
	case KindDouble:
		return v.f, true
	default:
		return 0, false
	}
}

// AsString returns the payload when v is a string.
func (v *Value) AsString() (string, bool) {
	if v.Type() != KindString {
		return "", false
	}
	return v.s, true
}

// AsArray returns a reference to the elements when v is an array.
func (v *Value) AsArray() (*Array, bool) {
	if v.Type() != KindArray {
		return nil, false
	}
	return &v.arr, true
}

// AsObject returns a reference to the members when v is an object.
func (v *Value) AsObject() (*Object, bool) {
	if v.Type() != KindObject {
		return nil, false
	}
	return &v.obj, true
}

// Size is the element count of containers, 0 for null and 1 for other
// scalars.
func (v *Value) Size() int {
	switch v.Type() {
	case KindNull:
		return 0
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 1
	}
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		return Value{kind: KindArray, arr: v.arr.Clone()}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// Equal reports structural equality: same kind and equal payloads,
// recursively. Objects compare as key sets regardless of insertion order.
// Int(1) and Double(1) are not equal.
func (v *Value) Equal(o *Value) bool {
	if v.Type() != o.Type() {
		return false
	}
	switch v.Type() {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindDouble:
		return v.f == o.f || (math.IsNaN(v.f) && math.IsNaN(o.f))
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(&o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != o.obj.Len() {
			return false
		}
		for i, k := range v.obj.keys {
			ov := o.obj.Ref(k)
			if ov == nil || !v.obj.vals[i].Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// Interface converts v into plain Go values: nil, bool, int64, float64,
// string, []any and map[string]any.
func (v *Value) Interface() any {
	switch v.Type() {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindDouble:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i := range v.arr {
			out[i] = v.arr[i].Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for i, k := range v.obj.keys {
			out[k] = v.obj.vals[i].Interface()
		}
		return out
	default:
		return nil
	}
}

// Key is permissive object navigation. On an object it returns the member,
// creating it as null when absent. A null v is turned into an object first.
// On any other kind it returns a detached null: writes through it are
// discarded.
func (v *Value) Key(name string) *Value {
	if v == nil {
		return detachedNull()
	}
	switch v.kind {
	case KindNull:
		*v = NewObject()
		fallthrough
	case KindObject:
		if ref := v.obj.Ref(name); ref != nil {
			return ref
		}
		v.obj.Set(name, Null())
		return v.obj.Ref(name)
	default:
		return detachedNull()
	}
}

// Index is permissive array navigation. It never grows the array: an
// out-of-range index, or a non-array v, yields a detached null.
func (v *Value) Index(i int) *Value {
	if v == nil || v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return detachedNull()
	}
	return &v.arr[i]
}

// detachedNull stands in for a shared immutable null: every call hands out
// a fresh node so a write through it cannot leak into other lookups.
func detachedNull() *Value { return &Value{} }

// Validate checks the internal consistency of the tree: object indexes
// agree with their key lists and every node carries a known tag.
func (v *Value) Validate() error {
	return v.validate("")
}

func (v *Value) validate(at string) error {
	switch v.kind {
	case KindNull, KindBool, KindInt, KindDouble, KindString:
		return nil
	case KindArray:
		for i := range v.arr {
			if err := v.arr[i].validate(fmt.Sprintf("%s/%d", at, i)); err != nil {
				return err
			}
		}
		return nil
	case KindObject:
		if err := v.obj.check(); err != nil {
			return fmt.Errorf("%w at %q: %v", ErrMalformed, at, err)
		}
		for i, k := range v.obj.keys {
			if err := v.obj.vals[i].validate(at + "/" + k); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w at %q: unknown kind %d", ErrMalformed, at, v.kind)
	}
}
