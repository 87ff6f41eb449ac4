package jsondoc

import "math"

// Type is the set of Go types accepted by the typed accessors.
type Type interface {
	bool | int64 | float64 | string | Array | Object | Value
}

// Get returns a copy of the node at path converted to T. Numeric T accept
// both number kinds: float64 takes any int64, int64 takes a double only when
// it is integral and in range. Missing paths and mismatched kinds both
// report false.
func Get[T Type](d *Document, path string) (T, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		var zero T
		return zero, false
	}
	return As[T](v)
}

// As converts a node with the same rules as Get. Containers are deep copied.
func As[T Type](v *Value) (T, bool) {
	var out T
	ok := false
	switch p := any(&out).(type) {
	case *bool:
		*p, ok = v.AsBool()
	case *int64:
		*p, ok = asInt64(v)
	case *float64:
		*p, ok = v.AsNumber()
	case *string:
		*p, ok = v.AsString()
	case *Array:
		if a, isArr := v.AsArray(); isArr {
			*p, ok = a.Clone(), true
		}
	case *Object:
		if o, isObj := v.AsObject(); isObj {
			*p, ok = o.Clone(), true
		}
	case *Value:
		if v != nil {
			*p, ok = v.Clone(), true
		}
	}
	if !ok {
		var zero T
		return zero, false
	}
	return out, true
}

func asInt64(v *Value) (int64, bool) {
	switch v.Type() {
	case KindInt:
		return v.i, true
	case KindDouble:
		f := v.f
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, false
		}
		return int64(f), true
	default:
		return 0, false
	}
}

// GetRef returns a pointer to the payload at path when its kind is exactly
// T; no numeric coercion is applied. GetRef[Value] returns the node itself.
// Writes through the pointer are visible to later reads; the pointer must
// not be kept across calls that restructure an ancestor.
func GetRef[T Type](d *Document, path string) (*T, bool) {
	v, ok := d.Lookup(path)
	if !ok {
		return nil, false
	}
	return RefOf[T](v)
}

// RootRef is GetRef at the root.
func RootRef[T Type](d *Document) (*T, bool) {
	return RefOf[T](&d.root)
}

// RefOf returns a pointer into v's payload when v's kind is exactly T.
func RefOf[T Type](v *Value) (*T, bool) {
	if v == nil {
		return nil, false
	}
	var ref any
	switch any((*T)(nil)).(type) {
	case *bool:
		if v.kind == KindBool {
			ref = &v.b
		}
	case *int64:
		if v.kind == KindInt {
			ref = &v.i
		}
	case *float64:
		if v.kind == KindDouble {
			ref = &v.f
		}
	case *string:
		if v.kind == KindString {
			ref = &v.s
		}
	case *Array:
		if v.kind == KindArray {
			ref = &v.arr
		}
	case *Object:
		if v.kind == KindObject {
			ref = &v.obj
		}
	case *Value:
		ref = v
	}
	if ref == nil {
		return nil, false
	}
	return ref.(*T), true
}

// Set writes a copy of v at path, creating missing intermediate containers.
// See Document.SetValue for the conflict rules.
func Set[T Type](d *Document, path string, v T) error {
	return d.set(path, typedValue(v))
}

func typedValue[T Type](v T) Value {
	switch t := any(v).(type) {
	case bool:
		return Bool(t)
	case int64:
		return Int(t)
	case float64:
		return Double(t)
	case string:
		return String(t)
	case Array:
		return ArrayValue(t)
	case Object:
		return ObjectValue(t)
	case Value:
		return t.Clone()
	}
	return Null()
}
