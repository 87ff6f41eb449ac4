package jsondoc

import (
	"errors"
	"fmt"
	"iter"
)

// Array is the element sequence of an array value. The index is the
// element's identity.
type Array []Value

// Len returns the number of elements.
func (a Array) Len() int { return len(a) }

// All yields (index, element) pairs in order. Elements are yielded by value
// and share containers with the array; Clone them before keeping them.
func (a Array) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i := range a {
			if !yield(i, a[i]) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (a Array) Clone() Array {
	if a == nil {
		return nil
	}
	out := make(Array, len(a))
	for i := range a {
		out[i] = a[i].Clone()
	}
	return out
}

// Object is an insertion-ordered string-keyed map of values.
//
// The zero Object is empty and ready to use. Replacing an existing key keeps
// its position; new keys are appended.
type Object struct {
	keys  []string
	vals  []Value
	index map[string]int
}

// Len returns the number of members.
func (o *Object) Len() int { return len(o.keys) }

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.lookup(key)
	return ok
}

// Get returns a deep copy of the member stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.lookup(key)
	if !ok {
		return Value{}, false
	}
	return o.vals[i].Clone(), true
}

// Ref returns a pointer to the member stored under key, or nil. The pointer
// is invalidated by Set of a new key and by Delete.
func (o *Object) Ref(key string) *Value {
	i, ok := o.lookup(key)
	if !ok {
		return nil
	}
	return &o.vals[i]
}

// Set stores v under key, taking ownership of v.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.lookup(key); ok {
		o.vals[i] = v
		return
	}
	if o.index == nil {
		o.index = make(map[string]int, 4)
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.vals = append(o.vals, v)
}

// Delete removes key, keeping the order of the remaining members.
func (o *Object) Delete(key string) bool {
	i, ok := o.lookup(key)
	if !ok {
		return false
	}
	delete(o.index, key)
	o.keys = append(o.keys[:i], o.keys[i+1:]...)
	o.vals = append(o.vals[:i], o.vals[i+1:]...)
	for j := i; j < len(o.keys); j++ {
		o.index[o.keys[j]] = j
	}
	return true
}

// Keys returns the member names in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// All yields (key, value) pairs in insertion order. Values share containers
// with the object; Clone them before keeping them.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, k := range o.keys {
			if !yield(k, o.vals[i]) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (o Object) Clone() Object {
	if len(o.keys) == 0 {
		return Object{}
	}
	out := Object{
		keys:  append([]string(nil), o.keys...),
		vals:  make([]Value, len(o.vals)),
		index: make(map[string]int, len(o.keys)),
	}
	for i := range o.vals {
		out.vals[i] = o.vals[i].Clone()
		out.index[o.keys[i]] = i
	}
	return out
}

func (o *Object) lookup(key string) (int, bool) {
	if o == nil || o.index == nil {
		return 0, false
	}
	i, ok := o.index[key]
	return i, ok
}

func (o *Object) check() error {
	if len(o.keys) != len(o.vals) {
		return fmt.Errorf("%d keys for %d values", len(o.keys), len(o.vals))
	}
	if len(o.index) != len(o.keys) {
		return errors.New("index size does not match key count")
	}
	for i, k := range o.keys {
		if j, ok := o.index[k]; !ok || j != i {
			return fmt.Errorf("index entry for %q is stale", k)
		}
	}
	return nil
}
