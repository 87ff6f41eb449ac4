package jsondoc

import (
	"iter"
)

// Document owns one root Value and is the unit callers work with.
//
// Paths accepted by the path-taking methods use JSON Pointer ("/a/0/b"),
// dot notation ("a.b") or bracket indices ("a[0].b"); "" is the root.
//
// Pointers handed out by GetRef, RootRef, Lookup, Key and Index borrow from
// the tree. Any write that adds object keys or grows an array above them may
// invalidate them, so they must not be kept across mutating calls.
//
// A Document is not safe for concurrent mutation.
type Document struct {
	root Value
}

// New returns a Document whose root is null.
func New() *Document { return &Document{} }

// NewFrom returns a Document whose root is ValueOf(v).
func NewFrom(v any) (*Document, error) {
	val, err := ValueOf(v)
	if err != nil {
		return nil, err
	}
	return &Document{root: val}, nil
}

// FromValue returns a Document owning a clone of v.
func FromValue(v Value) *Document { return &Document{root: v.Clone()} }

// Root returns the root node.
func (d *Document) Root() *Value { return &d.root }

// Type returns the kind of the root.
func (d *Document) Type() Kind { return d.root.kind }

// Size is the root's element count (0 for null, 1 for other scalars).
func (d *Document) Size() int { return d.root.Size() }

// IsValid reports whether the tree is internally consistent.
func (d *Document) IsValid() bool { return d != nil && d.root.Validate() == nil }

// Clone returns an independent copy.
func (d *Document) Clone() *Document { return &Document{root: d.root.Clone()} }

// Equal reports structural equality of the roots.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.root.Equal(&o.root)
}

// Lookup returns the node at path, or false when the path is invalid or
// does not resolve.
func (d *Document) Lookup(path string) (*Value, bool) {
	steps, err := parsePath(path)
	if err != nil {
		return nil, false
	}
	v := lookup(&d.root, steps)
	return v, v != nil
}

// Contains reports whether path resolves to a node.
func (d *Document) Contains(path string) bool {
	_, ok := d.Lookup(path)
	return ok
}

// SetValue converts v with ValueOf and writes it at path, creating missing
// intermediate containers. Null nodes on the way are replaced; any other
// node of the wrong kind fails with ErrPathConflict and leaves the document
// unchanged.
func (d *Document) SetValue(path string, v any) error {
	val, err := ValueOf(v)
	if err != nil {
		return err
	}
	return d.set(path, val)
}

// SetArray writes an empty array at path.
func (d *Document) SetArray(path string) error { return d.set(path, Value{kind: KindArray}) }

// SetObject writes an empty object at path.
func (d *Document) SetObject(path string) error { return d.set(path, NewObject()) }

func (d *Document) set(p string, v Value) error {
	steps, err := parsePath(p)
	if err != nil {
		return err
	}
	return writeAt(&d.root, steps, v)
}

// Update writes a copy of other's root at path without creating
// intermediate containers. The parent must already exist (ErrNotFound
// otherwise); a missing object key at the destination is created, array
// destinations must be in range or one past the end.
func (d *Document) Update(path string, other *Document) error {
	steps, err := parsePath(path)
	if err != nil {
		return err
	}
	var v Value
	if other != nil {
		v = other.root.Clone()
	}
	return updateAt(&d.root, steps, v)
}

// Remove deletes the node at path. Removing the root resets it to null.
func (d *Document) Remove(path string) error {
	steps, err := parsePath(path)
	if err != nil {
		return err
	}
	return removeAt(&d.root, steps)
}

// Key is the document-level form of Value.Key.
func (d *Document) Key(name string) *Value { return d.root.Key(name) }

// Index is the document-level form of Value.Index.
func (d *Document) Index(i int) *Value { return d.root.Index(i) }

// Items iterates the root array; it yields nothing for other kinds.
func (d *Document) Items() iter.Seq2[int, Value] {
	if d.root.kind != KindArray {
		return func(func(int, Value) bool) {}
	}
	return d.root.arr.All()
}

// Fields iterates the root object; it yields nothing for other kinds.
func (d *Document) Fields() iter.Seq2[string, Value] {
	if d.root.kind != KindObject {
		return func(func(string, Value) bool) {}
	}
	return d.root.obj.All()
}
