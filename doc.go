// Package jsondoc provides an in-memory JSON document model:
//
// - A closed Value type (null, bool, int64, double, string, array, object)
// with insertion-ordered objects, deep Clone, structural Equal and Hash
// - Path-based access by JSON Pointer ("/a/0"), dot notation ("a.b") and
// bracket indices ("a[0].b"), with auto-vivification on writes
// - Typed getters by copy (Get) and by reference (GetRef, RootRef)
// - Deep Merge with a choice between replacing and concatenating arrays
// - Compact and indented serialization, strict parsing through a pluggable
// token driver, and a YAML bridge
//
// JSON Schema generation and validation live in the jsonschema subpackage.
//
// Design policy:
// - Lookups never fail loudly: missing paths and kind mismatches report
// false. Writes return errors and are atomic: a rejected write leaves the
// document untouched.
// - Nothing here is synchronized. Concurrent readers are fine; any writer
// needs external locking.
//
// Typical usage:
//
//	doc, err := jsondoc.Parse(data)
//	name, ok := jsondoc.Get[string](doc, "/user/name")
//	err = jsondoc.Set[int64](doc, "user.visits", 3)
//	doc.Merge(patch, true)
//	out := doc.ToString(2)
package jsondoc
