package jsondoc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/reoring/jsondoc"
)

func TestPathSyntaxesAgree(t *testing.T) {
	d := mustParse(t, `{"user":{"name":"ada","tags":["x","y"],"a/b":{"~k":1}}}`)
	pairs := [][2]string{
		{"/user/name", "user.name"},
		{"/user/tags/1", "user.tags[1]"},
		{"/user/tags/0", "user.tags.0"},
		{"/user/a~1b/~0k", `user["a/b"]["~k"]`},
	}
	for _, p := range pairs {
		a, okA := jsondoc.Get[jsondoc.Value](d, p[0])
		b, okB := jsondoc.Get[jsondoc.Value](d, p[1])
		if !okA || !okB {
			t.Fatalf("%q/%q did not resolve: %v %v", p[0], p[1], okA, okB)
		}
		if !a.Equal(&b) {
			t.Fatalf("%q and %q resolved differently: %s vs %s", p[0], p[1], a.String(), b.String())
		}
	}
	if !d.Contains("") || d.Contains("/nope") || d.Contains("user..name") {
		t.Fatalf("unexpected Contains results")
	}
}

func TestSetAutoVivifies(t *testing.T) {
	d := jsondoc.New()
	if err := jsondoc.Set[int64](d, "a.b.c", 5); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok := jsondoc.Get[int64](d, "/a/b/c"); !ok || v != 5 {
		t.Fatalf("got %d %v, want 5", v, ok)
	}
	obj, ok := jsondoc.Get[jsondoc.Object](d, "/a/b")
	if !ok || !obj.Has("c") {
		t.Fatalf("/a/b should be an object holding c")
	}

	// numeric segments create arrays, padding with nulls
	if err := jsondoc.Set[string](d, "/list/2", "z"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := d.ToString(0); got != `{"a":{"b":{"c":5}},"list":[null,null,"z"]}` {
		t.Fatalf("unexpected tree: %s", got)
	}
	if err := jsondoc.Set[bool](d, "/list/-", true); err != nil {
		t.Fatalf("append: %v", err)
	}
	if n := d.Key("list").Size(); n != 4 {
		t.Fatalf("append should grow list to 4, got %d", n)
	}
	if err := jsondoc.Set[float64](d, "m[1].v", 2.5); err != nil {
		t.Fatalf("bracket set: %v", err)
	}
	if got, _ := d.Lookup("m"); got.String() != `[null,{"v":2.5}]` {
		t.Fatalf("bracket vivification: %s", got.String())
	}
}

func TestSetConflictIsAtomic(t *testing.T) {
	d := mustParse(t, `{"a":{"b":1},"arr":[1]}`)
	before := d.ToString(0)
	cases := []string{"a.b.c", "/arr/x", "a[0]", "/a/b/0/z"}
	for _, p := range cases {
		err := d.SetValue(p, "v")
		if !errors.Is(err, jsondoc.ErrPathConflict) {
			t.Fatalf("%s: expected ErrPathConflict, got %v", p, err)
		}
		if got := d.ToString(0); got != before {
			t.Fatalf("%s: document changed after failed write: %s", p, got)
		}
	}
	if err := d.SetValue("a[", 1); !errors.Is(err, jsondoc.ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}

func TestSetRejectsHugeIndex(t *testing.T) {
	d := mustParse(t, `{"arr":[1,2]}`)
	before := d.ToString(0)
	for _, p := range []string{
		"a[999999999999999999]",
		"/arr/999999999999999999",
		"x.y[2][999999999999]",
		fmt.Sprintf("/arr/%d", jsondoc.MaxPadding+3),
	} {
		if err := jsondoc.Set[int64](d, p, 1); !errors.Is(err, jsondoc.ErrInvalidPath) {
			t.Fatalf("%s: expected ErrInvalidPath, got %v", p, err)
		}
		if got := d.ToString(0); got != before {
			t.Fatalf("%s: document changed after failed write: %s", p, got)
		}
	}
	if err := d.SetValue(fmt.Sprintf("/arr/%d", jsondoc.MaxPadding+2), 1); err != nil {
		t.Fatalf("padding at the limit: %v", err)
	}
	if n := d.Key("arr").Size(); n != jsondoc.MaxPadding+3 {
		t.Fatalf("arr size = %d", n)
	}
}

func TestSetReplacesNull(t *testing.T) {
	d := mustParse(t, `{"a":null}`)
	if err := d.SetValue("a.b", 1); err != nil {
		t.Fatalf("null intermediates must be replaced: %v", err)
	}
	if err := d.SetValue("", []any{1}); err != nil {
		t.Fatalf("set root: %v", err)
	}
	if d.Type() != jsondoc.KindArray {
		t.Fatalf("root should now be an array")
	}
}

func TestGetRefMutationIsVisible(t *testing.T) {
	d := mustParse(t, `{"n":1,"s":"a","arr":[1]}`)
	n, ok := jsondoc.GetRef[int64](d, "n")
	if !ok {
		t.Fatalf("GetRef[int64] failed")
	}
	*n = 42
	if v, _ := jsondoc.Get[int64](d, "n"); v != 42 {
		t.Fatalf("write through ref not visible: %d", v)
	}
	arr, ok := jsondoc.GetRef[jsondoc.Array](d, "arr")
	if !ok {
		t.Fatalf("GetRef[Array] failed")
	}
	*arr = append(*arr, jsondoc.String("x"))
	if got, _ := d.Lookup("arr"); got.String() != `[1,"x"]` {
		t.Fatalf("append through ref not visible: %s", got.String())
	}
	if _, ok := jsondoc.GetRef[float64](d, "n"); ok {
		t.Fatalf("GetRef must not coerce int64 to float64")
	}
	if _, ok := jsondoc.GetRef[string](d, "missing"); ok {
		t.Fatalf("GetRef on a missing path must fail")
	}
	root, ok := jsondoc.RootRef[jsondoc.Object](d)
	if !ok || root.Len() != 3 {
		t.Fatalf("RootRef[Object] failed")
	}
}

func TestGetCoercion(t *testing.T) {
	d := mustParse(t, `{"i":3,"f":2.0,"g":2.5,"s":"x"}`)
	if v, ok := jsondoc.Get[float64](d, "i"); !ok || v != 3 {
		t.Fatalf("float64 from int64: %v %v", v, ok)
	}
	if v, ok := jsondoc.Get[int64](d, "f"); !ok || v != 2 {
		t.Fatalf("int64 from integral double: %v %v", v, ok)
	}
	if _, ok := jsondoc.Get[int64](d, "g"); ok {
		t.Fatalf("non-integral double must not convert to int64")
	}
	if _, ok := jsondoc.Get[bool](d, "s"); ok {
		t.Fatalf("kind mismatch must report false")
	}
	if _, ok := jsondoc.Get[string](d, "/s/x"); ok {
		t.Fatalf("descending into a scalar must report false")
	}
}

func TestKeyAndIndex(t *testing.T) {
	d := mustParse(t, `[1,2,3]`)
	if d.Index(10).Type() != jsondoc.KindNull {
		t.Fatalf("out-of-range Index should yield null")
	}
	if _, ok := jsondoc.Get[int64](d, "[10]"); ok {
		t.Fatalf("Get past the end must fail")
	}
	*d.Index(10) = jsondoc.Int(7)
	if d.Size() != 3 {
		t.Fatalf("writes through the sentinel must not grow the array")
	}
	if d.Index(5).Type() != jsondoc.KindNull {
		t.Fatalf("sentinel must not retain writes")
	}
	*d.Index(1) = jsondoc.Int(20)
	if got := d.ToString(0); got != `[1,20,3]` {
		t.Fatalf("in-range Index write lost: %s", got)
	}
	if d.Key("x").Type() != jsondoc.KindNull || d.ToString(0) != `[1,20,3]` {
		t.Fatalf("Key on an array must return a detached null")
	}

	o := jsondoc.New()
	*o.Key("a").Key("b") = jsondoc.Bool(true)
	if got := o.ToString(0); got != `{"a":{"b":true}}` {
		t.Fatalf("Key should create members: %s", got)
	}
}

func TestUpdate(t *testing.T) {
	d := mustParse(t, `{"a":{"x":1},"list":[1,2]}`)
	patch := mustParse(t, `{"new":true}`)

	if err := d.Update("/a/y", patch); err != nil {
		t.Fatalf("update new leaf key: %v", err)
	}
	if err := d.Update("/list/1", mustParse(t, `"two"`)); err != nil {
		t.Fatalf("update array element: %v", err)
	}
	if err := d.Update("/list/-", mustParse(t, `3`)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := d.Update("/list/3", mustParse(t, `4`)); err != nil {
		t.Fatalf("one past the end: %v", err)
	}
	if got := d.ToString(0); got != `{"a":{"x":1,"y":{"new":true}},"list":[1,"two",3,4]}` {
		t.Fatalf("unexpected tree: %s", got)
	}

	before := d.ToString(0)
	for _, p := range []string{"/missing/leaf", "/list/9"} {
		if err := d.Update(p, patch); !errors.Is(err, jsondoc.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", p, err)
		}
	}
	if err := d.Update("/a/x/deeper", patch); !errors.Is(err, jsondoc.ErrPathConflict) {
		t.Fatalf("update under a scalar: %v", err)
	}
	if d.ToString(0) != before {
		t.Fatalf("failed updates changed the document")
	}

	// later edits to the source must not leak into d
	jsondoc.Set[bool](patch, "new", false)
	if v, _ := jsondoc.Get[bool](d, "a.y.new"); !v {
		t.Fatalf("Update must copy its argument")
	}
}

func TestRemove(t *testing.T) {
	d := mustParse(t, `{"a":[1,2,3],"b":{"c":1}}`)
	if err := d.Remove("a[1]"); err != nil {
		t.Fatalf("remove element: %v", err)
	}
	if err := d.Remove("b.c"); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if got := d.ToString(0); got != `{"a":[1,3],"b":{}}` {
		t.Fatalf("unexpected tree: %s", got)
	}
	if err := d.Remove("b.c"); !errors.Is(err, jsondoc.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := d.Remove(""); err != nil || d.Type() != jsondoc.KindNull {
		t.Fatalf("removing root should reset to null")
	}
}

func TestNewFromAndValidity(t *testing.T) {
	d, err := jsondoc.NewFrom(map[string]any{"k": []int{1, 2}})
	if err != nil {
		t.Fatalf("NewFrom: %v", err)
	}
	if !d.IsValid() || d.Size() != 1 {
		t.Fatalf("unexpected document: %s", d.ToString(0))
	}
	if _, err := jsondoc.NewFrom(make(chan int)); !errors.Is(err, jsondoc.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}
