package jsondoc_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/jsondoc"
)

func mustParse(t *testing.T, s string) *jsondoc.Document {
	t.Helper()
	d, err := jsondoc.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestKindsAndSize(t *testing.T) {
	cases := []struct {
		v    jsondoc.Value
		kind jsondoc.Kind
		size int
	}{
		{jsondoc.Null(), jsondoc.KindNull, 0},
		{jsondoc.Bool(true), jsondoc.KindBool, 1},
		{jsondoc.Int(7), jsondoc.KindInt, 1},
		{jsondoc.Double(1.5), jsondoc.KindDouble, 1},
		{jsondoc.String("x"), jsondoc.KindString, 1},
		{jsondoc.NewArray(jsondoc.Int(1), jsondoc.Int(2)), jsondoc.KindArray, 2},
		{jsondoc.NewObject(), jsondoc.KindObject, 0},
	}
	for _, tc := range cases {
		if got := tc.v.Type(); got != tc.kind {
			t.Fatalf("Type() = %s, want %s", got, tc.kind)
		}
		if got := tc.v.Size(); got != tc.size {
			t.Fatalf("%s Size() = %d, want %d", tc.kind, got, tc.size)
		}
	}
	var nilValue *jsondoc.Value
	if nilValue.Type() != jsondoc.KindNull {
		t.Fatalf("nil *Value must report null")
	}
}

func TestEqualIsStructural(t *testing.T) {
	a := mustParse(t, `{"x":1,"y":[1,2,{"z":null}]}`)
	b := mustParse(t, `{"y":[1,2,{"z":null}],"x":1}`)
	if !a.Equal(b) {
		t.Fatalf("objects with the same members must be equal regardless of order")
	}
	c := mustParse(t, `{"x":1,"y":[2,1,{"z":null}]}`)
	if a.Equal(c) {
		t.Fatalf("array order matters")
	}
	i, f := jsondoc.Int(1), jsondoc.Double(1)
	if i.Equal(&f) {
		t.Fatalf("int64 and double are distinct kinds")
	}
}

func TestHashFollowsEqual(t *testing.T) {
	a := mustParse(t, `{"x":1,"y":{"p":true,"q":"s"}}`)
	b := mustParse(t, `{"y":{"q":"s","p":true},"x":1}`)
	if a.Root().Hash() != b.Root().Hash() {
		t.Fatalf("equal objects must hash equally")
	}
	arr1 := mustParse(t, `[1,2]`)
	arr2 := mustParse(t, `[2,1]`)
	if arr1.Root().Hash() == arr2.Root().Hash() {
		t.Fatalf("array hash must be order-sensitive")
	}
	z, nz := jsondoc.Double(0), jsondoc.Double(math.Copysign(0, -1))
	if !z.Equal(&nz) || z.Hash() != nz.Hash() {
		t.Fatalf("0 and -0 are equal and must hash equally")
	}
	one, oneF := jsondoc.Int(1), jsondoc.Double(1)
	if one.Hash() == oneF.Hash() {
		t.Fatalf("kind tag must contribute to the hash")
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := mustParse(t, `{"a":{"b":[1,2]}}`)
	c := d.Clone()
	if err := jsondoc.Set[int64](c, "a.b[0]", 99); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := jsondoc.Get[int64](d, "a.b[0]"); v != 1 {
		t.Fatalf("clone mutation leaked into original: %d", v)
	}
}

func TestObjectOrderAndIteration(t *testing.T) {
	d := mustParse(t, `{"zeta":1,"alpha":2,"mid":3}`)
	var keys []string
	for k := range d.Fields() {
		keys = append(keys, k)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, keys); diff != "" {
		t.Fatalf("iteration order (-want +got):\n%s", diff)
	}
	// restartable
	var again []string
	for k := range d.Fields() {
		again = append(again, k)
	}
	if diff := cmp.Diff(keys, again); diff != "" {
		t.Fatalf("second iteration differs:\n%s", diff)
	}

	obj, _ := jsondoc.RootRef[jsondoc.Object](d)
	obj.Set("alpha", jsondoc.Int(20))
	obj.Set("new", jsondoc.Int(4))
	if !obj.Delete("zeta") || obj.Delete("zeta") {
		t.Fatalf("Delete must report presence once")
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "new"}, obj.Keys()); diff != "" {
		t.Fatalf("keys after edits (-want +got):\n%s", diff)
	}
	if !d.IsValid() {
		t.Fatalf("document must stay consistent after edits")
	}
	if got := d.ToString(0); got != `{"alpha":20,"mid":3,"new":4}` {
		t.Fatalf("unexpected output: %s", got)
	}
}

func TestArrayItems(t *testing.T) {
	d := mustParse(t, `[10,20,30]`)
	var sum int64
	var idx []int
	for i, v := range d.Items() {
		n, _ := v.AsInt()
		sum += n
		idx = append(idx, i)
	}
	if sum != 60 || len(idx) != 3 || idx[2] != 2 {
		t.Fatalf("unexpected iteration: sum=%d idx=%v", sum, idx)
	}
	for range mustParse(t, `{"a":1}`).Items() {
		t.Fatalf("Items on an object must be empty")
	}
}

func TestValueOf(t *testing.T) {
	v, err := jsondoc.ValueOf(map[string]any{
		"b": []any{1, "two", 3.5, nil, true},
		"a": []string{"x", "y"},
		"n": uint64(math.MaxUint64),
	})
	if err != nil {
		t.Fatalf("ValueOf: %v", err)
	}
	if got := v.String(); got != `{"a":["x","y"],"b":[1,"two",3.5,null,true],"n":1.8446744073709552e+19}` {
		t.Fatalf("unexpected conversion: %s", got)
	}
	if _, err := jsondoc.ValueOf(struct{}{}); err == nil {
		t.Fatalf("structs are not convertible")
	}
	if diff := cmp.Diff(map[string]any{"k": []any{int64(1)}}, mustParse(t, `{"k":[1]}`).Root().Interface()); diff != "" {
		t.Fatalf("Interface (-want +got):\n%s", diff)
	}
}
