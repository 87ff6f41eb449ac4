package jsondoc_test

import (
	"testing"

	"github.com/reoring/jsondoc"
)

func TestMergeArrays(t *testing.T) {
	cases := []struct {
		name      string
		overwrite bool
		want      string
	}{
		{"overwrite", true, `{"r":[3]}`},
		{"concatenate", false, `{"r":[1,2,3]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := mustParse(t, `{"r":[1,2]}`)
			d.Merge(mustParse(t, `{"r":[3]}`), tc.overwrite)
			if got := d.ToString(0); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestMergeDeep(t *testing.T) {
	d := mustParse(t, `{"a":{"x":1,"y":{"k":"v"}},"keep":true,"s":"old"}`)
	src := mustParse(t, `{"a":{"y":{"k2":2},"z":[1]},"s":{"now":"object"},"add":null}`)
	d.Merge(src, true)
	want := `{"a":{"x":1,"y":{"k":"v","k2":2},"z":[1]},"keep":true,"s":{"now":"object"},"add":null}`
	if got := d.ToString(0); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	// merged values are copies
	jsondoc.Set[int64](src, "a.z[0]", 9)
	if v, _ := jsondoc.Get[int64](d, "a.z[0]"); v != 1 {
		t.Fatalf("merge shares storage with its source")
	}
}

func TestMergeIdempotentWithOverwrite(t *testing.T) {
	d := mustParse(t, `{"a":{"b":[1]},"c":2}`)
	other := mustParse(t, `{"a":{"b":[5],"d":true}}`)
	d.Merge(other, true)
	once := d.ToString(0)
	d.Merge(other, true)
	if got := d.ToString(0); got != once {
		t.Fatalf("second merge changed the document: %s vs %s", got, once)
	}
}

func TestMergeEmptyAndNull(t *testing.T) {
	d := mustParse(t, `{"a":1}`)
	d.Merge(mustParse(t, `{}`), false)
	d.Merge(jsondoc.New(), false)
	d.Merge(nil, true)
	if got := d.ToString(0); got != `{"a":1}` {
		t.Fatalf("empty merges must be no-ops: %s", got)
	}

	scalar := mustParse(t, `5`)
	scalar.Merge(mustParse(t, `{"x":1}`), false)
	if got := scalar.ToString(0); got != `{"x":1}` {
		t.Fatalf("non-container target is replaced: %s", got)
	}
}
