package jsonschema_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reoring/jsondoc"
	"github.com/reoring/jsondoc/jsonschema"
)

func mustParse(t testing.TB, s string) *jsondoc.Document {
	t.Helper()
	d, err := jsondoc.Parse([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestGenerateRequiredIsIntersection(t *testing.T) {
	schema, err := jsonschema.Generate(jsonschema.Options{},
		mustParse(t, `{"a":1,"b":2}`),
		mustParse(t, `{"a":3}`))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := `{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"object",` +
		`"properties":{"a":{"type":"integer"},"b":{"type":"integer"}},"required":["a"]}`
	if got := schema.ToString(0); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
	req, _ := jsondoc.Get[jsondoc.Array](schema, "required")
	if len(req) != 1 {
		t.Fatalf("only a should be required, got %d entries", len(req))
	}
}

func TestGenerateConstraintsAndFormats(t *testing.T) {
	samples := []*jsondoc.Document{
		mustParse(t, `{"id":"6fa459ea-ee8a-3ca4-894e-db77e160355e","email":"a@example.com","tags":["x","y"],"score":1,"role":"admin"}`),
		mustParse(t, `{"id":"16fd2706-8baf-433b-82eb-8c7fada847da","email":"b@example.com","tags":[],"score":2.5,"role":"admin","when":"2024-01-02T03:04:05Z"}`),
	}
	opts := jsonschema.Options{InferFormats: true, InferConstraints: true, Title: "Users"}
	schema, err := jsonschema.Generate(opts, samples...)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := strings.Join([]string{
		`{"$schema":"https://json-schema.org/draft/2020-12/schema","title":"Users","type":"object","properties":{`,
		`"id":{"type":"string","format":"uuid","minLength":36,"maxLength":36},`,
		`"email":{"type":"string","format":"email","minLength":13,"maxLength":13},`,
		`"tags":{"type":"array","minItems":0,"maxItems":2,"items":{"type":"string","minLength":1,"maxLength":1}},`,
		`"score":{"type":"number","minimum":1,"maximum":2.5},`,
		`"role":{"type":"string","enum":["admin"],"minLength":5,"maxLength":5},`,
		`"when":{"type":"string","format":"date-time","minLength":20,"maxLength":20}},`,
		`"required":["id","email","tags","score","role"]}`,
	}, "")
	if got := schema.ToString(0); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	v := jsonschema.NewValidator(schema)
	for i, s := range samples {
		if res := v.Validate(s); !res.Valid {
			t.Fatalf("sample %d does not validate against its own schema: %v", i, res.Issues)
		}
	}
}

func TestGenerateTypeUnion(t *testing.T) {
	schema, err := jsonschema.Generate(jsonschema.Options{},
		mustParse(t, `[1,"x",null,2.5]`))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, _ := schema.Lookup("/items/type")
	if got.String() != `["number","string","null"]` {
		t.Fatalf("unexpected type union %s", got.String())
	}
}

func TestGenerateFormatNeedsAgreement(t *testing.T) {
	schema, err := jsonschema.Generate(jsonschema.Options{InferFormats: true},
		mustParse(t, `{"h":"10.0.0.1"}`),
		mustParse(t, `{"h":"::1"}`),
		mustParse(t, `{"d":"2024-02-29","h":"10.0.0.2"}`))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if schema.Contains("/properties/h/format") {
		t.Fatalf("mixed ipv4/ipv6 must not produce a format")
	}
	if f, _ := jsondoc.Get[string](schema, "/properties/d/format"); f != "date" {
		t.Fatalf("expected date format, got %q", f)
	}
}

func TestGenerateEnumLimits(t *testing.T) {
	var docs []*jsondoc.Document
	for _, s := range []string{"a", "b", "c", "a"} {
		d := jsondoc.New()
		if err := jsondoc.Set[string](d, "k", s); err != nil {
			t.Fatalf("set: %v", err)
		}
		docs = append(docs, d)
	}
	schema, _ := jsonschema.Generate(jsonschema.Options{InferConstraints: true}, docs...)
	if e, _ := schema.Lookup("/properties/k/enum"); e.String() != `["a","b","c"]` {
		t.Fatalf("unexpected enum %s", e.String())
	}

	schema, _ = jsonschema.Generate(jsonschema.Options{InferConstraints: true, MaxEnumValues: 2}, docs...)
	if schema.Contains("/properties/k/enum") {
		t.Fatalf("enum must be dropped once distinct values exceed the cap")
	}
	schema, _ = jsonschema.Generate(jsonschema.Options{InferConstraints: true, MaxEnumValues: -1}, docs...)
	if schema.Contains("/properties/k/enum") {
		t.Fatalf("negative cap disables enums")
	}
}

func TestGenerateNoSamples(t *testing.T) {
	if _, err := jsonschema.Generate(jsonschema.Options{}); !errors.Is(err, jsonschema.ErrNoSamples) {
		t.Fatalf("expected ErrNoSamples, got %v", err)
	}
}

func TestGenerateLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := jsonschema.Generate(jsonschema.Options{Logger: logger}, mustParse(t, `{}`))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(buf.String(), "jsonschema: generated") {
		t.Fatalf("expected a debug record, got %q", buf.String())
	}
}
