package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/jsondoc"
)

func run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestFmt(t *testing.T) {
	out, _, err := run(t, `{"b":1,"a":[true]}`, "fmt")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": [\n    true\n  ]\n}\n", out)

	out, _, err = run(t, ` { "b" : 1 } `, "fmt", "--compact", "--driver", "go-json")
	require.NoError(t, err)
	assert.Equal(t, "{\"b\":1}\n", out)

	_, _, err = run(t, `{"a":1,}`, "fmt")
	require.Error(t, err)
	assert.ErrorIs(t, err, jsondoc.ErrSyntax)

	_, _, err = run(t, `{}`, "fmt", "--driver", "nope")
	assert.ErrorContains(t, err, "unknown driver")
}

func TestDuplicatesFlag(t *testing.T) {
	_, _, err := run(t, `{"a":1,"a":2}`, "fmt", "--duplicates", "error")
	require.Error(t, err)

	out, stderr, err := run(t, `{"a":1,"a":2}`, "fmt", "-c", "--duplicates", "warn")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":2}\n", out)
	assert.Contains(t, stderr, "duplicate_key")
}

func TestGet(t *testing.T) {
	doc := writeFile(t, "doc.json", `{"user":{"name":"Alice","tags":["a","b"]}}`)

	out, _, err := run(t, "", "get", "/user/name", doc)
	require.NoError(t, err)
	assert.Equal(t, "\"Alice\"\n", out)

	out, _, err = run(t, "", "get", "user.name", doc, "--raw")
	require.NoError(t, err)
	assert.Equal(t, "Alice\n", out)

	out, _, err = run(t, "", "get", "user.tags[1]", doc)
	require.NoError(t, err)
	assert.Equal(t, "\"b\"\n", out)

	_, _, err = run(t, "", "get", "user.missing", doc)
	assert.ErrorIs(t, err, jsondoc.ErrNotFound)
}

func TestSetAndRemove(t *testing.T) {
	out, _, err := run(t, `{}`, "set", "a.b.c", "5", "-i", "0")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":{\"b\":{\"c\":5}}}\n", out)

	out, _, err = run(t, `{"a":1}`, "set", "/name", "Bob", "--string", "-i", "0")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1,\"name\":\"Bob\"}\n", out)

	_, _, err = run(t, `{"a":1}`, "set", "a.b", "true")
	assert.ErrorIs(t, err, jsondoc.ErrPathConflict)

	_, _, err = run(t, `{}`, "set", "x.y", "1", "--update")
	assert.ErrorIs(t, err, jsondoc.ErrNotFound)

	_, _, err = run(t, `{}`, "set", "x", "not json")
	assert.ErrorContains(t, err, "--string")

	out, _, err = run(t, `{"a":[1,2,3]}`, "rm", "a[0]", "-i", "0")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":[2,3]}\n", out)
}

func TestMerge(t *testing.T) {
	base := writeFile(t, "base.json", `{"r":["user"],"keep":1}`)
	extra := writeFile(t, "extra.json", `{"r":["admin"]}`)

	out, _, err := run(t, "", "merge", base, extra, "-i", "0")
	require.NoError(t, err)
	assert.Equal(t, "{\"r\":[\"admin\"],\"keep\":1}\n", out)

	out, _, err = run(t, "", "merge", base, extra, "--concat-arrays", "-i", "0")
	require.NoError(t, err)
	assert.Equal(t, "{\"r\":[\"user\",\"admin\"],\"keep\":1}\n", out)
}

func TestYAML(t *testing.T) {
	out, _, err := run(t, `{"name":"svc","ports":[80,443]}`, "yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: svc\nports:\n  - 80\n  - 443\n", out)

	out, _, err = run(t, out, "yaml", "--to-json", "-i", "0")
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"svc\",\"ports\":[80,443]}\n", out)
}

func TestSchemaGenAndValidate(t *testing.T) {
	s1 := writeFile(t, "s1.json", `{"a":1,"b":2}`)
	s2 := writeFile(t, "s2.json", `{"a":3}`)

	out, _, err := run(t, "", "schema", "gen", s1, s2, "-i", "0")
	require.NoError(t, err)
	schema, err := jsondoc.Parse([]byte(out))
	require.NoError(t, err)
	req, ok := jsondoc.Get[jsondoc.Array](schema, "required")
	require.True(t, ok)
	require.Len(t, req, 1)

	schemaFile := writeFile(t, "schema.json", out)
	out, _, err = run(t, `{"a":10}`, "schema", "validate", schemaFile)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	out, _, err = run(t, `{"b":"x"}`, "schema", "validate", schemaFile)
	require.ErrorIs(t, err, errInvalid)
	assert.Contains(t, out, "invalid_type at /b")
	assert.Contains(t, out, "required at /a")

	out, _, err = run(t, `{"b":"x"}`, "schema", "validate", schemaFile, "--fail-fast", "--lang", "ja")
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "型が不正です")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "jsondoc version dev\n", out)
}

func TestYAMLDuplicateKeys(t *testing.T) {
	_, _, err := run(t, "a: 1\na: 2\n", "yaml", "--to-json", "--duplicates", "error")
	var de *jsondoc.DuplicateKeyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Line)
}

func TestDups(t *testing.T) {
	out, _, err := run(t, `{"a":1,"b":{"c":1,"c":2},"a":3}`, "dups")
	require.Error(t, err)
	iss, ok := jsondoc.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{"duplicate_key", "duplicate_key"}, iss.Codes())
	assert.Equal(t, "/b/c\n/a\n", out)

	out, _, err = run(t, `{"a":1}`, "dups")
	require.NoError(t, err)
	assert.Empty(t, out)
}
