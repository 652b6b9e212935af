package schema

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefResolver_Register(t *testing.T) {
	t.Parallel()

	t.Run("internal refs never touch disk", func(t *testing.T) {
		t.Parallel()
		reader := newCountingReader()
		l := NewLoader(t.TempDir(), reader)
		c := &mockCompiler{}

		doc := map[string]interface{}{
			"$ref": "#/$defs/x",
			"$defs": map[string]interface{}{
				"x": map[string]interface{}{"$ref": "#"},
			},
		}

		require.NoError(t, NewRefResolver(l, c).Register(doc, ""))
		assert.Zero(t, reader.TotalReads())
		assert.Empty(t, c.addedIDs())
	})

	t.Run("registers transitive references", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTestFile(t, dir, "b.json",
			`{"$id": "https://example.com/b.json", "$ref": "c.json"}`)
		writeTestFile(t, dir, "c.json",
			`{"$id": "https://example.com/c.json", "type": "object"}`)

		l := NewLoader(dir, nil)
		c := &mockCompiler{}

		doc := map[string]interface{}{"$ref": "b.json"}
		require.NoError(t, NewRefResolver(l, c).Register(doc, dir))

		assert.Equal(t, []string{
			"https://example.com/b.json",
			"https://example.com/c.json",
		}, c.addedIDs())
	})

	t.Run("reference cycles terminate", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTestFile(t, dir, "a.json",
			`{"$id": "https://example.com/a.json", "$ref": "b.json"}`)
		writeTestFile(t, dir, "b.json",
			`{"$id": "https://example.com/b.json", "$ref": "a.json"}`)

		reader := newCountingReader()
		l := NewLoader(dir, reader)
		c := &mockCompiler{}

		doc := map[string]interface{}{"$ref": "a.json"}
		require.NoError(t, NewRefResolver(l, c).Register(doc, dir))

		assert.Equal(t, 1, reader.Reads(filepath.Join(dir, "a.json")))
		assert.Equal(t, 1, reader.Reads(filepath.Join(dir, "b.json")))
	})

	t.Run("declared $id wins over the ref string", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTestFile(t, dir, "named.json",
			`{"$id": "https://example.com/named.json", "type": "object"}`)
		writeTestFile(t, dir, "anon.json", `{"type": "object"}`)

		l := NewLoader(dir, nil)
		c := &mockCompiler{}

		doc := map[string]interface{}{
			"properties": map[string]interface{}{
				"a": map[string]interface{}{"$ref": "named.json"},
				"b": map[string]interface{}{"$ref": "anon.json"},
			},
		}
		require.NoError(t, NewRefResolver(l, c).Register(doc, dir))

		ids := c.addedIDs()
		assert.Contains(t, ids, "https://example.com/named.json")
		assert.Contains(t, ids, "anon.json")
	})

	t.Run("combined ref loads the named file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTestFile(t, dir, "defs.json",
			`{"$id": "https://example.com/defs.json", "$defs": {"x": {"type": "string"}}}`)

		reader := newCountingReader()
		l := NewLoader(dir, reader)
		c := &mockCompiler{}

		doc := map[string]interface{}{"$ref": "defs.json#/$defs/x"}
		require.NoError(t, NewRefResolver(l, c).Register(doc, dir))

		assert.Equal(t, 1, reader.Reads(filepath.Join(dir, "defs.json")))
		assert.Equal(t, []string{"https://example.com/defs.json"}, c.addedIDs())
	})

	t.Run("relative refs resolve against the containing file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTestFile(t, filepath.Join(dir, "sub"), "b.json",
			`{"$id": "https://example.com/b.json", "$ref": "c.json"}`)
		writeTestFile(t, filepath.Join(dir, "sub"), "c.json",
			`{"$id": "https://example.com/c.json", "type": "object"}`)

		reader := newCountingReader()
		l := NewLoader(dir, reader)
		c := &mockCompiler{}

		// c.json exists only next to b.json, not in the root.
		doc := map[string]interface{}{"$ref": "sub/b.json"}
		require.NoError(t, NewRefResolver(l, c).Register(doc, dir))

		assert.Equal(t, 1, reader.Reads(filepath.Join(dir, "sub", "c.json")))
	})

	t.Run("duplicate ids register once", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTestFile(t, dir, "shared.json",
			`{"$id": "https://example.com/shared.json", "type": "object"}`)
		writeTestFile(t, dir, "alias.json",
			`{"$id": "https://example.com/shared.json", "type": "object"}`)

		l := NewLoader(dir, nil)
		c := &mockCompiler{}

		doc := map[string]interface{}{
			"properties": map[string]interface{}{
				"a": map[string]interface{}{"$ref": "shared.json"},
				"b": map[string]interface{}{"$ref": "alias.json"},
			},
		}
		require.NoError(t, NewRefResolver(l, c).Register(doc, dir))
		assert.Equal(t, []string{"https://example.com/shared.json"}, c.addedIDs())
	})

	t.Run("missing referenced schema", func(t *testing.T) {
		t.Parallel()
		l := NewLoader(t.TempDir(), nil)
		c := &mockCompiler{}

		doc := map[string]interface{}{"$ref": "nowhere.json"}
		err := NewRefResolver(l, c).Register(doc, "")
		var target *SchemaNotFoundError
		assert.ErrorAs(t, err, &target)
	})

	t.Run("registration failure", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeTestFile(t, dir, "b.json", `{"type": "object"}`)

		l := NewLoader(dir, nil)
		c := &mockCompiler{addErr: errors.New("engine rejected resource")}

		doc := map[string]interface{}{"$ref": "b.json"}
		err := NewRefResolver(l, c).Register(doc, dir)
		var target *SchemaCompileError
		require.ErrorAs(t, err, &target)
		assert.ErrorIs(t, err, c.addErr)
	})

	t.Run("non-string $ref values are descended into", func(t *testing.T) {
		t.Parallel()
		reader := newCountingReader()
		l := NewLoader(t.TempDir(), reader)
		c := &mockCompiler{}

		doc := map[string]interface{}{
			"properties": map[string]interface{}{
				"$ref": map[string]interface{}{"type": "string"},
			},
		}
		require.NoError(t, NewRefResolver(l, c).Register(doc, ""))
		assert.Zero(t, reader.TotalReads())
	})
}

func TestRegistrationID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      Document
		fallback string
		want     string
	}{
		{
			name:     "declared id",
			doc:      map[string]interface{}{"$id": "https://example.com/x.json"},
			fallback: "x.json",
			want:     "https://example.com/x.json",
		},
		{
			name:     "empty id falls back",
			doc:      map[string]interface{}{"$id": ""},
			fallback: "x.json",
			want:     "x.json",
		},
		{
			name:     "non-string id falls back",
			doc:      map[string]interface{}{"$id": 42.0},
			fallback: "x.json",
			want:     "x.json",
		},
		{
			name:     "non-object document falls back",
			doc:      []interface{}{"not", "an", "object"},
			fallback: "x.json",
			want:     "x.json",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, RegistrationID(tc.doc, tc.fallback))
		})
	}
}
