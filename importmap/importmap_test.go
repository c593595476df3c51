//go:build !wasm

package importmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	m, err := Parse([]byte(`{
		"imports": {"z": "/z.mjs", "a": "/a.mjs"},
		"scopes": {"/scope/": {"a": "/scoped-a.mjs"}}
	}`))
	require.NoError(t, err)

	v, ok := m.Imports.Get("a")
	require.True(t, ok)
	assert.Equal(t, "/a.mjs", v)

	// Keys keep their order through a round trip.
	out, err := m.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"imports":{"z":"/z.mjs","a":"/a.mjs"},"scopes":{"/scope/":{"a":"/scoped-a.mjs"}}}`, string(out))
	assert.Contains(t, string(out), `"imports":{"z":"/z.mjs","a":"/a.mjs"}`)
}

func TestParse_Empty(t *testing.T) {
	m, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	out, err := m.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{name: "not json", json: `{`},
		{name: "not an object", json: `[]`},
		{name: "null", json: `null`},
		{name: "imports not an object", json: `{"imports": true}`},
		{name: "imports null", json: `{"imports": null}`},
		{name: "imports empty key", json: `{"imports": {"": "/a.mjs"}}`},
		{name: "imports value not a string", json: `{"imports": {"a": 1}}`},
		{name: "imports empty value", json: `{"imports": {"a": ""}}`},
		{name: "scopes not an object", json: `{"scopes": []}`},
		{name: "scopes empty key", json: `{"scopes": {"": {}}}`},
		{name: "scope null", json: `{"scopes": {"/s/": null}}`},
		{name: "scope empty key", json: `{"scopes": {"/s/": {"": "/a.mjs"}}}`},
		{name: "scope empty value", json: `{"scopes": {"/s/": {"a": ""}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "importmap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"imports": {"a": "/a.mjs"}}`), 0o644))

	m, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Imports.Len())

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte(`{"imports": {"a": ""}}`), 0o644))
	_, err = ReadFile(path)
	assert.ErrorIs(t, err, ErrInvalid)
}
