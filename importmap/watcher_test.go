//go:build !wasm

package importmap

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMap(t *testing.T, path, json string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(json), 0o644))
}

func TestWatcher_ReloadKeepsLastValidMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importmap.json")
	writeMap(t, path, `{"imports": {"a": "/a.mjs"}}`)

	w, err := NewWatcher(path, zerolog.Nop())
	require.NoError(t, err)

	var changes atomic.Int32
	w.OnChange(func(*Map) { changes.Add(1) })

	writeMap(t, path, `{"imports": {"a": ""}}`)
	assert.False(t, w.Reload())
	v, _ := w.Current().Imports.Get("a")
	assert.Equal(t, "/a.mjs", v)

	writeMap(t, path, `{"imports": {"a": "/b.mjs"}}`)
	assert.True(t, w.Reload())
	v, _ = w.Current().Imports.Get("a")
	assert.Equal(t, "/b.mjs", v)
	assert.Equal(t, int32(1), changes.Load())
}

func TestNewWatcher_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importmap.json")
	writeMap(t, path, `nope`)

	_, err := NewWatcher(path, zerolog.Nop())

	assert.ErrorIs(t, err, ErrInvalid)
}

func TestWatcher_RunFollowsFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importmap.json")
	writeMap(t, path, `{"imports": {"a": "/a.mjs"}}`)

	w, err := NewWatcher(path, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Keep rewriting until the watcher is up and has seen a write.
	require.Eventually(t, func() bool {
		writeMap(t, path, `{"imports": {"a": "/changed.mjs"}}`)
		v, _ := w.Current().Imports.Get("a")
		return v == "/changed.mjs"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
