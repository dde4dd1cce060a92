package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "avatars"), "uploads/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../evil.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/evil.png", url)

	b, err := os.ReadFile(filepath.Join(dir, "avatars", "evil.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	entries, err := os.ReadDir(filepath.Join(dir, "avatars"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be renamed away")
}

func TestLocalStore_CancelledContextLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, "a.jpg", "image/jpeg", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
