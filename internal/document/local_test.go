package document

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebridge/pkg/platform/sentinel"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	content := []byte("birth certificate scan")
	require.NoError(t, store.Put(ctx, "blob-1", bytes.NewReader(content), "application/pdf"))

	rc, err := store.Get(ctx, "blob-1")
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalStoreMissingKey(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "absent")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "a/b"} {
		assert.Error(t, store.Put(ctx, key, strings.NewReader("x"), ""), "key %q", key)
	}
}
