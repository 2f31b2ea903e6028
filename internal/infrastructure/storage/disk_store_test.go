package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := NewDiskStore(t.TempDir(), logger)
	require.NoError(t, err)
	return store
}

func TestDiskStoreSaveAndOpen(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	storedName, err := store.Save(ctx, "Fahrzeugausweis Vorne.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)
	assert.Contains(t, storedName, "Fahrzeugausweis_Vorne.pdf")
	assert.NotEqual(t, "Fahrzeugausweis_Vorne.pdf", storedName)

	rc, err := store.Open(ctx, storedName)
	require.NoError(t, err)
	defer rc.Close()

	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
}

func TestDiskStoreSaveGeneratesUniqueNames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "bild.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "bild.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestDiskStoreOpenRejectsPathTraversal(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Open(context.Background(), "../etc/passwd")
	assert.Error(t, err)
}

func TestDiskStoreDeleteMissingIsNoop(t *testing.T) {
	store := newTestStore(t)

	err := store.Delete(context.Background(), "does-not-exist.pdf")
	assert.NoError(t, err)
}
