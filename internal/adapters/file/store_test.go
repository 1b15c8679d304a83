package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/aretw0/labyrinth/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Contract(t *testing.T) {
	ports.RunRouteStoreContract(t, New(t.TempDir()))
}

func TestStore_AtomicLayout(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.RouteRecord{ID: "r1", Maze: "m"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "r1.json", entries[0].Name())

	// Stray temp files are not reported as routes.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-r2-123.json"), []byte("{}"), 0644))
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, ids)
}

func TestStore_MissingDirectory(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nope"))

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestStore_RejectsBadIDs(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, &domain.RouteRecord{}))
	_, err := store.Load(ctx, "../escape")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}

func TestNew_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".labyrinth", "routes"), New("").BasePath)
}
