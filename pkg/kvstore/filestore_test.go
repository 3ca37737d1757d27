package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	payload := []byte(`[{"id":"u1"}]`)

	require.NoError(t, store.Save(ctx, KeyUsers, payload))

	loaded, err := store.Load(ctx, KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)
}

func TestFileStoreAbsentKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), KeySession)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStoreSaveIsIdempotent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	payload := []byte(`{"v":1}`)
	require.NoError(t, store.Save(ctx, KeyMaterials, payload))
	require.NoError(t, store.Save(ctx, KeyMaterials, payload))

	loaded, err := store.Load(ctx, KeyMaterials)
	require.NoError(t, err)
	assert.Equal(t, payload, loaded)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, KeySession, []byte("user-1")))
	require.NoError(t, store.Delete(ctx, KeySession))

	_, err = store.Load(ctx, KeySession)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting again must not fail.
	require.NoError(t, store.Delete(ctx, KeySession))
}

func TestFileStoreOverwrite(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, KeyAssignments, []byte(`["a"]`)))
	require.NoError(t, store.Save(ctx, KeyAssignments, []byte(`["b","a"]`)))

	loaded, err := store.Load(ctx, KeyAssignments)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["b","a"]`), loaded)
}
