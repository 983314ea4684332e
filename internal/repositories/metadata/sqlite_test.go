package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := dbx.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSetGetDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	v, err := r.Get(ctx, "absent")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err = r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"k": []byte("new")}, m)

	require.NoError(t, r.Delete(ctx, "k"))
	require.NoError(t, r.Delete(ctx, "k"))
	v, err = r.Get(ctx, "k")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestLoadStoreJSON(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	var order []string
	ok, err := LoadJSON(ctx, r, KeyManualOrder, &order)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, StoreJSON(ctx, r, KeyManualOrder, []string{"b", "a"}))
	ok, err = LoadJSON(ctx, r, KeyManualOrder, &order)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, order)

	require.NoError(t, r.Set(ctx, KeySortOption, []byte("{broken")))
	var name string
	_, err = LoadJSON(ctx, r, KeySortOption, &name)
	require.ErrorContains(t, err, "failed to decode metadata[sort_option]")
}

func TestDBErrorsWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")
	require.ErrorContains(t, r.Set(ctx, "k", nil), "failed to set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list metadata")
}
