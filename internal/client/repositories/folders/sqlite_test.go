package folders

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE folders (
  id         TEXT PRIMARY KEY,
  owner_id   TEXT NOT NULL,
  name       TEXT NOT NULL,
  ciphertext BLOB,
  created_at INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func newRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	n := 0
	r.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return r, db
}

func TestCreateAndRead(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	f, err := r.Create(ctx, "alice", "docs", []byte{1, 2, 3})
	require.NoError(t, err)
	require.NotEmpty(t, f.ID)

	got, err := r.Read(ctx, f.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("folder mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_Missing(t *testing.T) {
	r, _ := newRepo(t)
	_, err := r.Read(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	f, err := r.Create(ctx, "alice", "docs", nil)
	require.NoError(t, err)

	require.NoError(t, r.Update(ctx, f.ID, []byte{7}))
	got, err := r.Read(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{7}, got.Ciphertext)

	assert.ErrorIs(t, r.Update(ctx, "nope", []byte{1}), common.ErrorNotFound)

	require.NoError(t, r.Delete(ctx, f.ID))
	assert.ErrorIs(t, r.Delete(ctx, f.ID), common.ErrorNotFound)
}

func TestListByOwner_ScopedAndOrdered(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	a, err := r.Create(ctx, "alice", "a", []byte{1})
	require.NoError(t, err)
	_, err = r.Create(ctx, "bob", "b", []byte{2})
	require.NoError(t, err)
	c, err := r.Create(ctx, "alice", "c", []byte{3})
	require.NoError(t, err)

	list, err := r.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	require.NoError(t, r.DeleteByOwner(ctx, "alice"))
	list, err = r.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = r.ListByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPut_Upserts(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()
	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, r.Put(ctx, models.Folder{ID: "f1", OwnerID: "alice", Name: "x", Ciphertext: []byte{1}, CreatedAt: when}))
	require.NoError(t, r.Put(ctx, models.Folder{ID: "f1", OwnerID: "alice", Name: "y", Ciphertext: []byte{2}, CreatedAt: when}))

	got, err := r.Read(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "y", got.Name)
	assert.Equal(t, []byte{2}, got.Ciphertext)
	assert.Equal(t, when, got.CreatedAt)
}

func TestClosedDB_IsStorageUnavailable(t *testing.T) {
	r, db := newRepo(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Create(ctx, "alice", "x", nil)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = r.Read(ctx, "x")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = r.ListByOwner(ctx, "alice")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	assert.ErrorIs(t, r.Update(ctx, "x", nil), common.ErrStorageUnavailable)
	assert.ErrorIs(t, r.Delete(ctx, "x"), common.ErrStorageUnavailable)
	assert.ErrorIs(t, r.Put(ctx, models.Folder{ID: "x"}), common.ErrStorageUnavailable)
}
