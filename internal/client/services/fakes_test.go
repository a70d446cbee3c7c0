package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/client/client"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.OpenDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	require.NoError(t, err)
	return v
}

// fakeClient implements client.Client. The folder methods delegate to an
// in-memory remote so the same fake can back a CachedStore.
type fakeClient struct {
	*memRemote

	CloseErr    error
	RegisterErr error
	GetSaltRet  []byte
	GetSaltErr  error
	LoginErr    error
	LogoutErr   error
	PingErr     error
	UploadURL   string

	LastRegisterUser string
	LastRegisterSalt []byte
	LastRegisterKey  []byte
	LastLoginUser    string
	LastLoginKey     []byte
	Logouts          int
}

func newFakeClient() *fakeClient { return &fakeClient{memRemote: newMemRemote()} }

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Register(ctx context.Context, username string, salt []byte, key []byte) error {
	f.LastRegisterUser = username
	f.LastRegisterSalt = append([]byte(nil), salt...)
	f.LastRegisterKey = append([]byte(nil), key...)
	return f.RegisterErr
}

func (f *fakeClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return append([]byte(nil), f.GetSaltRet...), f.GetSaltErr
}

func (f *fakeClient) Login(ctx context.Context, username string, key []byte) error {
	f.LastLoginUser = username
	f.LastLoginKey = append([]byte(nil), key...)
	return f.LoginErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.Logouts++
	return f.LogoutErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) BackupUploadURL(ctx context.Context, fileName string) (string, error) {
	return f.UploadURL, nil
}

var _ client.Client = (*fakeClient)(nil)

type memRemote struct {
	items map[string]models.Folder
	err   error
	seq   int
}

func newMemRemote() *memRemote { return &memRemote{items: map[string]models.Folder{}} }

func (m *memRemote) Create(_ context.Context, ownerID, name string, ct []byte) (*models.Folder, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.seq++
	f := models.Folder{
		ID:         "f" + string(rune('0'+m.seq)),
		OwnerID:    ownerID,
		Name:       name,
		Ciphertext: ct,
		CreatedAt:  time.Date(2026, 1, 1, 0, m.seq, 0, 0, time.UTC),
	}
	m.items[f.ID] = f
	return &f, nil
}

func (m *memRemote) Read(_ context.Context, id string) (*models.Folder, error) {
	if m.err != nil {
		return nil, m.err
	}
	f, ok := m.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (m *memRemote) Update(_ context.Context, id string, ct []byte) error {
	if m.err != nil {
		return m.err
	}
	f, ok := m.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	f.Ciphertext = ct
	m.items[id] = f
	return nil
}

func (m *memRemote) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memRemote) ListByOwner(_ context.Context, owner string) ([]models.Folder, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Folder
	for _, f := range m.items {
		if f.OwnerID == owner {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
