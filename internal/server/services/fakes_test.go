package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/dmitrijs2005/gophvault/internal/server/config"
	sm "github.com/dmitrijs2005/gophvault/internal/server/models"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/folders"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/users"
	"github.com/google/uuid"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "gophvault",
		BackupPrefix:                 "backups",
		PresignExpiry:                15 * time.Minute,
	}
}

type fakeUsersRepo struct {
	createOut *sm.User
	createErr error

	getOut *sm.User
	getErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *sm.User) (*sm.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*sm.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*sm.User, error) {
	return f.GetUserByLogin(ctx, id)
}

type fakeRefreshRepo struct {
	findOut *sm.RefreshToken
	findErr error

	delErr    error
	createErr error

	deletedUser string
	created     []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, userID)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*sm.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	return f.delErr
}

func (f *fakeRefreshRepo) DeleteByUser(ctx context.Context, userID string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deletedUser = userID
	return nil
}

// memFolders is an owner-scoped in-memory folders.Repository.
type memFolders struct {
	mu    sync.Mutex
	items map[string]models.Folder
	err   error
}

func newMemFolders() *memFolders { return &memFolders{items: map[string]models.Folder{}} }

func (m *memFolders) Create(ctx context.Context, f *models.Folder) (*models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	f.ID = uuid.NewString()
	f.CreatedAt = time.Now().UTC()
	m.items[f.ID] = *f
	return f, nil
}

func (m *memFolders) Get(ctx context.Context, userID, id string) (*models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.items[id]
	if !ok || f.OwnerID != userID {
		return nil, common.ErrorNotFound
	}
	return &f, nil
}

func (m *memFolders) UpdateCiphertext(ctx context.Context, userID, id string, ct []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.items[id]
	if !ok || f.OwnerID != userID {
		return common.ErrorNotFound
	}
	f.Ciphertext = ct
	m.items[id] = f
	return nil
}

func (m *memFolders) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.items[id]
	if !ok || f.OwnerID != userID {
		return common.ErrorNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memFolders) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Folder{}
	for _, f := range m.items {
		if f.OwnerID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	f *memFolders
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Folders(db dbx.DBTX) folders.Repository             { return m.f }
