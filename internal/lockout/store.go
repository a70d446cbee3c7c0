package lockout

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophvault/internal/models"
)

// Store persists lockout records keyed by folder id. A missing record is
// reported as the zero LockoutRecord with a nil error.
type Store interface {
	Get(ctx context.Context, folderID string) (models.LockoutRecord, error)
	Set(ctx context.Context, folderID string, rec models.LockoutRecord) error
	Delete(ctx context.Context, folderID string) error
}

// MemoryStore keeps records in process memory. State is lost on restart, so
// it only protects against attempts made within one running process.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.LockoutRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.LockoutRecord)}
}

func (m *MemoryStore) Get(_ context.Context, folderID string) (models.LockoutRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.records[folderID], nil
}

func (m *MemoryStore) Set(_ context.Context, folderID string, rec models.LockoutRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec == (models.LockoutRecord{}) {
		delete(m.records, folderID)
		return nil
	}
	m.records[folderID] = rec
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, folderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, folderID)
	return nil
}
