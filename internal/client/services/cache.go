package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/gophvault/internal/client/repositories/folders"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/dmitrijs2005/gophvault/internal/vault"
)

// CachedStore is a folder store that writes through to the server and keeps
// a local copy of every folder it sees. Reads fall back to the local copy
// when the server is unavailable; writes never do, so the server stays the
// only source of truth.
type CachedStore struct {
	remote vault.FolderStore
	db     *sql.DB
	local  folders.Repository
	log    logging.Logger
}

func NewCachedStore(remote vault.FolderStore, db *sql.DB, log logging.Logger) *CachedStore {
	if log == nil {
		log = logging.Nop()
	}
	return &CachedStore{remote: remote, db: db, local: folders.NewSQLiteRepository(db), log: log}
}

func (c *CachedStore) Create(ctx context.Context, ownerID, name string, ciphertext []byte) (*models.Folder, error) {
	f, err := c.remote.Create(ctx, ownerID, name, ciphertext)
	if err != nil {
		return nil, err
	}
	c.remember(ctx, *f)
	return f, nil
}

func (c *CachedStore) Read(ctx context.Context, folderID string) (*models.Folder, error) {
	f, err := c.remote.Read(ctx, folderID)
	switch {
	case err == nil:
		c.remember(ctx, *f)
		return f, nil
	case errors.Is(err, common.ErrStorageUnavailable):
		c.log.Warn(ctx, "server unavailable, reading cached folder", "folder", folderID)
		return c.local.Read(ctx, folderID)
	case errors.Is(err, common.ErrorNotFound):
		c.forget(ctx, folderID)
	}
	return nil, err
}

func (c *CachedStore) Update(ctx context.Context, folderID string, ciphertext []byte) error {
	if err := c.remote.Update(ctx, folderID, ciphertext); err != nil {
		return err
	}
	if err := c.local.Update(ctx, folderID, ciphertext); err != nil && !errors.Is(err, common.ErrorNotFound) {
		c.log.Warn(ctx, "failed to update cached folder", "folder", folderID, "error", err)
	}
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, folderID string) error {
	if err := c.remote.Delete(ctx, folderID); err != nil {
		return err
	}
	c.forget(ctx, folderID)
	return nil
}

// ListByOwner lists from the server and replaces the owner's cached rows
// with the result in one transaction.
func (c *CachedStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	list, err := c.remote.ListByOwner(ctx, ownerID)
	if errors.Is(err, common.ErrStorageUnavailable) {
		c.log.Warn(ctx, "server unavailable, listing cached folders", "owner", ownerID)
		return c.local.ListByOwner(ctx, ownerID)
	}
	if err != nil {
		return nil, err
	}

	err = dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := folders.NewSQLiteRepository(tx)
		if err := repo.DeleteByOwner(ctx, ownerID); err != nil {
			return err
		}
		for _, f := range list {
			f.OwnerID = ownerID
			if err := repo.Put(ctx, f); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.log.Warn(ctx, "failed to refresh folder cache", "owner", ownerID, "error", err)
	}
	return list, nil
}

func (c *CachedStore) remember(ctx context.Context, f models.Folder) {
	if err := c.local.Put(ctx, f); err != nil {
		c.log.Warn(ctx, "failed to cache folder", "folder", f.ID, "error", err)
	}
}

func (c *CachedStore) forget(ctx context.Context, folderID string) {
	if err := c.local.Delete(ctx, folderID); err != nil && !errors.Is(err, common.ErrorNotFound) {
		c.log.Warn(ctx, "failed to drop cached folder", "folder", folderID, "error", err)
	}
}
