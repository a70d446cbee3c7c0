package folders

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/models"
)

type Repository interface {
	Create(ctx context.Context, ownerID, name string, ciphertext []byte) (*models.Folder, error)
	Put(ctx context.Context, f models.Folder) error
	Read(ctx context.Context, folderID string) (*models.Folder, error)
	Update(ctx context.Context, folderID string, ciphertext []byte) error
	Delete(ctx context.Context, folderID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)
	DeleteByOwner(ctx context.Context, ownerID string) error
}
