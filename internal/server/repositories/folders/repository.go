// Package folders declares the server-side repository contract for sealed
// folders. Every method is scoped to the owning user; a folder owned by
// someone else is reported as not found.
package folders

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/models"
)

type Repository interface {
	// Create inserts f and fills in its ID and CreatedAt.
	Create(ctx context.Context, f *models.Folder) (*models.Folder, error)

	// Get returns the folder with the given id owned by userID.
	Get(ctx context.Context, userID, id string) (*models.Folder, error)

	// UpdateCiphertext replaces the sealed blob of the folder.
	UpdateCiphertext(ctx context.Context, userID, id string, ciphertext []byte) error

	// Delete removes the folder.
	Delete(ctx context.Context, userID, id string) error

	// ListByUser returns all folders of userID ordered by creation time.
	ListByUser(ctx context.Context, userID string) ([]models.Folder, error)
}
