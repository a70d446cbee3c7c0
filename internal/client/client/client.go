package client

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/models"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, verifier []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifier []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error

	Create(ctx context.Context, ownerID, name string, ciphertext []byte) (*models.Folder, error)
	Read(ctx context.Context, folderID string) (*models.Folder, error)
	Update(ctx context.Context, folderID string, ciphertext []byte) error
	Delete(ctx context.Context, folderID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)

	BackupUploadURL(ctx context.Context, fileName string) (string, error)
}
