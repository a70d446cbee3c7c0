package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/dmitrijs2005/gophvault/internal/server/repositories/repomanager"
)

const maxFolderName = 200

// maxCiphertext bounds a stored blob: the sealed content limit plus the
// version byte, nonce and tag.
const maxCiphertext = common.MaxSealedSize + 1 + 12 + 16

// FolderService stores sealed folders on behalf of authenticated users. It
// never sees a folder secret; it only checks ownership and sizes.
type FolderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFolderService(db *sql.DB, m repomanager.RepositoryManager) *FolderService {
	return &FolderService{db: db, repomanager: m}
}

func (s *FolderService) Create(ctx context.Context, userID, name string, ciphertext []byte) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxFolderName {
		return nil, common.ErrInvalidArgument
	}
	if err := checkCiphertext(ciphertext); err != nil {
		return nil, err
	}

	f, err := s.repomanager.Folders(s.db).Create(ctx, &models.Folder{OwnerID: userID, Name: name, Ciphertext: ciphertext})
	if err != nil {
		return nil, fmt.Errorf("error creating folder: %w", err)
	}
	return f, nil
}

func (s *FolderService) Get(ctx context.Context, userID, id string) (*models.Folder, error) {
	return s.repomanager.Folders(s.db).Get(ctx, userID, id)
}

func (s *FolderService) Update(ctx context.Context, userID, id string, ciphertext []byte) error {
	if err := checkCiphertext(ciphertext); err != nil {
		return err
	}
	return s.repomanager.Folders(s.db).UpdateCiphertext(ctx, userID, id, ciphertext)
}

func (s *FolderService) Delete(ctx context.Context, userID, id string) error {
	return s.repomanager.Folders(s.db).Delete(ctx, userID, id)
}

func (s *FolderService) List(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.repomanager.Folders(s.db).ListByUser(ctx, userID)
}

func checkCiphertext(ct []byte) error {
	if len(ct) == 0 || len(ct) > maxCiphertext {
		return common.ErrInvalidArgument
	}
	return nil
}
