package vault

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/lockout"
	"github.com/dmitrijs2005/gophvault/internal/models"
)

const maxFolderName = 200

// FolderSummary is a folder as listed, without its content.
type FolderSummary struct {
	models.Folder
	Lockout lockout.Status
}

// CreateFolder creates an empty sealed folder for the signed-in user. The
// returned secret is the only copy; it is not stored anywhere.
func (s *Service) CreateFolder(ctx context.Context, name string) (*models.Folder, cryptox.Secret, error) {
	var zero cryptox.Secret

	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, zero, err
	}

	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxFolderName {
		return nil, zero, fmt.Errorf("%w: folder name must be 1-%d characters", common.ErrInvalidArgument, maxFolderName)
	}

	key, err := cryptox.GenerateSecret()
	if err != nil {
		return nil, zero, err
	}

	blob, err := s.codec.Seal(models.NewContent(s.now()), key)
	if err != nil {
		key.Wipe()
		return nil, zero, err
	}

	folder, err := s.store.Create(ctx, user, name, blob)
	if err != nil {
		key.Wipe()
		return nil, zero, err
	}

	s.log.Info(ctx, "folder created", "folder", folder.ID)
	return folder, key, nil
}

// ListFolders returns the signed-in user's folders with their lockout state.
func (s *Service) ListFolders(ctx context.Context) ([]FolderSummary, error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	folders, err := s.store.ListByOwner(ctx, user)
	if err != nil {
		return nil, err
	}

	out := make([]FolderSummary, 0, len(folders))
	for _, f := range folders {
		st, err := s.guard.Status(ctx, f.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, FolderSummary{Folder: f, Lockout: st})
	}
	return out, nil
}

// Status reports the lockout state of a folder.
func (s *Service) Status(ctx context.Context, folderID string) (lockout.Status, error) {
	return s.guard.Status(ctx, folderID)
}

// Unlock decrypts a folder with the typed key under the lockout policy.
func (s *Service) Unlock(ctx context.Context, folderID, keyText string) (*models.Content, error) {
	if _, err := s.currentUser(ctx); err != nil {
		return nil, err
	}

	folder, err := s.store.Read(ctx, folderID)
	if err != nil {
		return nil, err
	}

	content, _, err := s.open(ctx, folder, keyText)
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "folder unlocked", "folder", folderID)
	return content, nil
}

func (s *Service) open(ctx context.Context, folder *models.Folder, keyText string) (*models.Content, cryptox.Secret, error) {
	var content *models.Content
	err := s.guard.Attempt(ctx, folder.ID, func() error {
		var err error
		content, err = s.codec.UnsealString(folder.Ciphertext, keyText)
		return err
	})
	if err != nil {
		s.log.Info(ctx, "unlock refused", "folder", folder.ID, "reason", common.KindOf(err).String())
		return nil, cryptox.Secret{}, err
	}

	key, err := cryptox.ParseSecret(keyText)
	if err != nil {
		return nil, cryptox.Secret{}, common.ErrInvalidKey
	}
	return content, key, nil
}

// update unlocks the folder, applies mutate and seals the result back with
// the same key.
func (s *Service) update(ctx context.Context, folderID, keyText string, mutate func(*models.Content) error) (*models.Content, error) {
	if _, err := s.currentUser(ctx); err != nil {
		return nil, err
	}

	folder, err := s.store.Read(ctx, folderID)
	if err != nil {
		return nil, err
	}

	content, key, err := s.open(ctx, folder, keyText)
	if err != nil {
		return nil, err
	}
	defer key.Wipe()

	if err := mutate(content); err != nil {
		return nil, err
	}

	blob, err := s.codec.Seal(content, key)
	if err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, folderID, blob); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "folder saved", "folder", folderID)
	return content, nil
}

// Save replaces the folder content. keyText must open the current blob;
// the new content is sealed with the same key.
func (s *Service) Save(ctx context.Context, folderID string, content *models.Content, keyText string) error {
	if content == nil {
		return fmt.Errorf("%w: nil content", common.ErrInvalidArgument)
	}
	_, err := s.update(ctx, folderID, keyText, func(c *models.Content) error {
		created := c.CreatedAt
		*c = *content
		if c.CreatedAt.IsZero() || c.CreatedAt.After(created) {
			c.CreatedAt = created
		}
		return nil
	})
	return err
}

// AddAttachment stores a file inside the folder.
func (s *Service) AddAttachment(ctx context.Context, folderID, keyText, name, mediaType string, payload []byte) (*models.Attachment, error) {
	if int64(len(payload)) > s.maxAttachment {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", common.ErrAttachmentTooLarge, len(payload), s.maxAttachment)
	}

	var added models.Attachment
	_, err := s.update(ctx, folderID, keyText, func(c *models.Content) error {
		a, err := c.AddAttachment(name, mediaType, payload, s.maxAttachment, s.now())
		if err != nil {
			return err
		}
		added = *a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// RemoveAttachment deletes a file from the folder.
func (s *Service) RemoveAttachment(ctx context.Context, folderID, keyText, attachmentID string) error {
	_, err := s.update(ctx, folderID, keyText, func(c *models.Content) error {
		return c.RemoveAttachment(attachmentID, s.now())
	})
	return err
}

// GetAttachment returns one file from the folder.
func (s *Service) GetAttachment(ctx context.Context, folderID, keyText, attachmentID string) (*models.Attachment, error) {
	content, err := s.Unlock(ctx, folderID, keyText)
	if err != nil {
		return nil, err
	}
	return content.FindAttachment(attachmentID)
}

// UpdateNotes replaces the folder's free-text notes.
func (s *Service) UpdateNotes(ctx context.Context, folderID, keyText, notes string) error {
	_, err := s.update(ctx, folderID, keyText, func(c *models.Content) error {
		c.SetNotes(notes, s.now())
		return nil
	})
	return err
}

// Delete removes a folder after the typed key proves possession.
func (s *Service) Delete(ctx context.Context, folderID, keyText string) error {
	if _, err := s.currentUser(ctx); err != nil {
		return err
	}

	folder, err := s.store.Read(ctx, folderID)
	if err != nil {
		return err
	}

	if err := s.confirmer.ConfirmAndDelete(ctx, folder, keyText); err != nil {
		return err
	}

	if err := s.guard.Reset(ctx, folderID); err != nil {
		s.log.Warn(ctx, "failed to clear lockout state", "folder", folderID, "error", err)
	}
	return nil
}
