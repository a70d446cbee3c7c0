package vault

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/backup"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/filex"
)

// Backup re-checks the account password and renders all of the user's
// sealed folders as kind (backup.KindSingle or backup.KindArchive). A
// storage failure aborts the whole backup.
func (s *Service) Backup(ctx context.Context, password []byte, kind string) (string, []byte, error) {
	if kind != backup.KindSingle && kind != backup.KindArchive {
		return "", nil, fmt.Errorf("%w: unknown backup kind %q", common.ErrInvalidArgument, kind)
	}

	user, err := s.currentUser(ctx)
	if err != nil {
		return "", nil, err
	}
	if err := s.auth.Reauthenticate(ctx, password); err != nil {
		return "", nil, err
	}

	folders, err := s.store.ListByOwner(ctx, user)
	if err != nil {
		s.log.Error(ctx, "backup aborted", "error", err)
		return "", nil, err
	}

	now := s.now()
	b := backup.Build(folders, user, now)

	var data []byte
	if kind == backup.KindArchive {
		data, err = backup.RenderArchive(b)
	} else {
		data, err = backup.RenderSingleFile(b)
	}
	if err != nil {
		return "", nil, err
	}

	s.log.Info(ctx, "backup built", "kind", kind, "folders", b.Metadata.Count, "bytes", len(data))
	return backup.FileName(kind, now), data, nil
}

// ExportBackup writes a backup into dir and returns the file path.
func (s *Service) ExportBackup(ctx context.Context, password []byte, kind, dir string) (string, error) {
	name, data, err := s.Backup(ctx, password, kind)
	if err != nil {
		return "", err
	}
	path, err := filex.WriteFile(dir, name, data)
	if err != nil {
		return "", err
	}
	s.log.Info(ctx, "backup exported", "path", path)
	return path, nil
}

// UploadBackup builds a backup and uploads it to the presigned URL handed
// out by the backup target. It returns the artifact name.
func (s *Service) UploadBackup(ctx context.Context, password []byte, kind string) (string, error) {
	if s.target == nil {
		return "", common.ErrUploadUnavailable
	}

	name, data, err := s.Backup(ctx, password, kind)
	if err != nil {
		return "", err
	}

	url, err := s.target.BackupUploadURL(ctx, name)
	if err != nil {
		return "", fmt.Errorf("get upload url: %w", err)
	}

	contentType := "application/json"
	if kind == backup.KindArchive {
		contentType = "application/gzip"
	}
	if err := s.uploader.Put(ctx, url, data, contentType); err != nil {
		return "", fmt.Errorf("upload backup: %w", err)
	}

	s.log.Info(ctx, "backup uploaded", "name", name, "bytes", len(data))
	return name, nil
}
