package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/backup"
	"github.com/dmitrijs2005/gophvault/internal/common"
)

func (a *App) promptBackup() ([]byte, string, error) {
	kind, err := getSimpleText(a.reader, "Backup kind (single|archive)", a.out)
	if err != nil {
		return nil, "", err
	}
	if kind == "" {
		kind = backup.KindSingle
	}
	password, err := getPassword(a.out)
	if err != nil {
		return nil, "", err
	}
	return password, kind, nil
}

// Backup exports all folders, sealed, into the backup directory.
func (a *App) Backup(ctx context.Context) error {
	password, kind, err := a.promptBackup()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	path, err := a.vault.ExportBackup(ctx, password, kind, a.config.BackupDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backup written to %s\n", path)
	return nil
}

// UploadBackup sends a backup to the server's object storage.
func (a *App) UploadBackup(ctx context.Context) error {
	password, kind, err := a.promptBackup()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := a.vault.UploadBackup(ctx, password, kind)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Backup %s uploaded\n", name)
	return nil
}
