package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/backup"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/filex"
	"github.com/dmitrijs2005/gophvault/internal/models"
)

func (a *App) promptFolder() (string, string, error) {
	id, err := getSimpleText(a.reader, "Enter folder id", a.out)
	if err != nil {
		return "", "", err
	}
	key, err := getKey(a.out)
	if err != nil {
		return "", "", err
	}
	return id, key, nil
}

// CreateFolder creates a folder and shows its secret once.
func (a *App) CreateFolder(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter folder name", a.out)
	if err != nil {
		return err
	}

	folder, key, err := a.vault.CreateFolder(ctx, name)
	if err != nil {
		return err
	}
	defer key.Wipe()

	fmt.Fprintf(a.out, "Folder %q created, id %s\n", folder.Name, folder.ID)
	fmt.Fprintln(a.out, "Folder key (shown only once, store it safely):")
	fmt.Fprintln(a.out, key.Hex())
	return nil
}

func (a *App) List(ctx context.Context) error {
	list, err := a.vault.ListFolders(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No folders")
		return nil
	}
	for _, f := range list {
		fmt.Fprintf(a.out, "%s  %-30s  %s  %s\n", f.ID, f.Name, f.CreatedAt.Local().Format(time.DateTime), f.Lockout)
	}
	return nil
}

func (a *App) Status(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter folder id", a.out)
	if err != nil {
		return err
	}
	st, err := a.vault.Status(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, st)
	return nil
}

// Unlock shows the folder notes and attachment list.
func (a *App) Unlock(ctx context.Context) error {
	id, key, err := a.promptFolder()
	if err != nil {
		return err
	}
	content, err := a.vault.Unlock(ctx, id, key)
	if err != nil {
		return err
	}
	printContent(a, content)
	return nil
}

func printContent(a *App, c *models.Content) {
	fmt.Fprintf(a.out, "Updated: %s\n", c.UpdatedAt.Local().Format(time.DateTime))
	fmt.Fprintln(a.out, "Notes:")
	if c.Notes == "" {
		fmt.Fprintln(a.out, "  (empty)")
	} else {
		fmt.Fprintln(a.out, c.Notes)
	}
	fmt.Fprintf(a.out, "Files (%d):\n", len(c.Files))
	for _, f := range c.Files {
		fmt.Fprintf(a.out, "  %s  %s  %s  %d bytes\n", f.ID, f.Name, f.MediaType, f.ByteSize)
	}
}

func (a *App) EditNotes(ctx context.Context) error {
	id, key, err := a.promptFolder()
	if err != nil {
		return err
	}
	notes, err := getMultiline(a.reader, "Enter notes", a.out)
	if err != nil {
		return err
	}
	if err := a.vault.UpdateNotes(ctx, id, key, notes); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Notes saved")
	return nil
}

// AddFile reads a local file and stores it inside the folder.
func (a *App) AddFile(ctx context.Context) error {
	id, key, err := a.promptFolder()
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Enter file path", a.out)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", common.ErrInvalidArgument, path)
	}
	if info.Size() > a.config.MaxAttachmentSize {
		return fmt.Errorf("%w: %d bytes, limit %d", common.ErrAttachmentTooLarge, info.Size(), a.config.MaxAttachmentSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	att, err := a.vault.AddAttachment(ctx, id, key, filepath.Base(path), http.DetectContentType(data), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "File added, id %s\n", att.ID)
	return nil
}

func (a *App) RemoveFile(ctx context.Context) error {
	id, key, err := a.promptFolder()
	if err != nil {
		return err
	}
	attID, err := getSimpleText(a.reader, "Enter file id", a.out)
	if err != nil {
		return err
	}
	if err := a.vault.RemoveAttachment(ctx, id, key, attID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "File removed")
	return nil
}

// GetFile writes an attachment into the backup directory.
func (a *App) GetFile(ctx context.Context) error {
	id, key, err := a.promptFolder()
	if err != nil {
		return err
	}
	attID, err := getSimpleText(a.reader, "Enter file id", a.out)
	if err != nil {
		return err
	}
	att, err := a.vault.GetAttachment(ctx, id, key, attID)
	if err != nil {
		return err
	}

	path, err := filex.WriteFile(a.config.BackupDir, backup.SafeNameOr(att.Name, att.ID), att.Payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}

// DeleteFolder removes a folder after the key is confirmed.
func (a *App) DeleteFolder(ctx context.Context) error {
	id, key, err := a.promptFolder()
	if err != nil {
		return err
	}
	if err := a.vault.Delete(ctx, id, key); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Folder deleted")
	return nil
}
