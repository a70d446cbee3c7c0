// Package confirm guards folder deletion behind proof that the caller holds
// the folder's key.
package confirm

import (
	"context"

	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/lockout"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/models"
)

// Deleter removes a folder from storage.
type Deleter interface {
	Delete(ctx context.Context, folderID string) error
}

type Confirmer struct {
	store Deleter
	codec codec.Codec
	guard *lockout.Guard
	log   logging.Logger
}

type Option func(*Confirmer)

// WithGuard counts failed confirmations against the same budget as unlocks.
// Without it confirmations have their own, unlimited, budget.
func WithGuard(g *lockout.Guard) Option {
	return func(c *Confirmer) { c.guard = g }
}

func WithCodec(cd codec.Codec) Option {
	return func(c *Confirmer) { c.codec = cd }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Confirmer) { c.log = l }
}

func New(store Deleter, opts ...Option) *Confirmer {
	c := &Confirmer{
		store: store,
		codec: codec.New(),
		log:   logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ConfirmAndDelete unseals folder with keyText to prove possession of the
// key, discards the content and deletes the folder. A wrong key refuses the
// deletion with common.ErrInvalidKey (or a lockout error when a guard is
// attached). A folder that was never sealed cannot be confirmed. Storage
// errors are returned unchanged.
func (c *Confirmer) ConfirmAndDelete(ctx context.Context, folder *models.Folder, keyText string) error {
	if !folder.Sealed() {
		return common.ErrInvalidKey
	}

	verify := func() error {
		content, err := c.codec.UnsealString(folder.Ciphertext, keyText)
		if err != nil {
			return err
		}
		wipeContent(content)
		return nil
	}

	var err error
	if c.guard != nil {
		err = c.guard.Attempt(ctx, folder.ID, verify)
	} else {
		err = verify()
	}
	if err != nil {
		c.log.Info(ctx, "delete refused", "folder", folder.ID, "reason", common.KindOf(err).String())
		return err
	}

	if err := c.store.Delete(ctx, folder.ID); err != nil {
		return err
	}
	c.log.Info(ctx, "folder deleted", "folder", folder.ID)

	if c.guard != nil {
		if err := c.guard.Reset(ctx, folder.ID); err != nil {
			c.log.Warn(ctx, "failed to clear lockout state", "folder", folder.ID, "error", err)
		}
	}
	return nil
}

func wipeContent(c *models.Content) {
	for i := range c.Files {
		common.WipeByteArray(c.Files[i].Payload)
	}
	c.Notes = ""
}
