// Package vault is the entry point the presentation layer uses. It ties the
// codec, the lockout guard, the delete confirmer and the backup bundler to a
// folder store and an authenticator.
//
// Keys are passed in as the text the user typed and are never logged,
// persisted or returned in errors.
package vault

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/confirm"
	"github.com/dmitrijs2005/gophvault/internal/lockout"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/dmitrijs2005/gophvault/internal/netx"
)

// FolderStore persists sealed folders. Implementations report transport or
// database outages wrapped in common.ErrStorageUnavailable and a missing
// folder as common.ErrorNotFound.
type FolderStore interface {
	Create(ctx context.Context, ownerID, name string, ciphertext []byte) (*models.Folder, error)
	Read(ctx context.Context, folderID string) (*models.Folder, error)
	Update(ctx context.Context, folderID string, ciphertext []byte) error
	Delete(ctx context.Context, folderID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)
}

// Authenticator identifies the current user and re-checks the account
// password before sensitive bulk operations.
type Authenticator interface {
	CurrentUser(ctx context.Context) (string, bool)
	Reauthenticate(ctx context.Context, password []byte) error
}

// BackupTarget hands out presigned upload URLs for backup artifacts.
type BackupTarget interface {
	BackupUploadURL(ctx context.Context, fileName string) (string, error)
}

type Service struct {
	store     FolderStore
	auth      Authenticator
	codec     codec.Codec
	guard     *lockout.Guard
	confirmer *confirm.Confirmer
	target    BackupTarget
	uploader  *netx.Uploader
	now       func() time.Time
	log       logging.Logger

	shareLockout  bool
	maxAttachment int64
}

type Option func(*Service)

func WithGuard(g *lockout.Guard) Option {
	return func(s *Service) { s.guard = g }
}

func WithCodec(c codec.Codec) Option {
	return func(s *Service) { s.codec = c }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithBackupTarget enables UploadBackup. uploader may be nil.
func WithBackupTarget(t BackupTarget, uploader *netx.Uploader) Option {
	return func(s *Service) {
		s.target = t
		s.uploader = uploader
	}
}

// WithSharedLockout makes failed delete confirmations count against the
// same budget as failed unlocks.
func WithSharedLockout(on bool) Option {
	return func(s *Service) { s.shareLockout = on }
}

// WithMaxAttachmentSize overrides common.MaxAttachmentSize.
func WithMaxAttachmentSize(n int64) Option {
	return func(s *Service) { s.maxAttachment = n }
}

func New(store FolderStore, auth Authenticator, opts ...Option) *Service {
	s := &Service{
		store:         store,
		auth:          auth,
		codec:         codec.New(),
		now:           time.Now,
		log:           logging.Nop(),
		maxAttachment: common.MaxAttachmentSize,
	}
	for _, o := range opts {
		o(s)
	}

	if s.guard == nil {
		s.guard = lockout.New(lockout.WithClock(s.now), lockout.WithLogger(s.log))
	}
	if s.uploader == nil {
		s.uploader = netx.NewUploader(nil)
	}

	copts := []confirm.Option{confirm.WithCodec(s.codec), confirm.WithLogger(s.log)}
	if s.shareLockout {
		copts = append(copts, confirm.WithGuard(s.guard))
	}
	s.confirmer = confirm.New(store, copts...)

	return s
}

func (s *Service) currentUser(ctx context.Context) (string, error) {
	user, ok := s.auth.CurrentUser(ctx)
	if !ok {
		return "", common.ErrNotSignedIn
	}
	return user, nil
}
