package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/client/client"
	"github.com/dmitrijs2005/gophvault/internal/client/config"
	"github.com/dmitrijs2005/gophvault/internal/client/repositories/folders"
	"github.com/dmitrijs2005/gophvault/internal/client/services"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/lockout"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/dmitrijs2005/gophvault/internal/netx"
	"github.com/dmitrijs2005/gophvault/internal/vault"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

type authService interface {
	Register(ctx context.Context, username string, password []byte) error
	SignIn(ctx context.Context, username string, password []byte, online bool) (bool, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (string, bool)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type vaultService interface {
	CreateFolder(ctx context.Context, name string) (*models.Folder, cryptox.Secret, error)
	ListFolders(ctx context.Context) ([]vault.FolderSummary, error)
	Status(ctx context.Context, folderID string) (lockout.Status, error)
	Unlock(ctx context.Context, folderID, keyText string) (*models.Content, error)
	AddAttachment(ctx context.Context, folderID, keyText, name, mediaType string, payload []byte) (*models.Attachment, error)
	RemoveAttachment(ctx context.Context, folderID, keyText, attachmentID string) error
	GetAttachment(ctx context.Context, folderID, keyText, attachmentID string) (*models.Attachment, error)
	UpdateNotes(ctx context.Context, folderID, keyText, notes string) error
	Delete(ctx context.Context, folderID, keyText string) error
	ExportBackup(ctx context.Context, password []byte, kind, dir string) (string, error)
	UploadBackup(ctx context.Context, password []byte, kind string) (string, error)
}

type App struct {
	config *config.Config
	auth   authService
	vault  vaultService
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	mu   sync.RWMutex
	mode Mode

	closers []func() error
}

// NewApp opens the local database, picks the folder store and lockout store
// the configuration asks for and builds the vault engine on top.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogFormat, c.LogLevel)

	db, err := client.OpenDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	app := &App{config: c, log: logger, reader: bufio.NewReader(os.Stdin), out: os.Stdout}
	app.closers = append(app.closers, db.Close)

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		app.Close()
		return nil, err
	}
	as := services.NewAuthService(apiClient, db, logger)
	app.auth = as
	app.closers = append(app.closers, func() error { return as.Close(ctx) })

	lockStore, err := openLockoutStore(ctx, c, db)
	if err != nil {
		app.Close()
		return nil, err
	}
	if cl, ok := lockStore.(io.Closer); ok {
		app.closers = append(app.closers, cl.Close)
	}

	guard := lockout.New(lockout.WithStore(lockStore), lockout.WithLogger(logger))
	opts := []vault.Option{
		vault.WithGuard(guard),
		vault.WithLogger(logger),
		vault.WithSharedLockout(c.ShareLockout),
		vault.WithMaxAttachmentSize(c.MaxAttachmentSize),
	}

	var store vault.FolderStore
	if c.Offline {
		store = folders.NewSQLiteRepository(db)
		app.mode = ModeOffline
	} else {
		store = services.NewCachedStore(apiClient, db, logger)
		opts = append(opts, vault.WithBackupTarget(apiClient, netx.NewUploader(&http.Client{Timeout: c.UploadTimeout})))
	}
	app.vault = vault.New(store, as, opts...)

	return app, nil
}

func openLockoutStore(ctx context.Context, c *config.Config, db *sql.DB) (lockout.Store, error) {
	switch c.LockoutStore {
	case config.LockoutStoreMemory:
		return lockout.NewMemoryStore(), nil
	case config.LockoutStoreSQLite, "":
		return lockout.NewSQLiteStore(db), nil
	case config.LockoutStoreRedis:
		rs, err := lockout.NewRedisStore(ctx, lockout.RedisOptions{
			Address:  c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		})
		if err != nil {
			return nil, err
		}
		return rs, nil
	default:
		return nil, fmt.Errorf("unknown lockout store %q", c.LockoutStore)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed && mode != "" {
		a.log.Info(context.Background(), "mode switched", "mode", string(mode))
	}
}

// Run starts the online watcher (unless offline) and blocks in the REPL
// until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !a.config.Offline {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	fmt.Fprintln(a.out, "Welcome to GophVault CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn(context.Background(), "close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	_, ok := a.auth.CurrentUser(context.Background())
	return ok
}

func (a *App) getStatus() string {
	s := ""
	if user, ok := a.auth.CurrentUser(context.Background()); ok {
		s = user + " "
	}
	s += string(a.Mode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// StartOnlineStatusWatcher pings the server every interval and updates the
// mode until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.auth.Ping(pctx)
	cancel()

	if err != nil {
		if a.Mode() == ModeOnline {
			a.setMode(ModeOffline)
		}
		return
	}
	if a.Mode() != ModeOnline {
		a.setMode(ModeOnline)
	}
}
