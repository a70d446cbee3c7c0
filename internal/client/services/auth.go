// Package services contains the application services of the GophVault
// client: account sign-in (online and offline) and the folder store that
// caches server folders locally.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophvault/internal/client/client"
	"github.com/dmitrijs2005/gophvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/logging"
)

const saltSize = 32

// AuthService signs the user in against the server, or against the locally
// cached verifier when offline, and tracks who is signed in. It implements
// the authenticator the vault engine needs.
type AuthService struct {
	client client.Client
	db     *sql.DB
	log    logging.Logger

	mu     sync.RWMutex
	user   string
	online bool
}

func NewAuthService(c client.Client, db *sql.DB, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &AuthService{client: c, db: db, log: log}
}

func (a *AuthService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Register creates a new account on the server. It generates a random salt,
// derives a master key from the password and sends only salt and verifier.
func (a *AuthService) Register(ctx context.Context, username string, password []byte) error {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return fmt.Errorf("%w: username and password are required", common.ErrInvalidArgument)
	}

	salt, err := common.ReadRandom(saltSize)
	if err != nil {
		return fmt.Errorf("entropy source failure: %w", err)
	}
	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)

	return a.client.Register(ctx, username, salt, cryptox.MakeVerifier(key))
}

// SignIn authenticates username. With online set it logs in to the server
// and refreshes the offline credentials; if the server cannot be reached it
// falls back to the offline check. It reports whether the session is online.
func (a *AuthService) SignIn(ctx context.Context, username string, password []byte, online bool) (bool, error) {
	username = strings.TrimSpace(username)
	if online {
		err := a.OnlineLogin(ctx, username, password)
		if err == nil {
			a.setUser(username, true)
			return true, nil
		}
		if !errors.Is(err, client.ErrUnavailable) {
			return false, err
		}
		a.log.Warn(ctx, "server unavailable, trying offline sign-in", "user", username)
	}

	if err := a.OfflineLogin(ctx, username, password); err != nil {
		return false, err
	}
	a.setUser(username, false)
	return false, nil
}

// OfflineLogin checks password against the locally cached verifier.
// Missing local data yields client.ErrLocalDataNotAvailable; a mismatch
// yields client.ErrUnauthorized.
func (a *AuthService) OfflineLogin(ctx context.Context, username string, password []byte) error {
	saved, err := a.getMetadataRepo(a.db).GetMany(ctx, metadata.KeyUsername, metadata.KeySalt, metadata.KeyVerifier)
	if err != nil {
		return err
	}
	savedUsername, savedSalt, savedVerifier := saved[metadata.KeyUsername], saved[metadata.KeySalt], saved[metadata.KeyVerifier]
	if savedUsername == nil || savedSalt == nil || savedVerifier == nil {
		return client.ErrLocalDataNotAvailable
	}
	if string(savedUsername) != username {
		return client.ErrUnauthorized
	}

	masterKeyCandidate := cryptox.DeriveMasterKey(password, savedSalt)
	defer common.WipeByteArray(masterKeyCandidate)
	verifierCandidate := cryptox.MakeVerifier(masterKeyCandidate)

	if subtle.ConstantTimeCompare(savedVerifier, verifierCandidate) == 0 {
		return client.ErrUnauthorized
	}
	return nil
}

// OnlineLogin authenticates against the server and saves the offline
// credentials (username, salt, verifier).
func (a *AuthService) OnlineLogin(ctx context.Context, userName string, password []byte) error {
	salt, err := a.client.GetSalt(ctx, userName)
	if err != nil {
		return fmt.Errorf("get salt error: %w", err)
	}

	masterKeyCandidate := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(masterKeyCandidate)
	verifierCandidate := cryptox.MakeVerifier(masterKeyCandidate)

	if err := a.client.Login(ctx, userName, verifierCandidate); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.saveOfflineData(ctx, userName, salt, verifierCandidate); err != nil {
		return fmt.Errorf("offline data saving error: %w", err)
	}
	return nil
}

func (a *AuthService) saveOfflineData(ctx context.Context, userName string, salt []byte, verifier []byte) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return a.getMetadataRepo(tx).SetMany(ctx, map[string][]byte{
			metadata.KeyUsername: []byte(userName),
			metadata.KeySalt:     salt,
			metadata.KeyVerifier: verifier,
		})
	})
}

func (a *AuthService) setUser(user string, online bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user, a.online = user, online
}

// SignOut ends the session. An online session also revokes the server's
// refresh tokens; an unreachable server does not block signing out.
// Offline credentials are kept.
func (a *AuthService) SignOut(ctx context.Context) error {
	a.mu.Lock()
	online := a.online
	a.user, a.online = "", false
	a.mu.Unlock()

	if !online {
		return nil
	}
	if err := a.client.Logout(ctx); err != nil && !errors.Is(err, client.ErrUnavailable) {
		return err
	}
	return nil
}

func (a *AuthService) CurrentUser(ctx context.Context) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user, a.user != ""
}

// Online reports whether the current session is backed by the server.
func (a *AuthService) Online() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.online
}

// Reauthenticate re-checks the account password of the signed-in user
// against the cached verifier.
func (a *AuthService) Reauthenticate(ctx context.Context, password []byte) error {
	user, ok := a.CurrentUser(ctx)
	if !ok {
		return common.ErrNotSignedIn
	}
	if err := a.OfflineLogin(ctx, user, password); err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return common.ErrorUnauthorized
		}
		return err
	}
	return nil
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *AuthService) Close(ctx context.Context) error {
	return a.client.Close()
}

// ClearOfflineData wipes the cached credentials.
func (a *AuthService) ClearOfflineData(ctx context.Context) error {
	return a.getMetadataRepo(a.db).Clear(ctx)
}
