// Package lockout limits how many wrong keys may be tried against a folder.
//
// Each folder is either open with n consecutive failures behind it or
// blocked until some instant. An attempt against a blocked folder is
// rejected without running it. A failure that reaches the threshold blocks
// the folder; a success clears the count. Expiry is evaluated lazily on the
// next attempt, there are no timers.
package lockout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/models"
)

// Guard enforces the failed-attempt policy. It is safe for concurrent use;
// attempts on the same folder are serialized, different folders proceed
// independently.
type Guard struct {
	store     Store
	now       func() time.Time
	threshold int
	duration  time.Duration
	log       logging.Logger

	mu    sync.Mutex
	locks map[string]*folderLock
}

type folderLock struct {
	mu   sync.Mutex
	refs int
}

type Option func(*Guard)

// WithStore replaces the default in-memory store.
func WithStore(s Store) Option {
	return func(g *Guard) { g.store = s }
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(g *Guard) { g.now = now }
}

// WithThreshold sets how many consecutive failures trigger a block.
func WithThreshold(n int) Option {
	return func(g *Guard) {
		if n > 0 {
			g.threshold = n
		}
	}
}

// WithBlockDuration sets how long a block lasts.
func WithBlockDuration(d time.Duration) Option {
	return func(g *Guard) {
		if d > 0 {
			g.duration = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(g *Guard) { g.log = l }
}

// New returns a guard with 3 attempts, a 24h block and an in-memory store
// unless overridden.
func New(opts ...Option) *Guard {
	g := &Guard{
		store:     NewMemoryStore(),
		now:       time.Now,
		threshold: common.MaxFailedAttempts,
		duration:  common.LockoutDuration,
		log:       logging.Nop(),
		locks:     make(map[string]*folderLock),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Threshold returns the number of failures that trigger a block.
func (g *Guard) Threshold() int { return g.threshold }

func (g *Guard) lock(folderID string) (unlock func()) {
	g.mu.Lock()
	l, ok := g.locks[folderID]
	if !ok {
		l = &folderLock{}
		g.locks[folderID] = l
	}
	l.refs++
	g.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		g.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.locks, folderID)
		}
		g.mu.Unlock()
	}
}

// Attempt runs fn under the policy for folderID.
//
// While the folder is blocked fn is not called and a *common.LockedError is
// returned. When fn fails with common.ErrInvalidKey the failure is counted
// and either a *common.InvalidKeyError or, on the blocking failure, a
// *common.LockedOutError is returned. Any other error from fn leaves the
// state untouched and is returned as is. Store failures are reported as
// common.ErrStorageUnavailable.
func (g *Guard) Attempt(ctx context.Context, folderID string, fn func() error) error {
	unlock := g.lock(folderID)
	defer unlock()

	rec, err := g.store.Get(ctx, folderID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	now := g.now()
	if rec.BlockedAt(now) {
		return &common.LockedError{Remaining: rec.BlockedUntil.Sub(now)}
	}
	if !rec.BlockedUntil.IsZero() {
		rec = models.LockoutRecord{}
	}

	err = fn()
	switch {
	case err == nil:
		if rec.FailedAttempts == 0 {
			return nil
		}
		if err := g.store.Delete(ctx, folderID); err != nil {
			g.log.Warn(ctx, "failed to reset lockout counter", "folder", folderID, "error", err)
		}
		return nil

	case errors.Is(err, common.ErrInvalidKey):
		return g.recordFailure(ctx, folderID, rec, now)

	default:
		return err
	}
}

func (g *Guard) recordFailure(ctx context.Context, folderID string, rec models.LockoutRecord, now time.Time) error {
	n := rec.FailedAttempts + 1

	if n >= g.threshold {
		until := now.Add(g.duration).UTC()
		if err := g.store.Set(ctx, folderID, models.LockoutRecord{FailedAttempts: n, BlockedUntil: until}); err != nil {
			return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
		}
		g.log.Warn(ctx, "folder blocked after failed attempts", "folder", folderID, "attempts", n, "until", until)
		return &common.LockedOutError{Until: until}
	}

	if err := g.store.Set(ctx, folderID, models.LockoutRecord{FailedAttempts: n}); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	g.log.Info(ctx, "invalid key attempt", "folder", folderID, "attempts", n)
	return &common.InvalidKeyError{AttemptsRemaining: g.threshold - n}
}

// Reset forgets all state for folderID, e.g. after the folder is deleted.
func (g *Guard) Reset(ctx context.Context, folderID string) error {
	unlock := g.lock(folderID)
	defer unlock()

	if err := g.store.Delete(ctx, folderID); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	return nil
}
