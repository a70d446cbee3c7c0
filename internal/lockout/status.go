package lockout

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Status is a point-in-time view of a folder's lockout state.
type Status struct {
	FailedAttempts int
	Threshold      int
	BlockedUntil   time.Time
	Remaining      time.Duration
}

// Blocked reports whether attempts are currently rejected.
func (s Status) Blocked() bool {
	return s.Remaining > 0
}

// String renders the status line shown next to a folder.
func (s Status) String() string {
	if s.Blocked() {
		return fmt.Sprintf("Blocked (%s)", s.Remaining.Round(time.Minute))
	}
	return fmt.Sprintf("Failed attempts: %d/%d", s.FailedAttempts, s.Threshold)
}

// Status reports the state of folderID at the guard's current time. An
// expired block reads as open with no failures.
func (g *Guard) Status(ctx context.Context, folderID string) (Status, error) {
	rec, err := g.store.Get(ctx, folderID)
	if err != nil {
		return Status{}, fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}

	st := Status{Threshold: g.threshold}
	now := g.now()
	switch {
	case rec.BlockedAt(now):
		st.FailedAttempts = rec.FailedAttempts
		st.BlockedUntil = rec.BlockedUntil
		st.Remaining = rec.BlockedUntil.Sub(now)
	case rec.BlockedUntil.IsZero():
		st.FailedAttempts = rec.FailedAttempts
	}
	return st, nil
}
