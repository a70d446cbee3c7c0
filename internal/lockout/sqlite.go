package lockout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/models"
)

// SQLiteStore keeps records in the client's local database, table lockouts.
type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, folderID string) (models.LockoutRecord, error) {
	var (
		rec   models.LockoutRecord
		until sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT failed_attempts, blocked_until FROM lockouts WHERE folder_id = ?`, folderID,
	).Scan(&rec.FailedAttempts, &until)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LockoutRecord{}, nil
	}
	if err != nil {
		return models.LockoutRecord{}, fmt.Errorf("failed to get lockout[%s]: %w", folderID, err)
	}
	if until.Valid {
		rec.BlockedUntil = time.Unix(0, until.Int64).UTC()
	}
	return rec, nil
}

func (s *SQLiteStore) Set(ctx context.Context, folderID string, rec models.LockoutRecord) error {
	var until sql.NullInt64
	if !rec.BlockedUntil.IsZero() {
		until = sql.NullInt64{Int64: rec.BlockedUntil.UnixNano(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lockouts (folder_id, failed_attempts, blocked_until) VALUES (?, ?, ?)
		ON CONFLICT(folder_id) DO UPDATE SET
			failed_attempts = excluded.failed_attempts,
			blocked_until = excluded.blocked_until
	`, folderID, rec.FailedAttempts, until)
	if err != nil {
		return fmt.Errorf("failed to set lockout[%s]: %w", folderID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, folderID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM lockouts WHERE folder_id = ?`, folderID)
	if err != nil {
		return fmt.Errorf("failed to delete lockout[%s]: %w", folderID, err)
	}
	return nil
}
