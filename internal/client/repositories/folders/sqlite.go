package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", common.ErrStorageUnavailable, op, err)
}

// Create inserts a folder with a fresh UUID.
func (r *SQLiteRepository) Create(ctx context.Context, ownerID, name string, ciphertext []byte) (*models.Folder, error) {
	f := models.Folder{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       name,
		Ciphertext: ciphertext,
		CreatedAt:  r.now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO folders (id, owner_id, name, ciphertext, created_at) VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.OwnerID, f.Name, f.Ciphertext, f.CreatedAt.UnixNano())
	if err != nil {
		return nil, unavailable("insert folder", err)
	}
	return &f, nil
}

// Put upserts a folder received from the server.
func (r *SQLiteRepository) Put(ctx context.Context, f models.Folder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO folders (id, owner_id, name, ciphertext, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			name = excluded.name,
			ciphertext = excluded.ciphertext,
			created_at = excluded.created_at
	`, f.ID, f.OwnerID, f.Name, f.Ciphertext, f.CreatedAt.UTC().UnixNano())
	if err != nil {
		return unavailable("upsert folder", err)
	}
	return nil
}

func (r *SQLiteRepository) Read(ctx context.Context, folderID string) (*models.Folder, error) {
	var (
		f       models.Folder
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, ciphertext, created_at FROM folders WHERE id = ?`, folderID,
	).Scan(&f.ID, &f.OwnerID, &f.Name, &f.Ciphertext, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, unavailable("read folder", err)
	}
	f.CreatedAt = time.Unix(0, created).UTC()
	return &f, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, folderID string, ciphertext []byte) error {
	res, err := r.db.ExecContext(ctx, `UPDATE folders SET ciphertext = ? WHERE id = ?`, ciphertext, folderID)
	if err != nil {
		return unavailable("update folder", err)
	}
	return expectOne(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, folderID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, folderID)
	if err != nil {
		return unavailable("delete folder", err)
	}
	return expectOne(res)
}

func (r *SQLiteRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE owner_id = ?`, ownerID); err != nil {
		return unavailable("delete folders", err)
	}
	return nil
}

// ListByOwner returns the owner's folders, oldest first.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, owner_id, name, ciphertext, created_at FROM folders WHERE owner_id = ? ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, unavailable("list folders", err)
	}
	defer rows.Close()

	var result []models.Folder
	for rows.Next() {
		var (
			f       models.Folder
			created int64
		)
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Ciphertext, &created); err != nil {
			return nil, unavailable("scan folder", err)
		}
		f.CreatedAt = time.Unix(0, created).UTC()
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate folders", err)
	}
	return result, nil
}

func expectOne(res sql.Result) error {
	err := dbx.ExpectAffected(res)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return unavailable("count affected rows", err)
	}
	return err
}
