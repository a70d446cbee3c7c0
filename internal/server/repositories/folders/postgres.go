package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/dbx"
	"github.com/dmitrijs2005/gophvault/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.Folder) (*models.Folder, error) {
	query :=
		`INSERT INTO folders (user_id, name, ciphertext)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, f.OwnerID, f.Name, f.Ciphertext).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	f.CreatedAt = f.CreatedAt.UTC()
	return f, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Folder, error) {
	query :=
		`SELECT id, user_id, name, ciphertext, created_at FROM folders
		 WHERE id = $1 AND user_id = $2`

	f := &models.Folder{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&f.ID, &f.OwnerID, &f.Name, &f.Ciphertext, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	f.CreatedAt = f.CreatedAt.UTC()
	return f, nil
}

func (r *PostgresRepository) UpdateCiphertext(ctx context.Context, userID, id string, ciphertext []byte) error {
	query :=
		`UPDATE folders SET ciphertext = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3`

	res, err := r.db.ExecContext(ctx, query, ciphertext, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM folders WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return dbx.ExpectAffected(res)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	query :=
		`SELECT id, user_id, name, ciphertext, created_at FROM folders
		 WHERE user_id = $1
		 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Folder, 0)
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Ciphertext, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		f.CreatedAt = f.CreatedAt.UTC()
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
