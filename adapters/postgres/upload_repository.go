package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"ppi/domain/core"
	"ppi/domain/dataset"
	"ppi/internal/errors"
	"ppi/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// uploadRepository implements the UploadRepository interface
type uploadRepository struct {
	db *sqlx.DB
}

// NewUploadRepository creates a new upload catalog repository
func NewUploadRepository(db *sqlx.DB) ports.UploadRepository {
	return &uploadRepository{db: db}
}

// Open connects to postgres with the pq driver.
func Open(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	return db, nil
}

// Create inserts a catalog entry. Re-recording a stored name overwrites it.
func (r *uploadRepository) Create(ctx context.Context, u *dataset.Upload) error {
	query := `INSERT INTO uploads (
		id, original_name, stored_name, size_bytes, row_count, header_count, uploaded_at
	) VALUES (
		:id, :original_name, :stored_name, :size_bytes, :row_count, :header_count, :uploaded_at
	)
	ON CONFLICT (stored_name) DO UPDATE SET
		original_name = EXCLUDED.original_name,
		size_bytes = EXCLUDED.size_bytes,
		row_count = EXCLUDED.row_count,
		header_count = EXCLUDED.header_count,
		uploaded_at = EXCLUDED.uploaded_at`

	if _, err := r.db.NamedExecContext(ctx, query, u); err != nil {
		return errors.DatabaseError("failed to create upload", err)
	}
	return nil
}

// GetByStoredName retrieves one catalog entry
func (r *uploadRepository) GetByStoredName(ctx context.Context, storedName string) (*dataset.Upload, error) {
	query := `SELECT id, original_name, stored_name, size_bytes, row_count, header_count, uploaded_at
	FROM uploads WHERE stored_name = $1`

	var u dataset.Upload
	if err := r.db.GetContext(ctx, &u, query, storedName); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError("upload", storedName)
		}
		return nil, errors.DatabaseError("failed to get upload", err)
	}
	return &u, nil
}

// List returns catalog entries, newest first
func (r *uploadRepository) List(ctx context.Context, limit, offset int) ([]*dataset.Upload, error) {
	query := `SELECT id, original_name, stored_name, size_bytes, row_count, header_count, uploaded_at
	FROM uploads
	ORDER BY uploaded_at DESC
	LIMIT $1 OFFSET $2`

	uploads := []*dataset.Upload{}
	if err := r.db.SelectContext(ctx, &uploads, query, limit, offset); err != nil {
		return nil, errors.DatabaseError("failed to query uploads", err)
	}
	return uploads, nil
}

// DeleteByStoredName removes a catalog entry. Missing entries are not an error.
func (r *uploadRepository) DeleteByStoredName(ctx context.Context, storedName string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM uploads WHERE stored_name = $1`, storedName); err != nil {
		return errors.DatabaseError("failed to delete upload", err)
	}
	return nil
}
