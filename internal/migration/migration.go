package migration

import (
	"context"

	"ppi/internal"
	"ppi/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles the upload catalog schema
type MigrationRunner struct {
	version string
	logger  *internal.Logger
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
		logger:  internal.NewComponentLogger("Migration"),
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createUploadsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create uploads table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	r.logger.Info("schema %s applied", r.version)
	return nil
}

func (r *MigrationRunner) createUploadsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS uploads (
			id UUID PRIMARY KEY,
			original_name VARCHAR(255) NOT NULL,
			stored_name VARCHAR(300) UNIQUE NOT NULL,
			size_bytes BIGINT NOT NULL DEFAULT 0,
			row_count INTEGER NOT NULL DEFAULT 0,
			header_count INTEGER NOT NULL DEFAULT 0,
			uploaded_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_uploads_original_name ON uploads(original_name)",
		"CREATE INDEX IF NOT EXISTS idx_uploads_uploaded_at ON uploads(uploaded_at DESC)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			// index failures are not fatal
			r.logger.Warn("failed to create index: %v", err)
		}
	}

	return nil
}
