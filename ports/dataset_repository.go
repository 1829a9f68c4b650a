package ports

import (
	"context"

	"ppi/domain/dataset"
)

// UploadRepository persists the catalog of stored spreadsheet files.
type UploadRepository interface {
	Create(ctx context.Context, u *dataset.Upload) error
	GetByStoredName(ctx context.Context, storedName string) (*dataset.Upload, error)
	List(ctx context.Context, limit, offset int) ([]*dataset.Upload, error)
	DeleteByStoredName(ctx context.Context, storedName string) error
}
