package ports

import (
	"context"
	"io"

	"ppi/domain/dataset"
)

// FileStorage keeps uploaded spreadsheet bytes under storage-assigned names.
type FileStorage interface {
	// Store writes r under a fresh name derived from originalName.
	Store(ctx context.Context, originalName string, r io.Reader) (dataset.FileInfo, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]dataset.FileInfo, error)
}
