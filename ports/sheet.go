package ports

import (
	"context"
	"io"

	"ppi/domain/dataset"
)

// SheetParser decodes the first sheet of a workbook: header row first,
// missing cells as Null.
type SheetParser interface {
	Parse(ctx context.Context, name string, r io.Reader) (*dataset.Dataset, error)
}

// SheetWriter encodes headers and rows as a single-sheet workbook.
type SheetWriter interface {
	Write(ctx context.Context, w io.Writer, headers []string, rows []dataset.Row) error
}
