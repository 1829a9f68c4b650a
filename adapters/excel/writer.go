package excel

import (
	"context"
	"fmt"
	"io"

	"ppi/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the sheet name exported workbooks are written to.
const ExportSheet = "Sheet1"

// DataWriter encodes rows as a single-sheet workbook.
type DataWriter struct{}

// NewDataWriter creates a workbook writer
func NewDataWriter() *DataWriter {
	return &DataWriter{}
}

// Write emits headers as the first row, then one row per dataset row in
// header order. Null cells are left empty.
func (w *DataWriter) Write(ctx context.Context, out io.Writer, headers []string, rows []dataset.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(headers))
		for j, h := range headers {
			cells[j] = row[h].Interface()
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	return nil
}
