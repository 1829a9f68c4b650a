package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"ppi/domain/core"
	"ppi/domain/dataset"
	"ppi/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader decodes Excel and CSV uploads into datasets. Workbooks are read
// from their first sheet; the first row holds the headers.
type DataReader struct {
	logger *internal.Logger
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader() *DataReader {
	return &DataReader{logger: internal.NewComponentLogger("DataReader")}
}

// Parse decodes r, choosing the format from name's extension.
// Any decoding failure is reported as core.ErrParseFailure.
func (r *DataReader) Parse(ctx context.Context, name string, rd io.Reader) (*dataset.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fileType := fileTypeOf(name)
	r.logger.Debug("reading %s file: %s", fileType, name)

	var (
		raw [][]string
		err error
	)
	switch fileType {
	case "csv":
		raw, err = r.readCSV(rd)
	default:
		raw, err = r.readExcel(rd)
	}
	if err != nil {
		return nil, core.NewParseError(name, err)
	}

	ds := buildDataset(raw)
	r.logger.Info("%s processed (%d columns, %d rows)", name, len(ds.Headers()), ds.Len())
	return ds, nil
}

func fileTypeOf(name string) string {
	if strings.ToLower(filepath.Ext(name)) == ".csv" {
		return "csv"
	}
	return "xlsx"
}

// readExcel returns the raw cell text of the workbook's first sheet.
func (r *DataReader) readExcel(rd io.Reader) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheets[0], err)
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

func (r *DataReader) readCSV(rd io.Reader) ([][]string, error) {
	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	startTime := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	r.logger.Debug("CSV read in %.2fms (%d rows)", float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}
