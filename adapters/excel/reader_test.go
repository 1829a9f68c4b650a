package excel

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"ppi/domain/core"
	"ppi/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		idx, err := f.GetSheetIndex(sheet)
		require.NoError(t, err)
		f.SetActiveSheet(idx)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf := new(bytes.Buffer)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf
}

func TestParse_Excel(t *testing.T) {
	buf := workbook(t, "Echo", [][]interface{}{
		{"PatientName", "LA_area", "MR_area"},
		{"A", 10, 2.5},
		{"B", 20, nil},
	})

	ds, err := NewDataReader().Parse(context.Background(), "echo.xlsx", buf)

	require.NoError(t, err)
	assert.Equal(t, []string{"PatientName", "LA_area", "MR_area"}, ds.Headers())
	require.Equal(t, 2, ds.Len())
	row, _ := ds.Row(0)
	assert.True(t, row["PatientName"].Equal(dataset.Text("A")))
	assert.True(t, row["LA_area"].Equal(dataset.Number(10)))
	assert.True(t, row["MR_area"].Equal(dataset.Number(2.5)))
	row, _ = ds.Row(1)
	assert.True(t, row["MR_area"].IsNull())
}

func TestParse_CSV(t *testing.T) {
	input := "\ufeffname, systole ,notes\nAnn,120,\n,,\nBob, 80 ,007\n"

	ds, err := NewDataReader().Parse(context.Background(), "bp.CSV", strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"name", "systole", "notes"}, ds.Headers())
	require.Equal(t, 2, ds.Len())
	row, _ := ds.Row(0)
	assert.True(t, row["systole"].Equal(dataset.Number(120)))
	assert.True(t, row["notes"].IsNull())
	row, _ = ds.Row(1)
	assert.True(t, row["systole"].Equal(dataset.Number(80)))
	assert.True(t, row["notes"].Equal(dataset.Text("007")))
}

func TestParse_RaggedAndDuplicateHeaders(t *testing.T) {
	input := "a,a,\n1,2,3,4\n"

	ds, err := NewDataReader().Parse(context.Background(), "x.csv", strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a_1", "__EMPTY", "__EMPTY_1"}, ds.Headers())
	row, _ := ds.Row(0)
	assert.True(t, row["__EMPTY_1"].Equal(dataset.Number(4)))
}

func TestParse_GeneratedHeaderSkipsExistingName(t *testing.T) {
	input := "a,a_1,a\n1,2,3\n"

	ds, err := NewDataReader().Parse(context.Background(), "x.csv", strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a_1", "a_2"}, ds.Headers())
	row, _ := ds.Row(0)
	assert.True(t, row["a_1"].Equal(dataset.Number(2)))
	assert.True(t, row["a_2"].Equal(dataset.Number(3)))
}

func TestParse_InvalidWorkbook(t *testing.T) {
	_, err := NewDataReader().Parse(context.Background(), "broken.xlsx", strings.NewReader("not a zip"))

	assert.ErrorIs(t, err, core.ErrParseFailure)
}

func TestParse_Empty(t *testing.T) {
	ds, err := NewDataReader().Parse(context.Background(), "empty.csv", strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, ds.Headers())
	assert.Equal(t, 0, ds.Len())
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		in   string
		want dataset.Value
	}{
		{"", dataset.Null()},
		{"  ", dataset.Null()},
		{"42", dataset.Number(42)},
		{"-3.5", dataset.Number(-3.5)},
		{"0", dataset.Number(0)},
		{"0.25", dataset.Number(0.25)},
		{"007", dataset.Text("007")},
		{"NaN", dataset.Text("NaN")},
		{"Infinity", dataset.Text("Infinity")},
		{"mitral", dataset.Text("mitral")},
	}
	for _, tt := range tests {
		assert.True(t, tt.want.Equal(parseCell(tt.in)), "parseCell(%q) = %v", tt.in, parseCell(tt.in))
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	headers := []string{"id", "label", "score"}
	rows := []dataset.Row{
		{"id": dataset.Number(1), "label": dataset.Text("mv"), "score": dataset.Number(0.5)},
		{"id": dataset.Number(2), "label": dataset.Null(), "score": dataset.Number(7)},
	}

	buf := new(bytes.Buffer)
	require.NoError(t, NewDataWriter().Write(context.Background(), buf, headers, rows))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{ExportSheet}, f.GetSheetList())

	ds, err := NewDataReader().Parse(context.Background(), "export.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, headers, ds.Headers())
	require.Equal(t, 2, ds.Len())
	row, _ := ds.Row(1)
	assert.True(t, row["label"].IsNull())
	assert.True(t, row["score"].Equal(dataset.Number(7)))
}
