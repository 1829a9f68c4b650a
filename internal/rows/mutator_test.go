package rows

import (
	"testing"

	"ppi/domain/core"
	"ppi/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheet() *dataset.Dataset {
	return dataset.New([]string{"id", "LA_area"}, []dataset.Row{
		{"id": dataset.Number(1), "LA_area": dataset.Number(10)},
		{"id": dataset.Number(2), "LA_area": dataset.Number(20)},
		{"id": dataset.Number(3), "LA_area": dataset.Number(30)},
	})
}

// Keys outside the header set are dropped, not added as columns.
func TestAppend(t *testing.T) {
	ds := sheet()

	idx, err := Append(ds, dataset.Row{"id": dataset.Number(4), "extra": dataset.Text("dropped")})

	require.NoError(t, err)
	assert.Equal(t, 3, idx)
	row, ok := ds.Row(3)
	require.True(t, ok)
	assert.Equal(t, []string{"LA_area", "id"}, row.Keys())
	assert.True(t, row["id"].Equal(dataset.Number(4)))
	assert.True(t, row["LA_area"].IsNull())
}

func TestAppend_EmptyDatasetAdoptsCandidateKeys(t *testing.T) {
	ds := dataset.New(nil, nil)

	idx, err := Append(ds, dataset.Row{"b": dataset.Number(1), "a": dataset.Text("x")})

	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, []string{"a", "b"}, ds.Headers())
}

func TestAppend_EmptyDatasetKeepsSubmittedKeyOrder(t *testing.T) {
	ds := dataset.New(nil, nil)
	candidate := dataset.Row{"Systole_mm": dataset.Number(1), "LA_area": dataset.Number(2), "id": dataset.Number(3)}

	_, err := Append(ds, candidate, "Systole_mm", "LA_area", "missing", "Systole_mm")

	require.NoError(t, err)
	assert.Equal(t, []string{"Systole_mm", "LA_area", "id"}, ds.Headers())
}

func TestAppend_HeadersWithoutRowsKeepHeaders(t *testing.T) {
	ds := dataset.New([]string{"x"}, nil)

	_, err := Append(ds, dataset.Row{"y": dataset.Number(1)})

	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, ds.Headers())
	row, _ := ds.Row(0)
	assert.True(t, row["x"].IsNull())
}

func TestUpdate_PartialReplace(t *testing.T) {
	ds := sheet()

	err := Update(ds, 1, dataset.Row{"LA_area": dataset.Null(), "unknown": dataset.Number(9)})

	require.NoError(t, err)
	row, _ := ds.Row(1)
	assert.True(t, row["id"].Equal(dataset.Number(2)))
	assert.True(t, row["LA_area"].IsNull())
	_, ok := row["unknown"]
	assert.False(t, ok)
}

func TestAppendThenEmptyUpdateIsNoop(t *testing.T) {
	ds := sheet()
	idx, err := Append(ds, dataset.Row{"id": dataset.Number(7), "LA_area": dataset.Number(70)})
	require.NoError(t, err)
	before, _ := ds.Row(idx)

	require.NoError(t, Update(ds, idx, dataset.Row{}))

	after, _ := ds.Row(idx)
	assert.Equal(t, before, after)
}

func TestUpdate_OutOfRange(t *testing.T) {
	ds := sheet()

	for _, idx := range []int{-1, 3, 100} {
		err := Update(ds, idx, dataset.Row{})
		assert.ErrorIs(t, err, core.ErrIndexOutOfRange, "index %d", idx)
	}
}

func TestDelete_ShiftsIndices(t *testing.T) {
	ds := sheet()

	require.NoError(t, Delete(ds, 0))

	assert.Equal(t, 2, ds.Len())
	row, _ := ds.Row(0)
	assert.True(t, row["id"].Equal(dataset.Number(2)))

	require.NoError(t, Update(ds, 0, dataset.Row{"LA_area": dataset.Number(99)}))
	row, _ = ds.Row(0)
	assert.True(t, row["id"].Equal(dataset.Number(2)))
}

func TestDeleteLastThenUpdateFails(t *testing.T) {
	ds := sheet()

	require.NoError(t, Delete(ds, 2))

	assert.ErrorIs(t, Update(ds, 2, dataset.Row{}), core.ErrIndexOutOfRange)
	assert.ErrorIs(t, Delete(ds, 2), core.ErrIndexOutOfRange)
}

func TestNilDataset(t *testing.T) {
	_, err := Append(nil, dataset.Row{})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, Update(nil, 0, dataset.Row{}), core.ErrNotFound)
	assert.ErrorIs(t, Delete(nil, 0), core.ErrNotFound)
}
