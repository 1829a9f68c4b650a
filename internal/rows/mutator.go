// Package rows appends, updates and deletes dataset rows in place. Indices are
// positional; a delete shifts every later row down by one.
package rows

import (
	"ppi/domain/core"
	"ppi/domain/dataset"
)

// Append adds candidate as a new row and returns its index. Every header
// takes the candidate's value (missing keys become Null). Keys outside the
// header set are dropped. A dataset with no headers and no rows adopts the
// candidate's keys: first those listed in order, then the rest sorted.
func Append(ds *dataset.Dataset, candidate dataset.Row, order ...string) (int, error) {
	if ds == nil {
		return 0, core.ErrDatasetNotFound
	}

	var index int
	err := ds.Mutate(func(headers *[]string, rows *[]dataset.Row) error {
		if len(*headers) == 0 && len(*rows) == 0 {
			*headers = adoptKeys(candidate, order)
		}
		*rows = append(*rows, candidate.Conform(*headers))
		index = len(*rows) - 1
		return nil
	})
	return index, err
}

// Update overwrites, for each header, the stored value with partial's value
// when the key is present (Null included). Absent keys keep their value.
func Update(ds *dataset.Dataset, index int, partial dataset.Row) error {
	if ds == nil {
		return core.ErrDatasetNotFound
	}

	return ds.Mutate(func(headers *[]string, rows *[]dataset.Row) error {
		if index < 0 || index >= len(*rows) {
			return core.NewIndexError(index, len(*rows))
		}
		next := (*rows)[index].Clone()
		for _, h := range *headers {
			if v, ok := partial[h]; ok {
				next[h] = v
			}
		}
		(*rows)[index] = next
		return nil
	})
}

// Delete removes the row at index.
func Delete(ds *dataset.Dataset, index int) error {
	if ds == nil {
		return core.ErrDatasetNotFound
	}

	return ds.Mutate(func(_ *[]string, rows *[]dataset.Row) error {
		if index < 0 || index >= len(*rows) {
			return core.NewIndexError(index, len(*rows))
		}
		*rows = append((*rows)[:index], (*rows)[index+1:]...)
		return nil
	})
}

func adoptKeys(candidate dataset.Row, order []string) []string {
	keys := make([]string, 0, len(candidate))
	taken := make(map[string]bool, len(candidate))
	for _, k := range order {
		if _, ok := candidate[k]; ok && !taken[k] {
			taken[k] = true
			keys = append(keys, k)
		}
	}
	for _, k := range candidate.Keys() {
		if !taken[k] {
			keys = append(keys, k)
		}
	}
	return keys
}
