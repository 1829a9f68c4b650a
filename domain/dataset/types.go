package dataset

import (
	"sort"
	"sync"
)

// Row maps every header of its Dataset to a cell value.
type Row map[string]Value

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the row's keys in sorted order.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Conform returns a row keyed by exactly headers: missing keys become Null,
// keys outside headers are dropped.
func (r Row) Conform(headers []string) Row {
	out := make(Row, len(headers))
	for _, h := range headers {
		out[h] = r[h]
	}
	return out
}

// Dataset is an in-memory sheet: ordered unique headers and ordered rows.
// Every row holds exactly the header keys. A Dataset is shared by pointer
// between registry aliases, so all access goes through its lock.
type Dataset struct {
	mu      sync.RWMutex
	headers []string
	rows    []Row
}

// New builds a Dataset. Duplicate headers keep their first position and rows
// are conformed to the header set.
func New(headers []string, rows []Row) *Dataset {
	seen := make(map[string]bool, len(headers))
	unique := make([]string, 0, len(headers))
	for _, h := range headers {
		if seen[h] {
			continue
		}
		seen[h] = true
		unique = append(unique, h)
	}

	conformed := make([]Row, len(rows))
	for i, r := range rows {
		conformed[i] = r.Conform(unique)
	}

	return &Dataset{headers: unique, rows: conformed}
}

// Headers returns a copy of the header list.
func (d *Dataset) Headers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.headers))
	copy(out, d.headers)
	return out
}

// Len returns the row count.
func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.rows)
}

// Rows returns a deep copy of all rows.
func (d *Dataset) Rows() []Row {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Row, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.Clone()
	}
	return out
}

// Row returns a copy of the row at index.
func (d *Dataset) Row(index int) (Row, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if index < 0 || index >= len(d.rows) {
		return nil, false
	}
	return d.rows[index].Clone(), true
}

// View runs fn under the read lock with the live header and row slices.
// fn must not modify or retain them.
func (d *Dataset) View(fn func(headers []string, rows []Row)) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn(d.headers, d.rows)
}

// Mutate runs fn under the write lock. fn may replace rows; it may set
// headers only while the dataset has none.
func (d *Dataset) Mutate(fn func(headers *[]string, rows *[]Row) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn(&d.headers, &d.rows)
}
