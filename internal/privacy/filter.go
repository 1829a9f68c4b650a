// Package privacy hides identity-like columns from anything served outside
// the process and derives one-way digests for audit previews.
package privacy

import (
	"strings"

	"ppi/domain/core"
	"ppi/domain/dataset"
	"ppi/internal/naming"
)

// DefaultSampleLimit caps SampleHashed when no positive limit is given.
const DefaultSampleLimit = 5

var identityMarkers = []string{"name", "patient"}

// IsIdentityColumn reports whether header looks like it holds person names.
func IsIdentityColumn(header string) bool {
	h := naming.Fold(header)
	for _, m := range identityMarkers {
		if strings.Contains(h, m) {
			return true
		}
	}
	return false
}

// VisibleHeaders returns headers without identity columns, in order.
func VisibleHeaders(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if !IsIdentityColumn(h) {
			out = append(out, h)
		}
	}
	return out
}

// IdentityHeaders returns the identity columns of headers, in order.
func IdentityHeaders(headers []string) []string {
	var out []string
	for _, h := range headers {
		if IsIdentityColumn(h) {
			out = append(out, h)
		}
	}
	return out
}

// Project drops identity columns and re-keys every row to the remaining
// headers. The returned rows are fresh copies.
func Project(headers []string, rows []dataset.Row) dataset.Projection {
	visible := VisibleHeaders(headers)
	out := make([]dataset.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Conform(visible)
	}
	return dataset.Projection{Headers: visible, Rows: out}
}

// ProjectDataset is Project taken under the dataset's read lock.
func ProjectDataset(ds *dataset.Dataset) dataset.Projection {
	var p dataset.Projection
	ds.View(func(headers []string, rows []dataset.Row) {
		p = Project(headers, rows)
	})
	return p
}

// SampleHashed returns SHA-256 digests of the first non-blank values of
// header, in row order, at most limit of them.
func SampleHashed(rows []dataset.Row, header string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSampleLimit
	}
	samples := make([]string, 0, limit)
	for _, r := range rows {
		if len(samples) >= limit {
			break
		}
		v := r[header]
		if v.IsBlank() {
			continue
		}
		samples = append(samples, core.HashString(v.String()).String())
	}
	return samples
}

// HashedColumns samples every identity column of the dataset.
func HashedColumns(headers []string, rows []dataset.Row) []dataset.NameColumn {
	identity := IdentityHeaders(headers)
	out := make([]dataset.NameColumn, 0, len(identity))
	for _, h := range identity {
		out = append(out, dataset.NameColumn{
			Header:           h,
			EncryptedSamples: SampleHashed(rows, h, DefaultSampleLimit),
		})
	}
	return out
}
