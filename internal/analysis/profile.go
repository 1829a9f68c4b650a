package analysis

import (
	"github.com/montanaflynn/stats"

	"ppi/domain/dataset"
	"ppi/internal/privacy"
)

// Profile summarises every non-identity column that has at least one numeric
// cell. Columns without numeric cells are omitted.
func Profile(headers []string, rows []dataset.Row) ([]dataset.ColumnProfile, error) {
	profiles := []dataset.ColumnProfile{}
	for _, h := range privacy.VisibleHeaders(headers) {
		data := make(stats.Float64Data, 0, len(rows))
		for _, row := range rows {
			if f, ok := ToNumber(row[h]); ok {
				data = append(data, f)
			}
		}
		if len(data) == 0 {
			continue
		}

		p, err := profileColumn(h, data)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// ProfileDataset runs Profile under the dataset's read lock.
func ProfileDataset(ds *dataset.Dataset) ([]dataset.ColumnProfile, error) {
	var (
		out []dataset.ColumnProfile
		err error
	)
	ds.View(func(headers []string, rows []dataset.Row) {
		out, err = Profile(headers, rows)
	})
	return out, err
}

func profileColumn(header string, data stats.Float64Data) (dataset.ColumnProfile, error) {
	p := dataset.ColumnProfile{Header: header, Count: len(data)}

	mean, err := stats.Mean(data)
	if err != nil {
		return p, err
	}

	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return p, err
	}

	min, err := stats.Min(data)
	if err != nil {
		return p, err
	}

	max, err := stats.Max(data)
	if err != nil {
		return p, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return p, err
	}

	p.Mean = mean
	p.StdDev = stdDev
	p.Min = min
	p.Max = max
	p.Median = median
	return p, nil
}
