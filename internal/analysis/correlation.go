package analysis

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"ppi/domain/dataset"
	"ppi/internal/privacy"
)

// MinSamplesPerPair is the fewest jointly numeric rows a pair needs before a
// coefficient is reported.
const MinSamplesPerPair = 5

// Correlate computes Pearson r for every unordered pair of non-identity
// columns with enough jointly numeric rows, strongest first.
func Correlate(headers []string, rows []dataset.Row) dataset.DependencyReport {
	cols := privacy.VisibleHeaders(headers)
	pairs := []dataset.CorrelationPair{}

	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			xs, ys := jointSamples(rows, cols[i], cols[j])
			if len(xs) < MinSamplesPerPair {
				continue
			}
			r, ok := pearsonCorrelation(xs, ys)
			if !ok {
				continue
			}
			pairs = append(pairs, dataset.CorrelationPair{
				ColA:        cols[i],
				ColB:        cols[j],
				Correlation: r,
				Samples:     len(xs),
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Correlation) > math.Abs(pairs[b].Correlation)
	})

	return dataset.DependencyReport{
		Pairs: pairs,
		Meta: dataset.DependencyMeta{
			TotalPairs:        len(pairs),
			MinSamplesPerPair: MinSamplesPerPair,
		},
	}
}

// CorrelateDataset runs Correlate under the dataset's read lock.
func CorrelateDataset(ds *dataset.Dataset) dataset.DependencyReport {
	var out dataset.DependencyReport
	ds.View(func(headers []string, rows []dataset.Row) {
		out = Correlate(headers, rows)
	})
	return out
}

// ToNumber coerces a cell to a finite float. Numbers pass through, text is
// parsed after trimming, and anything else (or a non-finite result) fails.
func ToNumber(v dataset.Value) (float64, bool) {
	var f float64
	switch v.Kind() {
	case dataset.KindNumber:
		f, _ = v.AsNumber()
	case dataset.KindText:
		s, _ := v.AsText()
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func jointSamples(rows []dataset.Row, a, b string) ([]float64, []float64) {
	var xs, ys []float64
	for _, row := range rows {
		x, ok := ToNumber(row[a])
		if !ok {
			continue
		}
		y, ok := ToNumber(row[b])
		if !ok {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

// pearsonCorrelation uses the sums formula. A zero denominator or NaN result
// reports false.
func pearsonCorrelation(x, y []float64) (float64, bool) {
	if len(x) != len(y) || len(x) == 0 {
		return 0, false
	}

	n := float64(len(x))
	sumX, sumY := floats.Sum(x), floats.Sum(y)
	sumXY := floats.Dot(x, y)
	sumX2 := floats.Dot(x, x)
	sumY2 := floats.Dot(y, y)

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denominator == 0 || math.IsNaN(denominator) {
		return 0, false
	}

	r := numerator / denominator
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return math.Max(-1, math.Min(1, r)), true
}
