// Package analysis runs the read-only heuristics over a dataset: keyword
// classification with phase co-occurrence, pairwise Pearson correlation, and
// numeric column profiles.
package analysis

import (
	"sort"
	"strings"

	"ppi/domain/dataset"
	"ppi/internal/naming"
	"ppi/internal/privacy"
)

// Vocabulary is the fixed set of echo/cardiology keywords matched against headers.
var Vocabulary = []string{"atrial", "ventricular", "systole", "diastole", "mr", "mv", "pml"}

const keywordSampleLimit = 5

var (
	systoleMarkers  = []string{"systole", "systolic"}
	diastoleMarkers = []string{"diastole", "diastolic"}
)

// Classify scans headers for vocabulary hits and counts, for every row with a
// present phase value, which non-identity columns are present alongside it.
func Classify(headers []string, rows []dataset.Row) dataset.MedicalAnalysis {
	keywords := make(map[string]dataset.KeywordStat, len(Vocabulary))
	for _, kw := range Vocabulary {
		keywords[kw] = dataset.KeywordStat{
			Keyword:      kw,
			InHeaders:    []string{},
			SampleValues: []string{},
		}
	}

	systole := []string{}
	diastole := []string{}
	for _, h := range headers {
		folded := naming.Fold(h)
		for _, kw := range Vocabulary {
			if strings.Contains(folded, kw) {
				stat := keywords[kw]
				stat.InHeaders = append(stat.InHeaders, h)
				stat.HitCount++
				keywords[kw] = stat
			}
		}
		if containsAny(folded, systoleMarkers) {
			systole = append(systole, h)
		}
		if containsAny(folded, diastoleMarkers) {
			diastole = append(diastole, h)
		}
	}

	medical := false
	for kw, stat := range keywords {
		if stat.HitCount == 0 {
			continue
		}
		medical = true
		stat.SampleValues = sampleValues(stat.InHeaders, rows)
		keywords[kw] = stat
	}

	phase := append(append([]string{}, systole...), diastole...)

	return dataset.MedicalAnalysis{
		IsMedicalLike:     medical,
		Keywords:          keywords,
		SystoleHeaders:    systole,
		DiastoleHeaders:   diastole,
		PhaseDependencies: phaseDependencies(headers, rows, phase),
		NameColumns:       privacy.HashedColumns(headers, rows),
		Meta: dataset.AnalysisMeta{
			TotalRows:    len(rows),
			TotalHeaders: len(headers),
		},
	}
}

// ClassifyDataset runs Classify under the dataset's read lock.
func ClassifyDataset(ds *dataset.Dataset) dataset.MedicalAnalysis {
	var out dataset.MedicalAnalysis
	ds.View(func(headers []string, rows []dataset.Row) {
		out = Classify(headers, rows)
	})
	return out
}

func phaseDependencies(headers []string, rows []dataset.Row, phase []string) []dataset.DependencyRecord {
	counts := make(map[string]int)
	if len(phase) > 0 {
		for _, row := range rows {
			if !anyPresent(row, phase) {
				continue
			}
			for _, h := range headers {
				if privacy.IsIdentityColumn(h) || row[h].IsBlank() {
					continue
				}
				counts[h]++
			}
		}
	}

	records := make([]dataset.DependencyRecord, 0, len(counts))
	for _, h := range headers {
		if n, ok := counts[h]; ok {
			records = append(records, dataset.DependencyRecord{Header: h, CoOccurrenceCount: n})
		}
	}
	// ties keep header order
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CoOccurrenceCount > records[j].CoOccurrenceCount
	})
	return records
}

// sampleValues collects the first non-blank display values of the matched
// columns. Identity columns never contribute.
func sampleValues(matched []string, rows []dataset.Row) []string {
	samples := []string{}
	for _, h := range matched {
		if privacy.IsIdentityColumn(h) {
			continue
		}
		for _, row := range rows {
			if len(samples) >= keywordSampleLimit {
				return samples
			}
			if v := row[h]; !v.IsBlank() {
				samples = append(samples, v.String())
			}
		}
	}
	return samples
}

func anyPresent(row dataset.Row, headers []string) bool {
	for _, h := range headers {
		if !row[h].IsBlank() {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
