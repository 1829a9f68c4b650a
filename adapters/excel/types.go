package excel

import (
	"strconv"
	"strings"

	"ppi/domain/dataset"
)

const emptyHeader = "__EMPTY"

// buildDataset turns raw sheet text into a dataset. Blank header cells are
// named __EMPTY, __EMPTY_1, ...; repeated headers get a _1, _2 suffix.
// Rows with no non-blank cell are skipped.
func buildDataset(raw [][]string) *dataset.Dataset {
	if len(raw) == 0 {
		return dataset.New(nil, nil)
	}

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}
	headers := headerNames(raw[0], width)

	rows := make([]dataset.Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(dataset.Row, len(headers))
		blank := true
		for j, h := range headers {
			v := dataset.Null()
			if j < len(cells) {
				v = parseCell(cells[j])
			}
			if !v.IsBlank() {
				blank = false
			}
			row[h] = v
		}
		if !blank {
			rows = append(rows, row)
		}
	}

	return dataset.New(headers, rows)
}

func headerNames(first []string, width int) []string {
	headers := make([]string, width)
	used := make(map[string]bool, width)
	suffix := make(map[string]int, width)
	empties := 0
	for i := 0; i < width; i++ {
		name := ""
		if i < len(first) {
			name = strings.TrimSpace(first[i])
		}
		if name == "" {
			name = emptyHeader
			if empties > 0 {
				name = emptyHeader + "_" + strconv.Itoa(empties)
			}
			empties++
		}
		if used[name] {
			base, n := name, suffix[name]
			for used[name] {
				n++
				name = base + "_" + strconv.Itoa(n)
			}
			suffix[base] = n
		}
		used[name] = true
		headers[i] = name
	}
	return headers
}

// parseCell maps trimmed cell text to Null, Number or Text. Digit strings
// with a leading zero stay text so identifiers like "007" survive.
func parseCell(s string) dataset.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return dataset.Null()
	}
	if len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9' {
		return dataset.Text(s)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return dataset.Number(float64(i))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !isSpecialFloat(s) {
		return dataset.Number(f)
	}
	return dataset.Text(s)
}

// isSpecialFloat catches the words ParseFloat accepts that a sheet means as text.
func isSpecialFloat(s string) bool {
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "inf", "infinity", "nan":
		return true
	}
	return false
}
