package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Markdown renders the report as a markdown document.
func Markdown(r *Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Analysis: %s\n\n", safeCell(r.Name)))
	b.WriteString(fmt.Sprintf("Generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	b.WriteString(fmt.Sprintf("- Rows: %d\n", r.Analysis.Meta.TotalRows))
	b.WriteString(fmt.Sprintf("- Columns: %d\n", r.Analysis.Meta.TotalHeaders))
	b.WriteString(fmt.Sprintf("- Medical-like: %t\n\n", r.Analysis.IsMedicalLike))

	b.WriteString("## Keywords\n\n")
	kws := make([]string, 0, len(r.Analysis.Keywords))
	for kw, stat := range r.Analysis.Keywords {
		if stat.HitCount > 0 {
			kws = append(kws, kw)
		}
	}
	sort.Strings(kws)
	if len(kws) == 0 {
		b.WriteString("No keyword hits.\n\n")
	} else {
		b.WriteString("| Keyword | Hits | Headers |\n|---|---|---|\n")
		for _, kw := range kws {
			stat := r.Analysis.Keywords[kw]
			b.WriteString(fmt.Sprintf("| %s | %d | %s |\n", kw, stat.HitCount, safeCell(strings.Join(stat.InHeaders, ", "))))
		}
		b.WriteString("\n")
	}

	if len(r.Analysis.PhaseDependencies) > 0 {
		b.WriteString("## Phase co-occurrence\n\n")
		b.WriteString(fmt.Sprintf("Systolic: %s  \nDiastolic: %s\n\n",
			listOrNone(r.Analysis.SystoleHeaders), listOrNone(r.Analysis.DiastoleHeaders)))
		b.WriteString("| Column | Rows |\n|---|---|\n")
		for _, d := range r.Analysis.PhaseDependencies {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", safeCell(d.Header), d.CoOccurrenceCount))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Correlations\n\n")
	if len(r.Dependencies.Pairs) == 0 {
		b.WriteString(fmt.Sprintf("No column pair had at least %d jointly numeric rows with non-zero variance.\n\n",
			r.Dependencies.Meta.MinSamplesPerPair))
	} else {
		b.WriteString("| Column A | Column B | r | n |\n|---|---|---|---|\n")
		for _, p := range r.Dependencies.Pairs {
			b.WriteString(fmt.Sprintf("| %s | %s | %.4f | %d |\n", safeCell(p.ColA), safeCell(p.ColB), p.Correlation, p.Samples))
		}
		b.WriteString("\n")
	}

	if len(r.Profiles) > 0 {
		b.WriteString("## Numeric columns\n\n")
		b.WriteString("| Column | n | Mean | Std | Min | Median | Max |\n|---|---|---|---|---|---|---|\n")
		for _, p := range r.Profiles {
			b.WriteString(fmt.Sprintf("| %s | %d | %.4g | %.4g | %.4g | %.4g | %.4g |\n",
				safeCell(p.Header), p.Count, p.Mean, p.StdDev, p.Min, p.Median, p.Max))
		}
		b.WriteString("\n")
	}

	if len(r.Analysis.NameColumns) > 0 {
		b.WriteString("## Identity columns\n\n")
		b.WriteString("Values are withheld; counts are of hashed samples.\n\n")
		for _, c := range r.Analysis.NameColumns {
			b.WriteString(fmt.Sprintf("- %s (%d samples)\n", safeCell(c.Header), len(c.EncryptedSamples)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the markdown report to an HTML fragment.
func HTML(r *Report) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.ToHTML([]byte(Markdown(r)), p, renderer)
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return safeCell(strings.Join(items, ", "))
}

// safeCell keeps header text from breaking table rows.
func safeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
