// Package naming derives the key-safe spellings under which an uploaded
// sheet is reachable.
package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sanitize replaces every rune outside [A-Za-z0-9.-_] with '_'.
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(name string) string {
	result := make([]rune, 0, len(name))
	for _, r := range name {
		if isSafe(r) {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	return string(result)
}

// Underscored replaces spaces with '_' and leaves everything else alone.
func Underscored(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// Candidates returns the alias spellings of name in lookup order:
// the original, spaces replaced, then fully sanitized. Duplicates are removed.
func Candidates(name string) []string {
	return dedupe([]string{name, Underscored(name), Sanitize(name)})
}

// Union returns the ordered, de-duplicated candidates of every name.
func Union(names ...string) []string {
	var all []string
	for _, n := range names {
		all = append(all, Candidates(n)...)
	}
	return dedupe(all)
}


// Fold lower-cases s for case-insensitive substring matching.
func Fold(s string) string {
	// Casers are stateful; one per call keeps Fold safe for concurrent use.
	return cases.Lower(language.Und).String(s)
}

func isSafe(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '.' || r == '-' || r == '_'
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
