package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"report.xlsx", "report.xlsx"},
		{"my report (v2).xlsx", "my_report__v2_.xlsx"},
		{"échographie.xlsx", "_chographie.xlsx"},
		{"a-b_c.d", "a-b_c.d"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Sanitize(tt.input), "Sanitize(%q)", tt.input)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	for _, s := range []string{"my report (v2).xlsx", "Ünïcödé ná me", "plain"} {
		once := Sanitize(s)
		assert.Equal(t, once, Sanitize(once))
		assert.Equal(t, Candidates(once), []string{once})
	}
}

func TestCandidates(t *testing.T) {
	assert.Equal(t,
		[]string{"my file (1).xlsx", "my_file_(1).xlsx", "my_file__1_.xlsx"},
		Candidates("my file (1).xlsx"))

	// spaces-only names collapse the second and third forms
	assert.Equal(t, []string{"my file.xlsx", "my_file.xlsx"}, Candidates("my file.xlsx"))
	assert.Equal(t, []string{"clean.xlsx"}, Candidates("clean.xlsx"))
}

func TestUnion(t *testing.T) {
	got := Union("my file.xlsx", "1700000000000_my_file.xlsx")
	assert.Equal(t, []string{"my file.xlsx", "my_file.xlsx", "1700000000000_my_file.xlsx"}, got)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "systole_mm", Fold("Systole_MM"))
	assert.Equal(t, "patientname", Fold("PATIENTNAME"))
}
