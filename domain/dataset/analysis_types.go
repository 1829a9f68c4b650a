// Package dataset provides the in-memory sheet model and analysis result types.
package dataset

// KeywordStat records which headers matched one vocabulary keyword.
type KeywordStat struct {
	Keyword      string   `json:"keyword" yaml:"keyword"`
	InHeaders    []string `json:"inHeaders" yaml:"inHeaders"`
	HitCount     int      `json:"hitCount" yaml:"hitCount"`
	SampleValues []string `json:"sampleValues" yaml:"sampleValues"`
}

// DependencyRecord counts rows where Header and at least one phase column are
// both present.
type DependencyRecord struct {
	Header            string `json:"header" yaml:"header"`
	CoOccurrenceCount int    `json:"coOccurrenceCount" yaml:"coOccurrenceCount"`
}

// NameColumn carries one-way digests sampled from an identity column.
type NameColumn struct {
	Header           string   `json:"header" yaml:"header"`
	EncryptedSamples []string `json:"encryptedSamples" yaml:"encryptedSamples"`
}

// AnalysisMeta describes the analysed dataset's shape.
type AnalysisMeta struct {
	TotalRows    int `json:"totalRows" yaml:"totalRows"`
	TotalHeaders int `json:"totalHeaders" yaml:"totalHeaders"`
}

// MedicalAnalysis is the keyword classifier output.
type MedicalAnalysis struct {
	IsMedicalLike     bool                   `json:"isMedicalLike" yaml:"isMedicalLike"`
	Keywords          map[string]KeywordStat `json:"keywords" yaml:"keywords"`
	SystoleHeaders    []string               `json:"systoleHeaders" yaml:"systoleHeaders"`
	DiastoleHeaders   []string               `json:"diastoleHeaders" yaml:"diastoleHeaders"`
	PhaseDependencies []DependencyRecord     `json:"phaseDependencies" yaml:"phaseDependencies"`
	NameColumns       []NameColumn           `json:"nameColumns" yaml:"nameColumns"`
	Meta              AnalysisMeta           `json:"meta" yaml:"meta"`
}

// CorrelationPair is a Pearson coefficient between two columns.
type CorrelationPair struct {
	ColA        string  `json:"colA" yaml:"colA"`
	ColB        string  `json:"colB" yaml:"colB"`
	Correlation float64 `json:"correlation" yaml:"correlation"`
	Samples     int     `json:"samples" yaml:"samples"`
}

// DependencyMeta lets consumers explain omitted pairs.
type DependencyMeta struct {
	TotalPairs        int `json:"totalPairs" yaml:"totalPairs"`
	MinSamplesPerPair int `json:"minSamplesPerPair" yaml:"minSamplesPerPair"`
}

// DependencyReport is the correlation engine output.
type DependencyReport struct {
	Pairs []CorrelationPair `json:"pairs" yaml:"pairs"`
	Meta  DependencyMeta    `json:"meta" yaml:"meta"`
}

// ColumnProfile summarises one numeric column.
type ColumnProfile struct {
	Header string  `json:"header" yaml:"header"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stdDev" yaml:"stdDev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Median float64 `json:"median" yaml:"median"`
}

// Projection is the identity-free view served to external consumers.
type Projection struct {
	Headers []string `json:"headers" yaml:"headers"`
	Rows    []Row    `json:"rows" yaml:"rows"`
}
