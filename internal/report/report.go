// Package report combines classification, correlation and column profiles of
// one dataset into a single document.
package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"ppi/domain/dataset"
	"ppi/internal/analysis"
)

// Report is the composite analysis of one dataset.
type Report struct {
	Name         string                   `json:"name" yaml:"name"`
	GeneratedAt  time.Time                `json:"generatedAt" yaml:"generatedAt"`
	Analysis     dataset.MedicalAnalysis  `json:"analysis" yaml:"analysis"`
	Dependencies dataset.DependencyReport `json:"dependencies" yaml:"dependencies"`
	Profiles     []dataset.ColumnProfile  `json:"profiles" yaml:"profiles"`
}

// Build runs the classifier, the correlation engine and the profiler
// concurrently against one consistent snapshot: the dataset's read lock is
// held until all three finish.
func Build(ctx context.Context, name string, ds *dataset.Dataset) (*Report, error) {
	rep := &Report{Name: name, GeneratedAt: time.Now().UTC()}

	var err error
	ds.View(func(headers []string, rows []dataset.Row) {
		g, gctx := errgroup.WithContext(ctx)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep.Analysis = analysis.Classify(headers, rows)
			return nil
		})
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rep.Dependencies = analysis.Correlate(headers, rows)
			return nil
		})
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profiles, perr := analysis.Profile(headers, rows)
			if perr != nil {
				return perr
			}
			rep.Profiles = profiles
			return nil
		})

		err = g.Wait()
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}
