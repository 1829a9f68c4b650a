package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ppi/adapters/excel"
	"ppi/domain/dataset"
	"ppi/internal/analysis"
	"ppi/internal/privacy"
	"ppi/internal/report"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var format string

	rootCmd := &cobra.Command{
		Use:           "ppi-cli",
		Short:         "Analyse spreadsheet files without running the server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "json", "Output format: json|yaml|md")

	rootCmd.AddCommand(
		newAnalyzeCmd(&format),
		newDependenciesCmd(&format),
		newRowsCmd(&format),
		newProfileCmd(&format),
		newReportCmd(&format),
	)
	return rootCmd
}

func newAnalyzeCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Detect cardiovascular/echo terminology in a sheet",
		Long: `Classify a sheet's headers against the echo keyword vocabulary and count
which columns co-occur with systolic/diastolic phase columns.

Example: ppi-cli analyze echo.xlsx --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), *format, analysis.ClassifyDataset(ds), nil)
		},
	}
}

func newDependenciesCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dependencies [file]",
		Short: "Pairwise Pearson correlations between numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), *format, analysis.CorrelateDataset(ds), nil)
		},
	}
}

func newRowsCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rows [file]",
		Short: "Print the sheet with identity columns removed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), *format, privacy.ProjectDataset(ds), nil)
		},
	}
}

func newProfileCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [file]",
		Short: "Summary statistics of the numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			profiles, err := analysis.ProfileDataset(ds)
			if err != nil {
				return fmt.Errorf("failed to profile columns: %w", err)
			}
			return render(cmd.OutOrStdout(), *format, profiles, nil)
		},
	}
}

func newReportCmd(format *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report [file]",
		Short: "Classification, correlations and column profiles in one document",
		Long: `Build the composite report of a sheet.

Example: ppi-cli report echo.xlsx --format md > echo.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			rep, err := report.Build(cmd.Context(), filepath.Base(args[0]), ds)
			if err != nil {
				return fmt.Errorf("failed to build report: %w", err)
			}
			return render(cmd.OutOrStdout(), *format, rep, func() string { return report.Markdown(rep) })
		},
	}
}

func loadFile(ctx context.Context, path string) (*dataset.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := excel.NewDataReader().Parse(ctx, filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ds, nil
}
