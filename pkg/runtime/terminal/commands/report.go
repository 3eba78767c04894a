package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/analysis"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/store/excel"
)

type ReportCmd struct {
	input      string
	outputDir  string
	reportFile string
	verbose    bool
	reporter   *export.Reporter
}

// NewReportCmd builds the report command: load an existing raw-data workbook
// and build the summary report from it.
func NewReportCmd(reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the summary report from an existing sales data workbook",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.input, "input", "", "Path to the sales data workbook to analyze")
	cmd.Flags().StringVar(&rc.outputDir, "output-dir", "output", "Directory to save output files")
	cmd.Flags().StringVar(&rc.reportFile, "report-file", "sales_summary.xlsx", "Filename for the summary report")
	cmd.Flags().BoolVar(&rc.verbose, "verbose", false, "Enable verbose logging")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := newContext(cmd.Context(), rc.verbose)

	records, err := excel.ReadRecords(ctx, rc.input)
	if err != nil {
		return fmt.Errorf("failed to load sales data: %w", err)
	}

	a, err := analysis.Analyze(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to analyze sales data: %w", err)
	}

	sheets, err := report.Build(a)
	if err != nil {
		return fmt.Errorf("failed to build report model: %w", err)
	}

	reportPath, err := excel.WriteReport(ctx, sheets, filepath.Join(rc.outputDir, rc.reportFile))
	if err != nil {
		return fmt.Errorf("failed to write summary report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Summary report: %s\n", reportPath)
	return rc.reporter.Handle(a)
}

// newContext attaches the pipeline logger to the command context. Verbose
// runs log at debug level.
func newContext(parent context.Context, verbose bool) context.Context {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	return logger.WithContext(parent)
}
