package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/de-tools/sales-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sales-atlas/pkg/services/analysis"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/generator"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/store/excel"
)

type GenerateCmd struct {
	profilePath string
	records     int
	days        int
	outputDir   string
	dataFile    string
	reportFile  string
	seed        int64
	verbose     bool
	reporter    *export.Reporter
}

// NewGenerateCmd builds the generate command: synthesize records, write the
// raw-data workbook, analyze and write the summary report.
func NewGenerateCmd(reporter *export.Reporter) *cobra.Command {
	gc := &GenerateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate sample sales data and build the summary report",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.profilePath, "profile", "", "Path to an optional YAML run profile")
	cmd.Flags().IntVar(&gc.records, "records", 150, "Number of sample records to generate")
	cmd.Flags().IntVar(&gc.days, "days", 90, "Number of days in the past to generate data for")
	cmd.Flags().StringVar(&gc.outputDir, "output-dir", "output", "Directory to save output files")
	cmd.Flags().StringVar(&gc.dataFile, "data-file", "sales_data.xlsx", "Filename for the raw data workbook")
	cmd.Flags().StringVar(&gc.reportFile, "report-file", "sales_summary.xlsx", "Filename for the summary report")
	cmd.Flags().Int64Var(&gc.seed, "seed", 0, "Random seed (0 uses the clock)")
	cmd.Flags().BoolVar(&gc.verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	cfg, err := gc.resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx := newContext(cmd.Context(), gc.verbose)

	gen := generator.New(cfg, cfg.Seed)
	records, err := gen.Generate(ctx, cfg.Records, cfg.DaysBack)
	if err != nil {
		return fmt.Errorf("failed to generate sales data: %w", err)
	}

	dataPath, err := excel.WriteRecords(ctx, records, filepath.Join(cfg.OutputDir, cfg.DataFile))
	if err != nil {
		return fmt.Errorf("failed to write sales data: %w", err)
	}

	a, err := analysis.Analyze(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to analyze sales data: %w", err)
	}

	sheets, err := report.Build(a)
	if err != nil {
		return fmt.Errorf("failed to build report model: %w", err)
	}

	reportPath, err := excel.WriteReport(ctx, sheets, filepath.Join(cfg.OutputDir, cfg.ReportFile))
	if err != nil {
		return fmt.Errorf("failed to write summary report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Raw data file: %s\nSummary report: %s\n", dataPath, reportPath)
	return gc.reporter.Handle(a)
}

// resolveConfig layers the run profile under the command-line flags. A flag
// the user set always wins over the profile and environment values.
func (gc *GenerateCmd) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(gc.profilePath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("records") {
		cfg.Records = gc.records
	}
	if flags.Changed("days") {
		cfg.DaysBack = gc.days
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = gc.outputDir
	}
	if flags.Changed("data-file") {
		cfg.DataFile = gc.dataFile
	}
	if flags.Changed("report-file") {
		cfg.ReportFile = gc.reportFile
	}
	if flags.Changed("seed") {
		cfg.Seed = gc.seed
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
