// =============================================================================
// Concrete Mix Report - Report Command
// =============================================================================
//
// This file defines the 'report' command, which builds the mix report. It
// orchestrates the entire pipeline:
//
//   1. Load configuration
//   2. Discover workbooks in the input directory (sorted by filename)
//   3. For each workbook (sequentially):
//      a. Extract the raw rows of the LineItems sheet
//      b. Fold each row into the aggregate tables
//   4. Assemble and sort the two report sections
//   5. Write the CSV report
//   6. Print the run counters
//   7. Optionally archive the processed workbooks
//
// A workbook that cannot be read (no LineItems sheet, missing columns, ...)
// is logged and skipped; the run only fails when the input directory is
// missing or contains no matching workbooks at all.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/concretebot/mixreport/internal/config"
	"github.com/concretebot/mixreport/internal/report"
	"github.com/concretebot/mixreport/internal/xlsxsource"
	"github.com/concretebot/mixreport/pkg/utils"
)

// inputDir is the directory containing input workbooks (overrides config).
var inputDir string

// outputPath is the path of the generated CSV report.
var outputPath string

// reportCmd represents the 'report' command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the concrete mix report from all workbooks in the input directory",
	Long: `The report command scans the input directory for Excel workbooks, extracts
the delivery line items from each LineItems tab, and aggregates them into a
single CSV report grouped by location, building level, and mix description.

Workbooks without a valid LineItems tab are skipped with a diagnostic and do
not abort the run. The output CSV is written to the input directory unless
--output names another path.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport()
	},
}

// init registers the report command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(
		&inputDir,
		"input",
		"i",
		"",
		"Directory containing the input workbooks (default from config)",
	)

	reportCmd.Flags().StringVarP(
		&outputPath,
		"output",
		"o",
		"",
		"Output CSV path (default: the configured report name inside the input directory)",
	)
}

// runReport orchestrates the report pipeline.
func runReport() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	dir := inputDir
	if dir == "" {
		dir = cfg.InputDir
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("input directory not found: %s", dir)
	}

	fm := utils.NewFileManager(dir, cfg.ArchiveDir, cfg.ArchiveProcessed)
	files, err := fm.DiscoverInputFiles(cfg.FilePattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", cfg.FilePattern, dir)
	}
	logger.Info().Int("count", len(files)).Str("dir", dir).Msg("workbooks found")

	out := outputPath
	if out == "" {
		out = filepath.Join(dir, utils.BuildOutputName(cfg.ReportName))
	}

	// One pass over every workbook, folded into the two aggregate tables.
	agg := report.NewAggregator()
	src := xlsxsource.New(cfg.SheetName)
	processed := extractAndFold(src, agg, files, logger)

	main := report.Assemble(agg.Main())
	additional := report.Assemble(agg.Additional())
	if err := report.WriteCSV(out, main, additional); err != nil {
		return err
	}

	printStats(agg.Stats(), out)

	for _, path := range processed {
		if archived, err := fm.ArchiveProcessedFile(path); err != nil {
			logger.Warn().Err(err).Str("file", filepath.Base(path)).Msg("archival failed")
		} else if archived != path {
			logger.Debug().Str("file", filepath.Base(path)).Str("archived_to", archived).Msg("workbook archived")
		}
	}

	return nil
}

// extractAndFold runs the row source over every workbook and folds the rows
// into the aggregator. It returns the paths of the workbooks that
// contributed rows.
func extractAndFold(src *xlsxsource.Source, agg *report.Aggregator, files []string, logger zerolog.Logger) []string {
	var processed []string
	for _, path := range files {
		rows, err := src.Extract(path)
		if err != nil {
			var skip *xlsxsource.SkipError
			if errors.As(err, &skip) {
				logger.Warn().Str("file", skip.File).Str("reason", skip.Reason).Msg("workbook skipped")
			} else {
				logger.Warn().Err(err).Str("file", filepath.Base(path)).Msg("workbook skipped")
			}
			continue
		}
		if len(rows) == 0 {
			logger.Debug().Str("file", filepath.Base(path)).Msg("no data rows")
			continue
		}

		agg.AddFile()
		for _, raw := range rows {
			agg.Fold(raw)
		}
		processed = append(processed, path)
		logger.Debug().Str("file", filepath.Base(path)).Int("rows", len(rows)).Msg("workbook folded")
	}
	return processed
}

// printStats prints the run counters to stdout.
func printStats(stats report.Stats, out string) {
	fmt.Printf("Processed files: %d\n", stats.FilesProcessed)
	fmt.Printf("Included rows (Main Mixes): %d\n", stats.IncludedMain)
	fmt.Printf("Included rows (Additional Mixes): %d\n", stats.IncludedAdditional)
	fmt.Printf("Skipped rows (blank Item Description): %d\n", stats.SkippedBlankDescription)
	fmt.Printf("Skipped rows (non-numeric Qty Value): %d\n", stats.SkippedBadQuantity)
	fmt.Printf("Report written to: %s\n", out)
}
