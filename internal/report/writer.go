// =============================================================================
// Concrete Mix Report - CSV Report Writer
// =============================================================================
//
// This module serializes the two assembled report sections to a CSV file:
//
//   Main Mixes            <- section label row
//   Level,Location,...    <- shared column header
//   <sorted main rows>
//                         <- blank separator row
//   Additional Mixes
//   Level,Location,...
//   <sorted additional rows>
//
// Field quoting (commas, quotes, newlines) is handled by encoding/csv.
//
// =============================================================================

package report

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Header is the shared column header row emitted once per section.
var Header = []string{
	"Level",
	"Location",
	"Item Type",
	"Mix Description",
	"Ticket Count",
	"Total Qty",
	"Qty Unit",
	"Unit Rate",
	"Total Cost",
}

// WriteCSV writes the assembled report to path, creating or truncating the
// file. The flush error is checked before close so disk failures surface as
// an error rather than a silently truncated report.
func WriteCSV(path string, main, additional []ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	w := csv.NewWriter(f)
	writeSection(w, SectionMain, main)
	w.Write(nil) // blank separator row
	writeSection(w, SectionAdditional, additional)

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	return nil
}

// writeSection emits one section: label row, header row, then the rows in
// the order assembled. Write errors are surfaced by the final Flush/Error
// check in WriteCSV.
func writeSection(w *csv.Writer, section Section, rows []ReportRow) {
	w.Write([]string{section.Label()})
	w.Write(Header)
	for _, row := range rows {
		w.Write(row.Record())
	}
}
