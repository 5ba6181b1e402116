// =============================================================================
// Concrete Mix Report - XLSX Row Source
// =============================================================================
//
// This module extracts raw delivery line items from one workbook. For each
// input file it:
//   - opens the workbook with excelize
//   - locates the configured data sheet (default "LineItems")
//   - maps the trimmed header row to column positions (first occurrence of a
//     duplicated header wins)
//   - verifies every required column is present
//   - returns the remaining rows as named-field lookups
//
// A workbook that cannot satisfy these steps is reported as a *SkipError so
// the caller can log it and continue with the next file instead of aborting
// the run. The workbook handle is closed on every path.
//
// =============================================================================

package xlsxsource

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/concretebot/mixreport/internal/types"
)

// DefaultSheetName is the data sheet extracted when the configuration does
// not override it.
const DefaultSheetName = "LineItems"

// =============================================================================
// SKIP ERRORS
// =============================================================================

// SkipError reports that a workbook was excluded from the run. It is
// non-fatal: the caller logs it and moves on to the next file.
type SkipError struct {
	// File is the base name of the workbook.
	File string

	// Reason describes why the workbook was skipped.
	Reason string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("skipping %s: %s", e.File, e.Reason)
}

// =============================================================================
// SOURCE
// =============================================================================

// Source extracts raw rows from workbooks.
type Source struct {
	// SheetName is the name of the data sheet to read.
	SheetName string
}

// New returns a Source reading the given sheet. An empty sheet name falls
// back to DefaultSheetName.
func New(sheetName string) *Source {
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	return &Source{SheetName: sheetName}
}

// Extract reads the data sheet of one workbook and returns its rows. The
// returned slice may be empty when the sheet has a valid header but no data
// rows. A *SkipError is returned when the workbook cannot be read, has no
// data sheet, has an empty data sheet, or is missing required columns.
func (s *Source) Extract(path string) ([]types.RawRow, error) {
	base := filepath.Base(path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &SkipError{File: base, Reason: fmt.Sprintf("cannot open workbook: %v", err)}
	}
	defer f.Close()

	if !hasSheet(f, s.SheetName) {
		return nil, &SkipError{File: base, Reason: fmt.Sprintf("no %s sheet", s.SheetName)}
	}

	// RawCellValue bypasses number formatting so numeric cells come back as
	// their stored values rather than display text.
	rows, err := f.GetRows(s.SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &SkipError{File: base, Reason: fmt.Sprintf("cannot read %s: %v", s.SheetName, err)}
	}
	if len(rows) == 0 {
		return nil, &SkipError{File: base, Reason: fmt.Sprintf("empty %s", s.SheetName)}
	}

	header := headerMap(rows[0])
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, &SkipError{
			File:   base,
			Reason: fmt.Sprintf("missing columns %v", missing),
		}
	}

	items := make([]types.RawRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		fields := make(map[string]string, len(types.RequiredColumns))
		for _, col := range types.RequiredColumns {
			idx := header[col]
			if idx < len(row) {
				fields[col] = row[idx]
			}
		}
		items = append(items, types.RawRow{Fields: fields, SourceRow: i + 2})
	}
	return items, nil
}

// hasSheet checks for an exact sheet name match in the workbook.
func hasSheet(f *excelize.File, name string) bool {
	for _, sheet := range f.GetSheetList() {
		if sheet == name {
			return true
		}
	}
	return false
}

// headerMap maps trimmed header names to their column positions. The first
// occurrence wins when a header is duplicated.
func headerMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for idx, name := range header {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		if _, seen := m[key]; !seen {
			m[key] = idx
		}
	}
	return m
}

// missingColumns returns the required columns absent from the header, in
// diagnostic order.
func missingColumns(header map[string]int) []string {
	var missing []string
	for _, col := range types.RequiredColumns {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}
