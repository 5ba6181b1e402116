// =============================================================================
// Concrete Mix Report - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - xlsxsource
//   - report
//
// =============================================================================

package types

// =============================================================================
// REQUIRED COLUMNS
// =============================================================================

// Column names of the LineItems sheet. The row source refuses a workbook
// whose header row does not contain every one of these.
const (
	ColItemType        = "Item Type"
	ColItemDescription = "Item Description"
	ColQtyValue        = "Qty Value"
	ColQtyUnit         = "Qty Unit"
	ColUnitRate        = "Unit Rate"
	ColCost            = "Cost"
	ColLocation        = "Location"
	ColLevel           = "Level"
	ColTicketNo        = "Ticket No."
)

// RequiredColumns lists every column a LineItems sheet must carry, in the
// order used for diagnostics.
var RequiredColumns = []string{
	ColItemType,
	ColItemDescription,
	ColQtyValue,
	ColQtyUnit,
	ColUnitRate,
	ColCost,
	ColLocation,
	ColLevel,
	ColTicketNo,
}

// =============================================================================
// RAW ROW
// =============================================================================

// RawRow represents a single delivery line item as read from a workbook,
// before any normalization. Field values are raw cell strings; a missing
// cell reads as the empty string.
type RawRow struct {
	// Fields maps a column header name to the cell value in that column.
	Fields map[string]string

	// SourceRow is the 1-based row number in the source sheet.
	// Useful for error reporting.
	SourceRow int
}

// Get returns the value for the named column, or "" if the row has no
// value in that column.
func (r RawRow) Get(name string) string {
	return r.Fields[name]
}
