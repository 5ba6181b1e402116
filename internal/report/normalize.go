// =============================================================================
// Concrete Mix Report - Row Normalizer
// =============================================================================
//
// This module converts one raw sheet row into either a normalized row ready
// for aggregation or a rejection reason. All parsing here is forgiving:
// numeric parsing never fails hard, it just reports "no value", and text
// fields fall back to "Unknown" when blank.
//
// EXCLUSION POLICY (applied in order, each short-circuiting the row):
//   1. Item Type blank after trim        -> dropped silently (not counted)
//   2. Item Description blank after trim -> dropped, counted
//   3. Qty Value not a number            -> dropped, counted
//
// =============================================================================

package report

import (
	"strconv"
	"strings"

	"github.com/concretebot/mixreport/internal/types"
)

// unknownValue is the fallback used for blank location, level, and unit cells.
const unknownValue = "Unknown"

// Row is a delivery line item after normalization, ready to fold into an
// aggregate.
type Row struct {
	ItemType    string
	Description string
	QtyValue    float64
	QtyUnit     string
	Location    string
	Level       string
	TicketNo    string

	// Cost is the derived cost of the row (see DeriveCost). A row without
	// derivable cost data still counts toward quantity totals, so presence
	// is tracked separately instead of folding to zero.
	Cost    float64
	HasCost bool
}

// SkipReason identifies why a raw row was excluded from the report.
type SkipReason int

const (
	// SkipNone means the row was accepted.
	SkipNone SkipReason = iota

	// SkipBlankItemType marks rows with no Item Type. These are dropped
	// without being counted.
	SkipBlankItemType

	// SkipBlankDescription marks rows with an Item Type but no Item
	// Description.
	SkipBlankDescription

	// SkipBadQuantity marks rows whose Qty Value cell is not a number.
	SkipBadQuantity
)

// =============================================================================
// FIELD NORMALIZATION
// =============================================================================

// ParseNumber parses a cell value as a decimal number. Thousands separators
// are stripped before parsing ("1,234.5" -> 1234.5). The second return value
// is false for empty or unparsable input; parsing never returns an error.
func ParseNumber(value string) (float64, bool) {
	stripped := strings.TrimSpace(value)
	if stripped == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(stripped, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NormalizeText trims a cell value and substitutes fallback when the result
// is empty.
func NormalizeText(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

// NormalizeLevel normalizes a building level cell. Blank cells become
// "Unknown". Numeric levels with no fractional part render without the
// decimal point ("2.0" -> "2", "2.5" -> "2.5"); anything else is kept as
// trimmed text ("Roof").
func NormalizeLevel(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return unknownValue
	}
	if n, ok := ParseNumber(trimmed); ok && n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return trimmed
}

// DeriveCost computes the cost contribution of a row. A raw Cost value that
// is strictly positive wins verbatim; otherwise the cost is qty * unit rate
// when a unit rate is present (this product may be zero or negative, no
// clamping is applied); otherwise no cost is derivable.
func DeriveCost(qty float64, rawCost, rawUnitRate string) (float64, bool) {
	if cost, ok := ParseNumber(rawCost); ok && cost > 0 {
		return cost, true
	}
	if rate, ok := ParseNumber(rawUnitRate); ok {
		return qty * rate, true
	}
	return 0, false
}

// =============================================================================
// ROW NORMALIZATION
// =============================================================================

// Normalize converts a raw sheet row into a normalized Row, or reports the
// reason the row is excluded. The returned Row is only meaningful when the
// reason is SkipNone.
func Normalize(raw types.RawRow) (Row, SkipReason) {
	itemType := strings.TrimSpace(raw.Get(types.ColItemType))
	if itemType == "" {
		return Row{}, SkipBlankItemType
	}

	description := strings.TrimSpace(raw.Get(types.ColItemDescription))
	if description == "" {
		return Row{}, SkipBlankDescription
	}

	qty, ok := ParseNumber(raw.Get(types.ColQtyValue))
	if !ok {
		return Row{}, SkipBadQuantity
	}

	row := Row{
		ItemType:    itemType,
		Description: description,
		QtyValue:    qty,
		QtyUnit:     NormalizeText(raw.Get(types.ColQtyUnit), unknownValue),
		Location:    NormalizeText(raw.Get(types.ColLocation), unknownValue),
		Level:       NormalizeLevel(raw.Get(types.ColLevel)),
		TicketNo:    NormalizeText(raw.Get(types.ColTicketNo), ""),
	}
	row.Cost, row.HasCost = DeriveCost(qty, raw.Get(types.ColCost), raw.Get(types.ColUnitRate))
	return row, SkipNone
}
