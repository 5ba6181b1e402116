// =============================================================================
// Concrete Mix Report - Report Assembler
// =============================================================================
//
// This module turns an aggregate table into an ordered sequence of output
// rows. Sorting is ascending by:
//
//   1. Level    - numeric levels first, ordered by value; text levels after,
//                 ordered lexicographically ("1", "2", "10", "Roof")
//   2. Location - lexicographic
//   3. Item Type, Mix Description, Qty Unit - lexicographic
//
// (For Main Mixes every row shares the same Item Type, so the effective
// order there is Description then Qty Unit.)
//
// =============================================================================

package report

import (
	"sort"
	"strconv"
)

// ReportRow is one rendered aggregate, ready for CSV output.
type ReportRow struct {
	Level       string
	Location    string
	ItemType    string
	Description string
	TicketCount int
	TotalQty    float64
	QtyUnit     string

	// AvgUnitRate and TotalCost render blank when absent, never "0.00".
	AvgUnitRate    float64
	HasAvgUnitRate bool
	TotalCost      float64
	HasTotalCost   bool
}

// Record renders the row as a CSV record in the shared column order:
// Level, Location, Item Type, Mix Description, Ticket Count, Total Qty,
// Qty Unit, Unit Rate, Total Cost.
func (r ReportRow) Record() []string {
	return []string{
		r.Level,
		r.Location,
		r.ItemType,
		r.Description,
		strconv.Itoa(r.TicketCount),
		FormatNumber(r.TotalQty, true),
		r.QtyUnit,
		FormatNumber(r.AvgUnitRate, r.HasAvgUnitRate),
		FormatNumber(r.TotalCost, r.HasTotalCost),
	}
}

// FormatNumber renders a number to exactly two decimal places, or an empty
// field when the value is absent.
func FormatNumber(value float64, present bool) string {
	if !present {
		return ""
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// =============================================================================
// SORTING
// =============================================================================

// levelKey is the composite sort key for a level: numeric levels order as
// (0, value, text) and precede text levels, which order as (1, text).
type levelKey struct {
	numeric bool
	value   float64
	text    string
}

func levelSortKey(level string) levelKey {
	if n, ok := ParseNumber(level); ok {
		return levelKey{numeric: true, value: n, text: level}
	}
	return levelKey{text: level}
}

func (k levelKey) less(other levelKey) bool {
	if k.numeric != other.numeric {
		return k.numeric
	}
	if k.numeric && k.value != other.value {
		return k.value < other.value
	}
	return k.text < other.text
}

// keyLess orders grouping keys per the report sort rules.
func keyLess(a, b GroupKey) bool {
	ak, bk := levelSortKey(a.Level), levelSortKey(b.Level)
	if ak.less(bk) || bk.less(ak) {
		return ak.less(bk)
	}
	if a.Location != b.Location {
		return a.Location < b.Location
	}
	if a.ItemType != b.ItemType {
		return a.ItemType < b.ItemType
	}
	if a.Description != b.Description {
		return a.Description < b.Description
	}
	return a.QtyUnit < b.QtyUnit
}

// =============================================================================
// ASSEMBLY
// =============================================================================

// Assemble renders an aggregate table into sorted report rows, deriving the
// per-aggregate ticket count, reported total cost, and average unit rate.
func Assemble(table map[GroupKey]*Aggregate) []ReportRow {
	keys := make([]GroupKey, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })

	rows := make([]ReportRow, 0, len(keys))
	for _, key := range keys {
		agg := table[key]
		row := ReportRow{
			Level:        key.Level,
			Location:     key.Location,
			ItemType:     key.ItemType,
			Description:  key.Description,
			TicketCount:  agg.TicketCount(),
			TotalQty:     agg.TotalQty,
			QtyUnit:      key.QtyUnit,
			TotalCost:    agg.TotalCost,
			HasTotalCost: agg.CostCount > 0,
		}
		if row.HasTotalCost && agg.TotalQty > 0 {
			row.AvgUnitRate = agg.TotalCost / agg.TotalQty
			row.HasAvgUnitRate = true
		}
		rows = append(rows, row)
	}
	return rows
}
