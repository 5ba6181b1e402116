// =============================================================================
// Concrete Mix Report - Aggregator
// =============================================================================
//
// This module folds a stream of raw sheet rows into two keyed aggregate
// tables, one per report section:
//
//   Main Mixes       - rows whose Item Type is exactly "Mix Customer"
//   Additional Mixes - every other Item Type (pump charges, surcharges, ...)
//
// The fold is a one-pass, order-independent reduction: shuffling rows within
// or across files does not change totals. Ticket de-duplication is global per
// key regardless of which file a ticket number came from.
//
// =============================================================================

package report

import "github.com/concretebot/mixreport/internal/types"

// MainMixItemType is the Item Type that routes a row into the Main Mixes
// section. The comparison is an exact match on the trimmed cell value.
const MainMixItemType = "Mix Customer"

// =============================================================================
// SECTIONS AND KEYS
// =============================================================================

// Section identifies one of the two report sections.
type Section int

const (
	// SectionMain holds "Mix Customer" line items.
	SectionMain Section = iota

	// SectionAdditional holds every other line item type.
	SectionAdditional
)

// Label returns the section label row emitted in the CSV output.
func (s Section) Label() string {
	if s == SectionMain {
		return "Main Mixes"
	}
	return "Additional Mixes"
}

// GroupKey distinguishes report rows within a section. For the main section
// ItemType is always MainMixItemType, so main keys are effectively
// (Location, Level, Description, QtyUnit); additional keys carry the item
// type as well.
type GroupKey struct {
	Location    string
	Level       string
	ItemType    string
	Description string
	QtyUnit     string
}

// Classify routes a normalized row to its section and grouping key.
func Classify(row Row) (Section, GroupKey) {
	key := GroupKey{
		Location:    row.Location,
		Level:       row.Level,
		ItemType:    row.ItemType,
		Description: row.Description,
		QtyUnit:     row.QtyUnit,
	}
	if row.ItemType == MainMixItemType {
		return SectionMain, key
	}
	return SectionAdditional, key
}

// =============================================================================
// AGGREGATES
// =============================================================================

// Aggregate is the mutable accumulator for one grouping key. It is created
// on first use and never removed within a run.
type Aggregate struct {
	// TotalQty is the running sum of quantity values.
	TotalQty float64

	// TotalCost is the running sum of derived costs. Only rows with a
	// derivable cost contribute.
	TotalCost float64

	// CostCount is the number of rows that contributed to TotalCost. It
	// distinguishes "no cost data at all" from a legitimate zero total, so
	// the report can emit a blank instead of 0.00.
	CostCount int

	// TicketSet holds the distinct non-empty ticket numbers seen for this
	// key.
	TicketSet map[string]struct{}
}

func newAggregate() *Aggregate {
	return &Aggregate{TicketSet: make(map[string]struct{})}
}

// fold adds one normalized row into the accumulator.
func (a *Aggregate) fold(row Row) {
	a.TotalQty += row.QtyValue
	if row.HasCost {
		a.TotalCost += row.Cost
		a.CostCount++
	}
	if row.TicketNo != "" {
		a.TicketSet[row.TicketNo] = struct{}{}
	}
}

// TicketCount returns the number of distinct delivery tickets for this key.
func (a *Aggregate) TicketCount() int {
	return len(a.TicketSet)
}

// =============================================================================
// RUN STATISTICS
// =============================================================================

// Stats holds the per-run counters reported on the console after a
// successful build.
type Stats struct {
	FilesProcessed          int
	IncludedMain            int
	IncludedAdditional      int
	SkippedBlankDescription int
	SkippedBadQuantity      int
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator accumulates raw rows into the two section tables and tracks the
// run counters. It is not safe for concurrent use; the pipeline is strictly
// sequential.
type Aggregator struct {
	main       map[GroupKey]*Aggregate
	additional map[GroupKey]*Aggregate
	stats      Stats
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		main:       make(map[GroupKey]*Aggregate),
		additional: make(map[GroupKey]*Aggregate),
	}
}

// AddFile records that one more workbook contributed rows to this run.
func (ag *Aggregator) AddFile() {
	ag.stats.FilesProcessed++
}

// Fold normalizes a raw row and folds it into its aggregate. Excluded rows
// update the skip counters instead; rows with a blank Item Type are dropped
// without counting.
func (ag *Aggregator) Fold(raw types.RawRow) {
	row, reason := Normalize(raw)
	switch reason {
	case SkipBlankItemType:
		return
	case SkipBlankDescription:
		ag.stats.SkippedBlankDescription++
		return
	case SkipBadQuantity:
		ag.stats.SkippedBadQuantity++
		return
	}

	section, key := Classify(row)
	if section == SectionMain {
		ag.stats.IncludedMain++
	} else {
		ag.stats.IncludedAdditional++
	}
	ag.get(section, key).fold(row)
}

// get returns the accumulator for a key, inserting a zero-valued Aggregate
// on first access.
func (ag *Aggregator) get(section Section, key GroupKey) *Aggregate {
	table := ag.main
	if section == SectionAdditional {
		table = ag.additional
	}
	agg, ok := table[key]
	if !ok {
		agg = newAggregate()
		table[key] = agg
	}
	return agg
}

// Main returns the Main Mixes aggregate table.
func (ag *Aggregator) Main() map[GroupKey]*Aggregate {
	return ag.main
}

// Additional returns the Additional Mixes aggregate table.
func (ag *Aggregator) Additional() map[GroupKey]*Aggregate {
	return ag.additional
}

// Stats returns the run counters accumulated so far.
func (ag *Aggregator) Stats() Stats {
	return ag.stats
}
