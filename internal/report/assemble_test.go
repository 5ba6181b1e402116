package report

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12.50", FormatNumber(12.5, true))
	assert.Equal(t, "0.00", FormatNumber(0, true))
	assert.Equal(t, "-3.33", FormatNumber(-3.3333, true))
	assert.Equal(t, "", FormatNumber(0, false), "absent values render blank, not 0.00")
	assert.Equal(t, "", FormatNumber(12.5, false))
}

func TestLevelSortOrder(t *testing.T) {
	levels := []string{"10", "2", "Roof", "1"}
	sort.Slice(levels, func(i, j int) bool {
		return levelSortKey(levels[i]).less(levelSortKey(levels[j]))
	})
	assert.Equal(t, []string{"1", "2", "10", "Roof"}, levels)
}

func TestLevelSortKey_TextAfterNumeric(t *testing.T) {
	levels := []string{"Unknown", "B1", "3", "-1", "2.5", "Roof"}
	sort.Slice(levels, func(i, j int) bool {
		return levelSortKey(levels[i]).less(levelSortKey(levels[j]))
	})
	assert.Equal(t, []string{"-1", "2.5", "3", "B1", "Roof", "Unknown"}, levels)
}

func TestAssemble_SortsByLevelLocationThenMix(t *testing.T) {
	table := make(map[GroupKey]*Aggregate)
	for _, key := range []GroupKey{
		{Location: "Tower B", Level: "2", ItemType: "Mix Customer", Description: "30MPa", QtyUnit: "m3"},
		{Location: "Tower A", Level: "10", ItemType: "Mix Customer", Description: "30MPa", QtyUnit: "m3"},
		{Location: "Tower A", Level: "2", ItemType: "Mix Customer", Description: "35MPa", QtyUnit: "m3"},
		{Location: "Tower A", Level: "2", ItemType: "Mix Customer", Description: "30MPa", QtyUnit: "m3"},
		{Location: "Tower A", Level: "Roof", ItemType: "Mix Customer", Description: "30MPa", QtyUnit: "m3"},
	} {
		table[key] = newAggregate()
	}

	rows := Assemble(table)
	require.Len(t, rows, 5)

	got := make([][3]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, [3]string{row.Level, row.Location, row.Description})
	}
	assert.Equal(t, [][3]string{
		{"2", "Tower A", "30MPa"},
		{"2", "Tower A", "35MPa"},
		{"2", "Tower B", "30MPa"},
		{"10", "Tower A", "30MPa"},
		{"Roof", "Tower A", "30MPa"},
	}, got)
}

func TestAssemble_DerivedFields(t *testing.T) {
	withCost := newAggregate()
	withCost.TotalQty = 10
	withCost.TotalCost = 225
	withCost.CostCount = 2
	withCost.TicketSet["T-1"] = struct{}{}
	withCost.TicketSet["T-2"] = struct{}{}

	noCost := newAggregate()
	noCost.TotalQty = 4

	table := map[GroupKey]*Aggregate{
		{Location: "Tower A", Level: "1", ItemType: "Mix Customer", Description: "30MPa", QtyUnit: "m3"}: withCost,
		{Location: "Tower A", Level: "2", ItemType: "Mix Customer", Description: "30MPa", QtyUnit: "m3"}: noCost,
	}

	rows := Assemble(table)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].TicketCount)
	require.True(t, rows[0].HasTotalCost)
	assert.InDelta(t, 225.0, rows[0].TotalCost, 1e-9)
	require.True(t, rows[0].HasAvgUnitRate)
	assert.InDelta(t, 22.5, rows[0].AvgUnitRate, 1e-9)

	// No contributing cost rows: cost and rate stay absent.
	assert.False(t, rows[1].HasTotalCost)
	assert.False(t, rows[1].HasAvgUnitRate)
	assert.Zero(t, rows[1].TicketCount)
}

func TestAssemble_NoRateForNonPositiveQty(t *testing.T) {
	agg := newAggregate()
	agg.TotalQty = 0
	agg.TotalCost = 50
	agg.CostCount = 1

	rows := Assemble(map[GroupKey]*Aggregate{
		{Location: "Tower A", Level: "1", ItemType: "Credit", Description: "Adjustment", QtyUnit: "m3"}: agg,
	})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].HasTotalCost)
	assert.False(t, rows[0].HasAvgUnitRate, "average rate is undefined without positive quantity")
}

func TestReportRow_Record(t *testing.T) {
	row := ReportRow{
		Level:          "2",
		Location:       "Tower A",
		ItemType:       "Mix Customer",
		Description:    "30MPa",
		TicketCount:    3,
		TotalQty:       12.5,
		QtyUnit:        "m3",
		AvgUnitRate:    22.5,
		HasAvgUnitRate: true,
		TotalCost:      281.25,
		HasTotalCost:   true,
	}
	assert.Equal(t, []string{
		"2", "Tower A", "Mix Customer", "30MPa", "3", "12.50", "m3", "22.50", "281.25",
	}, row.Record())

	blank := ReportRow{Level: "2", Location: "Tower A", ItemType: "Pump", Description: "Line pump", TotalQty: 1, QtyUnit: "hr"}
	assert.Equal(t, []string{
		"2", "Tower A", "Pump", "Line pump", "0", "1.00", "hr", "", "",
	}, blank.Record())
}
