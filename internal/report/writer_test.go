package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_Structure(t *testing.T) {
	main := []ReportRow{
		{Level: "2", Location: "Tower A", ItemType: "Mix Customer", Description: "30MPa", TicketCount: 1, TotalQty: 5, QtyUnit: "m3", TotalCost: 100, HasTotalCost: true, AvgUnitRate: 20, HasAvgUnitRate: true},
	}
	additional := []ReportRow{
		{Level: "2", Location: "Tower A", ItemType: "Pump", Description: "Line pump", TotalQty: 2, QtyUnit: "hr"},
	}

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteCSV(path, main, additional))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	require.Len(t, lines, 7)
	assert.Equal(t, "Main Mixes", lines[0])
	assert.Equal(t, "Level,Location,Item Type,Mix Description,Ticket Count,Total Qty,Qty Unit,Unit Rate,Total Cost", lines[1])
	assert.Equal(t, "2,Tower A,Mix Customer,30MPa,1,5.00,m3,20.00,100.00", lines[2])
	assert.Equal(t, "", lines[3], "blank separator row between sections")
	assert.Equal(t, "Additional Mixes", lines[4])
	assert.Equal(t, lines[1], lines[5], "header row repeats for the second section")
	assert.Equal(t, "2,Tower A,Pump,Line pump,0,2.00,hr,,", lines[6])
}

func TestWriteCSV_QuotesSpecialCharacters(t *testing.T) {
	main := []ReportRow{
		{Level: "2", Location: `Tower "A", North`, ItemType: "Mix Customer", Description: "30MPa, air entrained", TotalQty: 5, QtyUnit: "m3"},
	}

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteCSV(path, main, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// encoding/csv round-trips the quoted fields intact.
	require.GreaterOrEqual(t, len(records), 3)
	assert.Equal(t, `Tower "A", North`, records[2][1])
	assert.Equal(t, "30MPa, air entrained", records[2][3])
}

func TestWriteCSV_EmptySectionsStillEmitStructure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteCSV(path, nil, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "Main Mixes", lines[0])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "Additional Mixes", lines[3])
}

func TestWriteCSV_BadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "missing", "report.csv"), nil, nil)
	assert.Error(t, err)
}
