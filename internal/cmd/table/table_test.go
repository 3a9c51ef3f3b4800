package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/conductor/pkg/conductor"
)

func TestReportToTableData(t *testing.T) {
	report := &conductor.Report{Rows: []conductor.RowReport{
		{ConductorID: "X", Kind: "picklist", Source: "1/A", Destination: "2/B", Values: 2, Status: conductor.StatusPosted, Message: "ok"},
		{ConductorID: "Y", Label: "Owners", Status: conductor.StatusSkipped, Error: "bad"},
	}}

	data := ReportToTableData(report, false)
	assert.Len(t, data.Headers, 7)
	assert.Len(t, data.ColumnAlignment, 7)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"X", "picklist", "1/A", "2/B", "2", "posted", "ok"}, data.Rows[0])
	assert.Equal(t, "Owners", data.Rows[1][0])
	assert.Equal(t, "-", data.Rows[1][1])

	wide := ReportToTableData(report, true)
	assert.Len(t, wide.Headers, 8)
	assert.Equal(t, "bad", wide.Rows[1][7])
}

func TestMappingRowsToTableData(t *testing.T) {
	rows := []conductor.MappingRow{{
		ConductorID:     "X",
		SourceSheetName: "Jobs",
		Source:          conductor.Reference{SheetID: 10, ColumnName: "Status"},
		Destination:     conductor.Reference{SheetID: 20, ColumnID: 7},
		Description:     "statuses",
	}}

	data := MappingRowsToTableData(rows, true)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"-", "X", "false", "-", "Jobs (10)", "Status", "20", "7", "statuses"}, data.Rows[0])
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "abcdef", Truncate("abcdef", 2))
}
