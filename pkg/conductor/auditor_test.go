package conductor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuditor(fc *fakeClient) *Auditor {
	journal := NewJournal(fc, testSchema())
	return NewAuditor(fc, journal, NewResolver(journal))
}

func TestAuditFetchesEachSheetOnce(t *testing.T) {
	fc := newFakeClient()
	rows := []MappingRow{
		{RowID: 1, Source: Reference{SheetID: sourceSheet, ColumnName: "Status", ColumnID: 1001}},
		{RowID: 2, Source: Reference{SheetID: destSheet, ColumnName: "Status", ColumnID: 2001}},
		{RowID: 3, Source: Reference{SheetID: sourceSheet, ColumnName: "Owner", ColumnID: 1002}},
	}

	got := newTestAuditor(fc).Audit(context.Background(), rows, RoleSource)

	assert.Equal(t, []int64{sourceSheet, destSheet}, fc.columnCalls)
	require.Len(t, got, 3)
	for i, r := range got {
		assert.Equal(t, rows[i].RowID, r.RowID, "order preserved")
		assert.True(t, r.Source.Resolved)
	}
}

func TestAuditSheetNotFoundSkipsGroup(t *testing.T) {
	fc := newFakeClient()
	fc.columnsErr[destSheet] = fmt.Errorf("sheet not shared")
	rows := []MappingRow{
		{RowID: 1, Source: Reference{SheetID: destSheet, ColumnName: "Status"}},
		{RowID: 2, Source: Reference{SheetID: sourceSheet, ColumnName: "Status"}},
		{RowID: 3, Source: Reference{SheetID: destSheet, ColumnName: "Assignee"}},
	}

	got := newTestAuditor(fc).Audit(context.Background(), rows, RoleSource)

	msg := "SOURCE SHEET ID ERROR: Sheet ID not found, check that the ID is right, and shared w/ automation@dowbuilt.com"
	assert.False(t, got[0].Source.Resolved)
	assert.False(t, got[2].Source.Resolved)
	assert.Equal(t, []string{msg}, fc.messages(1))
	assert.Equal(t, []string{msg}, fc.messages(3))

	// The other group is still audited.
	assert.True(t, got[1].Source.Resolved)
	assert.Equal(t, int64(1001), got[1].Source.ColumnID)
}

func TestAuditRowFailureIsolated(t *testing.T) {
	fc := newFakeClient()
	rows := []MappingRow{
		{RowID: 1, Destination: Reference{SheetID: destSheet, ColumnName: "Missing"}},
		{RowID: 2, Destination: Reference{SheetID: destSheet, ColumnName: "Assignee"}},
	}

	got := newTestAuditor(fc).Audit(context.Background(), rows, RoleDestination)

	assert.False(t, got[0].Destination.Resolved)
	assert.True(t, got[1].Destination.Resolved)
	assert.Equal(t, int64(2002), got[1].Destination.ColumnID)
}

func TestAuditZeroSheetID(t *testing.T) {
	fc := newFakeClient()
	rows := []MappingRow{{RowID: 1, Destination: Reference{ColumnName: "Status"}}}

	got := newTestAuditor(fc).Audit(context.Background(), rows, RoleDestination)

	assert.False(t, got[0].Destination.Resolved)
	assert.Empty(t, fc.columnCalls)
	assert.Len(t, fc.messages(1), 1)
}

func TestAuditDoesNotMutateInput(t *testing.T) {
	fc := newFakeClient()
	rows := []MappingRow{{RowID: 1, Source: Reference{SheetID: sourceSheet, ColumnName: "Status"}}}

	_ = newTestAuditor(fc).Audit(context.Background(), rows, RoleSource)
	assert.False(t, rows[0].Source.Resolved)
	assert.Zero(t, rows[0].Source.ColumnID)
}
