package conductor

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/agentstation/conductor/pkg/sheets"
)

const (
	conductorSheet int64 = 1
	sourceSheet    int64 = 10
	destSheet      int64 = 20
)

var fixedNow = time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)

type rowsCall struct {
	sheetID int64
	opts    sheets.RowsOptions
}

type columnWrite struct {
	sheetID  int64
	columnID int64
	update   sheets.ColumnUpdate
}

type cellWrite struct {
	sheetID int64
	rowID   int64
	cells   []sheets.CellUpdate
}

// fakeClient is an in-memory sheets.Client.
type fakeClient struct {
	columns     map[int64][]sheets.Column
	rows        map[int64][]sheets.Row
	columnsErr  map[int64]error
	updateErr   map[int64]error // by column id
	columnCalls []int64
	rowsCalls   []rowsCall
	columnWrites []columnWrite
	cellWrites  []cellWrite
}

func newFakeClient() *fakeClient {
	fc := &fakeClient{
		columns:    map[int64][]sheets.Column{},
		rows:       map[int64][]sheets.Row{},
		columnsErr: map[int64]error{},
		updateErr:  map[int64]error{},
	}
	fc.columns[conductorSheet] = conductorColumns()
	fc.columns[sourceSheet] = []sheets.Column{
		{ID: 1001, Index: 0, Title: "Status", Type: sheets.ColumnTypeText},
		{ID: 1002, Index: 1, Title: "Owner", Type: sheets.ColumnTypeContactList},
	}
	fc.columns[destSheet] = []sheets.Column{
		{ID: 2001, Index: 0, Title: "Status", Type: sheets.ColumnTypePicklist},
		{ID: 2002, Index: 1, Title: "Assignee", Type: sheets.ColumnTypeContactList},
	}
	return fc
}

func (f *fakeClient) Columns(_ context.Context, sheetID int64) ([]sheets.Column, error) {
	f.columnCalls = append(f.columnCalls, sheetID)
	if err := f.columnsErr[sheetID]; err != nil {
		return nil, err
	}
	cols, ok := f.columns[sheetID]
	if !ok {
		return nil, fmt.Errorf("sheet %d not found", sheetID)
	}
	return cols, nil
}

func (f *fakeClient) Rows(_ context.Context, sheetID int64, opts sheets.RowsOptions) ([]sheets.Row, error) {
	f.rowsCalls = append(f.rowsCalls, rowsCall{sheetID: sheetID, opts: opts})
	rows, ok := f.rows[sheetID]
	if !ok {
		return nil, fmt.Errorf("sheet %d not found", sheetID)
	}
	if len(opts.ColumnIDs) == 0 {
		return rows, nil
	}
	out := make([]sheets.Row, 0, len(rows))
	for _, r := range rows {
		filtered := sheets.Row{ID: r.ID, RowNumber: r.RowNumber}
		for _, c := range r.Cells {
			if slices.Contains(opts.ColumnIDs, c.ColumnID) {
				filtered.Cells = append(filtered.Cells, c)
			}
		}
		out = append(out, filtered)
	}
	return out, nil
}

func (f *fakeClient) UpdateColumn(_ context.Context, sheetID, columnID int64, update sheets.ColumnUpdate) error {
	f.columnWrites = append(f.columnWrites, columnWrite{sheetID: sheetID, columnID: columnID, update: update})
	return f.updateErr[columnID]
}

func (f *fakeClient) UpdateRowCells(_ context.Context, sheetID, rowID int64, cells []sheets.CellUpdate) error {
	f.cellWrites = append(f.cellWrites, cellWrite{sheetID: sheetID, rowID: rowID, cells: cells})
	return nil
}

// messages returns the PYTHON_MESSAGE values written to rowID, in order.
func (f *fakeClient) messages(rowID int64) []string {
	return f.valuesWritten(rowID, conductorColumnID(ColMessage))
}

// valuesWritten returns the values written into one conductor cell, in order.
func (f *fakeClient) valuesWritten(rowID, columnID int64) []string {
	var out []string
	for _, w := range f.cellWrites {
		if w.rowID != rowID {
			continue
		}
		for _, c := range w.cells {
			if c.ColumnID == columnID {
				out = append(out, sheets.ValueString(c.Value))
			}
		}
	}
	return out
}

func (f *fakeClient) writesFor(rowID int64) int {
	n := 0
	for _, w := range f.cellWrites {
		if w.rowID == rowID {
			n++
		}
	}
	return n
}

func conductorColumnID(title string) int64 {
	return int64(100 + slices.Index(RequiredColumns, title))
}

func conductorColumns() []sheets.Column {
	cols := make([]sheets.Column, len(RequiredColumns))
	for i, title := range RequiredColumns {
		cols[i] = sheets.Column{ID: conductorColumnID(title), Index: i, Title: title}
	}
	return cols
}

// conductorRow builds a conductor sheet row from title keyed values.
func conductorRow(rowID int64, values map[string]any) sheets.Row {
	row := sheets.Row{ID: rowID}
	for _, title := range RequiredColumns {
		if v, ok := values[title]; ok {
			row.Cells = append(row.Cells, sheets.Cell{ColumnID: conductorColumnID(title), Value: v})
		}
	}
	return row
}

// picklistRow is an enabled picklist mapping from sourceSheet/Status to
// destSheet/Status with cached ids.
func picklistRow(rowID int64, conductorID string) map[string]any {
	return map[string]any{
		ColRowID:                   "row-" + conductorID,
		ColConductorRowID:          conductorID,
		ColEnabled:                 true,
		ColSourceSheetID:           fmt.Sprint(sourceSheet),
		ColSourceColumnName:        "Status",
		ColSourceColumnID:          "1001",
		ColDestinationSheetID:      fmt.Sprint(destSheet),
		ColDestinationColumnName:   "Status",
		ColDestinationColumnID:     "2001",
		ColDestinationDropdownType: "picklist",
	}
}

func testSchema() Schema {
	s, err := NewSchema(conductorSheet, conductorColumns())
	if err != nil {
		panic(err)
	}
	return s
}

func sourceValues(values ...any) []sheets.Row {
	rows := make([]sheets.Row, len(values))
	for i, v := range values {
		rows[i] = sheets.Row{ID: int64(5000 + i), Cells: []sheets.Cell{
			{ColumnID: 1001, Value: v},
			{ColumnID: 1002},
		}}
	}
	return rows
}

func contactCell(name, email string) *sheets.ObjectValue {
	return &sheets.ObjectValue{ObjectType: sheets.ObjectTypeContact, Name: name, Email: email}
}

func multiContactCell(contacts ...*sheets.ObjectValue) *sheets.ObjectValue {
	v := &sheets.ObjectValue{ObjectType: sheets.ObjectTypeMultiContact}
	for _, c := range contacts {
		v.Values = append(v.Values, *c)
	}
	return v
}

func contactRows(values ...*sheets.ObjectValue) []sheets.Row {
	rows := make([]sheets.Row, len(values))
	for i, v := range values {
		rows[i] = sheets.Row{ID: int64(6000 + i), Cells: []sheets.Cell{
			{ColumnID: 1001, Value: "x"},
			{ColumnID: 1002, ObjectValue: v},
		}}
	}
	return rows
}
