package conductor

import (
	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/sheets"
)

// Conductor sheet column titles. They must exist verbatim on the conductor sheet.
const (
	ColRowID                   = "ROW_ID"
	ColConductorRowID          = "CONDUCTOR_rowid"
	ColEnabled                 = "ENABLED"
	ColDescription             = "DESCRIPTION"
	ColWebhookID               = "WEBHOOK_ID"
	ColSourceSheetName         = "SOURCE_sheet_name"
	ColSourceSheetID           = "SOURCE_sheet_id"
	ColSourceColumnName        = "SOURCE_column_name"
	ColSourceColumnID          = "SOURCE_column_id"
	ColDestinationSheetID      = "DESTINATION_sheet_id"
	ColDestinationColumnName   = "DESTINATION_column_name"
	ColDestinationColumnID     = "DESTINATION_column_id"
	ColDestinationDropdownType = "DESTINATION_dropdown_type"
	ColMessage                 = "PYTHON_MESSAGE"
)

// RequiredColumns lists every conductor column, in sheet order.
var RequiredColumns = []string{
	ColRowID,
	ColConductorRowID,
	ColEnabled,
	ColDescription,
	ColWebhookID,
	ColSourceSheetName,
	ColSourceSheetID,
	ColSourceColumnName,
	ColSourceColumnID,
	ColDestinationSheetID,
	ColDestinationColumnName,
	ColDestinationColumnID,
	ColDestinationDropdownType,
	ColMessage,
}

// Schema maps conductor column titles to their column ids.
type Schema struct {
	SheetID int64
	ids     map[string]int64
}

// NewSchema resolves every required title against the conductor sheet's columns.
// A missing title is fatal for the run and reported as a *errors.SchemaError.
func NewSchema(sheetID int64, columns []sheets.Column) (Schema, error) {
	catalog := NewCatalog(sheetID, columns)
	s := Schema{SheetID: sheetID, ids: make(map[string]int64, len(RequiredColumns))}

	var missing []string
	for _, title := range RequiredColumns {
		id, ok := catalog.ID(title)
		if !ok {
			missing = append(missing, title)
			continue
		}
		s.ids[title] = id
	}
	if len(missing) > 0 {
		return Schema{}, &errors.SchemaError{SheetID: sheetID, Missing: missing}
	}
	return s, nil
}

// ID returns the column id of a conductor column title.
func (s Schema) ID(title string) int64 {
	return s.ids[title]
}

// cells indexes a conductor row's cells by title.
func (s Schema) cells(row sheets.Row) map[string]sheets.Cell {
	byID := make(map[int64]sheets.Cell, len(row.Cells))
	for _, c := range row.Cells {
		byID[c.ColumnID] = c
	}
	out := make(map[string]sheets.Cell, len(s.ids))
	for title, id := range s.ids {
		if c, ok := byID[id]; ok {
			out[title] = c
		}
	}
	return out
}
