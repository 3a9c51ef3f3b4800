package conductor

import (
	"context"
	"strconv"
	"strings"

	"github.com/agentstation/conductor/pkg/logging"
	"github.com/agentstation/conductor/pkg/sheets"
)

// Reference is one side of a mapping: a column on a sheet, named by title,
// by id, or both.
type Reference struct {
	SheetID    int64
	ColumnName string
	ColumnID   int64

	// ColumnIndex is the position of the column in its sheet, set on resolution.
	ColumnIndex int

	// Resolved is set once the reference is bound to a live column.
	Resolved bool
}

// MappingRow is one declared sync rule from the conductor sheet. Stages take
// a row by value and return the updated copy.
type MappingRow struct {
	// RowID is the conductor sheet row id all write backs target.
	RowID int64

	// ConductorID is the stable identifier in CONDUCTOR_rowid, used by focused runs.
	ConductorID string

	Label           string
	Enabled         bool
	Description     string
	WebhookID       string
	SourceSheetName string

	Source      Reference
	Destination Reference

	Kind      DropdownKind
	KindValue string

	// Index is the row position within the conductor sheet.
	Index int
}

// Ref returns the reference for role.
func (r MappingRow) Ref(role Role) Reference {
	if role == RoleSource {
		return r.Source
	}
	return r.Destination
}

// WithRef returns a copy of r with the reference for role replaced.
func (r MappingRow) WithRef(role Role, ref Reference) MappingRow {
	if role == RoleSource {
		r.Source = ref
	} else {
		r.Destination = ref
	}
	return r
}

// Eligible reports whether the row can be posted: enabled with both sides bound.
func (r MappingRow) Eligible() bool {
	return r.Enabled && r.Source.Resolved && r.Destination.Resolved
}

// isPlaceholderSheet reports whether a SOURCE_sheet_id value marks a row the
// conductor ignores entirely: blank cells and roll up header rows.
func isPlaceholderSheet(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.Contains(strings.ToLower(v), "header")
}

// parseRows turns conductor sheet rows into mapping rows. Placeholder rows are
// dropped, missing CONDUCTOR_rowid values are backfilled with the row id and
// written back, and later rows repeating an identifier are dropped.
func parseRows(ctx context.Context, schema Schema, journal *Journal, rows []sheets.Row) []MappingRow {
	logger := logging.FromContext(ctx)
	out := make([]MappingRow, 0, len(rows))
	seen := make(map[string]bool, len(rows))

	for index, row := range rows {
		cells := schema.cells(row)
		text := func(title string) string {
			return strings.TrimSpace(cells[title].String())
		}
		id := func(title string) int64 {
			v, _ := sheets.ParseID(cells[title].Value)
			return v
		}

		if isPlaceholderSheet(text(ColSourceSheetID)) {
			logger.Debug().Int("index", index).Int64("row_id", row.ID).Msg("Skipping row without source sheet id")
			continue
		}

		conductorID := text(ColConductorRowID)
		if conductorID == "" {
			// Assumes no concurrent run backfills the same row.
			conductorID = strconv.FormatInt(row.ID, 10)
			if err := journal.Post(ctx, row.ID, ColConductorRowID, conductorID); err != nil {
				logger.Warn().Err(err).Int64("row_id", row.ID).Msg("Failed to backfill conductor row id")
			}
		}
		if seen[conductorID] {
			logger.Warn().Str("conductor_row", conductorID).Int("index", index).Msg("Duplicate conductor row id, keeping first")
			continue
		}
		seen[conductorID] = true

		kindValue := text(ColDestinationDropdownType)
		kind, _ := ParseDropdownKind(kindValue)

		out = append(out, MappingRow{
			RowID:           row.ID,
			ConductorID:     conductorID,
			Label:           text(ColRowID),
			Enabled:         cells[ColEnabled].Bool(),
			Description:     text(ColDescription),
			WebhookID:       text(ColWebhookID),
			SourceSheetName: text(ColSourceSheetName),
			Source: Reference{
				SheetID:     id(ColSourceSheetID),
				ColumnName:  text(ColSourceColumnName),
				ColumnID:    id(ColSourceColumnID),
				ColumnIndex: -1,
			},
			Destination: Reference{
				SheetID:     id(ColDestinationSheetID),
				ColumnName:  text(ColDestinationColumnName),
				ColumnID:    id(ColDestinationColumnID),
				ColumnIndex: -1,
			},
			Kind:      kind,
			KindValue: kindValue,
			Index:     index,
		})
	}
	return out
}

// filterEnabled keeps the enabled rows, in row order.
func filterEnabled(rows []MappingRow) []MappingRow {
	out := make([]MappingRow, 0, len(rows))
	for _, r := range rows {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// filterFocused keeps the rows whose ConductorID is in ids. Row order is
// preserved, not the order of ids.
func filterFocused(rows []MappingRow, ids []string) []MappingRow {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[strings.TrimSpace(id)] = true
	}
	out := make([]MappingRow, 0, len(ids))
	for _, r := range rows {
		if want[r.ConductorID] {
			out = append(out, r)
		}
	}
	return out
}
