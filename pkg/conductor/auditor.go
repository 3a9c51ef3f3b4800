package conductor

import (
	"context"

	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/logging"
	"github.com/agentstation/conductor/pkg/sheets"
)

// Auditor resolves one side of every mapping row, fetching the column
// catalog of each distinct sheet only once.
type Auditor struct {
	client   sheets.Client
	journal  *Journal
	resolver *Resolver
}

// NewAuditor creates an auditor.
func NewAuditor(client sheets.Client, journal *Journal, resolver *Resolver) *Auditor {
	return &Auditor{client: client, journal: journal, resolver: resolver}
}

// Audit resolves the role's reference of every row and returns the rows in
// their original order. Failures are isolated: a sheet that cannot be fetched
// marks its whole group unresolved, and a column that cannot be resolved marks
// only its own row.
func (a *Auditor) Audit(ctx context.Context, rows []MappingRow, role Role) []MappingRow {
	out := make([]MappingRow, len(rows))
	copy(out, rows)

	ctx = logging.WithRole(ctx, role.String())
	for _, group := range groupBySheet(out, role) {
		a.auditGroup(logging.WithSheet(ctx, group.sheetID), out, group, role)
	}
	return out
}

func (a *Auditor) auditGroup(ctx context.Context, rows []MappingRow, group sheetGroup, role Role) {
	logger := logging.FromContext(ctx)

	catalog, err := a.catalog(ctx, group.sheetID, role)
	if err != nil {
		logger.Warn().Err(err).Int("rows", len(group.indexes)).Msg("Sheet not found, skipping group")
		for _, i := range group.indexes {
			ref := rows[i].Ref(role)
			ref.Resolved = false
			rows[i] = rows[i].WithRef(role, ref)
			a.journal.Log(ctx, rows[i].RowID, msgSheetNotFound(role))
		}
		return
	}

	for _, i := range group.indexes {
		resolved, err := a.resolver.Resolve(logging.WithRow(ctx, rows[i].ConductorID), rows[i], catalog, role)
		if err != nil {
			logger.Warn().Err(err).Str("conductor_row", rows[i].ConductorID).Msg("Column reference unresolved")
		}
		rows[i] = resolved
	}
}

func (a *Auditor) catalog(ctx context.Context, sheetID int64, role Role) (*Catalog, error) {
	if sheetID == 0 {
		return nil, errors.NewSheetError(role.String(), sheetID, nil)
	}
	columns, err := a.client.Columns(ctx, sheetID)
	if err != nil {
		return nil, errors.NewSheetError(role.String(), sheetID, err)
	}
	return NewCatalog(sheetID, columns), nil
}

type sheetGroup struct {
	sheetID int64
	indexes []int
}

// groupBySheet groups row positions by the role's sheet id in first seen order.
func groupBySheet(rows []MappingRow, role Role) []sheetGroup {
	var groups []sheetGroup
	position := make(map[int64]int)
	for i, r := range rows {
		id := r.Ref(role).SheetID
		g, ok := position[id]
		if !ok {
			g = len(groups)
			position[id] = g
			groups = append(groups, sheetGroup{sheetID: id})
		}
		groups[g].indexes = append(groups[g].indexes, i)
	}
	return groups
}
