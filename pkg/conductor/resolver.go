package conductor

import (
	"context"

	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/logging"
)

// Resolver binds column references to live columns and writes corrections
// back to the conductor sheet.
type Resolver struct {
	journal *Journal
}

// NewResolver creates a resolver persisting corrections through journal.
func NewResolver(journal *Journal) *Resolver {
	return &Resolver{journal: journal}
}

// Resolve binds the role's reference of row against catalog.
//
// A cached column id is authoritative: when it points at a column whose title
// differs from the stored name, the name is corrected. A stale id falls back
// to name lookup. A reference without an id is bound by name. Every change is
// written back once; an already consistent reference causes no writes.
func (r *Resolver) Resolve(ctx context.Context, row MappingRow, catalog *Catalog, role Role) (MappingRow, error) {
	ref := row.Ref(role)
	ref.Resolved = false

	if ref.ColumnID == 0 {
		ref, err := r.bindByName(ctx, row, ref, catalog, role)
		return row.WithRef(role, ref), err
	}

	title, ok := catalog.Title(ref.ColumnID)
	if !ok {
		idErr := errors.NewColumnIDNotFound(role.String(), catalog.SheetID, ref.ColumnID)
		r.journal.Log(ctx, row.RowID, msgColumnIDNotFound(role))

		bound, nameErr := r.bindByName(ctx, row, ref, catalog, role)
		if nameErr != nil {
			return row.WithRef(role, bound), errors.Join(idErr, nameErr)
		}
		return row.WithRef(role, bound), nil
	}

	if title != ref.ColumnName {
		logging.FromContext(ctx).Debug().
			Str("stored", ref.ColumnName).
			Str("live", title).
			Msg("Correcting column name from column id")
		ref.ColumnName = title
		r.persist(ctx, row.RowID, role.columnNameTitle(), title)
	}

	ref.ColumnIndex, _ = catalog.Index(title)
	ref.Resolved = true
	return row.WithRef(role, ref), nil
}

func (r *Resolver) bindByName(ctx context.Context, row MappingRow, ref Reference, catalog *Catalog, role Role) (Reference, error) {
	id, ok := catalog.ID(ref.ColumnName)
	if !ok {
		r.journal.Log(ctx, row.RowID, msgColumnNameNotFound(role))
		return ref, errors.NewColumnNameNotFound(role.String(), catalog.SheetID, ref.ColumnName)
	}

	ref.ColumnID = id
	ref.ColumnIndex, _ = catalog.Index(ref.ColumnName)
	ref.Resolved = true
	r.persist(ctx, row.RowID, role.columnIDTitle(), id)
	return ref, nil
}

// persist writes a corrected binding. The binding stays valid in memory when
// the write fails, so the failure is only logged.
func (r *Resolver) persist(ctx context.Context, rowID int64, column string, value any) {
	if err := r.journal.Post(ctx, rowID, column, value); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("column", column).Msg("Failed to persist column binding")
	}
}
