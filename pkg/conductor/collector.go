package conductor

import (
	"context"
	"strings"

	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/logging"
	"github.com/agentstation/conductor/pkg/sheets"
)

// ValueBundle is the deduplicated, ordered option set for one destination.
// Options is used by pick list kinds and Contacts by contact kinds.
type ValueBundle struct {
	Options  []string
	Contacts []sheets.Contact
}

// Len returns the number of candidate values.
func (b ValueBundle) Len() int {
	return len(b.Options) + len(b.Contacts)
}

// Collector reads candidate values out of a resolved source column.
type Collector struct {
	client  sheets.Client
	journal *Journal
}

// NewCollector creates a collector.
func NewCollector(client sheets.Client, journal *Journal) *Collector {
	return &Collector{client: client, journal: journal}
}

// Collect builds the value bundle for row's destination kind.
//
// An unknown kind returns an error matching errors.ErrUnsupportedDropdownType.
// A contact source holding non-contact values logs the row once and returns an
// empty bundle with an error matching errors.ErrContactExtraction; callers may
// still post that bundle to clear the destination.
func (c *Collector) Collect(ctx context.Context, row MappingRow) (ValueBundle, error) {
	switch row.Kind {
	case KindPicklist, KindMultiPicklist:
		return c.collectOptions(ctx, row.Source)
	case KindContact, KindMultiContact:
		bundle, err := c.collectContacts(ctx, row.Source)
		if errors.Is(err, errors.ErrContactExtraction) {
			logging.FromContext(ctx).Warn().Err(err).Msg("Contact extraction failed")
			c.journal.Log(ctx, row.RowID, msgContactExtraction)
			return ValueBundle{}, err
		}
		return bundle, err
	default:
		return ValueBundle{}, errors.NewDropdownTypeError(row.KindValue)
	}
}

// collectOptions keeps the first occurrence of every non blank value.
// Equality is case sensitive.
func (c *Collector) collectOptions(ctx context.Context, src Reference) (ValueBundle, error) {
	rows, err := c.client.Rows(ctx, src.SheetID, sheets.RowsOptions{ColumnIDs: []int64{src.ColumnID}})
	if err != nil {
		return ValueBundle{}, err
	}

	bundle := ValueBundle{Options: []string{}}
	seen := make(map[string]bool)
	for _, row := range rows {
		cell, ok := row.Cell(src.ColumnID)
		if !ok {
			continue
		}
		v := cell.String()
		if strings.TrimSpace(v) == "" || seen[v] {
			continue
		}
		seen[v] = true
		bundle.Options = append(bundle.Options, v)
	}
	return bundle, nil
}

// collectContacts keeps the first occurrence of every (name, email) pair. A
// multi contact cell contributes only its first contact.
func (c *Collector) collectContacts(ctx context.Context, src Reference) (ValueBundle, error) {
	rows, err := c.client.Rows(ctx, src.SheetID, sheets.RowsOptions{ObjectValues: true})
	if err != nil {
		return ValueBundle{}, err
	}

	bundle := ValueBundle{Contacts: []sheets.Contact{}}
	seen := make(map[sheets.Contact]bool)
	for _, row := range rows {
		cell, ok := sourceCell(row, src)
		if !ok || cell.ObjectValue == nil {
			continue
		}

		contact, ok := firstContact(cell.ObjectValue)
		if !ok {
			return ValueBundle{}, &errors.ExtractionError{
				SheetID:  src.SheetID,
				ColumnID: src.ColumnID,
				RowID:    row.ID,
				Message:  "cell does not hold a contact",
			}
		}
		if seen[contact] {
			continue
		}
		seen[contact] = true
		bundle.Contacts = append(bundle.Contacts, contact)
	}
	return bundle, nil
}

// sourceCell addresses the source cell by position, falling back to a column
// id scan when the row is sparse.
func sourceCell(row sheets.Row, src Reference) (sheets.Cell, bool) {
	if i := src.ColumnIndex; i >= 0 && i < len(row.Cells) && row.Cells[i].ColumnID == src.ColumnID {
		return row.Cells[i], true
	}
	return row.Cell(src.ColumnID)
}

func firstContact(v *sheets.ObjectValue) (sheets.Contact, bool) {
	switch v.ObjectType {
	case sheets.ObjectTypeContact:
		if v.Email == "" {
			return sheets.Contact{}, false
		}
		return sheets.Contact{Name: v.Name, Email: v.Email}, true
	case sheets.ObjectTypeMultiContact:
		if len(v.Values) == 0 || v.Values[0].Email == "" {
			return sheets.Contact{}, false
		}
		first := v.Values[0]
		return sheets.Contact{Name: first.Name, Email: first.Email}, true
	default:
		return sheets.Contact{}, false
	}
}
