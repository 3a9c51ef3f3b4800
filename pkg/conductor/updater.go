package conductor

import (
	"context"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/agentstation/conductor/pkg/constants"
	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/logging"
	"github.com/agentstation/conductor/pkg/sheets"
)

// BuildUpdate returns the column definition payload for kind. Option lists
// are never nil so an empty bundle clears the destination.
func BuildUpdate(kind DropdownKind, bundle ValueBundle) (sheets.ColumnUpdate, error) {
	columnType, err := kind.ColumnType()
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindPicklist, KindMultiPicklist:
		options := bundle.Options
		if options == nil {
			options = []string{}
		}
		return sheets.OptionsUpdate{
			Type:               columnType,
			Options:            options,
			Validation:         false,
			OverrideValidation: true,
		}, nil
	case KindContact, KindMultiContact:
		contacts := bundle.Contacts
		if contacts == nil {
			contacts = []sheets.Contact{}
		}
		return sheets.ContactOptionsUpdate{
			Type:               columnType,
			ContactOptions:     contacts,
			OverrideValidation: true,
		}, nil
	default:
		return nil, errors.NewDropdownTypeError(kind.String())
	}
}

// Updater rewrites destination column definitions.
type Updater struct {
	client  sheets.Client
	journal *Journal
	now     func() time.Time
}

// NewUpdater creates an updater stamping success messages with now.
func NewUpdater(client sheets.Client, journal *Journal, now func() time.Time) *Updater {
	if now == nil {
		now = time.Now
	}
	return &Updater{client: client, journal: journal, now: now}
}

// Apply posts bundle to the destination column of row with a single column
// update. Success is stamped on the row; failure is logged on the row and
// returned as an error matching errors.ErrPostUpdateFailed.
func (u *Updater) Apply(ctx context.Context, row MappingRow, bundle ValueBundle) error {
	dst := row.Destination
	logger := logging.FromContext(ctx)

	update, err := BuildUpdate(row.Kind, bundle)
	if err == nil {
		logger.Trace().Msgf("Column update payload:\n%s", spew.Sdump(update))
		err = u.client.UpdateColumn(ctx, dst.SheetID, dst.ColumnID, update)
	}
	if err != nil {
		u.journal.Log(ctx, row.RowID, msgPostFailed)
		return errors.NewUpdateError(dst.SheetID, dst.ColumnID, err)
	}

	u.journal.Log(ctx, row.RowID, u.now().Format(constants.TimeFormatPosted)+" "+constants.PostedSuffix)
	logger.Info().Int("values", bundle.Len()).Msg("Destination column updated")
	return nil
}
