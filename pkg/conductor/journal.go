package conductor

import (
	"context"

	"github.com/agentstation/conductor/pkg/logging"
	"github.com/agentstation/conductor/pkg/sheets"
)

// Journal writes row outcomes back into the conductor sheet and mirrors them
// to the process log. It remembers the last message written per row for the
// run report.
type Journal struct {
	client sheets.Client
	schema Schema
	last   map[int64]string
}

// NewJournal creates a journal writing to the conductor sheet described by schema.
func NewJournal(client sheets.Client, schema Schema) *Journal {
	return &Journal{
		client: client,
		schema: schema,
		last:   make(map[int64]string),
	}
}

// Log writes msg to the row's message cell. Write failures are logged and
// otherwise ignored; a message is never worth failing a row over.
func (j *Journal) Log(ctx context.Context, rowID int64, msg string) {
	j.last[rowID] = msg
	logger := logging.FromContext(ctx)

	err := j.client.UpdateRowCells(ctx, j.schema.SheetID, rowID, []sheets.CellUpdate{
		{ColumnID: j.schema.ID(ColMessage), Value: msg},
	})
	if err != nil {
		logger.Warn().Err(err).Int64("row_id", rowID).Str("message", msg).Msg("Failed to log message to conductor sheet")
		return
	}
	logger.Info().Int64("row_id", rowID).Msgf("Logged: %s", msg)
}

// Post writes value into the conductor column titled column together with a
// "Posted to" message, as a single row update.
func (j *Journal) Post(ctx context.Context, rowID int64, column string, value any) error {
	msg := msgPosted(column, value)

	err := j.client.UpdateRowCells(ctx, j.schema.SheetID, rowID, []sheets.CellUpdate{
		{ColumnID: j.schema.ID(column), Value: value},
		{ColumnID: j.schema.ID(ColMessage), Value: msg},
	})
	if err != nil {
		return err
	}

	j.last[rowID] = msg
	logging.FromContext(ctx).Info().Int64("row_id", rowID).Msgf("Logged: %s", msg)
	return nil
}

// Last returns the last message written for a row.
func (j *Journal) Last(rowID int64) string {
	return j.last[rowID]
}
