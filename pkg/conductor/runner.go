// Package conductor keeps dropdown columns across Smartsheet sheets in sync
// with the source columns declared in a conductor sheet.
//
// A run loads the mapping rows of the conductor sheet, audits their source and
// destination column references, then rewrites the option set of every
// eligible destination column from the distinct values of its source column.
// Row outcomes are written back into the conductor sheet's message column.
package conductor

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/logging"
	"github.com/agentstation/conductor/pkg/sheets"
)

// Runner drives full and focused runs against one conductor sheet.
// A Runner is not safe for concurrent runs against the same conductor sheet.
type Runner struct {
	client  sheets.Client
	sheetID int64
	now     func() time.Time
	runID   func() string
}

// New creates a runner for the conductor sheet sheetID.
func New(client sheets.Client, sheetID int64, opts ...Option) *Runner {
	r := &Runner{
		client:  client,
		sheetID: sheetID,
		now:     time.Now,
		runID:   defaultRunID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FullRun processes every enabled mapping row.
func (r *Runner) FullRun(ctx context.Context) (*Report, error) {
	return r.run(ctx, ModeFull, nil)
}

// FocusedRun processes only the mapping rows whose CONDUCTOR_rowid is in ids.
func (r *Runner) FocusedRun(ctx context.Context, ids []string) (*Report, error) {
	return r.run(ctx, ModeFocused, ids)
}

// Rows loads and returns the parsed mapping rows without auditing them.
// Missing CONDUCTOR_rowid values are still backfilled.
func (r *Runner) Rows(ctx context.Context) ([]MappingRow, error) {
	_, rows, err := r.load(ctx)
	return rows, err
}

// session is the per run state shared by the stages.
type session struct {
	runner    *Runner
	start     time.Time
	journal   *Journal
	collector *Collector
	updater   *Updater
}

func (r *Runner) run(ctx context.Context, mode Mode, ids []string) (*Report, error) {
	report := &Report{RunID: r.runID(), Mode: mode, StartedAt: r.now(), Rows: []RowReport{}}
	ctx = logging.WithRun(ctx, report.RunID)
	s := &session{runner: r, start: report.StartedAt}

	// Loaded
	s.progress(ctx, "gathering data...")
	journal, rows, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	s.journal = journal
	s.collector = NewCollector(r.client, journal)
	s.updater = NewUpdater(r.client, journal, r.now)

	// Filtered
	if mode == ModeFocused {
		rows = filterFocused(rows, ids)
	} else {
		rows = filterEnabled(rows)
	}
	logging.FromContext(ctx).Debug().Int("rows", len(rows)).Str("mode", string(mode)).Msg("Filtered mapping rows")

	// Audited
	resolver := NewResolver(journal)
	auditor := NewAuditor(r.client, journal, resolver)
	s.progress(ctx, "auditing source data...")
	rows = auditor.Audit(ctx, rows, RoleSource)
	s.progress(ctx, "auditing destination data...")
	rows = auditor.Audit(ctx, rows, RoleDestination)

	// Updated
	s.progress(ctx, "initiating column updates...")
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			report.Elapsed = r.now().Sub(report.StartedAt)
			return report, err
		}
		s.progress(ctx, fmt.Sprintf("updating row %s (%d of %d)", rowLabel(row), i+1, len(rows)))
		rep := s.process(logging.WithRow(ctx, row.ConductorID), row)
		rep.Message = journal.Last(row.RowID)
		report.Rows = append(report.Rows, rep)
	}

	// Done
	report.Elapsed = r.now().Sub(report.StartedAt)
	s.progress(ctx, "fin")
	return report, nil
}

// process runs collection and update for one row. This is the only place row
// errors are caught.
func (s *session) process(ctx context.Context, row MappingRow) RowReport {
	rep := newRowReport(row)

	if !row.Eligible() {
		rep.Status = StatusSkipped
		return rep
	}

	bundle, err := s.collector.Collect(ctx, row)
	switch {
	case err == nil, errors.Is(err, errors.ErrContactExtraction):
		// An extraction failure still posts the empty bundle.
	case errors.Is(err, errors.ErrUnsupportedDropdownType):
		s.journal.Log(ctx, row.RowID, msgDropdownType)
		rep.Status, rep.Error = StatusFailed, err.Error()
		return rep
	default:
		s.journal.Log(ctx, row.RowID, msgPostFailed)
		rep.Status, rep.Error = StatusFailed, err.Error()
		return rep
	}
	rep.Values = bundle.Len()

	if err := s.updater.Apply(ctx, row, bundle); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Row update failed")
		rep.Status, rep.Error = StatusFailed, err.Error()
		return rep
	}
	rep.Status = StatusPosted
	return rep
}

// load reads the conductor sheet. Failing to read it or to resolve its
// columns is fatal for the run.
func (r *Runner) load(ctx context.Context) (*Journal, []MappingRow, error) {
	id := strconv.FormatInt(r.sheetID, 10)

	columns, err := r.client.Columns(ctx, r.sheetID)
	if err != nil {
		return nil, nil, errors.WrapResource("fetch", "conductor sheet", id, err)
	}
	schema, err := NewSchema(r.sheetID, columns)
	if err != nil {
		return nil, nil, err
	}

	raw, err := r.client.Rows(ctx, r.sheetID, sheets.RowsOptions{})
	if err != nil {
		return nil, nil, errors.WrapResource("fetch", "conductor rows", id, err)
	}

	journal := NewJournal(r.client, schema)
	return journal, parseRows(ctx, schema, journal, raw), nil
}

func (s *session) progress(ctx context.Context, msg string) {
	logging.FromContext(ctx).Info().Msgf("%s %s", formatElapsed(s.runner.now().Sub(s.start)), msg)
}

func rowLabel(row MappingRow) string {
	if row.Label != "" {
		return row.Label
	}
	return row.ConductorID
}
