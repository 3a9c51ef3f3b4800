package conductor

import (
	"fmt"
	"time"
)

// Mode is the kind of run.
type Mode string

// Run modes.
const (
	ModeFull    Mode = "full"
	ModeFocused Mode = "focused"
)

// Status is the outcome of one row in a run.
type Status string

// Row statuses.
const (
	StatusPosted  Status = "posted"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// RowReport is the outcome of one mapping row.
type RowReport struct {
	RowID       int64  `json:"row_id" yaml:"row_id"`
	ConductorID string `json:"conductor_id" yaml:"conductor_id"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Kind        string `json:"kind" yaml:"kind"`
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Values      int    `json:"values" yaml:"values"`
	Status      Status `json:"status" yaml:"status"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report summarizes a run.
type Report struct {
	RunID     string        `json:"run_id" yaml:"run_id"`
	Mode      Mode          `json:"mode" yaml:"mode"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
	Rows      []RowReport   `json:"rows" yaml:"rows"`
}

// Counts returns the number of rows per status.
func (r *Report) Counts() (posted, skipped, failed int) {
	for _, row := range r.Rows {
		switch row.Status {
		case StatusPosted:
			posted++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return posted, skipped, failed
}

// Summary returns a one line description of the run.
func (r *Report) Summary() string {
	posted, skipped, failed := r.Counts()
	return fmt.Sprintf("%s run %s: %d posted, %d skipped, %d failed in %s",
		r.Mode, r.RunID, posted, skipped, failed, formatElapsed(r.Elapsed))
}

func newRowReport(row MappingRow) RowReport {
	return RowReport{
		RowID:       row.RowID,
		ConductorID: row.ConductorID,
		Label:       row.Label,
		Kind:        row.KindValue,
		Source:      describeRef(row.Source),
		Destination: describeRef(row.Destination),
	}
}

func describeRef(ref Reference) string {
	if ref.ColumnName != "" {
		return fmt.Sprintf("%d/%s", ref.SheetID, ref.ColumnName)
	}
	return fmt.Sprintf("%d/%d", ref.SheetID, ref.ColumnID)
}

// formatElapsed renders d as MM:SS.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
