// Package table converts conductor results into rows for table output.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/conductor/pkg/conductor"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// maxMessage is the width row messages are cut to in non wide tables.
const maxMessage = 48

// ReportToTableData converts the rows of a run report to table format.
func ReportToTableData(report *conductor.Report, wide bool) Data {
	headers := []string{"Row", "Kind", "Source", "Destination", "Values", "Status"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "Message", "Error")
		align = append(align, AlignLeft, AlignLeft)
	} else {
		headers = append(headers, "Message")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		row := []string{
			rowName(r.Label, r.ConductorID),
			dash(r.Kind),
			r.Source,
			r.Destination,
			strconv.Itoa(r.Values),
			string(r.Status),
		}
		if wide {
			row = append(row, dash(r.Message), dash(r.Error))
		} else {
			row = append(row, dash(Truncate(r.Message, maxMessage)))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// MappingRowsToTableData converts parsed mapping rows to table format.
func MappingRowsToTableData(rows []conductor.MappingRow, wide bool) Data {
	headers := []string{"Row", "Conductor ID", "Enabled", "Kind", "Source Sheet", "Source Column", "Destination Sheet", "Destination Column"}
	if wide {
		headers = append(headers, "Description")
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{
			dash(r.Label),
			r.ConductorID,
			strconv.FormatBool(r.Enabled),
			dash(r.KindValue),
			sheetName(r.Source.SheetID, r.SourceSheetName),
			columnName(r.Source),
			sheetName(r.Destination.SheetID, ""),
			columnName(r.Destination),
		}
		if wide {
			row = append(row, dash(r.Description))
		}
		out = append(out, row)
	}

	return Data{Headers: headers, Rows: out}
}

// Truncate cuts s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 4 {
		return s
	}
	return string(r[:n-3]) + "..."
}

func columnName(ref conductor.Reference) string {
	switch {
	case ref.ColumnName != "" && ref.ColumnID != 0:
		return ref.ColumnName + " (" + strconv.FormatInt(ref.ColumnID, 10) + ")"
	case ref.ColumnName != "":
		return ref.ColumnName
	case ref.ColumnID != 0:
		return strconv.FormatInt(ref.ColumnID, 10)
	default:
		return "-"
	}
}

func sheetName(id int64, name string) string {
	if id == 0 {
		return "-"
	}
	s := strconv.FormatInt(id, 10)
	if name = strings.TrimSpace(name); name != "" {
		s = name + " (" + s + ")"
	}
	return s
}

func rowName(label, id string) string {
	if label != "" {
		return label
	}
	return id
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
