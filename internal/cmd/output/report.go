package output

import (
	"io"

	"github.com/agentstation/conductor/internal/cmd/constants"
	"github.com/agentstation/conductor/internal/cmd/globals"
	"github.com/agentstation/conductor/internal/cmd/table"
	"github.com/agentstation/conductor/pkg/conductor"
)

// FormatReport writes a run report in the format selected by the global flags.
// Tables show one line per row; structured formats carry the whole report.
func FormatReport(w io.Writer, report *conductor.Report, globalFlags *globals.Flags) error {
	format := DetectFormat(globalFlags.Output)
	formatter := NewFormatter(format)

	var outputData any
	switch format {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = table.ReportToTableData(report, format == constants.FormatWide)
	default:
		outputData = report
	}

	return formatter.Format(w, outputData)
}

// FormatRows writes parsed mapping rows in the format selected by the global flags.
func FormatRows(w io.Writer, rows []conductor.MappingRow, globalFlags *globals.Flags) error {
	format := DetectFormat(globalFlags.Output)
	formatter := NewFormatter(format)

	var outputData any
	switch format {
	case constants.FormatTable, constants.FormatWide, "":
		outputData = table.MappingRowsToTableData(rows, format == constants.FormatWide)
	default:
		outputData = rows
	}

	return formatter.Format(w, outputData)
}

// FormatAny formats any data type for output.
func FormatAny(w io.Writer, data any, globalFlags *globals.Flags) error {
	return NewFormatter(DetectFormat(globalFlags.Output)).Format(w, data)
}
