package conductor

import (
	"fmt"

	"github.com/agentstation/conductor/pkg/constants"
)

// Row messages written to the conductor sheet's PYTHON_MESSAGE column. Users
// read these in the sheet, so the wording is kept stable.
const (
	msgDropdownType      = "DESTINATION_dropdown_type ERROR: the Dropdown type did not match the required options"
	msgContactExtraction = "EXTRACTING EMAILS ERROR: Check that your source is a CONTACT column, and that each value is a CONTACT, then check that the desired column in your destination is CONTACT column"
	msgPostFailed        = "Post_Update failed!"
)

func msgSheetNotFound(role Role) string {
	return fmt.Sprintf("%s SHEET ID ERROR: Sheet ID not found, check that the ID is right, and shared w/ %s", role, constants.SharedWithAccount)
}

func msgColumnNameNotFound(role Role) string {
	return fmt.Sprintf("%s COLUMN NAME ERROR: Column Name not found on %s sheet (with given sheet id)", role, role)
}

func msgColumnIDNotFound(role Role) string {
	return fmt.Sprintf("%s COLUMN ID ERROR: Column ID not found on %s sheet (with given sheet id)", role, role)
}

func msgPosted(column string, value any) string {
	return fmt.Sprintf("Posted to %s: %v", column, value)
}
