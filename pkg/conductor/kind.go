package conductor

import (
	"strings"

	"github.com/agentstation/conductor/pkg/errors"
	"github.com/agentstation/conductor/pkg/sheets"
)

// DropdownKind is the shape of a destination dropdown column.
type DropdownKind int

// Dropdown kinds. KindUnknown marks a DESTINATION_dropdown_type the conductor
// does not recognize; rows carrying it are reported and never updated.
const (
	KindUnknown DropdownKind = iota
	KindPicklist
	KindMultiPicklist
	KindContact
	KindMultiContact
)

// ParseDropdownKind parses a DESTINATION_dropdown_type cell value.
// Matching ignores case and surrounding space.
func ParseDropdownKind(s string) (DropdownKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "picklist":
		return KindPicklist, nil
	case "multi-picklist":
		return KindMultiPicklist, nil
	case "contact":
		return KindContact, nil
	case "multi-contact":
		return KindMultiContact, nil
	default:
		return KindUnknown, errors.NewDropdownTypeError(s)
	}
}

// String returns the control table spelling of the kind.
func (k DropdownKind) String() string {
	switch k {
	case KindPicklist:
		return "picklist"
	case KindMultiPicklist:
		return "multi-picklist"
	case KindContact:
		return "contact"
	case KindMultiContact:
		return "multi-contact"
	default:
		return "unknown"
	}
}

// IsContact reports whether the kind offers contact identities rather than strings.
func (k DropdownKind) IsContact() bool {
	return k == KindContact || k == KindMultiContact
}

// ColumnType returns the column type a destination of this kind is set to.
func (k DropdownKind) ColumnType() (sheets.ColumnType, error) {
	switch k {
	case KindPicklist:
		return sheets.ColumnTypePicklist, nil
	case KindMultiPicklist:
		return sheets.ColumnTypeMultiPicklist, nil
	case KindContact:
		return sheets.ColumnTypeContactList, nil
	case KindMultiContact:
		return sheets.ColumnTypeMultiContactList, nil
	default:
		return "", errors.NewDropdownTypeError(k.String())
	}
}

// Role selects which side of a mapping row a stage works on.
type Role string

// Roles.
const (
	RoleSource      Role = "SOURCE"
	RoleDestination Role = "DESTINATION"
)

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// columnIDTitle is the conductor column caching this role's column id.
func (r Role) columnIDTitle() string {
	if r == RoleSource {
		return ColSourceColumnID
	}
	return ColDestinationColumnID
}

// columnNameTitle is the conductor column holding this role's column name.
func (r Role) columnNameTitle() string {
	if r == RoleSource {
		return ColSourceColumnName
	}
	return ColDestinationColumnName
}
