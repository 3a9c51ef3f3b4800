// Package sheets defines the data types and client contract for the hosted
// tabular service the conductor reads from and writes to. The types mirror
// the Smartsheet REST API 2.0 wire format so implementations can decode
// responses straight into them.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// Client is the remote sheet API the conductor depends on.
// All calls are blocking and honor ctx cancellation.
type Client interface {
	// Columns returns the column metadata of a sheet in sheet order.
	Columns(ctx context.Context, sheetID int64) ([]Column, error)

	// Rows returns the rows of a sheet.
	Rows(ctx context.Context, sheetID int64, opts RowsOptions) ([]Row, error)

	// UpdateColumn rewrites the definition of a single column.
	UpdateColumn(ctx context.Context, sheetID, columnID int64, update ColumnUpdate) error

	// UpdateRowCells writes cell values into one row.
	UpdateRowCells(ctx context.Context, sheetID, rowID int64, cells []CellUpdate) error
}

// RowsOptions narrows a Rows call.
type RowsOptions struct {
	// ColumnIDs restricts returned cells to these columns. Empty means all columns.
	ColumnIDs []int64

	// ObjectValues requests structured cell values (contacts, multi-contacts).
	ObjectValues bool
}

// ColumnType is the Smartsheet column type.
type ColumnType string

// Column types used by the conductor.
const (
	ColumnTypeText             ColumnType = "TEXT_NUMBER"
	ColumnTypeCheckbox         ColumnType = "CHECKBOX"
	ColumnTypePicklist         ColumnType = "PICKLIST"
	ColumnTypeMultiPicklist    ColumnType = "MULTI_PICKLIST"
	ColumnTypeContactList      ColumnType = "CONTACT_LIST"
	ColumnTypeMultiContactList ColumnType = "MULTI_CONTACT_LIST"
)

// Column is one column of a sheet.
type Column struct {
	ID    int64      `json:"id"`
	Index int        `json:"index"`
	Title string     `json:"title"`
	Type  ColumnType `json:"type,omitempty"`
}

// Row is one sheet row.
type Row struct {
	ID        int64  `json:"id"`
	RowNumber int    `json:"rowNumber,omitempty"`
	Cells     []Cell `json:"cells"`
}

// Cell returns the cell for columnID, if the row has one.
func (r Row) Cell(columnID int64) (Cell, bool) {
	for _, c := range r.Cells {
		if c.ColumnID == columnID {
			return c, true
		}
	}
	return Cell{}, false
}

// Cell is one cell of a row. Value holds a string, bool, or json.Number.
type Cell struct {
	ColumnID     int64        `json:"columnId"`
	Value        any          `json:"value,omitempty"`
	DisplayValue string       `json:"displayValue,omitempty"`
	ObjectValue  *ObjectValue `json:"objectValue,omitempty"`
}

// String renders the cell value as text. Blank cells render as "".
func (c Cell) String() string {
	return ValueString(c.Value)
}

// Bool reports whether the cell holds a truthy value (checkbox columns).
func (c Cell) Bool() bool {
	switch v := c.Value.(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		b, err := strconv.ParseBool(strings.TrimSpace(ValueString(v)))
		return err == nil && b
	}
}

// ValueString renders a decoded cell value as text.
func ValueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ParseID parses a sheet, column or row id from a cell value.
// It returns false for blank or non numeric values.
func ParseID(v any) (int64, bool) {
	s := strings.TrimSpace(ValueString(v))
	if s == "" {
		return 0, false
	}
	// Numbers can arrive in float form ("5.509709919741828E15") from text columns.
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if id <= 0 {
			return 0, false
		}
		return id, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f == float64(int64(f)) {
		return int64(f), true
	}
	return 0, false
}

// Object value types.
const (
	ObjectTypeContact      = "CONTACT"
	ObjectTypeMultiContact = "MULTI_CONTACT"
)

// ObjectValue is a structured cell value. Cells of plain columns carry a
// primitive object value, which is kept in Value with an empty ObjectType.
type ObjectValue struct {
	ObjectType string        `json:"objectType,omitempty"`
	Email      string        `json:"email,omitempty"`
	Name       string        `json:"name,omitempty"`
	Values     []ObjectValue `json:"values,omitempty"`
	Value      any           `json:"value,omitempty"`
}

// UnmarshalJSON accepts both object and primitive object values.
func (o *ObjectValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var v any
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return err
		}
		*o = ObjectValue{Value: v}
		return nil
	}

	type plain ObjectValue
	var p plain
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*o = ObjectValue(p)
	return nil
}

// Contact is an identity pair offered by a contact list column.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// CellUpdate is one cell write.
type CellUpdate struct {
	ColumnID int64 `json:"columnId"`
	Value    any   `json:"value"`
	Strict   bool  `json:"strict"`
}

// ColumnUpdate is a column definition payload. Implementations are the
// closed set of payload shapes below.
type ColumnUpdate interface {
	ColumnType() ColumnType
}

// OptionsUpdate replaces the options of a PICKLIST or MULTI_PICKLIST column.
type OptionsUpdate struct {
	Type               ColumnType `json:"type"`
	Options            []string   `json:"options"`
	Validation         bool       `json:"validation"`
	OverrideValidation bool       `json:"overrideValidation"`
}

// ColumnType implements ColumnUpdate.
func (u OptionsUpdate) ColumnType() ColumnType { return u.Type }

// ContactOptionsUpdate replaces the contact options of a CONTACT_LIST or
// MULTI_CONTACT_LIST column.
type ContactOptionsUpdate struct {
	Type               ColumnType `json:"type"`
	ContactOptions     []Contact  `json:"contactOptions"`
	Formula            string     `json:"formula"`
	OverrideValidation bool       `json:"overrideValidation"`
}

// ColumnType implements ColumnUpdate.
func (u ContactOptionsUpdate) ColumnType() ColumnType { return u.Type }
