package conductor

import "github.com/agentstation/conductor/pkg/sheets"

// Catalog is the column metadata of one sheet, fetched once per sheet per audit
// and shared read only by every row referencing that sheet.
type Catalog struct {
	SheetID int64
	columns []sheets.Column
	byTitle map[string]int
	byID    map[int64]int
}

// NewCatalog indexes columns in the order given. When titles repeat, the
// first column with that title wins.
func NewCatalog(sheetID int64, columns []sheets.Column) *Catalog {
	c := &Catalog{
		SheetID: sheetID,
		columns: columns,
		byTitle: make(map[string]int, len(columns)),
		byID:    make(map[int64]int, len(columns)),
	}
	for i, col := range columns {
		if _, dup := c.byTitle[col.Title]; !dup {
			c.byTitle[col.Title] = i
		}
		c.byID[col.ID] = i
	}
	return c
}

// ID returns the id of the column titled title.
func (c *Catalog) ID(title string) (int64, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return 0, false
	}
	return c.columns[i].ID, true
}

// Title returns the title of column id.
func (c *Catalog) Title(id int64) (string, bool) {
	i, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return c.columns[i].Title, true
}

// Index returns the position of title in the ordered title list.
func (c *Catalog) Index(title string) (int, bool) {
	i, ok := c.byTitle[title]
	return i, ok
}

// Column returns the column with id.
func (c *Catalog) Column(id int64) (sheets.Column, bool) {
	i, ok := c.byID[id]
	if !ok {
		return sheets.Column{}, false
	}
	return c.columns[i], true
}

// Len returns the number of columns.
func (c *Catalog) Len() int {
	return len(c.columns)
}
