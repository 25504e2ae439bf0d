package models

// Column is a detected vertical grid position together with the row
// candidates found next to it. Candidates are not yet cell rectangles.
type Column struct {
	// X is the detected column position.
	X int `json:"x"`
	// Rows are the candidate seed points ordered by Y.
	Rows []Point `json:"rows"`
}

// CellColumn holds the cells of one column. Ys, Widths and Heights are
// index-aligned: index i across all three describes one cell.
type CellColumn struct {
	// X is the left edge shared by the cells of the column.
	X int `json:"x"`
	// Ys are the cell top edges.
	Ys []int `json:"ys"`
	// Widths are the cell widths.
	Widths []int `json:"widths"`
	// Heights are the cell heights.
	Heights []int `json:"heights"`
}

// Len returns the number of cells in the column.
func (c CellColumn) Len() int { return len(c.Ys) }

// Rect returns the rectangle of the i-th cell (0-based).
func (c CellColumn) Rect(i int) Rect {
	return Rect{X: c.X, Y: c.Ys[i], Width: c.Widths[i], Height: c.Heights[i]}
}

// CellTable is the ordered set of columns recovered from one mask.
type CellTable struct {
	// Columns are ordered left to right.
	Columns []CellColumn `json:"columns"`
	// Dropped are the seed points whose boundary walk failed.
	Dropped []Point `json:"dropped,omitempty"`
}

// Cell returns the rectangle at the 0-based column and row, or false when
// either index is outside the table.
func (t *CellTable) Cell(col, row int) (Rect, bool) {
	if t == nil || col < 0 || col >= len(t.Columns) {
		return Rect{}, false
	}
	c := t.Columns[col]
	if row < 0 || row >= c.Len() {
		return Rect{}, false
	}
	return c.Rect(row), true
}

// CellCount returns the number of cells across all columns.
func (t *CellTable) CellCount() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, c := range t.Columns {
		n += c.Len()
	}
	return n
}

// MaxRows returns the largest row count of any column.
func (t *CellTable) MaxRows() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, c := range t.Columns {
		if c.Len() > n {
			n = c.Len()
		}
	}
	return n
}

// TableData is the document-level extraction result.
type TableData struct {
	// Source is the input file name (no path).
	Source string `json:"source"`
	// Width is the image width in pixels.
	Width int `json:"width"`
	// Height is the image height in pixels.
	Height int `json:"height"`
	// Columns is the number of detected columns.
	Columns int `json:"columns"`
	// Rows is the largest number of rows in any column.
	Rows int `json:"rows"`
	// Cells lists every located cell, column-major.
	Cells []CellResult `json:"cells"`
	// Dropped are the seed points whose boundary walk failed.
	Dropped []Point `json:"dropped,omitempty"`
}
