package tablescan

import (
	"github.com/tidwall/rtree"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
)

// Index answers which cell covers a pixel.
type Index struct {
	tr rtree.RTreeG[models.CellResult]
}

// NewIndex indexes every cell of table.
func NewIndex(table *models.CellTable) *Index {
	ix := &Index{}
	for _, c := range Cells(table) {
		r := c.Rect
		ix.tr.Insert(
			[2]float64{float64(r.X), float64(r.Y)},
			[2]float64{float64(r.X + r.Width - 1), float64(r.Y + r.Height - 1)},
			c,
		)
	}
	return ix
}

// Len returns the number of indexed cells.
func (ix *Index) Len() int {
	return ix.tr.Len()
}

// At returns the cell whose rectangle contains (x, y). Pixels on grid lines
// belong to no cell. When rectangles overlap the lowest column, then row, wins.
func (ix *Index) At(x, y int) (models.CellResult, bool) {
	var (
		best  models.CellResult
		found bool
	)
	p := [2]float64{float64(x), float64(y)}
	ix.tr.Search(p, p, func(_, _ [2]float64, c models.CellResult) bool {
		if !found || c.Column < best.Column || (c.Column == best.Column && c.Row < best.Row) {
			best, found = c, true
		}
		return true
	})
	return best, found
}
