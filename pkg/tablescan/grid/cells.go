package grid

import (
	"github.com/ukaji3/tablescan-go/pkg/tablescan/logging"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
)

// BuildCellTable walks every row candidate of every column and keeps the
// rectangles that resolve. The first resolved cell fixes the column's left
// edge; a cell resolving to another left edge belongs to a different column
// and is dropped. Failed and dropped seeds are recorded in Dropped and never
// abort the table; columns left without cells are omitted.
func BuildCellTable(m *mask.Mask, columns []models.Column) *models.CellTable {
	log := logging.For("grid")
	table := &models.CellTable{Columns: make([]models.CellColumn, 0, len(columns))}

	for _, col := range columns {
		cc := models.CellColumn{X: col.X}
		seen := make(map[models.Rect]bool)
		for _, seed := range col.Rows {
			r, state := walk(m, seed)
			if state != walkDone {
				log.Debug("cell dropped", "seed", seed, "phase", state.String(), "err", ErrCellWalkFailed)
				table.Dropped = append(table.Dropped, seed)
				continue
			}
			if seen[r] {
				continue
			}
			if cc.Len() == 0 {
				cc.X = r.X
			} else if r.X != cc.X {
				log.Debug("cell dropped", "seed", seed, "left", r.X, "columnLeft", cc.X)
				table.Dropped = append(table.Dropped, seed)
				continue
			}
			seen[r] = true
			cc.Ys = append(cc.Ys, r.Y)
			cc.Widths = append(cc.Widths, r.Width)
			cc.Heights = append(cc.Heights, r.Height)
		}
		if cc.Len() == 0 {
			continue
		}
		table.Columns = append(table.Columns, cc)
	}

	log.Debug("cell table built", "columns", len(table.Columns), "cells", table.CellCount(), "dropped", len(table.Dropped))
	return table
}
