package grid

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/logging"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
)

// ErrGeometryNotFound indicates the mask holds no usable table structure.
var ErrGeometryNotFound = errors.New("table geometry not found")

// DetectParams holds the tolerances used by Detect.
type DetectParams struct {
	// StartX and StartY are where the anchor search begins.
	StartX, StartY int
	// RowBackoff is subtracted from the y of each row line so the seed
	// lands inside the cell above it.
	RowBackoff int
	// RowMergeDistance collapses row candidates this close together.
	RowMergeDistance int
	// ColumnTolerance is the x distance within which a row candidate
	// belongs to a column (exclusive).
	ColumnTolerance int
}

// DefaultDetectParams returns the tolerances tuned for 300 DPI scans.
func DefaultDetectParams() DetectParams {
	return DetectParams{
		StartX:           20,
		StartY:           20,
		RowBackoff:       5,
		RowMergeDistance: 10,
		ColumnTolerance:  10,
	}
}

// Detect finds the table columns of a cleaned mask together with the row
// candidates next to each column. Every returned column has at least one
// row candidate.
func Detect(m *mask.Mask, p DetectParams) ([]models.Column, error) {
	log := logging.For("grid")

	anchor, err := findAnchor(m, p.StartX, p.StartY)
	if err != nil {
		return nil, err
	}
	origin, err := enterCell(m, anchor)
	if err != nil {
		return nil, err
	}
	right := rightBoundary(m)
	if right <= origin.X {
		return nil, fmt.Errorf("%w: right edge %d not beyond origin %v", ErrGeometryNotFound, right, origin)
	}
	log.Debug("anchor found", "anchor", anchor, "origin", origin, "right", right)

	xs, candidates := sweep(m, origin, right, p.RowBackoff)
	xs = uniqueInts(xs)
	candidates = collapseRows(candidates, p.RowMergeDistance)

	// The right border is found like any other vertical line but has no
	// cells to its right, so it never collects rows.
	columns := make([]models.Column, 0, len(xs))
	skipped := 0
	for _, x := range xs {
		rows := assignRows(candidates, x, p.ColumnTolerance, p.RowMergeDistance)
		if len(rows) == 0 {
			skipped++
			continue
		}
		columns = append(columns, models.Column{X: x, Rows: rows})
	}
	log.Debug("columns detected", "columns", len(columns), "withoutRows", skipped, "rowCandidates", len(candidates))
	return columns, nil
}

// rightBoundary returns the x of the last foreground pixel on the middle row.
// Stray pixels to the left of the true edge are tolerated because only the
// last hit counts.
func rightBoundary(m *mask.Mask) int {
	mid := m.Height() / 2
	last := 0
	for x := 0; x < m.Width(); x++ {
		if m.At(x, mid) {
			last = x
		}
	}
	return last
}

// findAnchor steps diagonally from (x, y), alternating x then y, until it
// meets a line pixel.
func findAnchor(m *mask.Mask, x, y int) (models.Point, error) {
	stepX := true
	for {
		if !m.In(x, y) {
			return models.Point{}, fmt.Errorf("%w: anchor scan left the image at (%d,%d)", ErrGeometryNotFound, x, y)
		}
		if m.At(x, y) {
			return models.Point{X: x, Y: y}, nil
		}
		if stepX {
			x++
		} else {
			y++
		}
		stepX = !stepX
	}
}

// enterCell steps diagonally off the line the anchor sits on and returns the
// first background pixel, which lies inside the first cell.
func enterCell(m *mask.Mask, anchor models.Point) (models.Point, error) {
	x, y := anchor.X, anchor.Y
	for m.At(x, y) {
		x++
		y++
	}
	if !m.In(x, y) {
		return models.Point{}, fmt.Errorf("%w: no cell interior past anchor %v", ErrGeometryNotFound, anchor)
	}
	return models.Point{X: x, Y: y}, nil
}

// sweep walks x from the origin towards the right boundary. At every sweep
// position it collects row candidates, then looks ahead along the origin row
// for the next vertical line, records it as a column and resumes just past it.
// The column pass alone decides where the sweep goes next, so a position on a
// vertical line is never scanned for rows.
func sweep(m *mask.Mask, origin models.Point, right, backoff int) ([]int, []models.Point) {
	xs := []int{origin.X}
	var candidates []models.Point

	x := origin.X
	for x < right {
		candidates = append(candidates, scanRows(m, x, origin.Y, backoff)...)

		col, next, ok := nextColumn(m, x, origin.Y, right)
		if col >= 0 {
			xs = append(xs, col)
		}
		if !ok {
			break
		}
		x = next
	}
	return xs, candidates
}

// scanRows scans down column x from y0 and records a candidate each time a
// horizontal line starts, backed off by backoff pixels.
func scanRows(m *mask.Mask, x, y0, backoff int) []models.Point {
	var rows []models.Point
	inRow := false
	for y := y0; y < m.Height(); y++ {
		on := m.At(x, y)
		if on && !inRow {
			rows = append(rows, models.Point{X: x, Y: y - backoff})
			inRow = true
		} else if !on && inRow {
			inRow = false
		}
	}
	return rows
}

// nextColumn scans row y from x towards right. It returns the x where the
// next vertical line starts (or -1) and the first background x after that
// line. ok is false when the scan reached right before leaving the line.
func nextColumn(m *mask.Mask, x, y, right int) (col, next int, ok bool) {
	col = -1
	inCol := false
	for nx := x; nx < right; nx++ {
		on := m.At(nx, y)
		if on && !inCol {
			col = nx
			inCol = true
		} else if !on && inCol {
			return col, nx, true
		}
	}
	return col, 0, false
}

// collapseRows drops a candidate when the next one shares its x and lies
// within dist pixels below it.
func collapseRows(points []models.Point, dist int) []models.Point {
	out := make([]models.Point, 0, len(points))
	for i, p := range points {
		if i+1 < len(points) {
			n := points[i+1]
			if n.X == p.X && n.Y-p.Y <= dist {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// assignRows collects the candidates within tol of column x, ordered by y,
// with near-duplicates from neighbouring scan positions collapsed.
func assignRows(candidates []models.Point, x, tol, dist int) []models.Point {
	var rows []models.Point
	for _, c := range candidates {
		if abs(c.X-x) < tol {
			rows = append(rows, c)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Y < rows[j].Y })

	out := make([]models.Point, 0, len(rows))
	for i, r := range rows {
		if i+1 < len(rows) && rows[i+1].Y-r.Y <= dist {
			continue
		}
		out = append(out, r)
	}
	return out
}

func uniqueInts(xs []int) []int {
	seen := make(map[int]bool, len(xs))
	out := make([]int, 0, len(xs))
	for _, x := range xs {
		if seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
