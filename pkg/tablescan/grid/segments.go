// Package grid turns a binary line mask into column/row indexed cell
// rectangles: segment scanning, noise removal, grid detection and the
// boundary walk that recovers each cell.
package grid

import (
	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
)

// ScanHorizontal returns every maximal horizontal foreground run, row by row
// from the top. Scanning resumes at the end of each run, so no pixel is
// visited inside a run that was already found.
func ScanHorizontal(m *mask.Mask) []models.Segment {
	var segments []models.Segment
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.At(x, y) {
				continue
			}
			end := x
			for end < m.Width() && m.At(end, y) {
				end++
			}
			segments = append(segments, models.Segment{X1: x, Y1: y, X2: end, Y2: y, Axis: models.Horizontal})
			x = end
		}
	}
	return segments
}

// ScanVertical is the column-wise mirror of ScanHorizontal.
func ScanVertical(m *mask.Mask) []models.Segment {
	var segments []models.Segment
	for x := 0; x < m.Width(); x++ {
		for y := 0; y < m.Height(); y++ {
			if !m.At(x, y) {
				continue
			}
			end := y
			for end < m.Height() && m.At(x, end) {
				end++
			}
			segments = append(segments, models.Segment{X1: x, Y1: y, X2: x, Y2: end, Axis: models.Vertical})
			y = end
		}
	}
	return segments
}
