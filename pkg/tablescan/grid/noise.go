package grid

import (
	"github.com/ukaji3/tablescan-go/pkg/tablescan/logging"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
)

// DefaultMinSegmentLength is the shortest run kept by RemoveNoise.
const DefaultMinSegmentLength = 100

// RemoveNoise erases line fragments too short to be grid lines. Each axis is
// filtered on its own copy of the mask: horizontal runs shorter than
// minLength are cleared in one copy, vertical runs in the other, and the
// result is their union. A run of exactly minLength survives.
func RemoveNoise(m *mask.Mask, minLength int) *mask.Mask {
	horizontal := m.Clone()
	hRemoved := eraseShort(horizontal, ScanHorizontal(m), minLength)

	vertical := m.Clone()
	vRemoved := eraseShort(vertical, ScanVertical(m), minLength)

	logging.For("grid").Debug("noise removed",
		"horizontal", hRemoved, "vertical", vRemoved, "minLength", minLength)

	return mask.Union(horizontal, vertical)
}

// eraseShort clears the pixels of every segment shorter than minLength and
// returns how many segments were erased.
func eraseShort(m *mask.Mask, segments []models.Segment, minLength int) int {
	removed := 0
	for _, s := range segments {
		if s.Length() >= minLength {
			continue
		}
		if s.Axis == models.Vertical {
			for y := s.Y1; y < s.Y2; y++ {
				m.Set(s.X1, y, false)
			}
		} else {
			for x := s.X1; x < s.X2; x++ {
				m.Set(x, s.Y1, false)
			}
		}
		removed++
	}
	return removed
}
