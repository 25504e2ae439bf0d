// Package models defines data structures for table cell extraction.
package models

// Point is an integer pixel coordinate in mask space.
type Point struct {
	// X is the column offset in pixels.
	X int `json:"x"`
	// Y is the row offset in pixels.
	Y int `json:"y"`
}

// Axis names the scan direction of a Segment.
type Axis int

const (
	// Horizontal segments run left to right along one row.
	Horizontal Axis = iota
	// Vertical segments run top to bottom along one column.
	Vertical
)

// Segment is a maximal run of foreground pixels along one axis.
// (X1,Y1) is the first pixel of the run; (X2,Y2) is the exclusive end,
// i.e. the first background position or the mask bound.
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
	// Axis is the scan direction that produced the run.
	Axis Axis `json:"axis"`
}

// Length returns the number of pixels in the run.
func (s Segment) Length() int {
	if s.Axis == Vertical {
		return s.Y2 - s.Y1
	}
	return s.X2 - s.X1
}
