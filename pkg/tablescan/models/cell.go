package models

import "image"

// Rect is a cell rectangle in mask coordinates.
type Rect struct {
	// X is the left edge of the cell interior.
	X int `json:"x"`
	// Y is the top edge of the cell interior.
	Y int `json:"y"`
	// Width is the horizontal extent in pixels.
	Width int `json:"width"`
	// Height is the vertical extent in pixels.
	Height int `json:"height"`
}

// Valid reports whether the rectangle can be kept: non-negative origin and
// a positive size.
func (r Rect) Valid() bool {
	return r.X >= 0 && r.Y >= 0 && r.Width > 0 && r.Height > 0
}

// Image converts the rectangle to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

// CellResult is a located cell with its recognized text.
type CellResult struct {
	// Column is the 1-based column index.
	Column int `json:"column"`
	// Row is the 1-based row index within the column.
	Row int `json:"row"`
	// Rect is the cell rectangle in image coordinates.
	Rect Rect `json:"rect"`
	// Text is the recognized text, empty when recognition is off or failed.
	Text string `json:"text"`
}
