// Package mask provides the binary line mask the grid scanners operate on.
package mask

import "image"

const (
	background uint8 = 0
	foreground uint8 = 1
)

// Mask is a two-valued raster where foreground marks a table line pixel.
// Pixels are stored row-major so scans index the buffer directly.
type Mask struct {
	width  int
	height int
	pix    []uint8
}

// New returns an all-background mask of the given size.
// Negative dimensions are treated as zero.
func New(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}
}

// FromGray builds a mask from a grayscale image. Pixels strictly above
// threshold become foreground.
func FromGray(img *image.Gray, threshold uint8) *Mask {
	b := img.Bounds()
	m := New(b.Dx(), b.Dy())
	for y := 0; y < m.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+m.width]
		for x, v := range row {
			if v > threshold {
				m.pix[y*m.width+x] = foreground
			}
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.height }

// In reports whether (x, y) lies inside the mask.
func (m *Mask) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// At reports whether (x, y) is foreground. Out of range reads are background.
func (m *Mask) At(x, y int) bool {
	if !m.In(x, y) {
		return false
	}
	return m.pix[y*m.width+x] == foreground
}

// Set marks (x, y) as foreground or background. Out of range writes are ignored.
func (m *Mask) Set(x, y int, on bool) {
	if !m.In(x, y) {
		return
	}
	if on {
		m.pix[y*m.width+x] = foreground
	} else {
		m.pix[y*m.width+x] = background
	}
}

// FillRect sets every pixel of the half-open rectangle [x0,x1)×[y0,y1).
func (m *Mask) FillRect(x0, y0, x1, y1 int, on bool) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, on)
		}
	}
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	c := &Mask{width: m.width, height: m.height, pix: make([]uint8, len(m.pix))}
	copy(c.pix, m.pix)
	return c
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.pix {
		if v == foreground {
			n++
		}
	}
	return n
}

// Union returns a new mask that is foreground wherever a or b is foreground.
// The result takes the size of a; pixels of b outside a are ignored.
func Union(a, b *Mask) *Mask {
	out := a.Clone()
	for y := 0; y < out.height && y < b.height; y++ {
		for x := 0; x < out.width && x < b.width; x++ {
			if b.pix[y*b.width+x] == foreground {
				out.pix[y*out.width+x] = foreground
			}
		}
	}
	return out
}

// ToGray renders the mask as white lines on black, matching the look of the
// morphology output it was derived from.
func (m *Mask) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.width, m.height))
	for i, v := range m.pix {
		if v == foreground {
			img.Pix[i] = 255
		}
	}
	return img
}
