// Package preprocess turns a photographed or scanned table image into the
// binary line mask consumed by the grid package.
package preprocess

import (
	"errors"
	"image"
)

// ErrEmptyImage indicates the input image is nil or has no pixels.
var ErrEmptyImage = errors.New("empty image")

// Params configures Binarize.
type Params struct {
	// BlockSize is the side of the adaptive threshold window. Even values are
	// rounded up to the next odd size.
	BlockSize int
	// C is subtracted from the local mean; a negative value raises the
	// threshold above the mean.
	C int
	// Scale divides the image width (height) to get the length of the
	// horizontal (vertical) structuring element.
	Scale int
}

// DefaultParams returns the parameters used for ruled tables at 300 DPI.
func DefaultParams() Params {
	return Params{
		BlockSize: 19,
		C:         -2,
		Scale:     15,
	}
}

// checkImage rejects a nil image or one without pixels.
func checkImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyImage
	}
	return nil
}

func (p Params) normalized() Params {
	d := DefaultParams()
	if p.BlockSize <= 1 {
		p.BlockSize = d.BlockSize
	}
	if p.BlockSize%2 == 0 {
		p.BlockSize++
	}
	if p.Scale <= 0 {
		p.Scale = d.Scale
	}
	return p
}
