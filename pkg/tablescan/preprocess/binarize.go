//go:build !gocv

package preprocess

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/logging"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
)

// Binarize produces a mask whose foreground pixels are the table's grid lines.
// The image is converted to grayscale and inverted so ink is bright, then
// thresholded against its local mean. Horizontal and vertical lines are
// isolated by an opening with a long thin element along each axis, and the two
// line masks are joined.
func Binarize(img image.Image, p Params) (*mask.Mask, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	p = p.normalized()

	inverted := imaging.Invert(imaging.Grayscale(img))
	bin := adaptiveThreshold(luminance(inverted), p.BlockSize, p.C)

	hLen := max(bin.Width()/p.Scale, 1)
	vLen := max(bin.Height()/p.Scale, 1)
	horizontal := open(bin, hLen, true)
	vertical := open(bin, vLen, false)

	logging.For("preprocess").Debug("mask binarized",
		"width", bin.Width(), "height", bin.Height(),
		"thresholded", bin.Count(), "horizontal", horizontal.Count(), "vertical", vertical.Count(),
		"hElement", hLen, "vElement", vLen)

	return mask.Union(horizontal, vertical), nil
}

// luminance copies the red channel of a grayscale NRGBA image into a Gray.
func luminance(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[y*dst.Stride+x] = row[x*4]
		}
	}
	return dst
}
