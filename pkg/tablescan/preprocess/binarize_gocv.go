//go:build gocv

package preprocess

import (
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/logging"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
)

// Binarize produces a mask whose foreground pixels are the table's grid lines,
// using OpenCV for the threshold and the morphology. The image is converted to
// grayscale and inverted, thresholded against its local mean, then opened with
// a long thin rectangle along each axis. The two line images are joined.
func Binarize(img image.Image, p Params) (*mask.Mask, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	p = p.normalized()

	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorRGBToGray)
	gocv.BitwiseNot(gray, &gray)

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.AdaptiveThreshold(gray, &bin, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinary, p.BlockSize, float32(p.C))

	hLen := max(bin.Cols()/p.Scale, 1)
	vLen := max(bin.Rows()/p.Scale, 1)
	horizontal := openAxis(bin, image.Pt(hLen, 1))
	defer horizontal.Close()
	vertical := openAxis(bin, image.Pt(1, vLen))
	defer vertical.Close()

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.BitwiseOr(horizontal, vertical, &lines)

	out, err := lines.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to read line image: %w", err)
	}
	m := mask.FromGray(asGray(out), 127)

	logging.For("preprocess").Debug("mask binarized",
		"width", m.Width(), "height", m.Height(), "lines", m.Count(),
		"hElement", hLen, "vElement", vLen, "backend", "gocv")

	return m, nil
}

// openAxis erodes then dilates src with a size rectangle. The caller closes
// the returned Mat.
func openAxis(src gocv.Mat, size image.Point) gocv.Mat {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, size)
	defer kernel.Close()

	eroded := gocv.NewMat()
	defer eroded.Close()
	gocv.Erode(src, &eroded, kernel)

	opened := gocv.NewMat()
	gocv.Dilate(eroded, &opened, kernel)
	return opened
}

func asGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), img, b.Min, draw.Src)
	return g
}
