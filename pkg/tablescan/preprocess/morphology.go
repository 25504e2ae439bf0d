//go:build !gocv

package preprocess

import (
	"image"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
)

// adaptiveThreshold marks a pixel foreground when it is brighter than the
// mean of the block x block window around it minus c. Windows are clipped at
// the image border. Sums come from an integral image so the cost does not
// depend on the block size.
func adaptiveThreshold(g *image.Gray, block, c int) *mask.Mask {
	w, h := g.Bounds().Dx(), g.Bounds().Dy()
	stride := w + 1
	sat := make([]int64, stride*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(g.Pix[y*g.Stride+x])
			sat[(y+1)*stride+x+1] = sat[y*stride+x+1] + rowSum
		}
	}

	half := block / 2
	m := mask.New(w, h)
	for y := 0; y < h; y++ {
		y0, y1 := max(y-half, 0), min(y+half+1, h)
		for x := 0; x < w; x++ {
			x0, x1 := max(x-half, 0), min(x+half+1, w)
			sum := sat[y1*stride+x1] - sat[y0*stride+x1] - sat[y1*stride+x0] + sat[y0*stride+x0]
			n := int64((y1 - y0) * (x1 - x0))
			v := int64(g.Pix[y*g.Stride+x])
			// v > sum/n - c, kept in integers
			if v*n > sum-int64(c)*n {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// open erodes then dilates m with a 1-pixel-thick line of the given length,
// horizontal or vertical. Runs along the axis at least length pixels long are
// restored exactly; shorter runs disappear. Pixels outside the mask are
// ignored by the erosion.
func open(m *mask.Mask, length int, horizontal bool) *mask.Mask {
	return dilate(erode(m, length, horizontal), length, horizontal)
}

// erode keeps a pixel when every in-bounds pixel of the element anchored on
// it is foreground. The element covers [p-a, p-a+length) with a = length/2.
func erode(m *mask.Mask, length int, horizontal bool) *mask.Mask {
	a := length / 2
	out := mask.New(m.Width(), m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.At(x, y) {
				continue
			}
			fits := true
			for k := -a; k < length-a && fits; k++ {
				px, py := x, y
				if horizontal {
					px += k
				} else {
					py += k
				}
				if m.In(px, py) && !m.At(px, py) {
					fits = false
				}
			}
			if fits {
				out.Set(x, y, true)
			}
		}
	}
	return out
}

// dilate paints the element back over every eroded pixel.
func dilate(m *mask.Mask, length int, horizontal bool) *mask.Mask {
	a := length / 2
	out := mask.New(m.Width(), m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.At(x, y) {
				continue
			}
			for k := -a; k < length-a; k++ {
				if horizontal {
					out.Set(x+k, y, true)
				} else {
					out.Set(x, y+k, true)
				}
			}
		}
	}
	return out
}
