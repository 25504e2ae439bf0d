//go:build !gocv

package preprocess

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
)

func TestBinarizeMatchesDrawnGrid(t *testing.T) {
	img := ruledImage(540, 260, 30, 30, 4, 3, 120, 60)

	m, err := Binarize(img, DefaultParams())
	require.NoError(t, err)
	require.Equal(t, 540, m.Width())
	require.Equal(t, 260, m.Height())

	want := mask.New(540, 260)
	for c := 0; c <= 4; c++ {
		x := 30 + c*120
		want.FillRect(x, 30, x+2, 212, true)
	}
	for r := 0; r <= 3; r++ {
		y := 30 + r*60
		want.FillRect(30, y, 512, y+2, true)
	}
	assert.Equal(t, want, m, "got %d pixels, want %d", m.Count(), want.Count())
}

func TestAdaptiveThresholdAgainstLocalMean(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 9, 9))
	g.Pix[4*9+4] = 200

	m := adaptiveThreshold(g, 3, -2)
	assert.True(t, m.At(4, 4))
	assert.Equal(t, 1, m.Count())

	// a flat field never clears mean+2
	flat := image.NewGray(image.Rect(0, 0, 9, 9))
	for i := range flat.Pix {
		flat.Pix[i] = 120
	}
	assert.Equal(t, 0, adaptiveThreshold(flat, 3, -2).Count())
}

func TestOpenKeepsRunsOfElementLength(t *testing.T) {
	m := mask.New(40, 10)
	m.FillRect(2, 2, 12, 3, true)  // 10 px
	m.FillRect(20, 5, 29, 6, true) // 9 px

	h := open(m, 10, true)
	assert.Equal(t, 10, h.Count())
	for x := 2; x < 12; x++ {
		assert.True(t, h.At(x, 2))
	}
	assert.False(t, h.At(24, 5))

	v := open(m, 10, false)
	assert.Equal(t, 0, v.Count())
}

func TestOpenVertical(t *testing.T) {
	m := mask.New(10, 40)
	m.FillRect(3, 0, 4, 40, true) // touches both borders
	m.FillRect(6, 5, 7, 10, true)

	v := open(m, 12, false)
	assert.Equal(t, 40, v.Count())
	assert.False(t, v.At(6, 7))
}
