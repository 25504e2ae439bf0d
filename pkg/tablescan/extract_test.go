package tablescan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/logging"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
)

const (
	gridX0, gridY0 = 30, 30
	pitchX, pitchY = 120, 60
	gridCols       = 4
	gridRows       = 3
)

// tableImage draws a 4x3 ruled table (black 2 px lines on white) and puts a
// single marker pixel in the center of every cell whose gray level encodes
// its position as 10*column + row.
func tableImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 540, 260))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	black := &image.Uniform{color.Black}
	right := gridX0 + gridCols*pitchX + 2
	bottom := gridY0 + gridRows*pitchY + 2
	for c := 0; c <= gridCols; c++ {
		x := gridX0 + c*pitchX
		draw.Draw(img, image.Rect(x, gridY0, x+2, bottom), black, image.Point{}, draw.Src)
	}
	for r := 0; r <= gridRows; r++ {
		y := gridY0 + r*pitchY
		draw.Draw(img, image.Rect(gridX0, y, right, y+2), black, image.Point{}, draw.Src)
	}
	for c := 1; c <= gridCols; c++ {
		for r := 1; r <= gridRows; r++ {
			rect := wantRect(c, r)
			v := uint8(10*c + r)
			img.Set(rect.X+rect.Width/2, rect.Y+rect.Height/2, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func wantRect(column, row int) models.Rect {
	return models.Rect{
		X:      gridX0 + 2 + (column-1)*pitchX,
		Y:      gridY0 + 2 + (row-1)*pitchY,
		Width:  pitchX - 3,
		Height: pitchY - 3,
	}
}

// markerReader returns the gray level found at the center of the crop.
type markerReader struct {
	calls atomic.Int32
	fail  func(text string) bool
}

func (m *markerReader) Recognize(_ context.Context, img image.Image) (string, error) {
	m.calls.Add(1)
	b := img.Bounds()
	r, _, _, _ := img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2).RGBA()
	text := strconv.Itoa(int(r >> 8))
	if m.fail != nil && m.fail(text) {
		return "", errors.New("engine crashed")
	}
	return text, nil
}

func textOptions(reader TextReader) Options {
	opts := DefaultOptions()
	opts.Mode = ModeText
	opts.Reader = reader
	return opts
}

func TestDetectTable(t *testing.T) {
	table, err := DetectTable(tableImage(), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, table.Columns, gridCols)
	assert.Equal(t, gridRows, table.MaxRows())
	assert.Empty(t, table.Dropped)
	for c := 1; c <= gridCols; c++ {
		for r := 1; r <= gridRows; r++ {
			got, ok := table.Cell(c-1, r-1)
			require.True(t, ok)
			assert.Equal(t, wantRect(c, r), got, "column %d row %d", c, r)
		}
	}
}

func TestDetectTableBlankImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 100))
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	_, err := DetectTable(img, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeometryNotFound)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "detect", extErr.Stage)
}

func TestLocateLayout(t *testing.T) {
	res, err := Locate(context.Background(), tableImage(), 2, 3, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, &models.CellResult{Column: 2, Row: 3, Rect: wantRect(2, 3)}, res)
}

func TestLocateText(t *testing.T) {
	reader := &markerReader{}
	res, err := Locate(context.Background(), tableImage(), 3, 1, textOptions(reader))
	require.NoError(t, err)
	assert.Equal(t, "31", res.Text)
	assert.Equal(t, int32(1), reader.calls.Load())
}

func TestLocateIsDeterministic(t *testing.T) {
	img := tableImage()
	opts := textOptions(&markerReader{})

	a, err := Locate(context.Background(), img, 4, 2, opts)
	require.NoError(t, err)
	b, err := Locate(context.Background(), img, 4, 2, opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLocateOutOfRange(t *testing.T) {
	img := tableImage()
	tests := []struct {
		name        string
		column, row int
	}{
		{"column past the grid", 5, 1},
		{"row past the grid", 1, 4},
		{"zero column", 0, 1},
		{"negative row", 1, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Locate(context.Background(), img, tt.column, tt.row, DefaultOptions())
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTextModeNeedsReader(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeText

	_, err := Locate(context.Background(), tableImage(), 1, 1, opts)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = LocateAll(context.Background(), tableImage(), opts)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLocateAll(t *testing.T) {
	cells, err := LocateAll(context.Background(), tableImage(), textOptions(&markerReader{}))
	require.NoError(t, err)
	require.Len(t, cells, gridCols*gridRows)

	i := 0
	for c := 1; c <= gridCols; c++ {
		for r := 1; r <= gridRows; r++ {
			assert.Equal(t, models.CellResult{
				Column: c,
				Row:    r,
				Rect:   wantRect(c, r),
				Text:   fmt.Sprint(10*c + r),
			}, cells[i])
			i++
		}
	}
}

func TestLocateAllWorkersKeepOrder(t *testing.T) {
	img := tableImage()

	seq := textOptions(&markerReader{})
	want, err := LocateAll(context.Background(), img, seq)
	require.NoError(t, err)

	par := textOptions(&markerReader{})
	par.Workers = 4
	got, err := LocateAll(context.Background(), img, par)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocateAllRecognitionFailure(t *testing.T) {
	old := logging.Logger()
	defer logging.SetLogger(old)
	h := logging.NewBufferedLogHandler(nil)
	logging.SetLogger(slog.New(h))

	reader := &markerReader{fail: func(text string) bool { return text == "22" }}
	cells, err := LocateAll(context.Background(), tableImage(), textOptions(reader))
	require.NoError(t, err)
	require.Len(t, cells, 12)

	for _, c := range cells {
		if c.Column == 2 && c.Row == 2 {
			assert.Empty(t, c.Text)
		} else {
			assert.NotEmpty(t, c.Text)
		}
	}
	assert.True(t, h.Contains("cell text unreadable"))
	assert.True(t, h.Contains(ErrRecognitionFailed.Error()))
}

func TestLocateAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LocateAll(ctx, tableImage(), textOptions(&markerReader{}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocateAllLayoutSkipsReader(t *testing.T) {
	reader := &markerReader{}
	opts := DefaultOptions()
	opts.Reader = reader

	cells, err := LocateAll(context.Background(), tableImage(), opts)
	require.NoError(t, err)
	assert.Len(t, cells, 12)
	assert.Equal(t, int32(0), reader.calls.Load())
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.png")
	require.NoError(t, imaging.Save(tableImage(), path))

	data, err := Extract(context.Background(), path, textOptions(&markerReader{}))
	require.NoError(t, err)
	assert.Equal(t, "invoice.png", data.Source)
	assert.Equal(t, 540, data.Width)
	assert.Equal(t, 260, data.Height)
	assert.Equal(t, 4, data.Columns)
	assert.Equal(t, 3, data.Rows)
	require.Len(t, data.Cells, 12)
	assert.Equal(t, "43", data.Cells[11].Text)
}

func TestExtractFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Extract(context.Background(), filepath.Join(dir, "missing.png"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)

	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))
	_, err = Extract(context.Background(), bad, DefaultOptions())
	assert.ErrorIs(t, err, ErrDecode)

	var extErr *ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, "decode", extErr.Stage)
}

func TestCropUsesImageOrigin(t *testing.T) {
	img := tableImage()
	sub := img.SubImage(image.Rect(10, 10, 540, 260))

	crop := Crop(sub, models.Rect{X: 22, Y: 22, Width: 117, Height: 57})
	assert.Equal(t, 117, crop.Bounds().Dx())
	assert.Equal(t, 57, crop.Bounds().Dy())
	// marker of column 1 row 1 sits at (90, 60) in the full image
	r, _, _, _ := crop.At(58, 28).RGBA()
	assert.Equal(t, uint32(11), r>>8)
}

func TestOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.ShouldRecognize())

	opts.Mode = ModeText
	assert.True(t, opts.ShouldRecognize())

	off := false
	opts.Recognize = &off
	assert.False(t, opts.ShouldRecognize())

	assert.Equal(t, 100, Options{}.minSegmentLength())
	assert.Equal(t, 1, Options{Workers: -3}.workers())
	assert.Equal(t, 20, Options{}.detectParams().StartX)
}

func TestExtractionErrorMessage(t *testing.T) {
	err := NewExtractionError(2, 3, "locate", ErrInvalidInput)
	assert.Equal(t, "extraction error at column 2 row 3 (locate): invalid input", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = NewExtractionError(0, 0, "detect", ErrGeometryNotFound)
	assert.Equal(t, "extraction error (detect): table geometry not found", err.Error())
}
