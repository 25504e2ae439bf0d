package tablescan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/grid"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/logging"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/mask"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/models"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/preprocess"
)

// TextReader recognizes the text in a cropped cell image.
type TextReader interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// LoadImage decodes a BMP, GIF, JPEG, PNG or TIFF file.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, NewExtractionError(0, 0, "decode", fmt.Errorf("%w: %v", ErrDecode, err))
	}
	return img, nil
}

// LineMask binarizes img and removes line fragments shorter than the
// configured minimum. The result is the mask the grid detector runs on.
func LineMask(img image.Image, opts Options) (*mask.Mask, error) {
	m, err := preprocess.Binarize(img, opts.Preprocess)
	if err != nil {
		return nil, NewExtractionError(0, 0, "binarize", err)
	}
	return grid.RemoveNoise(m, opts.minSegmentLength()), nil
}

// DetectTable recovers the cell rectangles of the table in img without
// reading any text.
func DetectTable(img image.Image, opts Options) (*models.CellTable, error) {
	m, err := LineMask(img, opts)
	if err != nil {
		return nil, err
	}
	columns, err := grid.Detect(m, opts.detectParams())
	if err != nil {
		return nil, NewExtractionError(0, 0, "detect", err)
	}
	return grid.BuildCellTable(m, columns), nil
}

// Locate returns the cell at the 1-based column and row, with its text when
// recognition is enabled. A column or row outside the detected grid yields
// ErrInvalidInput.
func Locate(ctx context.Context, img image.Image, column, row int, opts Options) (*models.CellResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if column < 1 || row < 1 {
		return nil, fmt.Errorf("%w: column %d row %d (indices start at 1)", ErrInvalidInput, column, row)
	}

	table, err := DetectTable(img, opts)
	if err != nil {
		return nil, err
	}
	r, ok := table.Cell(column-1, row-1)
	if !ok {
		return nil, NewExtractionError(column, row, "locate",
			fmt.Errorf("%w: table has %d columns, %d rows at most", ErrInvalidInput, len(table.Columns), table.MaxRows()))
	}

	res := &models.CellResult{Column: column, Row: row, Rect: r}
	if opts.ShouldRecognize() {
		text, err := recognize(ctx, img, *res, opts.Reader)
		if err != nil {
			return nil, err
		}
		res.Text = text
	}
	return res, nil
}

// LocateAll returns every cell of the table, column by column and top to
// bottom within a column. Recognition runs on up to opts.Workers goroutines;
// the result order does not depend on the worker count.
func LocateAll(ctx context.Context, img image.Image, opts Options) ([]models.CellResult, error) {
	_, cells, err := locateAll(ctx, img, opts)
	return cells, err
}

// Extract decodes the image at path and returns every cell in a TableData.
func Extract(ctx context.Context, path string, opts Options) (*models.TableData, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}

	table, cells, err := locateAll(ctx, img, opts)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &models.TableData{
		Source:  filepath.Base(path),
		Width:   b.Dx(),
		Height:  b.Dy(),
		Columns: len(table.Columns),
		Rows:    table.MaxRows(),
		Cells:   cells,
		Dropped: table.Dropped,
	}, nil
}

// Crop returns the part of img covered by r. r is relative to the image
// origin, as produced by DetectTable.
func Crop(img image.Image, r models.Rect) *image.NRGBA {
	return imaging.Crop(img, r.Image().Add(img.Bounds().Min))
}

func locateAll(ctx context.Context, img image.Image, opts Options) (*models.CellTable, []models.CellResult, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	table, err := DetectTable(img, opts)
	if err != nil {
		return nil, nil, err
	}
	cells := Cells(table)
	if !opts.ShouldRecognize() {
		return table, cells, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i := range cells {
		g.Go(func() error {
			text, err := recognize(gctx, img, cells[i], opts.Reader)
			if err != nil {
				return err
			}
			cells[i].Text = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return table, cells, nil
}

// Cells flattens a CellTable into 1-based, column-major results.
func Cells(table *models.CellTable) []models.CellResult {
	cells := make([]models.CellResult, 0, table.CellCount())
	for ci, col := range table.Columns {
		for ri := 0; ri < col.Len(); ri++ {
			cells = append(cells, models.CellResult{
				Column: ci + 1,
				Row:    ri + 1,
				Rect:   col.Rect(ri),
			})
		}
	}
	return cells
}

// recognize reads the text of one cell. A reader failure is logged and
// reported as empty text; only cancellation is returned as an error.
func recognize(ctx context.Context, img image.Image, cell models.CellResult, reader TextReader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := reader.Recognize(ctx, Crop(img, cell.Rect))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		logging.For("tablescan").Warn("cell text unreadable",
			"column", cell.Column, "row", cell.Row,
			"err", NewExtractionError(cell.Column, cell.Row, "recognize", fmt.Errorf("%w: %v", ErrRecognitionFailed, err)))
		return "", nil
	}
	return text, nil
}

func (o Options) validate() error {
	if o.ShouldRecognize() && o.Reader == nil {
		return fmt.Errorf("%w: text recognition requested without a reader", ErrInvalidInput)
	}
	return nil
}
