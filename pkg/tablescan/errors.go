package tablescan

import (
	"errors"
	"fmt"

	"github.com/ukaji3/tablescan-go/pkg/tablescan/grid"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrDecode indicates the input file is not a decodable image.
var ErrDecode = errors.New("image decode failed")

// ErrInvalidInput indicates a column or row outside the detected grid, or
// options that cannot be satisfied.
var ErrInvalidInput = errors.New("invalid input")

// ErrRecognitionFailed indicates the text reader failed on a cell. The cell
// is still reported, with empty text.
var ErrRecognitionFailed = errors.New("text recognition failed")

// ErrGeometryNotFound indicates no table structure was found in the image.
var ErrGeometryNotFound = grid.ErrGeometryNotFound

// ErrCellWalkFailed indicates a single cell could not be resolved.
var ErrCellWalkFailed = grid.ErrCellWalkFailed

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	Column int    // 1-based; zero when the failure is not tied to a cell
	Row    int    // 1-based; zero when the failure is not tied to a cell
	Stage  string // "decode", "binarize", "detect", "locate", "recognize"
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Column > 0 || e.Row > 0 {
		return fmt.Sprintf("extraction error at column %d row %d (%s): %v", e.Column, e.Row, e.Stage, e.Err)
	}
	return fmt.Sprintf("extraction error (%s): %v", e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(column, row int, stage string, err error) *ExtractionError {
	return &ExtractionError{
		Column: column,
		Row:    row,
		Stage:  stage,
		Err:    err,
	}
}
