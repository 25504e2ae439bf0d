// Package tablescan locates the cells of a ruled table in an image and reads
// their text.
package tablescan

import (
	"github.com/ukaji3/tablescan-go/pkg/tablescan/grid"
	"github.com/ukaji3/tablescan-go/pkg/tablescan/preprocess"
)

// Mode represents the extraction mode.
type Mode string

const (
	// ModeLayout locates cell rectangles only.
	ModeLayout Mode = "layout"
	// ModeText locates cell rectangles and recognizes their text.
	ModeText Mode = "text"
)

// Options configures extraction behavior.
type Options struct {
	// Mode specifies the extraction mode (layout, text).
	Mode Mode
	// Recognize specifies whether to read cell text.
	// If nil, defaults to true for text mode, false otherwise.
	Recognize *bool
	// Reader recognizes the text of a cropped cell. Required when text is
	// recognized.
	Reader TextReader
	// Workers bounds concurrent recognition in LocateAll. Values below 2 run
	// sequentially.
	Workers int
	// MinSegmentLength is the shortest line run kept by the noise filter.
	// Zero selects grid.DefaultMinSegmentLength.
	MinSegmentLength int
	// Detect holds the grid detector tolerances.
	Detect grid.DetectParams
	// Preprocess holds the binarization parameters.
	Preprocess preprocess.Params
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Mode:             ModeLayout,
		Workers:          1,
		MinSegmentLength: grid.DefaultMinSegmentLength,
		Detect:           grid.DefaultDetectParams(),
		Preprocess:       preprocess.DefaultParams(),
	}
}

// ShouldRecognize returns whether to read cell text.
func (o Options) ShouldRecognize() bool {
	if o.Recognize != nil {
		return *o.Recognize
	}
	return o.Mode == ModeText
}

func (o Options) minSegmentLength() int {
	if o.MinSegmentLength <= 0 {
		return grid.DefaultMinSegmentLength
	}
	return o.MinSegmentLength
}

func (o Options) detectParams() grid.DetectParams {
	if o.Detect == (grid.DetectParams{}) {
		return grid.DefaultDetectParams()
	}
	return o.Detect
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}
