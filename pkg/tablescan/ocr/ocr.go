// Package ocr reads the text of a cropped table cell.
//
// The Tesseract engine is wrapped via gosseract, with a gocv sharpening pass
// in front of it. Both need native libraries, so the engine is only compiled
// with the "ocr" build tag:
//
//	go build -tags ocr
//
// Without the tag New returns ErrOCRNotEnabled.
package ocr

import (
	"errors"
	"strings"
)

// ErrOCRNotEnabled is returned by New when OCR support was not compiled in.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Config configures the Tesseract reader.
type Config struct {
	// Language is a Tesseract language list such as "eng" or "eng+deu".
	Language string
	// Scale is the upscaling factor applied before recognition.
	Scale float64
	// TessdataPrefix overrides the tessdata directory when set.
	TessdataPrefix string
}

// DefaultConfig returns English recognition with a 5x upscale.
func DefaultConfig() Config {
	return Config{
		Language: "eng",
		Scale:    5,
	}
}

// Normalize joins the lines of recognized text with single spaces and trims
// the result. Blank lines are dropped.
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, " ")
}
