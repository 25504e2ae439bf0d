//go:build !ocr

package ocr

import (
	"context"
	"image"
)

// Tesseract is a stub reader; every call fails with ErrOCRNotEnabled.
type Tesseract struct{}

// New returns ErrOCRNotEnabled. Rebuild with -tags ocr to enable OCR.
func New(cfg Config) (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// Recognize returns ErrOCRNotEnabled.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}
