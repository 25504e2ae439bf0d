//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Tesseract recognizes cell text with a fresh gosseract client per call, so
// one Tesseract may serve concurrent callers.
type Tesseract struct {
	cfg Config
}

// New checks that the configured language loads and returns a reader.
func New(cfg Config) (*Tesseract, error) {
	if cfg.Language == "" {
		cfg.Language = DefaultConfig().Language
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultConfig().Scale
	}
	t := &Tesseract{cfg: cfg}

	client := t.client()
	defer client.Close()
	if err := client.SetLanguage(cfg.Language); err != nil {
		return nil, fmt.Errorf("tesseract language %q: %w", cfg.Language, err)
	}
	return t, nil
}

// Recognize sharpens the crop and returns its normalized text.
func (t *Tesseract) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	png, err := t.sharpen(img)
	if err != nil {
		return "", err
	}

	client := t.client()
	defer client.Close()
	if err := client.SetLanguage(t.cfg.Language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return Normalize(text), nil
}

func (t *Tesseract) client() *gosseract.Client {
	client := gosseract.NewClient()
	if t.cfg.TessdataPrefix != "" {
		client.TessdataPrefix = t.cfg.TessdataPrefix
	}
	return client
}

// sharpen upscales the grayscale crop, subtracts its Laplacian edges from a
// thresholded copy of them and encodes the result as PNG.
func (t *Tesseract) sharpen(img image.Image) ([]byte, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert crop: %w", err)
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorRGBToGray)

	large := gocv.NewMat()
	defer large.Close()
	gocv.Resize(gray, &large, image.Point{}, t.cfg.Scale, t.cfg.Scale, gocv.InterpolationCubic)

	laplace := gocv.NewMat()
	defer laplace.Close()
	gocv.Laplacian(large, &laplace, gocv.MatTypeCV32F, 31, 1, 0, gocv.BorderDefault)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(laplace, &thresh, 80, 200, gocv.ThresholdBinary)

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.Subtract(thresh, laplace, &diff)

	out := gocv.NewMat()
	defer out.Close()
	diff.ConvertTo(&out, gocv.MatTypeCV8U)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode crop: %w", err)
	}
	defer buf.Close()
	return append([]byte(nil), buf.GetBytes()...), nil
}
