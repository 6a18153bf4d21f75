package recognize

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// EnhanceForRecognition normalizes a scanned photo before OCR: grayscale,
// contrast boost, and a sharpen pass make printed text considerably easier
// for the recognition backend to read. The result is re-encoded as JPEG.
func EnhanceForRecognition(data []byte) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	img := imaging.Grayscale(src)
	img = imaging.AdjustContrast(img, 30)
	img = imaging.Sharpen(img, 1.5)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(92)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
