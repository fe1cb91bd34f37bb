package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/jpeg"

	"golang.org/x/image/draw"
)

// upscaleFactor is how much page images are enlarged before recognition.
// Scanned planilhas are commonly 150 dpi; doubling them brings small row
// text into the range Tesseract handles well.
const upscaleFactor = 2

// Prepare converts a page image into the form handed to the recognizer:
// grayscale, upscaled, PNG encoded.
func Prepare(imageData []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0,
		bounds.Dx()*upscaleFactor, bounds.Dy()*upscaleFactor))
	draw.CatmullRom.Scale(gray, gray.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
