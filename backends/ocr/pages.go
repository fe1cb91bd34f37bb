package ocr

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pageImages pulls the embedded images of one PDF page into memory. A
// scanned page typically embeds exactly one full-page image; vector pages
// yield none.
func pageImages(path string, page int) ([][]byte, error) {
	dir, err := os.MkdirTemp("", "tally-ocr-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := api.ExtractImagesFile(path, dir, []string{strconv.Itoa(page)}, nil); err != nil {
		return nil, fmt.Errorf("extract page %d images: %w", page, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images [][]byte
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		images = append(images, data)
	}
	return images, nil
}
