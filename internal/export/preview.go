package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// previewBackground fills pixels no rect covers.
var previewBackground = color.RGBA{R: 235, G: 235, B: 235, A: 255}

// ExportPreviews renders each page as a full-size PNG named page_<n>.png
// in dir, filling every rect with its palette color and outlining it one
// pixel darker. It returns the written paths in page order.
func ExportPreviews(dir string, rep Report) ([]string, error) {
	if err := rep.check(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating preview directory: %w", err)
	}

	var paths []string
	for i := range rep.Result.Pages {
		path := filepath.Join(dir, fmt.Sprintf("page_%d.png", i))
		if err := writePreview(path, rep, i); err != nil {
			return paths, fmt.Errorf("page %d: %w", i, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writePreview(path string, rep Report, pageIdx int) error {
	page := rep.Result.Pages[pageIdx]
	img := image.NewRGBA(image.Rect(0, 0, int(page.W), int(page.H)))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: previewBackground}, image.Point{}, draw.Src)

	for _, idx := range page.Rects {
		r := rep.Result.Rects[idx]
		c := colorFor(idx)
		fill := color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: 255}
		edge := color.RGBA{R: uint8(c.R * 3 / 4), G: uint8(c.G * 3 / 4), B: uint8(c.B * 3 / 4), A: 255}

		bounds := image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
		draw.Draw(img, bounds, &image.Uniform{C: edge}, image.Point{}, draw.Src)
		if inner := bounds.Inset(1); !inner.Empty() {
			draw.Draw(img, inner, &image.Uniform{C: fill}, image.Point{}, draw.Src)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
