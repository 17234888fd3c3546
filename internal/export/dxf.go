package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	layerPages  = "PAGES"
	layerRects  = "RECTS"
	layerLabels = "LABELS"
)

// dxfPageGap separates consecutive pages in drawing units (pixels).
const dxfPageGap = 64.0

// ExportDXF writes the layout as a DXF drawing with one unit per pixel.
// Pages are laid out left to right; every page and rect is a closed
// polyline and each rect carries its name as text. DXF is y-up, so rows
// are flipped to keep the top-left page origin.
func ExportDXF(path string, rep Report) error {
	if err := rep.check(); err != nil {
		return err
	}

	d := dxf.NewDrawing()
	for _, name := range []string{layerPages, layerRects, layerLabels} {
		d.AddLayer(name, dxf.DefaultColor, dxf.DefaultLineType, false)
	}

	res := rep.Result
	offset := 0.0
	for i, page := range res.Pages {
		pw, ph := float64(page.W), float64(page.H)

		if err := d.ChangeLayer(layerPages); err != nil {
			return err
		}
		if err := box(d, offset, 0, pw, ph); err != nil {
			return fmt.Errorf("page %d: %w", i, err)
		}

		for _, idx := range page.Rects {
			r := res.Rects[idx]
			x := offset + float64(r.X)
			y := ph - float64(r.Y) - float64(r.H)

			if err := d.ChangeLayer(layerRects); err != nil {
				return err
			}
			if err := box(d, x, y, float64(r.W), float64(r.H)); err != nil {
				return fmt.Errorf("rect %d: %w", idx, err)
			}

			if err := d.ChangeLayer(layerLabels); err != nil {
				return err
			}
			size := min(float64(r.W), float64(r.H)) / 4
			if _, err := d.Text(rep.Name(idx), x+1, y+1, 0, max(size, 1)); err != nil {
				return fmt.Errorf("rect %d label: %w", idx, err)
			}
		}
		offset += pw + dxfPageGap
	}

	return d.SaveAs(path)
}

// box draws an axis-aligned closed rectangle with its lower-left corner at x, y.
func box(d *drawing.Drawing, x, y, w, h float64) error {
	_, err := d.LwPolyline(true,
		[]float64{x, y},
		[]float64{x + w, y},
		[]float64{x + w, y + h},
		[]float64{x, y + h},
	)
	return err
}
