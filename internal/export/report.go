// Package export writes packed layouts to report formats: PDF layout
// sheets, QR-coded labels, Excel workbooks, DXF drawings, PNG page previews
// and an HTML utilization chart.
package export

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// Report is a packed layout plus the display data every report format
// shares.
type Report struct {
	Result model.Result
	// Names holds a display name per rect, indexed like Result.Rects.
	// Missing or empty names fall back to "#<index>".
	Names []string
	// RunID identifies the packing run in report headers and label codes.
	RunID string
}

// NewReport bundles a result with rect names under a fresh run ID.
func NewReport(result model.Result, names []string) Report {
	return Report{
		Result: result,
		Names:  names,
		RunID:  uuid.NewString(),
	}
}

// Name returns the display name of rect i.
func (r Report) Name(i int) string {
	if i >= 0 && i < len(r.Names) && r.Names[i] != "" {
		return r.Names[i]
	}
	return fmt.Sprintf("#%d", i)
}

func (r Report) check() error {
	if len(r.Result.Pages) == 0 {
		return fmt.Errorf("no pages to export")
	}
	return nil
}

// rectColor represents an RGB color for a placed rect.
type rectColor struct {
	R, G, B int
}

// rectColors is the fill palette shared by the PDF and PNG renderers.
var rectColors = []rectColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

func colorFor(i int) rectColor {
	return rectColors[i%len(rectColors)]
}
