package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/AtlasPack/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF layout report. Each texture page is drawn on
// its own sheet with the placed rects, followed by a summary sheet with
// overall statistics and the layout settings.
func ExportPDF(path string, rep Report) error {
	if err := rep.check(); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("AtlasPack layout "+rep.RunID, true)

	for i := range rep.Result.Pages {
		pdf.AddPage()
		renderTexturePage(pdf, p, rep, i)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, p, rep)

	return pdf.OutputFileAndClose(path)
}

// renderTexturePage draws a single texture page on the current PDF page.
func renderTexturePage(pdf *fpdf.Fpdf, p *message.Printer, rep Report, pageIdx int) {
	res := rep.Result
	page := res.Pages[pageIdx]
	cfg := res.Config

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Page %d: %d x %d px", pageIdx, page.W, page.H)
	if page.W != page.CandidateW || page.H != page.CandidateH {
		title += fmt.Sprintf(" (cropped from %d x %d)", page.CandidateW, page.CandidateH)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := p.Sprintf("Rects: %d | Used area: %d px² | Page area: %d px² | Efficiency: %.1f%%",
		len(page.Rects), res.UsedArea(pageIdx), page.Area(), res.Efficiency(pageIdx))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, tr(pdf, stats), "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	pw, ph := float64(page.W), float64(page.H)
	scale := math.Min(drawWidth/pw, drawHeight/ph)
	canvasW := pw * scale
	canvasH := ph * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Page background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Border outline
	if cfg.BorderX > 0 || cfg.BorderY > 0 {
		bx := float64(cfg.BorderX) * scale
		by := float64(cfg.BorderY) * scale
		if canvasW > 2*bx && canvasH > 2*by {
			pdf.SetDrawColor(200, 0, 0)
			pdf.SetLineWidth(0.15)
			pdf.SetDashPattern([]float64{1, 1}, 0)
			pdf.Rect(offsetX+bx, offsetY+by, canvasW-2*bx, canvasH-2*by, "D")
			pdf.SetDashPattern([]float64{}, 0)
		}
	}

	for _, idx := range page.Rects {
		r := res.Rects[idx]
		col := colorFor(idx)
		rw := float64(r.W) * scale
		rh := float64(r.H) * scale
		rx := offsetX + float64(r.X)*scale
		ry := offsetY + float64(r.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(rx, ry, rw, rh, "FD")

		if rw > 15 && rh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(rw, rh))
			pdf.SetTextColor(0, 0, 0)

			label := tr(pdf, rep.Name(idx))
			dims := fmt.Sprintf("%dx%d", r.W, r.H)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < rw-2 {
				pdf.SetXY(rx+(rw-labelW)/2, ry+rh/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if rh > 14 && dimsW < rw-2 {
				pdf.SetXY(rx+(rw-dimsW)/2, ry+rh/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, page, offsetX, offsetY, canvasW, canvasH)
	drawRectLegend(pdf, rep, pageIdx, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds width and height labels outside the page rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, page model.Page, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%d px", page.W)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%d px", page.H)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawRectLegend renders a compact legend of placed rects below the page
// drawing. Entries that do not fit above the bottom margin are summarized.
func drawRectLegend(pdf *fpdf.Fpdf, rep Report, pageIdx int, startY float64) {
	page := rep.Result.Pages[pageIdx]
	if len(page.Rects) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Rects placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	maxY := pageHeight - marginBottom - 4

	for n, idx := range page.Rects {
		r := rep.Result.Rects[idx]
		col := colorFor(idx)
		label := tr(pdf, fmt.Sprintf("%s (%dx%d @ %d,%d)", rep.Name(idx), r.W, r.H, r.X, r.Y))
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > maxY {
			pdf.SetXY(marginLeft, startY)
			pdf.CellFormat(60, 4, fmt.Sprintf("... and %d more", len(page.Rects)-n), "", 0, "L", false, 0, "")
			return
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, p *message.Printer, rep Report) {
	res := rep.Result

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Texture Atlas Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	var used uint64
	for _, r := range res.Rects {
		used += r.Area()
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Pages Used", p.Sprintf("%d", len(res.Pages))},
		{"Rects Placed", p.Sprintf("%d", len(res.Rects))},
		{"Rect Area", p.Sprintf("%d px²", used)},
		{"Page Area", p.Sprintf("%d px²", res.TotalArea())},
		{"Overall Efficiency", p.Sprintf("%.1f%%", res.TotalEfficiency())},
		{"Run", rep.RunID},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, tr(pdf, item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Page Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 45, 45, 30, 35, 90}
	headers := []string{"Page", "Catalog Size", "Final Size", "Rects", "Efficiency", "Used / Page Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, page := range res.Pages {
		// Continue the table on a fresh sheet once the current one is full.
		if y > pageHeight-marginBottom-30 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d x %d", page.CandidateW, page.CandidateH),
			fmt.Sprintf("%d x %d", page.W, page.H),
			fmt.Sprintf("%d", len(page.Rects)),
			fmt.Sprintf("%.1f%%", res.Efficiency(i)),
			tr(pdf, p.Sprintf("%d / %d px²", res.UsedArea(i), page.Area())),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Layout Settings", "", 0, "L", false, 0, "")
	y += 9

	cfg := res.Config
	order := cfg.Order
	if order == "" {
		order = "Unsorted"
	}
	maxPages := "unlimited"
	if cfg.MaxPages > 0 {
		maxPages = fmt.Sprintf("%d", cfg.MaxPages)
	}
	settingsItems := []struct {
		label string
		value string
	}{
		{"Spacing", fmt.Sprintf("%d x %d px", cfg.SpacingX, cfg.SpacingY)},
		{"Border", fmt.Sprintf("%d x %d px", cfg.BorderX, cfg.BorderY)},
		{"Crop", fmt.Sprintf("x: %t, y: %t", cfg.CropX, cfg.CropY)},
		{"Order", order},
		{"Max Pages", maxPages},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by AtlasPack - Texture Atlas Packer", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// tr converts UTF-8 text to the cp1252 encoding of the core fonts.
func tr(pdf *fpdf.Fpdf, s string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")(s)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
