package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook written by ExportXLSX.
const (
	rectsSheet = "Rects"
	pagesSheet = "Pages"
)

// ExportXLSX writes the layout as an Excel workbook with one row per rect
// and one row per page.
func ExportXLSX(path string, rep Report) error {
	if err := rep.check(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rectsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(pagesSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	res := rep.Result
	rectRows := [][]any{{"Index", "Name", "Width", "Height", "X", "Y", "Page"}}
	for i, r := range res.Rects {
		rectRows = append(rectRows, []any{i, rep.Name(i), r.W, r.H, r.X, r.Y, r.Page})
	}
	pageRows := [][]any{{"Page", "Width", "Height", "Catalog Width", "Catalog Height", "Rects", "Used Area", "Efficiency %"}}
	for i, p := range res.Pages {
		pageRows = append(pageRows, []any{i, p.W, p.H, p.CandidateW, p.CandidateH, len(p.Rects), res.UsedArea(i), res.Efficiency(i)})
	}

	for _, sheet := range []struct {
		name string
		rows [][]any
	}{{rectsSheet, rectRows}, {pagesSheet, pageRows}} {
		for i, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.name, cell, &row); err != nil {
				return fmt.Errorf("writing %s row %d: %w", sheet.name, i+1, err)
			}
		}
		last, err := excelize.CoordinatesToCellName(len(sheet.rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.name, "A1", last, bold); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
