package export

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	if err := ExportPDF(path, buildTestReport(t)); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	// Two page sheets plus the summary.
	requireFile(t, path, 500)
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportPDF(path, NewReport(model.Result{}, nil)); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportPDF_UnnamedRects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unnamed.pdf")

	rep := buildTestReport(t)
	rep.Names = nil

	if err := ExportPDF(path, rep); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	requireFile(t, path, 500)
}

func TestExportPDF_ManyRects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	// More rects than colors, and more legend entries than fit on a sheet.
	var res model.Result
	res.Pages = []model.Page{{W: 1024, H: 1024, CandidateW: 1024, CandidateH: 1024}}
	names := make([]string, 400)
	for i := range names {
		res.Rects = append(res.Rects, model.Rect{
			Index: i, W: 48, H: 48,
			X: uint32((i % 20) * 50), Y: uint32((i / 20) * 50),
		})
		res.Pages[0].Rects = append(res.Pages[0].Rects, i)
		names[i] = fmt.Sprintf("glyph_ü%d", i)
	}

	if err := ExportPDF(path, NewReport(res, names)); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	requireFile(t, path, 500)
}

func TestExportPDF_ManyPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.pdf")

	// Enough pages that the summary table continues on a second sheet.
	var res model.Result
	for i := 0; i < 40; i++ {
		res.Rects = append(res.Rects, model.Rect{Index: i, W: 16, H: 16, Page: i})
		res.Pages = append(res.Pages, model.Page{W: 16, H: 16, CandidateW: 16, CandidateH: 16, Rects: []int{i}})
	}

	if err := ExportPDF(path, NewReport(res, nil)); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	requireFile(t, path, 500)
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
