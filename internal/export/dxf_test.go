package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_Entities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	rep := buildTestReport(t)

	if err := ExportDXF(path, rep); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot open drawing: %v", err)
	}

	var polylines, texts int
	for _, e := range d.Entities() {
		switch e.(type) {
		case *entity.LwPolyline:
			polylines++
		case *entity.Text:
			texts++
		}
	}

	n := len(rep.Result.Rects)
	if want := n + len(rep.Result.Pages); polylines != want {
		t.Errorf("expected %d polylines, got %d", want, polylines)
	}
	if texts != n {
		t.Errorf("expected %d texts, got %d", n, texts)
	}
}

func TestExportDXF_FlipsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flip.dxf")
	res := model.Result{
		Rects: []model.Rect{{W: 4, H: 2, X: 1, Y: 0}},
		Pages: []model.Page{{W: 8, H: 8, Rects: []int{0}}},
	}

	if err := ExportDXF(path, NewReport(res, []string{"a"})); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot open drawing: %v", err)
	}

	var boxes []*entity.LwPolyline
	for _, e := range d.Entities() {
		if lw, ok := e.(*entity.LwPolyline); ok {
			boxes = append(boxes, lw)
		}
	}
	if len(boxes) != 2 {
		t.Fatalf("expected page and rect polylines, got %d", len(boxes))
	}

	// A rect on the top row sits against the page's upper edge.
	lowerLeft := boxes[1].Vertices[0]
	if lowerLeft[0] != 1 || lowerLeft[1] != 6 {
		t.Errorf("expected lower-left corner (1, 6), got (%v, %v)", lowerLeft[0], lowerLeft[1])
	}
}

func TestExportDXF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")

	if err := ExportDXF(path, NewReport(model.Result{}, nil)); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}
