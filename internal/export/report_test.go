package export

import (
	"fmt"
	"os"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/model"
)

// buildTestReport packs a small sprite set onto two pages: a 2048x2048
// sheet filled by one large rect and a cropped page with the rest.
func buildTestReport(t *testing.T) Report {
	t.Helper()

	sizes := [][2]uint32{{2040, 2040}, {100, 60}, {40, 40}, {40, 20}, {12, 30}}
	rects := make([]model.Rect, len(sizes))
	names := make([]string, len(sizes))
	for i, s := range sizes {
		rects[i] = model.Rect{Index: i, W: s[0], H: s[1]}
		names[i] = fmt.Sprintf("sprite_%d", i)
	}

	cfg := model.LayoutConfig{SpacingX: 2, SpacingY: 2, BorderX: 1, BorderY: 1, CropX: true, CropY: true}
	res, err := engine.New(cfg).Pack(rects)
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if len(res.Pages) != 2 {
		t.Fatalf("expected 2 pages in fixture, got %d", len(res.Pages))
	}
	return NewReport(res, names)
}

// requireFile fails unless path exists and holds at least minSize bytes.
func requireFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if info.Size() < minSize {
		t.Fatalf("file seems too small: %d bytes", info.Size())
	}
}

func TestNewReport_RunID(t *testing.T) {
	a := NewReport(model.Result{}, nil)
	b := NewReport(model.Result{}, nil)

	if a.RunID == "" {
		t.Fatal("expected a run ID")
	}
	if a.RunID == b.RunID {
		t.Errorf("run IDs should differ, both %q", a.RunID)
	}
}

func TestReport_NameFallback(t *testing.T) {
	rep := Report{Names: []string{"hero", ""}}

	tests := []struct {
		idx  int
		want string
	}{
		{0, "hero"},
		{1, "#1"},
		{2, "#2"},
	}
	for _, tt := range tests {
		if got := rep.Name(tt.idx); got != tt.want {
			t.Errorf("Name(%d) = %q, want %q", tt.idx, got, tt.want)
		}
	}
}

func TestColorFor_Cycles(t *testing.T) {
	if colorFor(0) != colorFor(len(rectColors)) {
		t.Error("palette should cycle")
	}
	if colorFor(0) == colorFor(1) {
		t.Error("neighbouring rects should differ in color")
	}
}
