package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func TestExportChart_CreatesHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.html")
	rep := buildTestReport(t)

	if err := ExportChart(path, rep); err != nil {
		t.Fatalf("ExportChart returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart was not created: %v", err)
	}
	html := string(data)
	for _, want := range []string{"Page utilization", "Efficiency", rep.RunID} {
		if !strings.Contains(html, want) {
			t.Errorf("chart HTML missing %q", want)
		}
	}
}

func TestExportChart_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.html")

	if err := ExportChart(path, NewReport(model.Result{}, nil)); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}
