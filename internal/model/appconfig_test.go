package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level=info, got %s", cfg.LogLevel)
	}
	if cfg.DefaultOrder != "Unsorted" {
		t.Errorf("expected default order=Unsorted, got %s", cfg.DefaultOrder)
	}
	if cfg.MaxPages != 0 {
		t.Errorf("expected unlimited pages, got %d", cfg.MaxPages)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr=:8080, got %s", cfg.Server.Addr)
	}
	if cfg.Reports.Any() {
		t.Error("no report should be enabled by default")
	}
}

func TestApplyToLayout(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultOrder = "AreaDesc"
	cfg.MaxPages = 3

	var l LayoutConfig
	cfg.ApplyToLayout(&l)
	if l.Order != "AreaDesc" {
		t.Errorf("expected Order=AreaDesc, got %s", l.Order)
	}
	if l.MaxPages != 3 {
		t.Errorf("expected MaxPages=3, got %d", l.MaxPages)
	}

	// Document values win over tool defaults.
	l = LayoutConfig{Order: "HeightDesc", MaxPages: 1}
	cfg.ApplyToLayout(&l)
	if l.Order != "HeightDesc" {
		t.Errorf("expected Order=HeightDesc, got %s", l.Order)
	}
	if l.MaxPages != 1 {
		t.Errorf("expected MaxPages=1, got %d", l.MaxPages)
	}
}

func TestReportConfigAny(t *testing.T) {
	rc := ReportConfig{XLSX: "out.xlsx"}
	if !rc.Any() {
		t.Error("expected Any() to be true with an xlsx path")
	}
}
