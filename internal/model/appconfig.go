package model

// AppConfig holds tool-wide preferences loaded from the TOML config file.
// Values here are defaults; command-line flags and the input document
// take precedence.
type AppConfig struct {
	LogLevel     string `toml:"log_level"`     // logrus level name, e.g. "info", "debug"
	DefaultOrder string `toml:"default_order"` // Presort used when the document names none
	MaxPages     int    `toml:"max_pages"`     // Page budget used when the document names none, 0 = unlimited

	Reports ReportConfig `toml:"reports"`
	Server  ServerConfig `toml:"server"`
}

// ReportConfig names the optional report files written after a successful
// run. Empty paths disable the corresponding report.
type ReportConfig struct {
	PDF        string `toml:"pdf"`
	Labels     string `toml:"labels"`
	XLSX       string `toml:"xlsx"`
	DXF        string `toml:"dxf"`
	Chart      string `toml:"chart"`
	PreviewDir string `toml:"preview_dir"`
}

// Any returns true if at least one report is enabled.
func (rc ReportConfig) Any() bool {
	return rc.PDF != "" || rc.Labels != "" || rc.XLSX != "" || rc.DXF != "" ||
		rc.Chart != "" || rc.PreviewDir != ""
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		LogLevel:     "info",
		DefaultOrder: "Unsorted",
		MaxPages:     0,
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// ApplyToLayout fills in layout fields the document left unset.
func (c AppConfig) ApplyToLayout(l *LayoutConfig) {
	if l.Order == "" {
		l.Order = c.DefaultOrder
	}
	if l.MaxPages == 0 {
		l.MaxPages = c.MaxPages
	}
}
