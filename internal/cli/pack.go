package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/export"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type packOptions struct {
	input   string
	output  string
	reports model.ReportConfig
}

func addPackFlags(cmd *cobra.Command, o *packOptions) {
	f := cmd.Flags()
	f.StringVarP(&o.input, "input_file", "i", "", "layout document to pack")
	f.StringVarP(&o.output, "output_file", "o", "", "where to write the packed document")
	f.StringVar(&o.reports.PDF, "pdf", "", "write a PDF layout report")
	f.StringVar(&o.reports.Labels, "labels", "", "write a PDF of QR-coded rect labels")
	f.StringVar(&o.reports.XLSX, "xlsx", "", "write an Excel workbook of rects and pages")
	f.StringVar(&o.reports.DXF, "dxf", "", "write a DXF drawing of the pages")
	f.StringVar(&o.reports.Chart, "chart", "", "write an HTML page utilization chart")
	f.StringVar(&o.reports.PreviewDir, "preview-dir", "", "write a PNG preview per page into this directory")
}

func (a *app) packCommand() *cobra.Command {
	var opts packOptions
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack a layout document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPack(&opts)
		},
	}
	addPackFlags(cmd, &opts)
	return cmd
}

// runPack packs the input document and writes the output document, then
// any requested reports. Nothing is written when packing fails.
func (a *app) runPack(o *packOptions) error {
	if o.input == "" {
		return errors.New("--input_file is required")
	}
	if o.output == "" {
		return errors.New("--output_file is required")
	}
	if _, err := os.Stat(o.input); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("--input_file: file does not exist: %s", o.input)
		}
		return err
	}

	doc, err := project.Load(o.input)
	if err != nil {
		return err
	}

	cfg := doc.Config
	a.cfg.ApplyToLayout(&cfg)

	opt := engine.New(cfg)
	opt.Log = a.log
	res, err := opt.Pack(doc.Rects)
	if err != nil {
		return err
	}
	if err := doc.Apply(res); err != nil {
		return err
	}
	if err := project.Save(o.output, doc); err != nil {
		return err
	}

	a.log.WithFields(logrus.Fields{
		"rects":      len(res.Rects),
		"pages":      len(res.Pages),
		"efficiency": fmt.Sprintf("%.1f%%", res.TotalEfficiency()),
	}).Info("packed")

	return a.writeReports(mergeReports(o.reports, a.cfg.Reports), export.NewReport(res, doc.Names()))
}

// mergeReports takes each report path from the flags, falling back to the
// application config.
func mergeReports(flags, cfg model.ReportConfig) model.ReportConfig {
	pick := func(f, c string) string {
		if f != "" {
			return f
		}
		return c
	}
	return model.ReportConfig{
		PDF:        pick(flags.PDF, cfg.PDF),
		Labels:     pick(flags.Labels, cfg.Labels),
		XLSX:       pick(flags.XLSX, cfg.XLSX),
		DXF:        pick(flags.DXF, cfg.DXF),
		Chart:      pick(flags.Chart, cfg.Chart),
		PreviewDir: pick(flags.PreviewDir, cfg.PreviewDir),
	}
}

func (a *app) writeReports(rc model.ReportConfig, rep export.Report) error {
	if !rc.Any() {
		return nil
	}

	writers := []struct {
		kind  string
		path  string
		write func(string, export.Report) error
	}{
		{"pdf", rc.PDF, export.ExportPDF},
		{"labels", rc.Labels, export.ExportLabels},
		{"xlsx", rc.XLSX, export.ExportXLSX},
		{"dxf", rc.DXF, export.ExportDXF},
		{"chart", rc.Chart, export.ExportChart},
	}
	for _, w := range writers {
		if w.path == "" {
			continue
		}
		if err := w.write(w.path, rep); err != nil {
			return fmt.Errorf("writing %s report: %w", w.kind, err)
		}
		a.log.WithFields(logrus.Fields{"report": w.kind, "path": w.path}).Info("report written")
	}

	if rc.PreviewDir != "" {
		paths, err := export.ExportPreviews(rc.PreviewDir, rep)
		if err != nil {
			return fmt.Errorf("writing previews: %w", err)
		}
		a.log.WithFields(logrus.Fields{"report": "preview", "files": len(paths)}).Info("report written")
	}
	return nil
}
