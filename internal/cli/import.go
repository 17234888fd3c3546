package cli

import (
	"errors"
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/importer"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
	"github.com/spf13/cobra"
)

type importOptions struct {
	input  string
	output string
	layout model.LayoutConfig
}

func (a *app) importCommand() *cobra.Command {
	var o importOptions
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build a layout document from a CSV, Excel or DXF size list",
		Long: "Build a layout document from a size list. CSV and Excel sheets need\n" +
			"width and height columns and may carry name and quantity columns;\n" +
			"DXF drawings contribute one rect per closed shape.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runImport(&o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.input, "input_file", "i", "", "size list (.csv, .xlsx, .xlsm or .dxf)")
	f.StringVarP(&o.output, "output_file", "o", "", "where to write the layout document")
	f.Uint32Var(&o.layout.SpacingX, "spacing-x", 0, "horizontal gap between rects")
	f.Uint32Var(&o.layout.SpacingY, "spacing-y", 0, "vertical gap between rects")
	f.Uint32Var(&o.layout.BorderX, "border-x", 0, "left and right page border")
	f.Uint32Var(&o.layout.BorderY, "border-y", 0, "top and bottom page border")
	f.BoolVar(&o.layout.CropX, "crop-x", false, "crop page width to the used extent")
	f.BoolVar(&o.layout.CropY, "crop-y", false, "crop page height to the used extent")
	f.StringVar(&o.layout.Order, "order", "", "presort order")
	f.IntVar(&o.layout.MaxPages, "max-pages", 0, "page budget, 0 for unlimited")
	return cmd
}

func (a *app) runImport(o *importOptions) error {
	if o.input == "" {
		return errors.New("--input_file is required")
	}
	if o.output == "" {
		return errors.New("--output_file is required")
	}
	if _, err := engine.ParseOrder(o.layout.Order); err != nil {
		return err
	}
	if o.layout.MaxPages < 0 {
		return fmt.Errorf("--max-pages must not be negative")
	}

	res := importer.ImportFile(o.input)
	for _, w := range res.Warnings {
		a.log.Warn(w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors[1:] {
			a.log.Error(e)
		}
		return fmt.Errorf("import %s: %s (%d errors)", o.input, res.Errors[0], len(res.Errors))
	}
	if len(res.Items) == 0 {
		return fmt.Errorf("import %s: no rects found", o.input)
	}

	doc, err := res.Document(o.layout)
	if err != nil {
		return err
	}
	if err := project.Save(o.output, doc); err != nil {
		return err
	}
	a.log.WithField("rects", len(doc.Rects)).Info("imported")
	return nil
}
