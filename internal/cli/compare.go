package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/project"
	"github.com/spf13/cobra"
)

func (a *app) compareCommand() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Pack a layout document with every presort order and compare",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCompare(input)
		},
	}
	cmd.Flags().StringVarP(&input, "input_file", "i", "", "layout document to pack")
	return cmd
}

// runCompare prints one row per order: pages used, total page area and
// efficiency. The best order is starred.
func (a *app) runCompare(input string) error {
	if input == "" {
		return errors.New("--input_file is required")
	}
	doc, err := project.Load(input)
	if err != nil {
		return err
	}

	cfg := doc.Config
	a.cfg.ApplyToLayout(&cfg)
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(cfg), doc.Rects)
	best := engine.BestScenario(results)

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tPAGES\tAREA\tEFFICIENCY\t")
	for i, r := range results {
		mark := ""
		if i == best {
			mark = "*"
		}
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t%v\t\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s%s\t%d\t%d\t%.1f%%\t\n", r.Scenario.Name, mark, r.PagesUsed, r.TotalArea, 100-r.WastePercent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if best < 0 {
		return results[0].Err
	}
	return nil
}
