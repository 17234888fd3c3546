package cli

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/spf13/cobra"
)

func (a *app) catalogCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List candidate page sizes in the order they are tried",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, s := range engine.Catalog() {
				if _, err := fmt.Fprintln(a.stdout, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
