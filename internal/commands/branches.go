package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List the business locations visible to these credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, _, err := buildPanel(ctx)
		if err != nil {
			return err
		}
		if err := fetchBranches(ctx, p); err != nil {
			return err
		}
		for _, b := range p.Branches() {
			fmt.Printf("%-40s %s\n", b.ID, b.Name)
		}
		return nil
	},
}
