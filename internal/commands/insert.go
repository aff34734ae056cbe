package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	insertBranchFlag string
	insertReviewFlag string
)

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Print the composed insert text for one review",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, _, err := buildPanel(ctx)
		if err != nil {
			return err
		}
		if err := fetchBranches(ctx, p); err != nil {
			return err
		}
		p.SelectBranch(insertBranchFlag)
		if err := p.FetchReviews(ctx); err != nil {
			if msg := p.ErrorMessage(); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			return err
		}
		return p.Insert(ctx, insertReviewFlag)
	},
}

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Print the platform API documentation link",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := buildPanel(cmd.Context())
		if err != nil {
			return err
		}
		return p.OpenDocs(cmd.Context())
	},
}

func init() {
	insertCmd.Flags().StringVar(&insertBranchFlag, "branch", "", "branch id the review belongs to")
	insertCmd.Flags().StringVar(&insertReviewFlag, "review", "", "review id to insert")
	_ = insertCmd.MarkFlagRequired("branch")
	_ = insertCmd.MarkFlagRequired("review")
}
