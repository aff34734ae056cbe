// Package commands is the terminal front end to the panel: the same
// credential, branch and review flows the design-editor panel runs, driven
// from flags, with inserted text written to stdout.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	platformFlag   string
	businessIDFlag string
	emailFlag      string
	passwordFlag   string
	rememberFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "salon-panel",
	Short: "Fetch salon branches and customer reviews, and format reviews for insertion",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&platformFlag, "platform", "phorest", "salon platform (phorest, mindbody, boulevard)")
	pf.StringVar(&businessIDFlag, "business-id", "", "business identifier on the platform")
	pf.StringVar(&emailFlag, "email", "", "account email")
	pf.StringVar(&passwordFlag, "password", "", "account password")
	pf.BoolVar(&rememberFlag, "remember", false, "persist credentials for the next run")

	rootCmd.AddCommand(branchesCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(docsCmd)
}
