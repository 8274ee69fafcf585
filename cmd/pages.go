package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zolinad/dsportfolio/internal/portfolio"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the portfolio pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, p := range portfolio.Pages() {
			fmt.Fprintf(out, "- %s: %s %s\n", p.Slug(), p.Icon(), p.Title())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
