package cmd

import (
	"strings"

	"github.com/byxorna/sieve/pkg/app"
	"github.com/spf13/cobra"
)

var search = &cobra.Command{
	Use:   "search [query...]",
	Short: "Print every section filtered by query",
	Long: `Print every section filtered by query, without starting the interface.
The words of the query are joined with spaces. Without a query every item
is printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dir, err := app.Open(flags.ConfigFile)
		if err != nil {
			return err
		}
		dir.ApplyFilter(strings.Join(args, " "))
		return dir.Print(cmd.OutOrStdout())
	},
}
