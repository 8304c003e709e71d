package cmd

import (
	"fmt"

	"github.com/jsphweid/eartrainer/exercise"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists exercises",
	Long:  `Lists the exercises that can be drilled`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, o := range exercise.DefaultCatalog().Overviews() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-18v %v: %v\n", o.Id, o.Name, o.Summary)
		}
	},
}
