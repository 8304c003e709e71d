package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/eartrainer/key"
	"github.com/jsphweid/eartrainer/midi"
	"github.com/jsphweid/eartrainer/part"
	"github.com/jsphweid/eartrainer/scaledegree"
	"github.com/spf13/cobra"
)

var inspectKey string

func init() {
	inspectCmd.Flags().StringVarP(&inspectKey, "key", "k", "", "also print scale degrees relative to this key")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a midi file",
	Long:  `Prints the notes of a midi file, grouped by onset`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var k *key.Key
		if inspectKey != "" {
			parsed, err := key.Parse(inspectKey)
			cobra.CheckErr(err)
			k = &parsed
		}
		p, err := midi.ReadSteadyPart(args[0])
		cobra.CheckErr(err)
		inspect(cmd.OutOrStdout(), p, k)
	},
}

func inspect(out io.Writer, p part.SteadyPart, k *key.Key) {
	for _, evt := range p {
		var names []string
		for _, n := range evt.Notes {
			name := n.String()
			if k != nil {
				name += fmt.Sprintf("(%v)", scaledegree.ScaleDegreeFromNote(*k, n))
			}
			names = append(names, name)
		}
		fmt.Fprintf(out, "%8v %8v  %v\n", evt.Time, evt.Duration, strings.Join(names, " "))
	}
}
