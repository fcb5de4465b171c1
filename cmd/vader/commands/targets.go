package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vaderlang/vader/internal/targets"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the language targets",
	Run: func(cmd *cobra.Command, args []string) {
		aliases := map[string][]string{}
		for _, a := range targets.Aliases() {
			aliases[a[1]] = append(aliases[a[1]], a[0])
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TARGET\tEXT\tALIASES")
		for _, t := range targets.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name(), t.Extension(), strings.Join(aliases[t.Name()], ", "))
		}
		w.Flush()
	},
}
