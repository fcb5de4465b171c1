package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vaderlang/vader/internal/frameworks"
)

var frameworksVerbose bool

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List the registered frameworks",
	Long: `List the frameworks vader can target, with the keywords that count
towards their detection.`,
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FRAMEWORK\tLANGUAGE\tEXT\tDESCRIPTION")
		for _, info := range frameworks.Global.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Name, info.Language, info.Extension, info.Description)
			if frameworksVerbose {
				fmt.Fprintf(w, "\t\t\tpalabras clave: %s\n", strings.Join(info.Keywords, ", "))
			}
		}
		w.Flush()
	},
}

func init() {
	frameworksCmd.Flags().BoolVarP(&frameworksVerbose, "verbose", "v", false, "Show detection keywords")
}
