package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"vaderlang/vader/internal/frameworks"
)

var detectDump bool

var detectCmd = &cobra.Command{
	Use:   "detect <file.vdr>",
	Short: "Detect the framework a Vader file is written for",
	Long: `Detect scores the file against every registered framework by counting
its keywords. An explicit "framework <name>" or "usar <name>" line wins.

Examples:
  vader detect app.vdr
  vader detect app.vdr --dump   # Dump the full detection`,
	Args: cobra.ExactArgs(1),
	Run:  runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectDump, "dump", false, "Dump the detection result")
}

func runDetect(cmd *cobra.Command, args []string) {
	src := readSource(args[0])
	d, err := frameworks.Detect(src)
	if detectDump {
		litter.Dump(d)
	}
	if err != nil {
		fail("detection failed", err)
	}

	fmt.Println(d.Framework)
	names := make([]string, 0, len(d.Scores))
	for name, score := range d.Scores {
		if score > 0 {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if d.Scores[names[i]] != d.Scores[names[j]] {
			return d.Scores[names[i]] > d.Scores[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(os.Stdout, "  %-12s %d\n", name, d.Scores[name])
	}
}
