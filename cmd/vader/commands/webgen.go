package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"vaderlang/vader/internal/webgen"
)

var (
	webgenOut     string
	webgenTargets []string
)

var webgenCmd = &cobra.Command{
	Use:   "webgen",
	Short: "Generate the component library page",
	Long: `Webgen writes index.html, styles.css and app.js: a catalog of Vader
snippets, each shown next to its translation for every selected target.

Examples:
  vader webgen -o site
  vader webgen -o site --targets python,go,rust`,
	Args: cobra.NoArgs,
	Run:  runWebgen,
}

func init() {
	webgenCmd.Flags().StringVarP(&webgenOut, "output", "o", "web", "Output directory")
	webgenCmd.Flags().StringSliceVar(&webgenTargets, "targets", nil, "Targets to show (default python,javascript,go,rust,java)")
}

func runWebgen(cmd *cobra.Command, args []string) {
	files, err := webgen.New(webgenTargets).Generate("")
	if err != nil {
		fail("generation failed", err)
	}
	if err := os.MkdirAll(webgenOut, 0o755); err != nil {
		fail("cannot create output directory", err)
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		dest := filepath.Join(webgenOut, name)
		if err := os.WriteFile(dest, []byte(files[name]), 0o644); err != nil {
			fail("failed to write output file", err)
		}
		fmt.Printf("  %s\n", dest)
	}
}
