package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"vaderlang/vader/internal/project"
)

var (
	buildTarget string
	buildOut    string
	buildForce  bool
)

var buildCmd = &cobra.Command{
	Use:   "build [directory]",
	Short: "Transpile every .vdr file of a project",
	Long: `Build transpiles every .vdr file under the directory into the output
directory. Files whose content and target are unchanged since the last build
are skipped; outputs of deleted sources are removed.

Examples:
  vader build                       # Current directory, configured target
  vader build ./src -t rust -o out  # Explicit target and output
  vader build --force               # Rebuild everything`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildTarget, "target", "t", "", "Target language or framework")
	buildCmd.Flags().StringVarP(&buildOut, "output", "o", "", "Output directory")
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "Rebuild unchanged files")
}

// newBuilder creates the builder shared by build, clean and watch.
func newBuilder(args []string, target, out string) *project.Builder {
	srcDir := "."
	if len(args) > 0 {
		srcDir = args[0]
	}
	if out == "" {
		out = cfg.OutDir
		if !filepath.IsAbs(out) {
			out = filepath.Join(srcDir, out)
		}
	}
	tr, err := resolveTranspiler(targetOr(target))
	if err != nil {
		fail("unknown target", err)
	}
	return project.NewBuilder(srcDir, out, tr, logger)
}

func runBuild(cmd *cobra.Command, args []string) {
	b := newBuilder(args, buildTarget, buildOut)
	b.Force = buildForce

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	report, err := b.Build(ctx)
	for _, rel := range report.Built {
		fmt.Printf("  %s -> %s\n", rel, b.OutputPath(rel))
	}
	if err != nil {
		fail("build failed", err)
	}
	fmt.Printf("Built %d, unchanged %d, removed %d\n", len(report.Built), len(report.Skipped), len(report.Removed))
}
