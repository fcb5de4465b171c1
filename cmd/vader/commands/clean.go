package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cleanTarget string
	cleanOut    string
	cleanAll    bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [directory]",
	Short: "Remove build outputs",
	Long: `Clean removes the files written by vader build and the build manifest.

Options:
  --all     Remove the whole output directory

Examples:
  vader clean              # Remove the outputs of the current project
  vader clean --all        # Remove the output directory`,
	Args: cobra.MaximumNArgs(1),
	Run:  runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanTarget, "target", "t", "", "Target the outputs were built for")
	cleanCmd.Flags().StringVarP(&cleanOut, "output", "o", "", "Output directory")
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Remove the whole output directory")
}

func runClean(cmd *cobra.Command, args []string) {
	b := newBuilder(args, cleanTarget, cleanOut)

	if cleanAll {
		fmt.Printf("Removing %s...\n", b.OutDir)
		if err := os.RemoveAll(b.OutDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Done.")
		return
	}

	removed, err := b.Clean()
	if err != nil {
		fail("clean failed", err)
	}
	fmt.Printf("Removed %d generated file(s).\n", len(removed))
}
