package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"

	"vaderlang/vader/internal/frameworks"
	"vaderlang/vader/internal/preview"
	"vaderlang/vader/internal/vader"
)

var (
	transpileInput  string
	transpileOutput string
	transpileTarget string
	transpileRun    bool
	transpileDebug  bool
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [file.vdr]",
	Short: "Transpile a Vader file",
	Long: `Transpile a Vader source file to a language or a framework.

The target is a language (python, go, rust, ...), an alias (py, js, rs, ...)
or a framework (react, django, electron, ...). Without --target the configured
target is used; "auto" detects the framework from its keywords.

Frameworks that produce several files (electron, tkinter) write them into the
--output directory.

Examples:
  vader transpile main.vdr                    # Output to stdout
  vader transpile -t go main.vdr -o main.go   # Output to file
  vader transpile -t auto app.vdr             # Detect the framework
  vader transpile -t electron app.vdr -o app  # Generate a project directory
  vader transpile main.vdr --run              # Transpile and execute
  vader main.vdr                              # Shorthand`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTranspile,
}

func init() {
	transpileCmd.Flags().StringVarP(&transpileInput, "input", "i", "", "Path to the input .vdr file")
	transpileCmd.Flags().StringVarP(&transpileOutput, "output", "o", "", "Path to the output file or directory")
	transpileCmd.Flags().StringVarP(&transpileTarget, "target", "t", "", "Target language or framework")
	transpileCmd.Flags().BoolVarP(&transpileRun, "run", "r", false, "Execute the translation")
	transpileCmd.Flags().BoolVar(&transpileDebug, "debug", false, "Dump the classified statements to stderr")
}

func runTranspile(cmd *cobra.Command, args []string) {
	inputPath := transpileInput
	if inputPath == "" && len(args) > 0 {
		inputPath = args[0]
	}
	if inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		fmt.Fprintln(os.Stderr, "Usage: vader transpile [file.vdr] or vader -i file.vdr")
		os.Exit(1)
	}
	src := readSource(inputPath)

	if transpileDebug {
		fmt.Fprint(os.Stderr, litter.Options{HidePrivateFields: true}.Sdump(vader.Scan(src)))
		fmt.Fprintln(os.Stderr)
	}

	target := targetOr(transpileTarget)
	if target == "auto" {
		target = ""
	}

	if target != "" {
		if info, err := frameworks.Global.Lookup(target); err == nil && info.Generator != nil && transpileOutput != "" {
			writeProject(info.Name, transpileOutput, src)
			return
		}
	}

	name, out, err := frameworks.TranspileAny(target, src)
	if err != nil {
		fail("transpilation failed", err)
	}
	logger.Debug("transpiled", "input", inputPath, "target", name)

	if transpileOutput != "" {
		if err := os.WriteFile(transpileOutput, []byte(out), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to write output file: %v\n", err)
			os.Exit(1)
		}
		if !transpileRun {
			fmt.Printf("Generated %s code saved to %s\n", name, transpileOutput)
		}
	} else if !transpileRun {
		fmt.Print(out)
	}

	if transpileRun {
		runner := preview.NewRunner(cfg.Interpreters(), cfg.Timeout, logger)
		res, err := runner.Run(context.Background(), name, out)
		fmt.Print(res.Output)
		if err != nil {
			fail("failed to run translation", err)
		}
	}
}

func writeProject(framework, dir, src string) {
	info, err := frameworks.Global.Lookup(framework)
	if err != nil {
		fail("unknown framework", err)
	}
	files, err := info.Generator.Generate(src)
	if err != nil {
		fail("generation failed", err)
	}
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		dest := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			fail("failed to create directory", err)
		}
		if err := os.WriteFile(dest, []byte(files[p]), 0o644); err != nil {
			fail("failed to write output file", err)
		}
		fmt.Printf("  %s\n", dest)
	}
	fmt.Printf("Generated %s project in %s\n", info.Name, dir)
}
