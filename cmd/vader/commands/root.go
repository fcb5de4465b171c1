// Package commands provides the CLI commands for the vader tool.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"vaderlang/vader/internal/config"
	"vaderlang/vader/internal/frameworks"
	"vaderlang/vader/internal/project"
	"vaderlang/vader/internal/targets"
	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/vadererr"
)

var (
	configPath string
	logLevel   string

	cfg    = config.Default()
	logger = log.Default()
)

var rootCmd = &cobra.Command{
	Use:   "vader [file.vdr]",
	Short: "Vader pseudo-language transpiler",
	Long: `Vader is a pseudo-language with Spanish keywords that translates line by
line into programming languages, web frameworks and desktop applications.

Usage:
  vader [file.vdr]                  Transpile a Vader file (shorthand)
  vader transpile -t go file.vdr    Transpile to a given target
  vader build                       Transpile a whole project
  vader serve                       Serve .vdr pages and the JSON API
  vader repl                        Interactive session
  vader targets | frameworks        List what vader can produce
  vader version                     Print version

Configuration is read from vader.properties and VADER_* environment variables.`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		logger = cfg.NewLogger(os.Stderr)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if transpileInput != "" {
			runTranspile(cmd, args)
			return nil
		}
		if len(args) > 0 && strings.HasSuffix(args[0], project.SourceExt) {
			runTranspile(cmd, args)
			return nil
		}
		if len(args) == 0 {
			return cmd.Help()
		}
		return fmt.Errorf("unknown command %q for \"vader\"\nRun 'vader --help' for usage", args[0])
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transpileCmd)
	rootCmd.AddCommand(targetsCmd)
	rootCmd.AddCommand(frameworksCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(webgenCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to vader.properties")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Mirror the transpile flags for the shorthand form.
	rootCmd.Flags().StringVarP(&transpileInput, "input", "i", "", "Path to the input .vdr file")
	rootCmd.Flags().StringVarP(&transpileOutput, "output", "o", "", "Path to the output file")
	rootCmd.Flags().StringVarP(&transpileTarget, "target", "t", "", "Target language or framework")
}

// fail logs err and exits.
func fail(msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}

// targetOr returns name, or the configured target when name is empty.
func targetOr(name string) string {
	if name != "" {
		return name
	}
	return cfg.Target
}

// resolveTranspiler finds a language target or a framework by name.
func resolveTranspiler(name string) (transpiler.Transpiler, error) {
	if t, err := targets.Lookup(name); err == nil {
		return t, nil
	}
	info, err := frameworks.Global.Lookup(name)
	if err != nil {
		return nil, vadererr.NewUnknownTargetError(name, append(targets.Names(), frameworks.Global.Names()...))
	}
	return info.Transpiler, nil
}

func readSource(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to read input file: %v\n", err)
		os.Exit(1)
	}
	return string(content)
}
