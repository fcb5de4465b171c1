package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"vaderlang/vader/internal/preview"
	"vaderlang/vader/vadererr"
)

var runTarget string

var runCmd = &cobra.Command{
	Use:   "run <file.vdr>",
	Short: "Transpile a Vader file and execute it",
	Long: `Run translates the file to an interpreted target (python, javascript,
ruby or php) and executes it with the configured interpreter.

Examples:
  vader run main.vdr              # Run with the configured target
  vader run -t js main.vdr        # Run with node`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runTarget, "target", "t", "", "Target to run (python, javascript, ruby, php)")
}

func runRun(cmd *cobra.Command, args []string) {
	src := readSource(args[0])
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := preview.NewRunner(cfg.Interpreters(), cfg.Timeout, logger)
	res, err := runner.RunSource(ctx, targetOr(runTarget), src)
	fmt.Print(res.Output)

	var runErr *vadererr.RunError
	switch {
	case err == nil:
		logger.Debug("finished", "target", res.Target, "duration", res.Duration)
	case errors.As(err, &runErr) && runErr.ExitCode > 0:
		os.Exit(runErr.ExitCode)
	default:
		fail("run failed", err)
	}
}
