package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"vaderlang/vader/internal/assistant"
	"vaderlang/vader/internal/preview"
	"vaderlang/vader/internal/repl"
)

var replTarget string

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Vader session",
	Long: `Repl buffers the Vader lines you type. Commands start with a colon:

  :target <t>       change the target
  :mostrar          show the translation
  :ejecutar         run the translation
  :preguntar <q>    ask the assistant about the code
  :guardar <file>   save the code
  :limpiar          clear the code
  :salir            quit

Type :ayuda inside the session for the full list.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s := repl.New(os.Stdin, os.Stdout, repl.Options{
			Target:    targetOr(replTarget),
			Runner:    preview.NewRunner(cfg.Interpreters(), cfg.Timeout, logger),
			Assistant: assistant.New(cfg.AssistantURL),
		})
		if err := s.Run(ctx); err != nil && ctx.Err() == nil {
			fail("session ended", err)
		}
	},
}

func init() {
	replCmd.Flags().StringVarP(&replTarget, "target", "t", "", "Initial target")
}
