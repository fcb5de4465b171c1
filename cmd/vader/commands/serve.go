package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vaderlang/vader/internal/assistant"
	"vaderlang/vader/internal/preview"
	"vaderlang/vader/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve [directory]",
	Short: "Serve a directory of Vader pages and the JSON API",
	Long: `Serve files from a directory. Requesting a .vdr file returns a page that
runs its JavaScript translation in the browser; ?raw=1 returns the source.

The JSON API lives under /api: targets, transpile, detect, run and ask.

Examples:
  vader serve                  # Serve the current directory on the configured address
  vader serve ./site --addr :3000`,
	Args: cobra.MaximumNArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address")
}

func runServe(cmd *cobra.Command, args []string) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if info, err := os.Stat(root); err != nil {
		fail("cannot serve", err)
	} else if !info.IsDir() {
		fail("cannot serve", fmt.Errorf("%s is not a directory", root))
	}
	addr := cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(server.Options{
		Root:          root,
		MaxCodeBytes:  cfg.MaxCodeBytes,
		DefaultTarget: cfg.Target,
		Logger:        logger,
		Runner:        preview.NewRunner(cfg.Interpreters(), cfg.Timeout, logger),
		Assistant:     assistant.New(cfg.AssistantURL),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("serving", "root", root, "addr", addr)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fail("server stopped", err)
	}
}
