package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"vaderlang/vader/internal/project"
)

var (
	watchTarget string
	watchOut    string
	watchPoll   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Rebuild a project whenever a .vdr file changes",
	Long: `Watch runs an incremental build, then rebuilds each time a .vdr file under
the directory is written. Uses inotify on Linux and polling elsewhere.

Examples:
  vader watch
  vader watch ./src -t javascript -o public/js`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchTarget, "target", "t", "", "Target language or framework")
	watchCmd.Flags().StringVarP(&watchOut, "output", "o", "", "Output directory")
	watchCmd.Flags().BoolVar(&watchPoll, "poll", false, "Poll for changes instead of using file events")
}

func runWatch(cmd *cobra.Command, args []string) {
	b := newBuilder(args, watchTarget, watchOut)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()
		if _, err := b.Build(ctx); err != nil && ctx.Err() == nil {
			logger.Error("build failed", "err", err)
		}
	}
	rebuild()

	w := project.NewWatcher(cfg.Debounce, func(path string) {
		rel, err := filepath.Rel(b.SrcDir, path)
		if err != nil {
			rel = path
		}
		logger.Info("changed", "file", filepath.ToSlash(rel))
		rebuild()
	}, logger)
	w.Poll = watchPoll
	if err := w.Add(b.SrcDir); err != nil {
		fail("cannot watch", err)
	}
	logger.Info("watching", "dir", b.SrcDir, "target", b.Target.Name())
	if err := w.Run(ctx); err != nil {
		fail("watch failed", err)
	}
}
