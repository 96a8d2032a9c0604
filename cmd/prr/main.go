package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prrkit/prr/internal/adapter/cli"
	"github.com/prrkit/prr/internal/app"
	"github.com/prrkit/prr/internal/config"
	"github.com/prrkit/prr/internal/logger"
	"github.com/prrkit/prr/internal/version"
)

// Exit codes: 0 clean review, 1 configuration or execution failure,
// 2 comments present with fail-on-comments.
const (
	exitFailure  = 1
	exitComments = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		return exitFailure
	}

	log := logger.New(cfg.Logging, os.Stderr)

	runner := app.NewRunner(app.Deps{
		Config: cfg,
		Out:    os.Stdout,
		Logger: log,
	})

	root := cli.NewRootCommand(cli.Dependencies{
		Runner:  runner,
		Version: version.Value(),
	})

	if err := root.ExecuteContext(ctx); err != nil {
		switch {
		case errors.Is(err, cli.ErrVersionRequested):
			return 0
		case errors.Is(err, app.ErrCommentsPresent):
			fmt.Fprintln(os.Stderr, err)
			return exitComments
		default:
			fmt.Fprintln(os.Stderr, err)
			return exitFailure
		}
	}
	return 0
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "prr"))
	}
	return paths
}
