// Command jiphy converts source files between Python and JavaScript syntax.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/jiphy/internal/cli"
	"github.com/yaklabco/jiphy/internal/logging"
)

// Set with -ldflags "-X main.version=..." at release time.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// An interrupt stops dispatching new files; files already being
	// written finish so no output is left half replaced.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date})

	err := root.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	// Failed files have already been reported one by one.
	if !errors.Is(err, cli.ErrConversionFailed) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
