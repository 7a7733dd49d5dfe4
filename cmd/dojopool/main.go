// Command dojopool is the DojoPool terminal dashboard.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SgtClickClack/DojoPool-sub003/internal/cli"
	"github.com/SgtClickClack/DojoPool-sub003/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and maps the result to an exit code. It is
// split from main so tests can call it.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	if err := root.ExecuteContext(ctx); err != nil {
		// Cobra has already printed the error.
		return 1
	}
	return 0
}
