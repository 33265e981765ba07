// Package main is the entry point for the gembundle companion binary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/trailib/supergemlock/cmd/gembundle/commands"
	"github.com/trailib/supergemlock/internal/adapters/logger"
	"github.com/trailib/supergemlock/internal/adapters/seededcatalog"
	"github.com/trailib/supergemlock/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lg := logger.New()
	catalogSource := seededcatalog.New("catalog.yaml")
	orchestrator := app.New(catalogSource, lg)

	cli := commands.New(orchestrator)
	cli.SetArgs(os.Args[1:])

	if err := cli.Execute(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		return 1
	}
	return 0
}
