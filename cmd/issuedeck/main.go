package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/issuedeck/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCommand(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "issuedeck: %v\n", err)
		return 1
	}
	return 0
}
