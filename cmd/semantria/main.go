// Command semantria is a command line client for the Semantria API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kroma-labs/semantria-go/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
