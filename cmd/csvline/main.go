package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/oleg578/linecsv/cmd/csvline/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	code := cmd.Execute(ctx)
	stop()
	os.Exit(code)
}
