package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/roach88/reclog/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err == nil {
		return
	}

	// ExitErrors from commands have already been reported in the chosen format.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Err == nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	code := cli.GetExitCode(err)
	if exitErr == nil {
		// Usage errors from cobra (bad flags, wrong argument count).
		code = cli.ExitCommandError
	}
	stop()
	os.Exit(code)
}
