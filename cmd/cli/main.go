package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cmbkit/simfetch/internal/app"
	"github.com/cmbkit/simfetch/internal/cli"
)

// main is the entrypoint for the simfetch application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. The app panics on critical startup errors, so we recover here
// and hand them back as ordinary errors.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked | %v", r)
		}
	}()

	simfetchApp := app.NewApp(outW, appConfig)
	defer simfetchApp.Close()

	return simfetchApp.Run(context.Background(), appConfig)
}
