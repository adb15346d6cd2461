package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/dagseq/internal/actions"
	"github.com/vk/dagseq/internal/app"
	"github.com/vk/dagseq/internal/cli"
	"github.com/vk/dagseq/internal/hclconfig"
)

// main is the entrypoint for the dagseq CLI.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

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
// handling.
func run(outW io.Writer, args []string) (runErr error) {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			runErr = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := hclconfig.NewLoader()
	dagseqApp, err := app.New(context.Background(), outW, cfg, loader, actions.DefaultRegistry())
	if err != nil {
		return err
	}

	return dagseqApp.Run(context.Background())
}
