package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/dagseq/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly (e.g. -help was
// requested), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("dagseq", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
dagseq - a bounded-concurrency DAG task scheduler.

Usage:
  dagseq [options] [SEQUENCE_PATH]

Arguments:
  SEQUENCE_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	fileFlag := flagSet.String("file", "", "Path to the sequence file or directory.")
	fFlag := flagSet.String("f", "", "Path to the sequence file or directory (shorthand).")
	concurrencyFlag := flagSet.Int("max-concurrency", 0, "Maximum number of tasks running at once. 0 defers to the sequence file.")
	verboseFlag := flagSet.Bool("verbose", false, "Print human-readable, color-coded progress lines to stdout.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health/metrics server. 0 defers to the sequence file; disabled if neither sets one.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	switch {
	case *fileFlag != "":
		path = *fileFlag
	case *fFlag != "":
		path = *fFlag
	case flagSet.NArg() > 0:
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg, err := app.NewConfig(app.Config{
		SequencePaths:   []string{path},
		MaxConcurrency:  *concurrencyFlag,
		Verbose:         *verboseFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return cfg, false, nil
}
