package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/regen/internal/app"
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
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("regen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Regen - deterministic source artifact regeneration pipeline.

Usage:
  regen [options] [REGISTRY_PATH]

Arguments:
  REGISTRY_PATH
    Optional override for the interface-description registry location. The
    configured candidate paths are always probed first; the override is the
    last resort.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "regen.hcl", "Path to the pipeline configuration file.")
	workersFlag := flagSet.Int("workers", 1, "Number of concurrent generator invocations. 1 preserves sequential generation.")
	checkDocsFlag := flagSet.Bool("check-docs", false, "Run only the documentation consistency check and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "at most one registry override path may be given"}
	}
	override := ""
	if flagSet.NArg() > 0 {
		override = flagSet.Arg(0)
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:       *configFlag,
		RegistryOverride: override,
		Workers:          *workersFlag,
		CheckDocs:        *checkDocsFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
