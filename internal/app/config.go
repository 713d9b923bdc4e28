package app

import "errors"

// Config holds everything one pipeline invocation needs.
type Config struct {
	// ConfigPath is the pipeline configuration file. A missing file falls
	// back to compiled-in defaults.
	ConfigPath string
	// RegistryOverride is the optional positional argument: a last-resort
	// registry location probed after all configured candidates.
	RegistryOverride string

	LogFormat string
	LogLevel  string
	// Workers caps concurrent generator invocations; 1 keeps the historical
	// sequential behavior.
	Workers int
	// CheckDocs runs only the documentation consistency check.
	CheckDocs bool
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Workers < 0 {
		return nil, errors.New("workers must not be negative")
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	return &cfg, nil
}
