package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if err := c.validateDuplicates(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDuplicates() error {
	limit := c.Duplicates.CandidateLimit
	if limit < 1 || limit > maxCandidateLimit {
		return fmt.Errorf("duplicates.candidate_limit must be between 1 and %d, got %d", maxCandidateLimit, limit)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
