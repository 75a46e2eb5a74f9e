package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAlign(); err != nil {
		return err
	}
	if err := c.validateSides(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAlign() error {
	if c.Align.Threshold < 0 {
		return errors.New("align.threshold must be zero or positive")
	}
	// Multiples of 4 keep the digest (hash_size² bits) on a byte boundary,
	// so its hex form round-trips through ParseDigest.
	if c.Align.HashSize < 4 || c.Align.HashSize%4 != 0 {
		return errors.New("align.hash_size must be a positive multiple of 4")
	}
	if c.Align.Workers < 0 {
		return errors.New("align.workers must be zero or positive")
	}
	return nil
}

func (c *Config) validateSides() error {
	if c.Sides.A == c.Sides.B {
		return fmt.Errorf("sides.a and sides.b must differ (both %q)", c.Sides.A)
	}
	for name, tag := range map[string]string{"sides.a": c.Sides.A, "sides.b": c.Sides.B} {
		if _, err := language.Parse(tag); err != nil {
			return fmt.Errorf("%s: %q is not a valid language tag: %w", name, tag, err)
		}
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
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
