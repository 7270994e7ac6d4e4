package cliconfig

import (
	"fmt"
	"time"

	"github.com/bft-labs/comptree/internal/manifest"
	"github.com/bft-labs/comptree/pkg/log"
)

// Config holds CLI configuration for comptree.
type Config struct {
	// Manifest is the tree manifest to load (.toml, .yaml or .yml).
	Manifest string
	// Format overrides the manifest format derived from the file extension.
	Format string
	// Output is where dump writes; empty means stdout.
	Output string
	// OutputFormat is the encoding used by dump. Defaults to the manifest format.
	OutputFormat string

	LogLevel string
	Debounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Debounce: 100 * time.Millisecond,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return fmt.Errorf("manifest is required")
	}

	if c.Format == "" {
		f, err := manifest.FormatFromPath(c.Manifest)
		if err != nil {
			return err
		}
		c.Format = string(f)
	} else {
		f, err := manifest.ParseFormat(c.Format)
		if err != nil {
			return err
		}
		c.Format = string(f)
	}

	if c.OutputFormat == "" {
		c.OutputFormat = c.Format
		if c.Output != "" {
			if f, err := manifest.FormatFromPath(c.Output); err == nil {
				c.OutputFormat = string(f)
			}
		}
	} else {
		f, err := manifest.ParseFormat(c.OutputFormat)
		if err != nil {
			return err
		}
		c.OutputFormat = string(f)
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}

	return nil
}

// ManifestFormat returns the validated manifest format.
func (c *Config) ManifestFormat() manifest.Format {
	return manifest.Format(c.Format)
}

// configSetter applies values only when the corresponding flag was not
// set explicitly on the command line.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// DumpFormat returns the validated output format used by dump.
func (c *Config) DumpFormat() manifest.Format {
	return manifest.Format(c.OutputFormat)
}
