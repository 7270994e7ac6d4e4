package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (COMPTREE_*).
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("manifest", os.Getenv("COMPTREE_MANIFEST"), &cfg.Manifest)
	s.setString("format", os.Getenv("COMPTREE_FORMAT"), &cfg.Format)
	s.setString("output", os.Getenv("COMPTREE_OUTPUT"), &cfg.Output)
	s.setString("output-format", os.Getenv("COMPTREE_OUTPUT_FORMAT"), &cfg.OutputFormat)
	s.setString("log-level", os.Getenv("COMPTREE_LOG_LEVEL"), &cfg.LogLevel)

	return s.setDuration("debounce", os.Getenv("COMPTREE_DEBOUNCE"), &cfg.Debounce)
}
