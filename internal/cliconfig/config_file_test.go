package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all values",
			fileConfig: FileConfig{
				Manifest:     "/etc/tree.toml",
				Format:       "toml",
				Output:       "/tmp/out.yaml",
				OutputFormat: "yaml",
				LogLevel:     "debug",
				Debounce:     "250ms",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Manifest:     "/etc/tree.toml",
				Format:       "toml",
				Output:       "/tmp/out.yaml",
				OutputFormat: "yaml",
				LogLevel:     "debug",
				Debounce:     250 * time.Millisecond,
			},
		},
		{
			name:       "respects changed flags",
			fileConfig: FileConfig{Manifest: "/file/tree.toml", LogLevel: "debug"},
			changed:    map[string]bool{"manifest": true},
			initial:    Config{Manifest: "/flag/tree.toml", LogLevel: "info"},
			expected:   Config{Manifest: "/flag/tree.toml", LogLevel: "debug"},
		},
		{
			name:       "empty values keep defaults",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "invalid duration",
			fileConfig: FileConfig{Debounce: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyFileConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("ApplyFileConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
manifest = "/srv/tree.yaml"
log_level = "debug"
debounce = "1s"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.Manifest != "/srv/tree.yaml" || fc.LogLevel != "debug" || fc.Debounce != "1s" {
		t.Errorf("LoadFileConfig() = %+v", fc)
	}
	if !FileExists(path) {
		t.Error("FileExists() = false for written config")
	}
}

func TestLoadFileConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFileConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFileConfig() of missing file succeeded")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("manifest = "), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFileConfig(bad); err == nil {
		t.Error("LoadFileConfig() of malformed file succeeded")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	if got := DefaultConfigPath(); got != filepath.Join("/home/tester", ".comptree", "config.toml") {
		t.Errorf("DefaultConfigPath() = %q", got)
	}
}
