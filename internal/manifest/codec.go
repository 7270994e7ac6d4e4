package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Decode parses a manifest and validates it.
func Decode(data []byte, format Format) (Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return Manifest{}, fmt.Errorf("decode toml manifest: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Manifest{}, fmt.Errorf("decode yaml manifest: %w", err)
		}
	default:
		return Manifest{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err := m.Validate(); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Encode renders a manifest.
func Encode(m Manifest, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("encode toml manifest: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, fmt.Errorf("encode yaml manifest: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml manifest: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Load reads the manifest at path, deriving the format from its extension.
func Load(path string) (Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Manifest{}, err
	}
	return LoadFormat(path, format)
}

// LoadFormat reads the manifest at path in the given format.
func LoadFormat(path string, format Format) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	m, err := Decode(data, format)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Save writes the manifest to path atomically, deriving the format from
// its extension.
func Save(path string, m Manifest) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return SaveFormat(path, m, format)
}

// SaveFormat writes the manifest to path in the given format (temp file,
// then rename).
func SaveFormat(path string, m Manifest, format Format) error {
	data, err := Encode(m, format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
