// Package manifest reads and writes declarative descriptions of component
// trees and builds live trees from them.
//
// A manifest names a root and its nested children:
//
//	[root]
//	name = "root"
//
//	[[root.children]]
//	name = "widget"
//
// The same structure is accepted as YAML. Building a manifest broadcasts
// KindDeserialize for each component once it is named; taking a snapshot
// broadcasts KindSerialize for each component visited.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bft-labs/comptree/pkg/tree"
)

var (
	// ErrUnknownFormat is returned for unsupported manifest formats.
	ErrUnknownFormat = errors.New("manifest: unknown format")

	// ErrMissingRoot is returned when the manifest has no root name.
	ErrMissingRoot = errors.New("manifest: root name is required")

	// ErrInvalidName is returned for names containing the qualified-name separator.
	ErrInvalidName = errors.New("manifest: invalid component name")
)

// Node describes one component and the components it owns.
type Node struct {
	Name     string `toml:"name" yaml:"name"`
	Children []Node `toml:"children,omitempty" yaml:"children,omitempty"`
}

// Manifest is a tree description.
type Manifest struct {
	Root Node `toml:"root" yaml:"root"`
}

// Format is a manifest encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Validate checks that the root is named and that no name contains ".".
func (m Manifest) Validate() error {
	if m.Root.Name == "" {
		return ErrMissingRoot
	}
	return validateNode(m.Root, "")
}

// Count returns the number of components the manifest describes.
func (m Manifest) Count() int {
	return countNodes(m.Root)
}

func validateNode(n Node, parent string) error {
	if strings.Contains(n.Name, tree.Separator) {
		return fmt.Errorf("%w: %q under %q contains '.'", ErrInvalidName, n.Name, parent)
	}
	path := n.Name
	if parent != "" {
		path = parent + tree.Separator + n.Name
	}
	for _, c := range n.Children {
		if err := validateNode(c, path); err != nil {
			return err
		}
	}
	return nil
}

func countNodes(n Node) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}
