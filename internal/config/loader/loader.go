// Package loader reads overlay configuration defaults files.
//
// Defaults files carry one section per overlay kind:
//
//	[tooltip]
//	placement = "top"
//	delay = 50
//
//	[popover]
//	triggers = "click"
//
// TOML and JSON formats are supported, selected by file extension.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfields/hoverlay/internal/config"
)

// Loader parses a configuration document into a map.
type Loader interface {
	// LoadFrom reads configuration from a specific path.
	// Returns nil, nil if the file doesn't exist (not an error).
	LoadFrom(path string) (map[string]any, error)
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string

	// Message is a human-readable description.
	Message string

	// Err is the underlying parser error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ForPath returns the loader for a file path based on its extension.
// Unknown extensions get the TOML loader.
func ForPath(path string) Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return &JSONLoader{}
	default:
		return &TOMLLoader{}
	}
}

// Load reads a configuration file with the loader matching its extension.
func Load(path string) (map[string]any, error) {
	return ForPath(path).LoadFrom(path)
}

// Defaults loads per-kind overlay Props from a defaults file. Top-level
// sections name overlay kinds; non-table values are ignored. A missing
// file yields an empty map.
func Defaults(path string) (map[string]config.Props, error) {
	raw, err := Load(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]config.Props)
	for kind, section := range raw {
		m, ok := section.(map[string]any)
		if !ok {
			continue
		}
		out[kind] = config.FromMap(m)
	}
	return out, nil
}

// readFile reads path, mapping a missing file to nil, nil.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return data, nil
}
