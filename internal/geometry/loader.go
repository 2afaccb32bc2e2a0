package geometry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnsupportedMapFormat = errors.New("unsupported map format")

// LoadMapFromFile reads a map description from a .json, .yaml or .yml file.
func LoadMapFromFile(path string) (*MapDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	def, err := ParseMap(data, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to load map %s: %w", path, err)
	}
	return def, nil
}

// ParseMap decodes data in the format named by ext (".json", ".yaml" or ".yml").
func ParseMap(data []byte, ext string) (*MapDefinition, error) {
	var def MapDefinition
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse map JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse map YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMapFormat, ext)
	}
	return &def, nil
}
