package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a schema file. The extension picks the parser:
// .json is strict JSON, .yaml/.yml is YAML, anything else tries YAML and
// falls back to JSON.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var s Schema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse JSON schema %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse YAML schema %s: %w", path, err)
		}
	default:
		if yamlErr := yaml.Unmarshal(data, &s); yamlErr != nil {
			if jsonErr := json.Unmarshal(data, &s); jsonErr != nil {
				return nil, fmt.Errorf("failed to parse schema %s as YAML (%v) or JSON: %w", path, yamlErr, jsonErr)
			}
		}
	}

	return &s, nil
}
