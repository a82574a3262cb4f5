package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML definitions file from the given path.
func LoadFile(path string) (*DefinitionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a DefinitionFile.
func Parse(data []byte) (*DefinitionFile, error) {
	var df DefinitionFile

	err := yaml.Unmarshal(data, &df)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definitions YAML: %w", err)
	}

	applyDefaults(&df)

	return &df, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(df *DefinitionFile) {
	if df.Version == "" {
		df.Version = "1"
	}

	for i := range df.Annotations {
		for j := range df.Annotations[i].Attributes {
			attr := &df.Annotations[i].Attributes[j]
			if attr.Kind == "" {
				attr.Kind = "scalar"
			}
		}
	}
}

// Marshal serializes a DefinitionFile to YAML.
func Marshal(df *DefinitionFile) ([]byte, error) {
	return yaml.Marshal(df)
}

// LoadInstanceFile loads and parses a YAML instances file from the given
// path.
func LoadInstanceFile(path string) (*InstanceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instances file %s: %w", path, err)
	}

	return ParseInstances(data)
}

// ParseInstances parses YAML data into an InstanceFile.
func ParseInstances(data []byte) (*InstanceFile, error) {
	var inf InstanceFile

	err := yaml.Unmarshal(data, &inf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse instances YAML: %w", err)
	}

	return &inf, nil
}
