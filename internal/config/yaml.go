package config

import (
	"gopkg.in/yaml.v3"
)

// YAMLParser is a koanf.Parser backed by gopkg.in/yaml.v3.
type YAMLParser struct{}

// NewYAMLParser returns a koanf parser for YAML configuration files.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Unmarshal parses YAML bytes into a nested map. An empty document yields
// an empty map.
func (p *YAMLParser) Unmarshal(b []byte) (map[string]any, error) {
	var out map[string]any
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

// Marshal encodes a nested map as YAML.
func (p *YAMLParser) Marshal(o map[string]any) ([]byte, error) {
	return yaml.Marshal(o)
}
