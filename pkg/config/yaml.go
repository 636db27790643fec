package config

import (
	"bytes"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
// Fields absent from the document stay at their zero value so layers can be merged.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.Classes == nil {
		cfg.Classes = make(map[string]string)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Classes = maps.Clone(c.Classes)
	clone.Code.Highlight = cloneBool(c.Code.Highlight)
	clone.Code.DetectLanguage = cloneBool(c.Code.DetectLanguage)
	clone.StrictOrder = cloneBool(c.StrictOrder)

	return &clone
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	return Bool(*v)
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
