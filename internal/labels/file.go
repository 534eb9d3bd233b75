package labels

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a shipment: batch defaults plus the labels.
// JSON files use the same keys.
type File struct {
	Defaults Request    `yaml:"defaults,omitempty" json:"defaults,omitempty"`
	Labels   []*Request `yaml:"labels" json:"labels"`
}

// Load reads a YAML or JSON label file. A bare list of labels is accepted
// as a file without defaults.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load labels: read %q: %w", path, err)
	}
	f, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("load labels: %q: %w", path, err)
	}
	return f, nil
}

// Parse decodes label file contents.
func Parse(raw []byte) (*File, error) {
	trimmed := bytes.TrimSpace(raw)

	var f File
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '-') {
		if err := yaml.Unmarshal(raw, &f.Labels); err != nil {
			return nil, fmt.Errorf("parse label list: %w", err)
		}
	} else if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse label file: %w", err)
	}

	for i, r := range f.Labels {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("label #%d: %w", i+1, err)
		}
	}
	return &f, nil
}
