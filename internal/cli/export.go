package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// TypeReport is the machine-readable report of one type
type TypeReport struct {
	Name     string          `yaml:"name"`
	Elements []ElementReport `yaml:"elements,omitempty"`
}

// ElementReport lists the annotations of one annotated element, rendered
// with FormatAnnotation
type ElementReport struct {
	Element     string            `yaml:"element"`
	Category    string            `yaml:"category"`
	Annotations map[string]string `yaml:"annotations"`
}

// WriteYAML encodes reports as a YAML document
func WriteYAML(w io.Writer, reports []TypeReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
