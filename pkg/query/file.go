package query

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Spec is a query definition as loaded from a YAML file: the query itself
// plus the overall date range.
type Spec struct {
	Query     Query  `yaml:",inline"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

// LoadSpec reads and validates a query definition from a YAML file.
func LoadSpec(path string) (Spec, DateWindow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, DateWindow{}, fmt.Errorf("read query spec: %w", err)
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, DateWindow{}, fmt.Errorf("parse query spec %s: %w", path, err)
	}

	if err := spec.Query.Validate(); err != nil {
		return Spec{}, DateWindow{}, err
	}

	window, err := ParseDateWindow(spec.StartDate, spec.EndDate)
	if err != nil {
		return Spec{}, DateWindow{}, err
	}

	return spec, window, nil
}
