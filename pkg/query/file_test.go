package query

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "query.yaml")

	content := `ids: "ga:12345678"
dimensions: ["ga:date", "ga:country"]
metrics: ["ga:sessions"]
filters: "ga:country==Poland"
max_results: 5000
start_date: "2020-01-01"
end_date: "2020-01-31"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write spec file: %v", err)
	}

	spec, window, err := LoadSpec(path)
	if err != nil {
		t.Fatalf("LoadSpec: %v", err)
	}

	if spec.Query.IDs != "ga:12345678" {
		t.Errorf("IDs = %q", spec.Query.IDs)
	}
	if len(spec.Query.Dimensions) != 2 {
		t.Errorf("Dimensions = %v", spec.Query.Dimensions)
	}
	if spec.Query.MaxResults != 5000 {
		t.Errorf("MaxResults = %d", spec.Query.MaxResults)
	}
	if window.StartString() != "2020-01-01" || window.EndString() != "2020-01-31" {
		t.Errorf("window = %s", window)
	}
}

func TestLoadSpec_Invalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing metrics",
			content: "ids: \"ga:1\"\nstart_date: \"2020-01-01\"\nend_date: \"2020-01-31\"\n",
		},
		{
			name:    "bad dates",
			content: "ids: \"ga:1\"\nmetrics: [\"ga:sessions\"]\nstart_date: \"Jan 1\"\nend_date: \"2020-01-31\"\n",
		},
		{
			name:    "not yaml",
			content: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("write spec file: %v", err)
			}
			if _, _, err := LoadSpec(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if _, _, err := LoadSpec(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
