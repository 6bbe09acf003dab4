package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `keywords: ["Data Scientist", "NLP"]
company: BMW
location: Munich
max:
  results: 5
  attempts: 4
output:
  json: out/results.json
  csv: out/results.csv
serpapi:
  key: secret
debug:
  dir: .debug
postFilter: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(fc.Keywords) != 2 || fc.Company != "BMW" || fc.Max.Results != 5 {
		t.Fatalf("unexpected config: %+v", fc)
	}
	if fc.SerpAPI.Key != "secret" || !fc.PostFilter {
		t.Fatalf("unexpected config: %+v", fc)
	}
}

func TestApplyFileConfig_DoesNotOverrideFlags(t *testing.T) {
	cfg := Config{Company: "Audi", MaxResults: 3}
	var fc FileConfig
	fc.Company = "BMW"
	fc.Max.Results = 10
	fc.Location = "Munich"
	fc.Fetch.Timeout = 5 * time.Second

	ApplyFileConfig(&cfg, fc)
	if cfg.Company != "Audi" || cfg.MaxResults != 3 {
		t.Fatalf("file config overrode explicit values: %+v", cfg)
	}
	if cfg.Location != "Munich" || cfg.Timeout != 5*time.Second {
		t.Fatalf("file config not applied to unset fields: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	base := Config{Keywords: []string{"engineer"}, MaxResults: 5, OutputPath: "results.json"}
	if err := ValidateConfig(base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := base
	bad.Keywords = nil
	if err := ValidateConfig(bad); err == nil {
		t.Fatal("expected error without keywords or company")
	}
	bad = base
	bad.MaxResults = 0
	if err := ValidateConfig(bad); err == nil {
		t.Fatal("expected error for zero max results")
	}
	bad = base
	bad.OutputPath = ""
	if err := ValidateConfig(bad); err == nil {
		t.Fatal("expected error for empty output path")
	}
}
