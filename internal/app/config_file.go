package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Nested sections
// map naturally to flags and env.
type FileConfig struct {
	Keywords []string `yaml:"keywords" json:"keywords"`
	Company  string   `yaml:"company" json:"company"`
	Location string   `yaml:"location" json:"location"`

	Max struct {
		Results  int `yaml:"results" json:"results"`
		Attempts int `yaml:"attempts" json:"attempts"`
	} `yaml:"max" json:"max"`

	Output struct {
		JSON string `yaml:"json" json:"json"`
		CSV  string `yaml:"csv" json:"csv"`
	} `yaml:"output" json:"output"`

	SerpAPI struct {
		Key string `yaml:"key" json:"key"`
	} `yaml:"serpapi" json:"serpapi"`

	Search struct {
		File string `yaml:"file" json:"file"`
	} `yaml:"search" json:"search"`

	Fetch struct {
		UserAgent string        `yaml:"userAgent" json:"userAgent"`
		Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"fetch" json:"fetch"`

	Debug struct {
		Dir      string `yaml:"dir" json:"dir"`
		DumpHTML string `yaml:"dumpHTML" json:"dumpHTML"`
	} `yaml:"debug" json:"debug"`

	PostFilter bool `yaml:"postFilter" json:"postFilter"`
	Verbose    bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset/zero. Flags should already have been parsed; the
// file supplies defaults without overriding explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if len(cfg.Keywords) == 0 && len(fc.Keywords) > 0 {
		cfg.Keywords = append([]string{}, fc.Keywords...)
	}
	if cfg.Company == "" && fc.Company != "" {
		cfg.Company = fc.Company
	}
	if cfg.Location == "" && fc.Location != "" {
		cfg.Location = fc.Location
	}
	if cfg.MaxResults == 0 && fc.Max.Results > 0 {
		cfg.MaxResults = fc.Max.Results
	}
	if cfg.MaxAttempts == 0 && fc.Max.Attempts > 0 {
		cfg.MaxAttempts = fc.Max.Attempts
	}
	if cfg.OutputPath == "" && fc.Output.JSON != "" {
		cfg.OutputPath = fc.Output.JSON
	}
	if cfg.CSVPath == "" && fc.Output.CSV != "" {
		cfg.CSVPath = fc.Output.CSV
	}
	if cfg.SerpAPIKey == "" && fc.SerpAPI.Key != "" {
		cfg.SerpAPIKey = fc.SerpAPI.Key
	}
	if cfg.FileSearchPath == "" && fc.Search.File != "" {
		cfg.FileSearchPath = fc.Search.File
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.Timeout == 0 && fc.Fetch.Timeout > 0 {
		cfg.Timeout = fc.Fetch.Timeout
	}
	if cfg.DebugDir == "" && fc.Debug.Dir != "" {
		cfg.DebugDir = fc.Debug.Dir
	}
	if cfg.DumpHTMLPath == "" && fc.Debug.DumpHTML != "" {
		cfg.DumpHTMLPath = fc.Debug.DumpHTML
	}
	if !cfg.PostFilter && fc.PostFilter {
		cfg.PostFilter = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
