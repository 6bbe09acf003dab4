package app

import (
	"errors"
	"strings"
	"time"
)

// Config carries every runtime setting for one search run.
type Config struct {
	// Search intent.
	Keywords []string
	Company  string
	Location string
	// MaxResults caps the final candidate list.
	MaxResults int

	// Output.
	OutputPath string
	CSVPath    string

	// Providers. An absent SerpAPI key is a valid state that selects the
	// HTML fallback, not an error. FileSearchPath switches to the offline
	// provider for demos and tests.
	SerpAPIKey     string
	FileSearchPath string

	// Fetch behavior.
	UserAgent   string
	Timeout     time.Duration
	MaxAttempts int

	// Diagnostics.
	DebugDir     string
	DumpHTMLPath string

	PostFilter bool
	Verbose    bool
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	hasKeyword := false
	for _, k := range cfg.Keywords {
		if strings.TrimSpace(k) != "" {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword && strings.TrimSpace(cfg.Company) == "" {
		return errors.New("config: at least one keyword or a company is required")
	}
	if cfg.MaxResults <= 0 {
		return errors.New("config: max results must be positive")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("config: output path is required")
	}
	if cfg.MaxAttempts < 0 || cfg.Timeout < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}
