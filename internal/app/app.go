// Package app wires configuration, providers, and output around the
// discovery core.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/profilescout/internal/debugdump"
	"github.com/hyperifyio/profilescout/internal/discover"
	"github.com/hyperifyio/profilescout/internal/fetch"
	"github.com/hyperifyio/profilescout/internal/query"
	"github.com/hyperifyio/profilescout/internal/search"
)

// App is one configured run of the profile search.
type App struct {
	cfg  Config
	disc *discover.Discoverer
	log  zerolog.Logger
}

// New validates cfg and wires the provider stack. Provider selection happens
// here, once: the offline file provider when configured, otherwise SerpAPI
// as primary when a key is present, with the DuckDuckGo scraper as the
// always-available fallback.
func New(cfg Config, logger zerolog.Logger) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}
	fetcher := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       attempts,
		PerRequestTimeout: timeout,
	}

	d := &discover.Discoverer{
		Debug:      &debugdump.Sink{Dir: cfg.DebugDir},
		PostFilter: cfg.PostFilter,
		Logger:     logger,
	}
	switch {
	case cfg.FileSearchPath != "":
		d.Primary = &search.FileProvider{Path: cfg.FileSearchPath}
	case cfg.SerpAPIKey != "":
		d.Primary = &search.SerpAPI{APIKey: cfg.SerpAPIKey}
		d.Fallback = &search.DuckDuckGo{Fetcher: fetcher, DumpPath: cfg.DumpHTMLPath, Logger: logger}
	default:
		d.Fallback = &search.DuckDuckGo{Fetcher: fetcher, DumpPath: cfg.DumpHTMLPath, Logger: logger}
	}

	return &App{cfg: cfg, disc: d, log: logger}, nil
}

// Run executes the search and writes the result files.
func (a *App) Run(ctx context.Context) error {
	in := query.Intent{
		Keywords: a.cfg.Keywords,
		Company:  a.cfg.Company,
		Location: a.cfg.Location,
		Limit:    a.cfg.MaxResults,
	}
	candidates, err := a.disc.Discover(ctx, in)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}

	if err := writeJSON(a.cfg.OutputPath, candidates); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	a.log.Info().Int("count", len(candidates)).Str("path", a.cfg.OutputPath).Msg("results written")

	if a.cfg.CSVPath != "" {
		if err := writeCSV(a.cfg.CSVPath, candidates); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		a.log.Info().Str("path", a.cfg.CSVPath).Msg("csv written")
	}
	return nil
}
