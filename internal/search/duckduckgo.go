package search

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/profilescout/internal/fetch"
	"github.com/hyperifyio/profilescout/internal/serp"
)

// DuckDuckGo implements Provider by scraping the HTML results endpoint. It
// needs no credential; unreliability is absorbed by the retrying fetch
// client. A successfully fetched page that parses to zero profile links is
// reported as *NoResultsError so the caller can capture the body.
type DuckDuckGo struct {
	BaseURL string // optional override, defaults to the public endpoint
	Fetcher *fetch.Client
	// DumpPath, when set, receives a copy of every fetched result page.
	DumpPath string
	Logger   zerolog.Logger
}

const duckDuckGoEndpoint = "https://html.duckduckgo.com/html/"

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	base := d.BaseURL
	if base == "" {
		base = duckDuckGoEndpoint
	}
	fc := d.Fetcher
	if fc == nil {
		fc = &fetch.Client{MaxAttempts: 3}
	}
	body, err := fc.PostForm(ctx, base, url.Values{"q": {query}})
	if err != nil {
		return nil, &ProviderError{Provider: d.Name(), Kind: KindTransport, Err: err}
	}
	if d.DumpPath != "" {
		if werr := os.WriteFile(d.DumpPath, body, 0o644); werr != nil {
			d.Logger.Warn().Err(werr).Str("path", d.DumpPath).Msg("dump of result page failed")
		}
	}

	items := serp.Parse(body, d.Name())
	if len(items) == 0 {
		if hasBotChallenge(body) {
			d.Logger.Warn().Msg("result page contains likely anti-bot or captcha content")
		}
		return nil, &NoResultsError{Provider: d.Name(), RawBody: body}
	}

	// The full page is kept; the orchestrator dedups before truncating, so
	// capping here would under-fill the final list.
	out := make([]Result, 0, len(items))
	for _, it := range items {
		out = append(out, Result{
			Title:   it.Title,
			URL:     it.URL,
			Snippet: it.Snippet,
			Source:  it.Engine,
		})
	}
	d.Logger.Debug().Int("count", len(out)).Msg("parsed result page")
	return out, nil
}

func hasBotChallenge(body []byte) bool {
	low := strings.ToLower(string(body))
	for _, marker := range []string{"captcha", "recaptcha", "verify"} {
		if strings.Contains(low, marker) {
			return true
		}
	}
	return false
}
