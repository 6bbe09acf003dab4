package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SerpAPI implements Provider against the SerpAPI Google engine. A single
// request per call; the upstream API is expected to be reliable, so failures
// are classified for fallback rather than retried here.
type SerpAPI struct {
	APIKey     string
	BaseURL    string // optional override, defaults to the public endpoint
	HTTPClient *http.Client
}

const serpAPIEndpoint = "https://serpapi.com/search.json"

func (s *SerpAPI) Name() string { return "serpapi" }

func (s *SerpAPI) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, &ProviderError{Provider: s.Name(), Kind: KindAuth, Err: errors.New("missing API key")}
	}
	if limit <= 0 {
		limit = 10
	}
	base := s.BaseURL
	if base == "" {
		base = serpAPIEndpoint
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, &ProviderError{Provider: s.Name(), Kind: KindTransport, Err: err}
	}
	q := u.Query()
	q.Set("engine", "google")
	q.Set("q", query)
	q.Set("google_domain", "google.com")
	q.Set("gl", "us")
	q.Set("hl", "en")
	q.Set("num", fmt.Sprintf("%d", limit))
	q.Set("api_key", s.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &ProviderError{Provider: s.Name(), Kind: KindTransport, Err: err}
	}
	hc := s.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: s.Name(), Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &ProviderError{Provider: s.Name(), Kind: KindAuth, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &ProviderError{Provider: s.Name(), Kind: KindQuota, Err: fmt.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &ProviderError{Provider: s.Name(), Kind: KindTransport, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var sr serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, &ProviderError{Provider: s.Name(), Kind: KindDecode, Err: err}
	}
	out := make([]Result, 0, len(sr.OrganicResults))
	for _, r := range sr.OrganicResults {
		if r.Link == "" {
			continue
		}
		out = append(out, Result{
			Title:   strings.TrimSpace(r.Title),
			URL:     strings.TrimSpace(r.Link),
			Snippet: strings.TrimSpace(r.Snippet),
			Source:  s.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}
