// Package discover runs one profile search across the configured providers
// and shapes the outcome into ranked, de-duplicated candidates.
package discover

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hyperifyio/profilescout/internal/debugdump"
	"github.com/hyperifyio/profilescout/internal/query"
	"github.com/hyperifyio/profilescout/internal/search"
	"github.com/hyperifyio/profilescout/internal/serp"
)

// Candidate is one ranked profile result, serializable as a flat record.
type Candidate struct {
	Rank    int    `json:"rank"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Engine  string `json:"engine"`
}

// Discoverer selects a provider per call, with a single fallback hop when
// the primary fails. It holds no mutable state; concurrent calls are safe.
type Discoverer struct {
	// Primary is preferred when set (typically the API-backed provider).
	// Nil means the fallback runs directly.
	Primary  search.Provider
	Fallback search.Provider
	// Debug receives the raw page body when a run ends empty. Optional.
	Debug *debugdump.Sink
	// PostFilter keeps only candidates whose name or snippet mentions at
	// least one intent keyword.
	PostFilter bool
	Logger     zerolog.Logger
}

// Discover returns ranked profile candidates for an intent. Every failure
// below this layer is absorbed into a shorter or empty result list; an error
// is returned only for an invalid intent.
func (d *Discoverer) Discover(ctx context.Context, in query.Intent) ([]Candidate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	q := query.Build(in)
	d.Logger.Debug().Str("query", q).Msg("built search query")

	results, rawBody := d.invoke(ctx, q, in.Limit)

	out := normalize(results)
	if d.PostFilter {
		out = filterByKeywords(out, in.Keywords)
	}
	if len(out) > in.Limit {
		out = out[:in.Limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}

	if len(out) == 0 && rawBody != nil {
		if path, err := d.Debug.Capture(rawBody, "ddg"); err != nil {
			d.Logger.Warn().Err(err).Msg("debug capture failed")
		} else if path != "" {
			d.Logger.Info().Str("artifact", path).Msg("no results parsed, raw page captured")
		}
	}
	d.Logger.Info().Int("count", len(out)).Msg("discovery finished")
	return out, nil
}

// invoke runs the primary provider and falls back at most once. It returns
// whatever results were obtained plus the raw page body, when one is
// available for diagnostics.
func (d *Discoverer) invoke(ctx context.Context, q string, limit int) ([]search.Result, []byte) {
	prov := d.Primary
	if prov == nil {
		prov = d.Fallback
	}
	if prov == nil {
		return nil, nil
	}

	results, err := prov.Search(ctx, q, limit)
	if err != nil && prov != d.Fallback && d.Fallback != nil {
		d.Logger.Warn().Err(err).Str("provider", prov.Name()).Msg("provider failed, falling back")
		prov = d.Fallback
		results, err = prov.Search(ctx, q, limit)
	}
	if err != nil {
		var nr *search.NoResultsError
		if errors.As(err, &nr) {
			return nil, nr.RawBody
		}
		d.Logger.Warn().Err(err).Str("provider", prov.Name()).Msg("provider produced nothing")
		return nil, nil
	}
	return results, nil
}

// normalize canonicalizes, filters to profile URLs, and dedups by canonical
// URL keeping first occurrence. Source order is preserved.
func normalize(results []search.Result) []Candidate {
	seen := map[string]struct{}{}
	out := make([]Candidate, 0, len(results))
	for _, r := range results {
		canonical, err := serp.Canonicalize(r.URL)
		if err != nil || !serp.IsProfileURL(canonical) {
			continue
		}
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		out = append(out, Candidate{
			Name:    r.Title,
			URL:     canonical,
			Snippet: r.Snippet,
			Engine:  r.Source,
		})
	}
	return out
}

func filterByKeywords(cands []Candidate, keywords []string) []Candidate {
	terms := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(strings.ToLower(k)); k != "" {
			terms = append(terms, k)
		}
	}
	if len(terms) == 0 {
		return cands
	}
	kept := cands[:0]
	for _, c := range cands {
		text := strings.ToLower(c.Name + " " + c.Snippet)
		for _, t := range terms {
			if strings.Contains(text, t) {
				kept = append(kept, c)
				break
			}
		}
	}
	return kept
}
