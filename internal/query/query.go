package query

import (
	"errors"
	"strings"
)

// TargetHost is the site the built queries are scoped to.
const TargetHost = "linkedin.com"

// Intent describes one profile search request. Keywords keep caller order;
// Company and Location are optional refinements.
type Intent struct {
	Keywords []string
	Company  string
	Location string
	Limit    int
}

// Validate checks the minimal invariants for a searchable intent.
func (in Intent) Validate() error {
	if in.Limit <= 0 {
		return errors.New("intent: limit must be positive")
	}
	if strings.TrimSpace(in.Company) != "" {
		return nil
	}
	for _, k := range in.Keywords {
		if strings.TrimSpace(k) != "" {
			return nil
		}
	}
	return errors.New("intent: at least one keyword or a company is required")
}

// Build assembles the engine query string for an intent. The output is a pure
// function of the intent fields: keywords first (quoted per term when they
// contain whitespace), then the quoted company, the profile-path site
// disjunction, the non-profile exclusion terms, and finally the location as a
// bare ranking hint.
func Build(in Intent) string {
	parts := make([]string, 0, len(in.Keywords)+8)
	for _, k := range in.Keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		parts = append(parts, quoteIfSpaced(k))
	}
	if c := strings.TrimSpace(in.Company); c != "" {
		parts = append(parts, `"`+c+`"`)
	}
	parts = append(parts,
		"(site:"+TargetHost+"/in OR site:"+TargetHost+"/pub)",
		"-site:"+TargetHost+"/company",
		"-inurl:/jobs/",
		"-inurl:/posts/",
		"-inurl:/feed/",
	)
	if l := strings.TrimSpace(in.Location); l != "" {
		parts = append(parts, l)
	}
	return strings.Join(parts, " ")
}

func quoteIfSpaced(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}
