package discover

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hyperifyio/profilescout/internal/debugdump"
	"github.com/hyperifyio/profilescout/internal/fetch"
	"github.com/hyperifyio/profilescout/internal/query"
	"github.com/hyperifyio/profilescout/internal/search"
)

// stubProvider implements search.Provider with canned behavior.
type stubProvider struct {
	name    string
	results []search.Result
	err     error
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(context.Context, string, int) ([]search.Result, error) {
	s.calls++
	return s.results, s.err
}

func result(url string) search.Result {
	return search.Result{Title: "T", URL: url, Source: "stub"}
}

func intent(limit int) query.Intent {
	return query.Intent{Keywords: []string{"Data Scientist"}, Company: "BMW", Limit: limit}
}

func TestDiscover_FallbackInvokedExactlyOnce(t *testing.T) {
	primary := &stubProvider{name: "serpapi", err: &search.ProviderError{Provider: "serpapi", Kind: search.KindAuth, Err: errors.New("bad key")}}
	fallback := &stubProvider{name: "duckduckgo", results: []search.Result{result("https://www.linkedin.com/in/jane")}}
	d := &Discoverer{Primary: primary, Fallback: fallback}

	got, err := d.Discover(context.Background(), intent(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.calls != 1 || fallback.calls != 1 {
		t.Fatalf("expected one call each, got primary=%d fallback=%d", primary.calls, fallback.calls)
	}
	if len(got) != 1 || got[0].URL != "https://www.linkedin.com/in/jane" {
		t.Fatalf("unexpected candidates: %+v", got)
	}
}

func TestDiscover_NoSecondFallback(t *testing.T) {
	fallback := &stubProvider{name: "duckduckgo", err: &search.ProviderError{Provider: "duckduckgo", Kind: search.KindTransport, Err: errors.New("down")}}
	d := &Discoverer{Fallback: fallback}

	got, err := d.Discover(context.Background(), intent(5))
	if err != nil {
		t.Fatalf("provider failure must not surface: %v", err)
	}
	if fallback.calls != 1 {
		t.Fatalf("expected exactly one call, got %d", fallback.calls)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result set, got %+v", got)
	}
}

func TestDiscover_DedupKeepsFirstOccurrence(t *testing.T) {
	prov := &stubProvider{name: "stub", results: []search.Result{
		{Title: "First", URL: "https://www.linkedin.com/in/jane/", Source: "stub"},
		{Title: "Second", URL: "https://WWW.linkedin.com/in/jane?utm_source=x", Source: "stub"},
		{Title: "Other", URL: "https://www.linkedin.com/in/john", Source: "stub"},
	}}
	d := &Discoverer{Fallback: prov}

	got, err := d.Discover(context.Background(), intent(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 after dedup, got %d: %+v", len(got), got)
	}
	if got[0].Name != "First" {
		t.Fatalf("dedup must keep the first occurrence, got %+v", got[0])
	}
	if got[0].Rank != 1 || got[1].Rank != 2 {
		t.Fatalf("ranks not contiguous: %+v", got)
	}
}

func TestDiscover_TruncatesToLimit(t *testing.T) {
	var results []search.Result
	for i := 0; i < 12; i++ {
		results = append(results, result(fmt.Sprintf("https://www.linkedin.com/in/person-%d", i)))
	}
	d := &Discoverer{Fallback: &stubProvider{name: "stub", results: results}}

	got, err := d.Discover(context.Background(), intent(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5, got %d", len(got))
	}
	for i, c := range got {
		if c.Rank != i+1 {
			t.Fatalf("rank %d at index %d", c.Rank, i)
		}
	}
}

func TestDiscover_DropsNonProfileURLs(t *testing.T) {
	prov := &stubProvider{name: "stub", results: []search.Result{
		result("https://www.linkedin.com/company/bmw"),
		result("https://example.com/in/jane"),
		result("https://www.linkedin.com/in/jane"),
	}}
	d := &Discoverer{Fallback: prov}

	got, err := d.Discover(context.Background(), intent(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://www.linkedin.com/in/jane" {
		t.Fatalf("filtering failed: %+v", got)
	}
}

func TestDiscover_EmptyOutcomeCapturesArtifact(t *testing.T) {
	dir := t.TempDir()
	fallback := &stubProvider{name: "duckduckgo", err: &search.NoResultsError{Provider: "duckduckgo", RawBody: []byte("<html>blocked</html>")}}
	d := &Discoverer{Fallback: fallback, Debug: &debugdump.Sink{Dir: dir}}

	got, err := d.Discover(context.Background(), intent(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one artifact, got %d", len(entries))
	}
	b, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "<html>blocked</html>" {
		t.Fatal("artifact body does not match raw page")
	}
}

func TestDiscover_PostFilterRequiresKeyword(t *testing.T) {
	prov := &stubProvider{name: "stub", results: []search.Result{
		{Title: "Jane Doe", URL: "https://www.linkedin.com/in/jane", Snippet: "Data Scientist at BMW", Source: "stub"},
		{Title: "John Roe", URL: "https://www.linkedin.com/in/john", Snippet: "Baker", Source: "stub"},
	}}
	d := &Discoverer{Fallback: prov, PostFilter: true}

	got, err := d.Discover(context.Background(), intent(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://www.linkedin.com/in/jane" {
		t.Fatalf("post-filter failed: %+v", got)
	}
}

func TestDiscover_InvalidIntent(t *testing.T) {
	d := &Discoverer{Fallback: &stubProvider{name: "stub"}}
	if _, err := d.Discover(context.Background(), query.Intent{Limit: 5}); err == nil {
		t.Fatal("expected error for invalid intent")
	}
}

// End to end against the real HTML provider and parser: five candidate links,
// two excluded, three allowed with one duplicate, limit three, yields two.
func TestDiscover_EndToEndFixturePage(t *testing.T) {
	page := `<html><body>
<div class="result"><a class="result__a" href="https://www.linkedin.com/company/bmw">BMW company</a></div>
<div class="result"><a class="result__a" href="https://www.linkedin.com/jobs/view/42">Job ad</a></div>
<div class="result"><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.linkedin.com%2Fin%2Fmarkus-weber%2F">Markus Weber</a></div>
<div class="result"><a class="result__a" href="https://www.linkedin.com/in/markus-weber">Markus Weber again</a></div>
<div class="result"><a class="result__a" href="https://www.linkedin.com/in/anna-mueller">Anna Mueller</a></div>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	ddg := &search.DuckDuckGo{
		BaseURL: srv.URL,
		Fetcher: &fetch.Client{MaxAttempts: 2, Backoff: func(int) time.Duration { return 0 }},
	}
	d := &Discoverer{Fallback: ddg}

	got, err := d.Discover(context.Background(), query.Intent{Keywords: []string{"Data Scientist"}, Company: "BMW", Limit: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	if got[0].URL != "https://www.linkedin.com/in/markus-weber" || got[0].Rank != 1 {
		t.Fatalf("unexpected first candidate: %+v", got[0])
	}
	if got[1].URL != "https://www.linkedin.com/in/anna-mueller" || got[1].Rank != 2 {
		t.Fatalf("unexpected second candidate: %+v", got[1])
	}
}
