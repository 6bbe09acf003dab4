package serp

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const maxSnippetLen = 300

// Parse extracts profile candidates from one engine result page, in page
// order. Redirect-wrapped links are decoded, URLs canonicalized, and
// non-profile links dropped. Unparsable fragments are skipped, never fatal;
// a hopeless body yields an empty slice.
func Parse(body []byte, engine string) []Item {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	// Proper result anchors when the layout is intact, any anchor otherwise.
	sel := doc.Find("a.result__a")
	if sel.Length() == 0 {
		sel = doc.Find("a[href]")
	}

	var items []Item
	sel.Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		canonical, err := Canonicalize(DecodeRedirect(href))
		if err != nil || !IsProfileURL(canonical) {
			return
		}
		title := strings.TrimSpace(nodeText(a.Nodes))
		if title == "" {
			title, _ = a.Attr("title")
			title = strings.TrimSpace(title)
		}
		if title == "" {
			title = labelFromURL(canonical)
		}
		items = append(items, Item{
			URL:     canonical,
			Title:   title,
			Snippet: snippetFor(a),
			Engine:  engine,
		})
	})
	return items
}

// snippetFor pulls the result-description text adjacent to a result anchor.
// Empty when the layout offers none.
func snippetFor(a *goquery.Selection) string {
	if s := a.Closest(".result, .web-result, .links_main").Find(".result__snippet, .result-snippet").First(); s.Length() > 0 {
		return clampSnippet(s.Text())
	}
	if p := a.Parent(); p.Length() > 0 {
		if sib := p.Next(); sib.Length() > 0 {
			return clampSnippet(sib.Text())
		}
	}
	return ""
}

func clampSnippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen]
	}
	return s
}

func nodeText(nodes []*html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return b.String()
}
