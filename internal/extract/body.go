package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"golang.org/x/net/html"

	"github.com/ppiankov/finbrief/internal/model"
)

// DefaultBodySelectors are article-body containers of the supported publisher, in priority order
var DefaultBodySelectors = []string{
	"#dic_area",
	"#newsct_article",
	"#articleBodyContents",
}

// BodyExtractor pulls article body text out of a page
type BodyExtractor interface {
	Extract(page string) model.Body
}

var spaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

// SelectorExtractor returns the text of the first non-empty selector match
type SelectorExtractor struct {
	selectors []string
	logger    arbor.ILogger
}

// NewSelectorExtractor creates a goquery-backed extractor. An empty selector
// list uses DefaultBodySelectors.
func NewSelectorExtractor(selectors []string, logger arbor.ILogger) *SelectorExtractor {
	if len(selectors) == 0 {
		selectors = DefaultBodySelectors
	}
	return &SelectorExtractor{selectors: selectors, logger: logger}
}

// Extract returns the body text or an absent body when nothing matches
func (e *SelectorExtractor) Extract(page string) model.Body {
	if strings.TrimSpace(page) == "" {
		return model.NoBody()
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		e.logger.Debug().Err(err).Msg("Failed to parse page")
		return model.NoBody()
	}

	for _, selector := range e.selectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if text := CleanText(joinText(sel)); text != "" {
			return model.SomeBody(text)
		}
	}

	e.logger.Debug().Strs("selectors", e.selectors).Msg("No matching body selector")
	return model.NoBody()
}

// CleanText removes zero-width spaces and collapses whitespace
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u200b", "")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// joinText collects the text nodes under sel separated by single spaces
func joinText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// NoopExtractor never finds a body. It is used when extraction is disabled.
type NoopExtractor struct{}

// Extract always returns an absent body
func (NoopExtractor) Extract(string) model.Body {
	return model.NoBody()
}

// NewBodyExtractor selects an extractor by name: "none" disables extraction,
// anything else uses selectors
func NewBodyExtractor(name string, selectors []string, logger arbor.ILogger) BodyExtractor {
	if strings.EqualFold(strings.TrimSpace(name), "none") {
		return NoopExtractor{}
	}
	return NewSelectorExtractor(selectors, logger)
}
