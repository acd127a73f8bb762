// Package goquery provides an HTML implementation of linkcrawl.LinkExtractor.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/linkcrawl"
	"golang.org/x/net/html"
)

var _ linkcrawl.LinkExtractor = (*Extractor)(nil)

// DefaultSelector matches every anchor element.
const DefaultSelector = "a"

// Extractor lists the href attribute of every anchor in an HTML document.
type Extractor struct {
	selector string
	matcher  goquery.Matcher
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelector restricts extraction to elements matching a CSS selector,
// e.g. "main a" to skip navigation chrome.
func WithSelector(selector string) Option {
	return func(e *Extractor) {
		e.selector = selector
	}
}

// NewExtractor creates a new Extractor.
// Returns EINVALID if the selector does not compile.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{selector: DefaultSelector}
	for _, opt := range opts {
		opt(e)
	}

	sel, err := cascadia.Compile(e.selector)
	if err != nil {
		return nil, linkcrawl.Errorf(linkcrawl.EINVALID, "invalid selector %q: %v", e.selector, err)
	}
	e.matcher = sel
	return e, nil
}

// ExtractHrefs returns the href of every matched element in document order.
// Elements without an href yield an invalid Href. Values are returned
// verbatim: relative links are not resolved and nothing is trimmed.
// Broken markup is repaired by the HTML5 parsing algorithm, so only
// unreadable input fails, with an EPARSE error.
func (e *Extractor) ExtractHrefs(content string) ([]linkcrawl.Href, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, linkcrawl.Errorf(linkcrawl.EPARSE, "failed to parse HTML: %v", err)
	}

	doc := goquery.NewDocumentFromNode(root)

	hrefs := []linkcrawl.Href{}
	doc.FindMatcher(e.matcher).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		hrefs = append(hrefs, linkcrawl.Href{Value: href, Valid: exists})
	})

	return hrefs, nil
}
