package mock

import "github.com/fwojciec/linkcrawl"

var _ linkcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of linkcrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractHrefsFn func(content string) ([]linkcrawl.Href, error)
}

func (e *LinkExtractor) ExtractHrefs(content string) ([]linkcrawl.Href, error) {
	return e.ExtractHrefsFn(content)
}
