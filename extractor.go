package linkcrawl

// Href is the target of a single anchor element.
// Valid is false for anchors that carry no href attribute at all.
type Href struct {
	Value string
	Valid bool
}

// NullHref is the target of an anchor without an href attribute.
var NullHref = Href{}

// NewHref returns a present anchor target.
func NewHref(value string) Href {
	return Href{Value: value, Valid: true}
}

// LinkExtractor lists anchor targets found in page content.
type LinkExtractor interface {
	// ExtractHrefs returns every anchor target in document order,
	// including null targets. It performs no validation or resolution.
	// It fails with an EPARSE error only when the content cannot be
	// parsed as markup at all.
	ExtractHrefs(content string) ([]Href, error)
}
