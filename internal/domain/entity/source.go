package entity

// PayloadKind identifies the shape of a candidate source's payload and
// therefore which extraction strategy applies to it.
type PayloadKind string

const (
	// PayloadStructuredAPI is a paginated JSON fixtures API.
	PayloadStructuredAPI PayloadKind = "structured-api"

	// PayloadMarkupTable is an HTML page carrying results tables.
	PayloadMarkupTable PayloadKind = "markup-table"

	// PayloadFreeText is plain text (or HTML flattened to text) scanned
	// with scoreline patterns.
	PayloadFreeText PayloadKind = "free-text"
)

// Source is a candidate data source: a locator, the payload kind it serves,
// and a short tag used in logs and outbound messages.
//
// Sources are constructed fresh on every run from static configuration plus
// the season key; they are never persisted.
type Source struct {
	Tag  string
	URL  string
	Kind PayloadKind

	// Headers carries source-specific request headers (the structured API's
	// credential header). Nil for scrape sources, which rely on the fetcher's
	// browser-like signature.
	Headers map[string]string
}

// Incremental reports whether the source supports watermark-narrowed queries.
// Only the structured API does; scrape sources always return everything they have.
func (s Source) Incremental() bool {
	return s.Kind == PayloadStructuredAPI
}
