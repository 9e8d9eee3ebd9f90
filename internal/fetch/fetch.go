// internal/fetch/fetch.go
package fetch

import (
	"context"

	"github.com/page-harvest/harvest/internal/htmldoc"
)

// Fetcher resolves a URL to a parsed document. The two implementations
// cover the two page-rendering realities: content present in the raw
// HTTP response (Static) and content produced by client-side script
// (Rendered).
type Fetcher interface {
	// Fetch retrieves the page at url and parses it into a Document.
	Fetch(ctx context.Context, url string) (*htmldoc.Document, error)

	// Name returns the name of the fetcher implementation.
	Name() string
}
