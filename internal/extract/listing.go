// internal/extract/listing.go
package extract

import (
	"github.com/page-harvest/harvest/internal/htmldoc"
	urlutil "github.com/page-harvest/harvest/internal/utils/url"
	"github.com/page-harvest/harvest/pkg/models"
)

// ArticleLinks reads the article URLs off a page-list page: every anchor
// matching anchorSel, in document order, href resolved against the
// page's own URL so consumers always see absolute addresses. An empty
// result is a valid terminal condition, not a failure.
func ArticleLinks(doc *htmldoc.Document, anchorSel models.Selector) []string {
	if anchorSel.Tag == "" {
		anchorSel.Tag = "a"
	}

	links := []string{}
	for _, anchor := range doc.FindAll(anchorSel) {
		href, ok := anchor.Attr("href")
		if !ok || href == "" {
			continue
		}
		links = append(links, urlutil.Resolve(doc.URL(), href))
	}
	return links
}
