// internal/extract/page.go
package extract

import (
	"context"
	"errors"
	"strings"

	"github.com/page-harvest/harvest/internal/fetch"
	"github.com/page-harvest/harvest/internal/htmldoc"
	urlutil "github.com/page-harvest/harvest/internal/utils/url"
	"github.com/page-harvest/harvest/pkg/models"
)

// Page extracts structured content from one resolved page. The document
// is fetched eagerly at construction and owned exclusively by this Page;
// extraction methods are pure reads over it, so repeated calls with the
// same selectors yield identical results.
type Page struct {
	desc models.PageDescriptor
	doc  *htmldoc.Document
}

// New resolves the descriptor's URL through the fetcher and wraps the
// parsed document. A fetch failure surfaces as *ExtractionError (the
// extraction subject could not be obtained); other failures, such as a
// browser that would not start, pass through untouched.
func New(ctx context.Context, desc models.PageDescriptor, fetcher fetch.Fetcher) (*Page, error) {
	doc, err := fetcher.Fetch(ctx, desc.URL)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			return nil, &ExtractionError{URL: desc.URL, Err: err}
		}
		return nil, err
	}
	return &Page{desc: desc, doc: doc}, nil
}

// FromDocument wraps an already-parsed document. Useful for advanced
// callers composing their own fetch step, and for tests.
func FromDocument(desc models.PageDescriptor, doc *htmldoc.Document) *Page {
	return &Page{desc: desc, doc: doc}
}

// Descriptor returns the page's identity and provenance metadata.
func (p *Page) Descriptor() models.PageDescriptor {
	return p.desc
}

// Document exposes the underlying capability surface (Find, FindAll,
// Text, Attr) for extraction logic beyond the built-in methods.
func (p *Page) Document() *htmldoc.Document {
	return p.doc
}

// Text returns the whole page's visible text, whitespace-normalized.
func (p *Page) Text() string {
	return p.doc.Text()
}

// Title returns the <title> text, or "" when the page has none.
func (p *Page) Title() string {
	return p.doc.Title()
}

// Images returns the source URLs of image elements inside the area
// matched by area (the whole document when the selector is empty),
// resolved to absolute URLs. Only common photo formats are kept. An
// empty slice means none were found; never an error.
func (p *Page) Images(area models.Selector) []string {
	imgSel := models.Selector{Tag: "img"}

	var found []*htmldoc.Element
	if area.IsZero() {
		found = p.doc.FindAll(imgSel)
	} else {
		scope := p.doc.Find(area)
		if scope == nil {
			return []string{}
		}
		found = scope.FindAll(imgSel)
	}

	images := []string{}
	for _, img := range found {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			continue
		}
		if !isImageSource(src) {
			continue
		}
		images = append(images, urlutil.Resolve(p.doc.URL(), src))
	}
	return images
}

// BannerImage returns the value of attr on the first img element with
// the given class, or "" when the element or the attribute is missing.
// A page without a banner is not an error.
func (p *Page) BannerImage(attr, class string) string {
	if attr == "" {
		attr = models.DefaultBannerAttr
	}
	banner := p.doc.Find(models.Selector{Tag: "img", Class: class})
	if banner == nil {
		return ""
	}
	value, _ := banner.Attr(attr)
	if value == "" {
		return ""
	}
	return urlutil.Resolve(p.doc.URL(), value)
}

// Content returns the title and content-area text for the page. The two
// lookups are independent: a missing title does not block the content
// and vice versa; a missing side comes back as "".
func (p *Page) Content(titleSel, contentSel models.Selector) (title, content string) {
	if el := p.doc.Find(titleSel); el != nil {
		title = normalize(el.Text())
	}
	if el := p.doc.Find(contentSel); el != nil {
		content = normalize(el.Text())
	}
	return title, content
}

// Metadata returns the page's meta name/property pairs, e.g. og:image,
// for callers that want a banner fallback or descriptions.
func (p *Page) Metadata() map[string]string {
	meta := make(map[string]string)
	for _, el := range p.doc.FindAll(models.Selector{Tag: "meta"}) {
		content, _ := el.Attr("content")
		if name, ok := el.Attr("name"); ok && name != "" {
			meta[name] = content
		}
		if property, ok := el.Attr("property"); ok && property != "" {
			meta[property] = content
		}
	}
	return meta
}

func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func isImageSource(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") ||
		strings.HasSuffix(lower, ".png")
}
