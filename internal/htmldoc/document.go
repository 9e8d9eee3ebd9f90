// internal/htmldoc/document.go
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/page-harvest/harvest/pkg/models"
)

// Document is an immutable parsed element tree plus the URL it was
// fetched from. It is owned by whichever extractor created it and is
// replaced wholesale on re-fetch, never mutated.
type Document struct {
	url string
	doc *goquery.Document
}

// Parse builds a Document from raw markup.
func Parse(r io.Reader, pageURL string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{
		url: pageURL,
		doc: goquery.NewDocumentFromNode(root),
	}, nil
}

// ParseString is a convenience wrapper for browser-rendered markup that
// arrives as a string.
func ParseString(markup, pageURL string) (*Document, error) {
	return Parse(strings.NewReader(markup), pageURL)
}

// URL returns the address the document was fetched from.
func (d *Document) URL() string {
	return d.url
}

// Title returns the text of the <title> element, or "" when absent.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Text returns the document's visible text with runs of whitespace
// collapsed to single spaces.
func (d *Document) Text() string {
	return strings.Join(strings.Fields(d.doc.Text()), " ")
}

// Find returns the first element matching sel in document order, or nil
// when nothing matches. It never fails.
func (d *Document) Find(sel models.Selector) *Element {
	return firstMatch(d.doc.Selection, sel)
}

// FindAll returns every element matching sel in document order. A
// selector that matches nothing yields an empty slice, not an error.
// A zero selector matches every element; callers guard against that.
func (d *Document) FindAll(sel models.Selector) []*Element {
	return allMatches(d.doc.Selection, sel)
}

// Element is one matched node. It exposes a small capability surface
// (text, attributes, nested lookup) so callers can compose extraction
// logic without depending on the underlying parser's types.
type Element struct {
	sel *goquery.Selection
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	if len(e.sel.Nodes) == 0 {
		return ""
	}
	return e.sel.Nodes[0].Data
}

// Text returns the element's text content, whitespace preserved.
func (e *Element) Text() string {
	return e.sel.Text()
}

// Attr returns the named attribute's value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// HTML returns the element's inner HTML.
func (e *Element) HTML() (string, error) {
	return e.sel.Html()
}

// Find returns the first descendant matching sel, or nil.
func (e *Element) Find(sel models.Selector) *Element {
	return firstMatch(e.sel, sel)
}

// FindAll returns every descendant matching sel in document order.
func (e *Element) FindAll(sel models.Selector) []*Element {
	return allMatches(e.sel, sel)
}

func firstMatch(scope *goquery.Selection, sel models.Selector) *Element {
	matched := match(scope, sel).First()
	if matched.Length() == 0 {
		return nil
	}
	return &Element{sel: matched}
}

func allMatches(scope *goquery.Selection, sel models.Selector) []*Element {
	elements := []*Element{}
	match(scope, sel).Each(func(i int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}

// match narrows scope to elements satisfying the selector: the tag must
// equal sel.Tag (when set) and the class attribute's token set must
// contain every token of sel.Class (when set).
func match(scope *goquery.Selection, sel models.Selector) *goquery.Selection {
	tag := sel.Tag
	if tag == "" {
		tag = "*"
	}
	found := scope.Find(tag)
	if sel.Class == "" {
		return found
	}

	want := strings.Fields(sel.Class)
	return found.FilterFunction(func(i int, s *goquery.Selection) bool {
		return hasClassTokens(s, want)
	})
}

func hasClassTokens(s *goquery.Selection, want []string) bool {
	attr, ok := s.Attr("class")
	if !ok {
		return false
	}
	have := make(map[string]bool)
	for _, token := range strings.Fields(attr) {
		have[token] = true
	}
	for _, token := range want {
		if !have[token] {
			return false
		}
	}
	return true
}
