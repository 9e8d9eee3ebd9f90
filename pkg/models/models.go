package models

import (
	"time"

	"github.com/google/uuid"
)

// FetchMode selects how a page's content is obtained: from the raw HTTP
// response or from a live browser-rendered DOM. It is fixed per crawler
// at construction time.
type FetchMode string

const (
	ModeStatic   FetchMode = "static"
	ModeRendered FetchMode = "rendered"
)

// Selector identifies elements by tag name and/or class attribute.
// An empty component widens the match; both empty matches every element.
type Selector struct {
	Tag   string
	Class string
}

// IsZero reports whether the selector has no constraints at all.
func (s Selector) IsZero() bool {
	return s.Tag == "" && s.Class == ""
}

// Default provenance values when the caller provides none.
const (
	DefaultCategory    = "Not defined"
	DefaultOwnerSource = "Not defined"
	DefaultBannerAttr  = "src"
)

// PageDescriptor identifies one page and its provenance metadata.
type PageDescriptor struct {
	URL         string
	Category    string
	OwnerSource string
	Mode        FetchMode
}

// NewPageDescriptor fills in the documented defaults for category and
// owner source.
func NewPageDescriptor(url string, mode FetchMode) PageDescriptor {
	return PageDescriptor{
		URL:         url,
		Category:    DefaultCategory,
		OwnerSource: DefaultOwnerSource,
		Mode:        mode,
	}
}

// PageRange describes which page-list pages to visit. When Custom is
// non-empty it supersedes the Start/End/Step progression and is used in
// exactly the order given, duplicates included.
type PageRange struct {
	Start  int
	End    int
	Step   int
	Custom []int
}

// Validate rejects malformed ranges before any network activity.
func (r PageRange) Validate() error {
	if len(r.Custom) > 0 {
		return nil
	}
	if r.Step < 1 {
		return &ConfigError{Field: "step_page", Message: "must be >= 1"}
	}
	if r.Start < 1 {
		return &ConfigError{Field: "start_page", Message: "must be >= 1"}
	}
	if r.End < r.Start {
		return &ConfigError{Field: "end_page", Message: "must be >= start_page"}
	}
	return nil
}

// ArticleRecord is the structured result of extracting one article page.
// Records are immutable once assembled and appear in the aggregate output
// in visiting order.
type ArticleRecord struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"content,omitempty"`
	BannerURL   string    `json:"banner_url,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Category    string    `json:"category"`
	OwnerSource string    `json:"owner_source"`
	SourceURL   string    `json:"source_url"`
	FetchedAt   time.Time `json:"fetched_at"`
}
