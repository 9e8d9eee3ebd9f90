package models

import "strings"

// CrawlConfig is the full configuration for a multi-page crawl: where the
// page-list pages live, which anchors on them point at articles, and
// which elements on each article page carry the title, content and
// banner. Unset optional fields take the documented defaults.
type CrawlConfig struct {
	// URLTemplate carries a %d verb that each page index is formatted
	// into, e.g. "https://example.com/health-info?page=%d".
	URLTemplate string
	Mode        FetchMode
	Category    string
	OwnerSource string
	Pages       PageRange

	// AnchorSelector matches the article links on a page-list page.
	AnchorSelector Selector

	// Article-page selectors.
	TitleSelector   Selector
	ContentSelector Selector
	BannerClass     string
	BannerAttr      string
	// ImageArea bounds the image search; defaults to ContentSelector.
	ImageArea Selector
}

// Normalize fills defaulted fields in place and returns the config for
// chaining. Safe to call more than once.
func (c *CrawlConfig) Normalize() *CrawlConfig {
	if c.Mode == "" {
		c.Mode = ModeStatic
	}
	if c.Category == "" {
		c.Category = DefaultCategory
	}
	if c.OwnerSource == "" {
		c.OwnerSource = DefaultOwnerSource
	}
	if c.BannerAttr == "" {
		c.BannerAttr = DefaultBannerAttr
	}
	if c.ImageArea.IsZero() {
		c.ImageArea = c.ContentSelector
	}
	return c
}

// Validate rejects malformed configurations with a *ConfigError before
// any network activity happens.
func (c *CrawlConfig) Validate() error {
	if c.URLTemplate == "" {
		return &ConfigError{Field: "url_template", Message: "is required"}
	}
	if !strings.Contains(c.URLTemplate, "%d") {
		return &ConfigError{Field: "url_template", Message: "must contain a %d page-index verb"}
	}
	if c.Mode != "" && c.Mode != ModeStatic && c.Mode != ModeRendered {
		return &ConfigError{Field: "mode", Message: `must be "static" or "rendered"`}
	}
	return c.Pages.Validate()
}
