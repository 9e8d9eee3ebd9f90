// internal/crawl/crawler.go
package crawl

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/page-harvest/harvest/internal/extract"
	"github.com/page-harvest/harvest/internal/fetch"
	"github.com/page-harvest/harvest/internal/paginate"
	"github.com/page-harvest/harvest/pkg/models"
)

// errEmptyArticle marks pages where neither title nor content could be
// extracted; such articles fail the basic presence check and are skipped.
var errEmptyArticle = errors.New("no title or content extracted")

// Reporter receives every skipped URL and its cause. Optional; skips are
// always logged regardless.
type Reporter func(url string, err error)

// Options tune a crawl run without being part of its configuration.
type Options struct {
	// Progress draws a progress bar over pages and articles.
	Progress bool
	Reporter Reporter
}

// Crawler walks a paginated page-list sequence, collects every article
// link, extracts each article and assembles the aggregate record list.
// It composes a fetcher, the pagination resolver and per-article page
// extraction; pages and articles are visited strictly sequentially so a
// shared rendered-mode session is never navigated concurrently.
type Crawler struct {
	fetcher fetch.Fetcher
	cfg     models.CrawlConfig
	opts    Options
}

// New validates the configuration and builds a Crawler. Malformed
// configuration is rejected here, before any network activity.
func New(fetcher fetch.Fetcher, cfg models.CrawlConfig, opts Options) (*Crawler, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Crawler{fetcher: fetcher, cfg: cfg, opts: opts}, nil
}

// Config returns the crawl's normalized configuration.
func (c *Crawler) Config() models.CrawlConfig {
	return c.cfg
}

// PageURLs expands the URL template and page range into the ordered
// page-list URLs the crawl will visit.
func (c *Crawler) PageURLs() ([]string, error) {
	return paginate.Expand(c.cfg.URLTemplate, c.cfg.Pages)
}

// Articles runs the whole crawl: every page-list page in order, then
// every discovered article in discovery order. Per-page and per-article
// failures are skipped and reported; whatever subset succeeded is always
// returned. Only setup failures (bad config, a browser session that
// will not start) abort the run.
func (c *Crawler) Articles(ctx context.Context) ([]models.ArticleRecord, error) {
	pageURLs, err := c.PageURLs()
	if err != nil {
		return nil, err
	}

	skipped := 0
	skip := func(url string, cause error) {
		skipped++
		log.Warn().Str("url", url).Err(cause).Msg("Skipping")
		if c.opts.Reporter != nil {
			c.opts.Reporter(url, cause)
		}
	}

	articleURLs, err := c.collectArticleURLs(ctx, pageURLs, skip)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("pages", len(pageURLs)).
		Int("articles", len(articleURLs)).
		Msg("Article discovery completed")

	bar := c.progress(len(articleURLs), "Articles")
	records := make([]models.ArticleRecord, 0, len(articleURLs))
	for _, articleURL := range articleURLs {
		if bar != nil {
			bar.Add(1)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := c.extractArticle(ctx, articleURL)
		if err != nil {
			if !skippable(err) {
				return nil, err
			}
			skip(articleURL, err)
			continue
		}
		records = append(records, record)
	}

	log.Info().
		Int("records", len(records)).
		Int("skipped", skipped).
		Msg("Crawl completed")

	return records, nil
}

// collectArticleURLs fetches each page-list page and concatenates the
// article links it finds, preserving page order then in-page order.
// Duplicates are not removed.
func (c *Crawler) collectArticleURLs(ctx context.Context, pageURLs []string, skip func(string, error)) ([]string, error) {
	bar := c.progress(len(pageURLs), "Pages")

	var articleURLs []string
	for _, pageURL := range pageURLs {
		if bar != nil {
			bar.Add(1)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if !skippable(err) {
				return nil, err
			}
			skip(pageURL, err)
			continue
		}

		links := extract.ArticleLinks(doc, c.cfg.AnchorSelector)
		log.Debug().Str("url", pageURL).Int("links", len(links)).Msg("Page list resolved")
		articleURLs = append(articleURLs, links...)
	}
	return articleURLs, nil
}

// extractArticle fetches one article page and assembles its record.
func (c *Crawler) extractArticle(ctx context.Context, articleURL string) (models.ArticleRecord, error) {
	desc := models.PageDescriptor{
		URL:         articleURL,
		Category:    c.cfg.Category,
		OwnerSource: c.cfg.OwnerSource,
		Mode:        c.cfg.Mode,
	}

	page, err := extract.New(ctx, desc, c.fetcher)
	if err != nil {
		return models.ArticleRecord{}, err
	}

	title, content := page.Content(c.cfg.TitleSelector, c.cfg.ContentSelector)
	if title == "" && content == "" {
		return models.ArticleRecord{}, errEmptyArticle
	}

	banner := page.BannerImage(c.cfg.BannerAttr, c.cfg.BannerClass)
	images := page.Images(c.cfg.ImageArea)
	if banner != "" {
		images = without(images, banner)
	}

	return models.ArticleRecord{
		ID:          uuid.New(),
		Title:       title,
		Content:     content,
		BannerURL:   banner,
		Images:      images,
		Category:    desc.Category,
		OwnerSource: desc.OwnerSource,
		SourceURL:   articleURL,
		FetchedAt:   time.Now(),
	}, nil
}

func (c *Crawler) progress(total int, description string) *progressbar.ProgressBar {
	if !c.opts.Progress || total == 0 {
		return nil
	}
	return progressbar.Default(int64(total), description)
}

// skippable reports whether an error is page-content variance (skip and
// continue) rather than a setup mistake (abort the run).
func skippable(err error) bool {
	var fetchErr *fetch.Error
	var extractErr *extract.ExtractionError
	return errors.As(err, &fetchErr) ||
		errors.As(err, &extractErr) ||
		errors.Is(err, errEmptyArticle)
}

func without(urls []string, exclude string) []string {
	filtered := urls[:0]
	for _, u := range urls {
		if u != exclude {
			filtered = append(filtered, u)
		}
	}
	return filtered
}
