// internal/fetch/static.go
package fetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/page-harvest/harvest/internal/cache"
	"github.com/page-harvest/harvest/internal/htmldoc"
	"github.com/page-harvest/harvest/internal/ratelimit"
	"github.com/page-harvest/harvest/internal/retry"
)

// Static fetches pages with plain HTTP GETs and parses the raw response
// body. Fast, but blind to anything client-side script would render.
type Static struct {
	client    *http.Client
	limiter   ratelimit.Limiter
	cache     cache.Cache
	cacheTTL  time.Duration
	retryCfg  retry.Config
	userAgent string
}

// StaticOptions configures a Static fetcher. Limiter and Cache are
// optional; Retry defaults to a single attempt.
type StaticOptions struct {
	Timeout   time.Duration
	UserAgent string
	Proxy     string
	Limiter   ratelimit.Limiter
	Cache     cache.Cache
	CacheTTL  time.Duration
	Retry     retry.Config
}

// NewStatic creates a Static fetcher with a keep-alive tuned client.
func NewStatic(opts StaticOptions) *Static {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Harvest/1.0 (https://github.com/page-harvest/harvest)"
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = retry.DefaultConfig()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if opts.Proxy != "" {
		if proxyURL, err := url.Parse(opts.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		} else {
			log.Warn().Str("proxy", opts.Proxy).Err(err).Msg("Ignoring unparseable proxy")
		}
	}

	return &Static{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		limiter:   opts.Limiter,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		retryCfg:  opts.Retry,
		userAgent: opts.UserAgent,
	}
}

// Name returns the name of this fetcher.
func (s *Static) Name() string {
	return "StaticFetcher"
}

// Fetch retrieves and parses a static HTML page.
func (s *Static) Fetch(ctx context.Context, pageURL string) (*htmldoc.Document, error) {
	start := time.Now()

	log.Debug().
		Str("url", pageURL).
		Str("fetcher", s.Name()).
		Msg("Starting fetch")

	if s.cache != nil {
		if body, ok := s.cache.Get(pageURL); ok {
			return htmldoc.Parse(bytes.NewReader(body), pageURL)
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx, pageURL); err != nil {
			return nil, &Error{URL: pageURL, Err: err}
		}
	}

	var body []byte
	err := retry.Do(ctx, s.retryCfg, func() error {
		var ferr error
		body, ferr = s.get(ctx, pageURL)
		return ferr
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(pageURL, body, s.cacheTTL)
	}

	doc, err := htmldoc.Parse(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}

	log.Debug().
		Str("url", pageURL).
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(body)).
		Msg("Fetch completed")

	return doc, nil
}

func (s *Static) get(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{URL: pageURL, Status: resp.StatusCode, Err: ErrBadStatus}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}
	return body, nil
}
