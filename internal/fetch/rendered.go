// internal/fetch/rendered.go
package fetch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/page-harvest/harvest/internal/browser"
	"github.com/page-harvest/harvest/internal/htmldoc"
	"github.com/page-harvest/harvest/internal/ratelimit"
)

// Rendered fetches pages through a live browser so that script-rendered
// content is visible. When a shared session is supplied it is borrowed:
// each fetch navigates it in place (deliberately mutating its current
// page) and never closes it. Without one, a throwaway session is opened
// for the single call and closed before returning.
type Rendered struct {
	session     *browser.Session
	browserOpts browser.Options
	limiter     ratelimit.Limiter
	timeout     time.Duration
}

// RenderedOptions configures a Rendered fetcher.
type RenderedOptions struct {
	// Session is a caller-owned browser session to reuse across fetches.
	// May be nil; then every Fetch opens and closes its own.
	Session *browser.Session
	Browser browser.Options
	Limiter ratelimit.Limiter
	Timeout time.Duration
}

// NewRendered creates a Rendered fetcher.
func NewRendered(opts RenderedOptions) *Rendered {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Rendered{
		session:     opts.Session,
		browserOpts: opts.Browser,
		limiter:     opts.Limiter,
		timeout:     opts.Timeout,
	}
}

// Name returns the name of this fetcher.
func (r *Rendered) Name() string {
	return "RenderedFetcher"
}

// Fetch navigates to the page, waits for it to settle and parses the
// live DOM. Navigation errors and timeouts surface as *Error.
func (r *Rendered) Fetch(ctx context.Context, pageURL string) (*htmldoc.Document, error) {
	start := time.Now()

	log.Debug().
		Str("url", pageURL).
		Str("fetcher", r.Name()).
		Bool("shared_session", r.session != nil).
		Msg("Starting fetch")

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, pageURL); err != nil {
			return nil, &Error{URL: pageURL, Err: err}
		}
	}

	session := r.session
	if session == nil {
		owned, err := browser.New(r.browserOpts)
		if err != nil {
			// Session startup is a setup failure, not page variance;
			// callers treat it as fatal.
			return nil, err
		}
		defer owned.Close()
		session = owned
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	markup, status, err := session.Navigate(ctx, pageURL)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}
	if status >= 400 {
		// The browser rendered an error page; the caller still gets the
		// document, since sites frequently serve useful content anyway.
		log.Warn().Str("url", pageURL).Int("status", status).Msg("Rendered page has error status")
	}

	doc, err := htmldoc.ParseString(markup, pageURL)
	if err != nil {
		return nil, &Error{URL: pageURL, Err: err}
	}

	log.Debug().
		Str("url", pageURL).
		Int("status", status).
		Dur("elapsed", time.Since(start)).
		Msg("Fetch completed")

	return doc, nil
}
