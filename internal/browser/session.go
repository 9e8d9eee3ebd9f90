// internal/browser/session.go
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Session is a single headless Chrome tab that can be navigated many
// times. Ownership is explicit: whoever calls New is responsible for
// Close; borrowers (the rendered fetcher, each extractor reusing the
// session) must never close it. Navigating a shared session changes its
// current page, which is the intended reuse model.
type Session struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	implicitWait  time.Duration

	mu         sync.Mutex
	pendingURL string
	status     int64
}

// Options configures a browser session.
type Options struct {
	Headless     bool
	UserAgent    string
	Proxy        string
	ChromePath   string
	ImplicitWait time.Duration
}

// DefaultImplicitWait bounds how long a navigation settles before the
// DOM is read. Mirrors the implicit-wait knob of the driver.
const DefaultImplicitWait = 500 * time.Millisecond

// New starts a headless Chrome instance and warms up one tab. The
// returned session is not safe for concurrent navigations.
func New(opts Options) (*Session, error) {
	if opts.UserAgent == "" {
		opts.UserAgent = "Harvest/1.0 (https://github.com/page-harvest/harvest)"
	}
	if opts.ImplicitWait <= 0 {
		opts.ImplicitWait = DefaultImplicitWait
	}

	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("window-size", "1920,1080"),
		chromedp.UserAgent(opts.UserAgent),
	}
	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		implicitWait:  opts.ImplicitWait,
	}

	// One listener for the session lifetime; Navigate rebinds the URL it
	// watches for, so repeated navigations do not stack listeners.
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok {
			return
		}
		s.mu.Lock()
		if resp.Response.URL == s.pendingURL {
			s.status = resp.Response.Status
		}
		s.mu.Unlock()
	})

	// Warm up the tab so the first real navigation doesn't pay startup
	// cost inside its timeout budget.
	if err := chromedp.Run(browserCtx, network.Enable(), chromedp.Navigate("about:blank")); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	log.Debug().Str("chrome", chromePath).Msg("Browser session ready")
	return s, nil
}

// Navigate drives the tab to url, waits for readiness plus the implicit
// wait, and returns the rendered markup and the main document's HTTP
// status (0 when it could not be observed). The deadline on ctx bounds
// the whole navigation.
func (s *Session) Navigate(ctx context.Context, url string) (string, int, error) {
	s.mu.Lock()
	s.pendingURL = url
	s.status = 0
	s.mu.Unlock()

	runCtx := s.browserCtx
	if deadline, ok := ctx.Deadline(); ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(s.browserCtx, deadline)
		defer cancel()
	}

	var markup string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(s.implicitWait),
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	)
	if err != nil {
		return "", 0, fmt.Errorf("navigation failed: %w", err)
	}

	s.mu.Lock()
	status := int(s.status)
	s.mu.Unlock()

	return markup, status, nil
}

// Close shuts the tab and the browser down. Only the opener calls this.
func (s *Session) Close() {
	s.browserCancel()
	s.allocCancel()
	log.Debug().Msg("Browser session closed")
}
