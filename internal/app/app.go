// Package app wires configuration into the fetch stack and manages the
// lifecycle of everything it opens.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/page-harvest/harvest/internal/browser"
	"github.com/page-harvest/harvest/internal/cache"
	"github.com/page-harvest/harvest/internal/config"
	"github.com/page-harvest/harvest/internal/fetch"
	"github.com/page-harvest/harvest/internal/ratelimit"
	"github.com/page-harvest/harvest/internal/retry"
	"github.com/page-harvest/harvest/pkg/models"
)

// Application holds the shared dependencies of a run: cache, rate
// limiter, the static fetcher and, once rendered mode is requested, one
// browser session. The session is opened here and therefore closed
// here; fetchers and extractors only ever borrow it.
type Application struct {
	Config  *config.Config
	Cache   cache.Cache
	Limiter ratelimit.Limiter
	Static  *fetch.Static

	mu        sync.Mutex
	session   *browser.Session
	startTime time.Time
}

// New creates an Application from config. The browser session is lazy;
// purely static runs never start Chrome.
func New(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	memCache := cache.NewMemoryCache(cfg.CacheMaxSizeBytes)
	limiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = cfg.RetryAttempts

	static := fetch.NewStatic(fetch.StaticOptions{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
		Proxy:     cfg.Proxy,
		Limiter:   limiter,
		Cache:     memCache,
		CacheTTL:  cfg.CacheTTL,
		Retry:     retryCfg,
	})

	log.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Float64("rps", cfg.RateLimitRPS).
		Int("retry_attempts", cfg.RetryAttempts).
		Msg("Application initialized")

	return &Application{
		Config:    cfg,
		Cache:     memCache,
		Limiter:   limiter,
		Static:    static,
		startTime: time.Now(),
	}, nil
}

// Fetcher returns the fetcher for the given mode. Rendered mode starts
// the shared browser session on first use; a failure to start it is a
// setup error and surfaces immediately.
func (a *Application) Fetcher(mode models.FetchMode) (fetch.Fetcher, error) {
	if mode != models.ModeRendered {
		return a.Static, nil
	}

	session, err := a.EnsureSession()
	if err != nil {
		return nil, err
	}
	return fetch.NewRendered(fetch.RenderedOptions{
		Session: session,
		Limiter: a.Limiter,
		Timeout: a.Config.HTTPTimeout,
	}), nil
}

// EnsureSession lazily opens the application-owned browser session.
func (a *Application) EnsureSession() (*browser.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return a.session, nil
	}

	session, err := browser.New(browser.Options{
		Headless:     a.Config.BrowserHeadless,
		UserAgent:    a.Config.UserAgent,
		Proxy:        a.Config.Proxy,
		ChromePath:   a.Config.ChromePath,
		ImplicitWait: a.Config.ImplicitWait,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}
	a.session = session
	return session, nil
}

// Close releases everything the application opened. Safe to call when
// no browser session was ever started.
func (a *Application) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		a.session.Close()
		a.session = nil
	}
	if a.Cache != nil {
		a.Cache.Clear()
	}

	log.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}
