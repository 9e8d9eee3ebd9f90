package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel          = "info"
	DefaultJSONLog           = false
	DefaultUserAgent         = "Harvest/1.0 (https://github.com/page-harvest/harvest)"
	DefaultHTTPTimeout       = 30 * time.Second
	DefaultRateLimitRPS      = 5.0
	DefaultRateLimitBurst    = 10
	DefaultRetryAttempts     = 1
	DefaultBrowserHeadless   = true
	DefaultImplicitWait      = 500 * time.Millisecond
	DefaultCacheTTL          = 5 * time.Minute
	DefaultCacheMaxSizeBytes = 64 * 1024 * 1024
)
