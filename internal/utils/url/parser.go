package urlutil

import (
	"fmt"
	"net/url"
)

// Validate performs basic URL validation: absolute http(s) with a host.
func Validate(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %q", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// Resolve resolves a possibly-relative href against a base URL. On any
// parse failure the href is returned unchanged.
func Resolve(base, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if u.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(u).String()
}

// ResolveAll resolves every href in place-order against base and returns
// a new slice.
func ResolveAll(base string, hrefs []string) []string {
	resolved := make([]string, len(hrefs))
	for i, href := range hrefs {
		resolved[i] = Resolve(base, href)
	}
	return resolved
}

// Host extracts the host portion of a URL, or "" when unparseable.
func Host(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
