// internal/fetch/static_test.go
package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/page-harvest/harvest/internal/cache"
	"github.com/page-harvest/harvest/internal/retry"
)

func TestStatic_Fetch_BasicHTML(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`<html><head><title>Hello World</title></head><body><p>hi</p></body></html>`))
	}))
	defer server.Close()

	fetcher := NewStatic(StaticOptions{UserAgent: "TestAgent/1.0"})

	doc, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if doc.Title() != "Hello World" {
		t.Errorf("Expected title 'Hello World', got %q", doc.Title())
	}
	if doc.URL() != server.URL {
		t.Errorf("Document URL should be the fetched URL, got %q", doc.URL())
	}
	if gotUserAgent != "TestAgent/1.0" {
		t.Errorf("Expected custom user agent, got %q", gotUserAgent)
	}
}

func TestStatic_Fetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	fetcher := NewStatic(StaticOptions{})

	_, err := fetcher.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected an error for 404")
	}

	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *fetch.Error, got %T: %v", err, err)
	}
	if fetchErr.Status != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", fetchErr.Status)
	}
	if !errors.Is(err, ErrBadStatus) {
		t.Errorf("Expected ErrBadStatus in the chain, got %v", err)
	}
}

func TestStatic_Fetch_ConnectionRefused(t *testing.T) {
	fetcher := NewStatic(StaticOptions{Timeout: time.Second})

	_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/nothing")
	if err == nil {
		t.Fatal("Expected an error")
	}
	var fetchErr *Error
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected *fetch.Error, got %T", err)
	}
	if fetchErr.Status != 0 {
		t.Errorf("Transport failures carry status 0, got %d", fetchErr.Status)
	}
}

func TestStatic_Fetch_ServesFromCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`<html><head><title>Cached</title></head><body></body></html>`))
	}))

	fetcher := NewStatic(StaticOptions{
		Cache:    cache.NewMemoryCache(1024 * 1024),
		CacheTTL: time.Minute,
	})

	if _, err := fetcher.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("First fetch failed: %v", err)
	}

	// The server going away must not matter once the body is cached.
	url := server.URL
	server.Close()

	doc, err := fetcher.Fetch(context.Background(), url)
	if err != nil {
		t.Fatalf("Cached fetch failed: %v", err)
	}
	if doc.Title() != "Cached" {
		t.Errorf("Expected cached document, got title %q", doc.Title())
	}
	if hits != 1 {
		t.Errorf("Expected exactly one upstream request, got %d", hits)
	}
}

func TestStatic_Fetch_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`<html><head><title>Recovered</title></head><body></body></html>`))
	}))
	defer server.Close()

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxAttempts = 3
	retryCfg.InitialBackoff = time.Millisecond

	fetcher := NewStatic(StaticOptions{Retry: retryCfg})

	doc, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if doc.Title() != "Recovered" {
		t.Errorf("Got title %q", doc.Title())
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
}

func TestStatic_Name(t *testing.T) {
	if name := NewStatic(StaticOptions{}).Name(); name != "StaticFetcher" {
		t.Errorf("Unexpected name %q", name)
	}
}
