package models

import (
	"errors"
	"testing"
)

func TestPageRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pages   PageRange
		wantErr bool
	}{
		{"single page", PageRange{Start: 1, End: 1, Step: 1}, false},
		{"ascending range", PageRange{Start: 2, End: 10, Step: 2}, false},
		{"zero step", PageRange{Start: 1, End: 5, Step: 0}, true},
		{"negative step", PageRange{Start: 1, End: 5, Step: -1}, true},
		{"zero start", PageRange{Start: 0, End: 5, Step: 1}, true},
		{"end before start", PageRange{Start: 5, End: 2, Step: 1}, true},
		{"custom list bypasses range checks", PageRange{Start: 0, End: -3, Step: 0, Custom: []int{7, 3}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pages.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("Expected *ConfigError, got %T", err)
				}
			}
		})
	}
}

func TestCrawlConfig_Normalize_Defaults(t *testing.T) {
	cfg := CrawlConfig{
		URLTemplate:     "https://example.com/page/%d",
		ContentSelector: Selector{Tag: "div", Class: "container"},
	}
	cfg.Normalize()

	if cfg.Mode != ModeStatic {
		t.Errorf("Expected default mode %q, got %q", ModeStatic, cfg.Mode)
	}
	if cfg.Category != DefaultCategory {
		t.Errorf("Expected category %q, got %q", DefaultCategory, cfg.Category)
	}
	if cfg.OwnerSource != DefaultOwnerSource {
		t.Errorf("Expected owner source %q, got %q", DefaultOwnerSource, cfg.OwnerSource)
	}
	if cfg.BannerAttr != DefaultBannerAttr {
		t.Errorf("Expected banner attr %q, got %q", DefaultBannerAttr, cfg.BannerAttr)
	}
	if cfg.ImageArea != cfg.ContentSelector {
		t.Errorf("Expected image area to default to the content selector, got %+v", cfg.ImageArea)
	}
}

func TestCrawlConfig_Normalize_KeepsExplicitValues(t *testing.T) {
	cfg := CrawlConfig{
		URLTemplate: "https://example.com/page/%d",
		Mode:        ModeRendered,
		Category:    "Health",
		BannerAttr:  "data-src",
		ImageArea:   Selector{Tag: "figure"},
	}
	cfg.Normalize()

	if cfg.Mode != ModeRendered {
		t.Errorf("Mode was overwritten: %q", cfg.Mode)
	}
	if cfg.Category != "Health" {
		t.Errorf("Category was overwritten: %q", cfg.Category)
	}
	if cfg.BannerAttr != "data-src" {
		t.Errorf("BannerAttr was overwritten: %q", cfg.BannerAttr)
	}
	if cfg.ImageArea.Tag != "figure" {
		t.Errorf("ImageArea was overwritten: %+v", cfg.ImageArea)
	}
}

func TestCrawlConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     CrawlConfig
		wantErr bool
	}{
		{
			"valid",
			CrawlConfig{URLTemplate: "https://example.com/p-%d", Mode: ModeStatic, Pages: PageRange{Start: 1, End: 3, Step: 1}},
			false,
		},
		{
			"missing template",
			CrawlConfig{Pages: PageRange{Start: 1, End: 3, Step: 1}},
			true,
		},
		{
			"template without page verb",
			CrawlConfig{URLTemplate: "https://example.com/p", Pages: PageRange{Start: 1, End: 3, Step: 1}},
			true,
		},
		{
			"unknown mode",
			CrawlConfig{URLTemplate: "https://example.com/p-%d", Mode: "turbo", Pages: PageRange{Start: 1, End: 3, Step: 1}},
			true,
		},
		{
			"bad range",
			CrawlConfig{URLTemplate: "https://example.com/p-%d", Pages: PageRange{Start: 3, End: 1, Step: 1}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigError_Is(t *testing.T) {
	err := error(&ConfigError{Field: "step_page", Message: "must be >= 1"})
	var target *ConfigError
	if !errors.As(err, &target) {
		t.Fatal("errors.As failed to match *ConfigError")
	}
	if target.Field != "step_page" {
		t.Errorf("Expected field step_page, got %q", target.Field)
	}
}

func TestSelector_IsZero(t *testing.T) {
	if !(Selector{}).IsZero() {
		t.Error("Empty selector should be zero")
	}
	if (Selector{Tag: "div"}).IsZero() {
		t.Error("Tag-only selector should not be zero")
	}
	if (Selector{Class: "container"}).IsZero() {
		t.Error("Class-only selector should not be zero")
	}
}

func TestNewPageDescriptor_Defaults(t *testing.T) {
	desc := NewPageDescriptor("https://example.com/a", ModeRendered)
	if desc.Category != DefaultCategory || desc.OwnerSource != DefaultOwnerSource {
		t.Errorf("Expected default provenance, got %+v", desc)
	}
	if desc.Mode != ModeRendered {
		t.Errorf("Expected rendered mode, got %q", desc.Mode)
	}
}
