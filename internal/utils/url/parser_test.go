package urlutil

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://example.com/page", false},
		{"http", "http://example.com", false},
		{"missing scheme", "example.com/page", true},
		{"ftp scheme", "ftp://example.com/file", true},
		{"missing host", "https://", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"absolute stays", "https://example.com/a", "https://other.com/x.jpg", "https://other.com/x.jpg"},
		{"root relative", "https://example.com/news/p1", "/img/x.jpg", "https://example.com/img/x.jpg"},
		{"path relative", "https://example.com/news/p1", "x.jpg", "https://example.com/news/x.jpg"},
		{"protocol relative", "https://example.com/a", "//cdn.example.com/x.jpg", "https://cdn.example.com/x.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.base, tt.href); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
			}
		})
	}
}

func TestResolveAll_PreservesOrder(t *testing.T) {
	got := ResolveAll("https://example.com/", []string{"/a", "/b"})
	if len(got) != 2 || got[0] != "https://example.com/a" || got[1] != "https://example.com/b" {
		t.Errorf("ResolveAll returned %v", got)
	}
}

func TestHost(t *testing.T) {
	if got := Host("https://example.com:8080/x"); got != "example.com:8080" {
		t.Errorf("Host = %q", got)
	}
	if got := Host("://bad"); got != "" {
		t.Errorf("Expected empty host for unparseable URL, got %q", got)
	}
}
