package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestFetchLatestRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "eolookup-version-check" {
			http.Error(w, "missing user agent", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"v1.4.0"}`))
	}))
	defer srv.Close()

	tag, page, err := fetchLatestRelease(context.Background(), srv.URL, zap.NewNop())
	if err != nil {
		t.Fatalf("fetchLatestRelease: %v", err)
	}
	if tag != "v1.4.0" {
		t.Fatalf("tag=%q", tag)
	}
	if page != LatestReleasePageURL {
		t.Fatalf("page=%q want fallback %q", page, LatestReleasePageURL)
	}
}

func TestFetchLatestReleaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "rate limited", status: http.StatusForbidden, body: `{"message":"API rate limit exceeded"}`},
		{name: "missing tag", status: http.StatusOK, body: `{"html_url":"https://example.com"}`},
		{name: "bad json", status: http.StatusOK, body: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			if _, _, err := fetchLatestRelease(context.Background(), srv.URL, nil); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
