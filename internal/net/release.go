package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	latestReleaseAPIURL  = "https://api.github.com/repos/vocdoni/eolookup/releases/latest"
	LatestReleasePageURL = "https://github.com/vocdoni/eolookup/releases/latest"
)

type latestReleaseResponse struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// FetchLatestRelease returns the tag and page URL of the latest published
// release.
func FetchLatestRelease(ctx context.Context, logger *zap.Logger) (string, string, error) {
	return fetchLatestRelease(ctx, latestReleaseAPIURL, logger)
}

func fetchLatestRelease(ctx context.Context, apiURL string, logger *zap.Logger) (string, string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Sugar()

	log.Debugw("Fetching latest release", "url", apiURL)
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("build latest release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "eolookup-version-check")

	client := &http.Client{Timeout: 8 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch latest release: %w", err)
	}
	defer resp.Body.Close()
	log.Debugw("Latest release response", "status", resp.Status)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return "", "", fmt.Errorf("latest release request failed: %s", msg)
	}

	var out latestReleaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", "", fmt.Errorf("decode latest release response: %w", err)
	}
	if out.TagName == "" {
		return "", "", fmt.Errorf("latest release response missing tag_name")
	}
	if out.HTMLURL == "" {
		out.HTMLURL = LatestReleasePageURL
	}
	log.Debugw("Latest release", "tag", out.TagName, "url", out.HTMLURL)
	return out.TagName, out.HTMLURL, nil
}
