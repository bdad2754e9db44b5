package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
)

// maxSourceBytes caps how much of a remote feed is read. Threat lists
// run to a few megabytes; anything past this is a misconfigured URL.
const maxSourceBytes = 64 << 20

// Ensure URLSource implements the interface.
var _ driven.DomainSource = (*URLSource)(nil)

// URLSource fetches domain entries from an HTTP endpoint.
type URLSource struct {
	url        string
	httpClient *http.Client
}

// NewURLSource creates a source backed by the given URL.
func NewURLSource(rawURL string) *URLSource {
	return &URLSource{
		url: rawURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Describe returns the source URL.
func (s *URLSource) Describe() string {
	return s.url
}

// Fetch downloads and splits the feed body.
func (s *URLSource) Fetch(ctx context.Context) ([]string, error) {
	parsed, err := url.Parse(s.url)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: source URL must be http or https: %s", domain.ErrInvalidInput, s.url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, s.url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return splitEntries(string(data)), nil
}
