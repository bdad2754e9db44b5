package lookout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/threatfeed-cli/internal/logger"
)

const (
	// DefaultBaseURL is the vendor's threat-feed management API root.
	DefaultBaseURL = "https://api.lookout.com/mgmt/threat-feeds/api/v1"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultPageSize is the element page size requested per list call.
	DefaultPageSize = 1000

	// maxErrorBody bounds how much of an error response is retained.
	maxErrorBody = 4 << 10
)

// Ensure Client implements the driven port.
var _ driven.FeedClient = (*Client)(nil)

// Client wraps the vendor threat-feed API with bearer authentication,
// rate limiting and bounded retry. Every mutating call is audit-logged
// at the boundary with a request id.
type Client struct {
	baseURL       string
	tokenProvider driven.TokenProvider
	httpClient    *http.Client
	retry         RetryPolicy
	rateLimiter   *RateLimiter
}

// NewClient creates a client for the API rooted at baseURL. An empty
// baseURL selects the vendor default.
func NewClient(baseURL string, tokenProvider driven.TokenProvider) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tokenProvider,
		retry:         DefaultRetryPolicy(),
		rateLimiter:   NewRateLimiter(),
	}
}

// WithRetryPolicy replaces the retry policy. Used by tests to run with
// a deterministic clock.
func (c *Client) WithRetryPolicy(p RetryPolicy) *Client {
	c.retry = p
	return c
}

// ensureHTTP initializes the authenticated HTTP client if not already
// done. Called lazily so the token is fetched only when first needed.
func (c *Client) ensureHTTP(ctx context.Context) error {
	if c.httpClient != nil {
		return nil
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = DefaultTimeout
	c.httpClient = hc
	return nil
}

// ListFeeds returns every feed owned by the tenant.
func (c *Client) ListFeeds(ctx context.Context) ([]domain.Feed, error) {
	var payload []feedPayload
	if err := c.doJSON(ctx, "list feeds", http.MethodGet, "/threat-feeds", nil, nil, &payload); err != nil {
		return nil, err
	}

	feeds := make([]domain.Feed, 0, len(payload))
	for _, p := range payload {
		feeds = append(feeds, p.toDomain())
	}
	return feeds, nil
}

// GetFeed returns metadata for a single feed.
func (c *Client) GetFeed(ctx context.Context, id string) (*domain.Feed, error) {
	var payload feedPayload
	if err := c.doJSON(ctx, "get feed", http.MethodGet, "/threat-feeds/"+url.PathEscape(id), nil, nil, &payload); err != nil {
		return nil, err
	}
	feed := payload.toDomain()
	return &feed, nil
}

// CreateFeed registers a new feed. Local validation failures are
// returned before any request is sent.
func (c *Client) CreateFeed(ctx context.Context, feedType domain.FeedType, title, description string) (*domain.Feed, error) {
	if err := domain.ValidateNewFeed(feedType, title, description); err != nil {
		return nil, err
	}

	logger.Audit("create feed request=%s type=%s", uuid.NewString(), feedType)

	body := createFeedRequest{
		FeedType:    string(feedType),
		Title:       title,
		Description: description,
	}
	var payload feedPayload
	if err := c.doJSON(ctx, "create feed", http.MethodPost, "/threat-feeds", nil, body, &payload); err != nil {
		return nil, err
	}
	feed := payload.toDomain()
	return &feed, nil
}

// DeleteFeed removes a feed. Returns domain.ErrNotFound when the feed
// is already gone.
func (c *Client) DeleteFeed(ctx context.Context, id string) error {
	logger.Audit("delete feed request=%s feed=%s", uuid.NewString(), id)
	return c.doJSON(ctx, "delete feed", http.MethodDelete, "/threat-feeds/"+url.PathEscape(id), nil, nil, nil)
}

// ListDomains returns one page of the feed's domain list. An empty
// pageToken requests the first page.
func (c *Client) ListDomains(ctx context.Context, id, pageToken string) (*domain.Page, error) {
	query := url.Values{"limit": {fmt.Sprint(DefaultPageSize)}}
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	var payload elementsPage
	err := c.doJSON(ctx, "list domains", http.MethodGet,
		"/threat-feeds/"+url.PathEscape(id)+"/elements", query, nil, &payload)
	if err != nil {
		return nil, err
	}

	page := &domain.Page{
		Domains:       make([]domain.Domain, 0, len(payload.Elements)),
		NextPageToken: payload.NextPageToken,
	}
	for _, e := range payload.Elements {
		page.Domains = append(page.Domains, domain.Domain(e))
	}
	return page, nil
}

// ReplaceDomains overwrites the feed's entire domain list.
func (c *Client) ReplaceDomains(ctx context.Context, id string, domains []domain.Domain) (*domain.OperationResult, error) {
	return c.uploadDomains(ctx, "replace domains", id, uploadTypeFull, actionAdd, domains)
}

// AddDomains adds the set to the feed.
func (c *Client) AddDomains(ctx context.Context, id string, domains []domain.Domain) (*domain.OperationResult, error) {
	return c.uploadDomains(ctx, "add domains", id, uploadTypeIncremental, actionAdd, domains)
}

// RemoveDomains removes the set from the feed.
func (c *Client) RemoveDomains(ctx context.Context, id string, domains []domain.Domain) (*domain.OperationResult, error) {
	return c.uploadDomains(ctx, "remove domains", id, uploadTypeIncremental, actionDelete, domains)
}

// uploadDomains issues one bulk element upload and maps the vendor's
// accepted/rejected response onto an OperationResult.
func (c *Client) uploadDomains(
	ctx context.Context, op, id, uploadType, action string, domains []domain.Domain,
) (*domain.OperationResult, error) {
	logger.Audit("%s request=%s feed=%s elements=%d", op, uuid.NewString(), id, len(domains))

	body := elementsUpload{Elements: make([]elementChange, 0, len(domains))}
	for _, d := range domains {
		body.Elements = append(body.Elements, elementChange{Action: action, Domain: d.String()})
	}

	query := url.Values{"uploadType": {uploadType}}
	var payload elementsResult
	err := c.doJSON(ctx, op, http.MethodPost,
		"/threat-feeds/"+url.PathEscape(id)+"/elements", query, body, &payload)
	if err != nil {
		return nil, err
	}
	return payload.toResult(domains), nil
}

// doJSON performs one authenticated JSON request with rate limiting and
// bounded retry, decoding a 2xx body into out when out is non-nil.
func (c *Client) doJSON(
	ctx context.Context, op, method, path string, query url.Values, payload, out any,
) error {
	if err := c.ensureHTTP(ctx); err != nil {
		return err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	return c.retry.Do(ctx, op, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}

		var body io.Reader
		if payload != nil {
			data, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("encode request: %w", err)
			}
			body = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, u, body)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &NetworkError{URL: u, Err: err}
		}
		defer resp.Body.Close()

		if err := c.rateLimiter.Observe(resp); err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return classify(resp, u)
		}
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	})
}

// classify converts a non-2xx response into a typed error, wrapping the
// domain sentinel appropriate for the status.
func classify(resp *http.Response, reqURL string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
		URL:        reqURL,
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrAuthInvalid, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", domain.ErrNotFound, apiErr)
	case http.StatusBadRequest:
		if strings.Contains(apiErr.Body, "max allowed feed limit") {
			return fmt.Errorf("%w: %w", domain.ErrFeedLimitReached, apiErr)
		}
		return apiErr
	default:
		return apiErr
	}
}
