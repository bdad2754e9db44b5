package lookout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/threatfeed-cli/internal/logger"
)

// DefaultTokenURL is the vendor's OAuth2 token endpoint.
const DefaultTokenURL = "https://api.lookout.com/oauth2/token"

// Ensure APIKeyTokenProvider implements the port.
var _ driven.TokenProvider = (*APIKeyTokenProvider)(nil)

// APIKeyTokenProvider exchanges the long-lived tenant API key for a
// bearer access token via the vendor's client-credentials grant. The
// token is fetched on first use and held for the process lifetime; a
// session whose token expires must be restarted.
type APIKeyTokenProvider struct {
	tokenURL   string
	apiKey     string
	httpClient *http.Client

	mu    sync.Mutex
	token string
}

// NewAPIKeyTokenProvider creates a token provider for the given API
// key. An empty tokenURL selects the vendor default.
func NewAPIKeyTokenProvider(tokenURL, apiKey string) *APIKeyTokenProvider {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	return &APIKeyTokenProvider{
		tokenURL:   tokenURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// GetToken returns the access token, exchanging the API key on first use.
func (p *APIKeyTokenProvider) GetToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" {
		return p.token, nil
	}
	if p.apiKey == "" {
		return "", domain.ErrAuthRequired
	}

	logger.Info("Exchanging API key for access token")

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{URL: p.tokenURL, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			URL:        p.tokenURL,
		}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: %w", domain.ErrAuthInvalid, apiErr)
		}
		return "", apiErr
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: token response missing access_token", domain.ErrAuthInvalid)
	}

	if payload.ExpiresIn > 0 {
		logger.Debug("Access token valid for %s", time.Duration(payload.ExpiresIn)*time.Second)
	}
	p.token = payload.AccessToken
	return p.token, nil
}
