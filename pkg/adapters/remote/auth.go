package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aretw0/atcdesk/pkg/core"
)

// TokenClient validates bearer tokens with a POST to the auth endpoint.
type TokenClient struct {
	url    string
	client *http.Client
}

// NewTokenClient creates a validator for url. A nil client means
// http.DefaultClient.
func NewTokenClient(url string, client *http.Client) *TokenClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &TokenClient{url: url, client: client}
}

// Validate implements core.TokenValidator. Any status other than 200 is a
// rejection and is reported as a *StatusError.
func (c *TokenClient) Validate(ctx context.Context, token string) error {
	if c.url == "" {
		return fmt.Errorf("auth url: %w", core.ErrNotConfigured)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: c.url, StatusCode: resp.StatusCode}
	}
	return nil
}

var _ core.TokenValidator = (*TokenClient)(nil)
