// Package remote talks to the spreadsheet-backed flight plan endpoint and to
// the auth service. Neither client retries or sets a timeout of its own;
// pass a context or an *http.Client that does.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/aretw0/atcdesk/pkg/core"
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP error! status: %d", e.URL, e.StatusCode)
}

// PlanClient fetches the remote flight plan set with one GET per call.
type PlanClient struct {
	url    string
	client *http.Client
	logger *slog.Logger
	cache  *expirable.LRU[string, []core.RemoteFlightPlan]
}

// PlanOption configures a PlanClient.
type PlanOption func(*PlanClient)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) PlanOption {
	return func(p *PlanClient) {
		if c != nil {
			p.client = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) PlanOption {
	return func(p *PlanClient) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithCacheTTL keeps a successful response for ttl. Zero disables caching.
func WithCacheTTL(ttl time.Duration) PlanOption {
	return func(p *PlanClient) {
		if ttl > 0 {
			p.cache = expirable.NewLRU[string, []core.RemoteFlightPlan](1, nil, ttl)
		} else {
			p.cache = nil
		}
	}
}

// NewPlanClient creates a client for the endpoint at url.
func NewPlanClient(url string, opts ...PlanOption) *PlanClient {
	p := &PlanClient{url: url, client: http.DefaultClient, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// URL returns the endpoint.
func (p *PlanClient) URL() string { return p.url }

// FetchPlans implements core.PlanFetcher.
func (p *PlanClient) FetchPlans(ctx context.Context) ([]core.RemoteFlightPlan, error) {
	if p.url == "" {
		return nil, fmt.Errorf("remote flight plans url: %w", core.ErrNotConfigured)
	}
	if p.cache != nil {
		if plans, ok := p.cache.Get(p.url); ok {
			p.logger.Debug("serving flight plans from cache", "url", p.url, "count", len(plans))
			return plans, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch flight plans: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: p.url, StatusCode: resp.StatusCode}
	}

	var plans []core.RemoteFlightPlan
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&plans); err != nil {
		return nil, fmt.Errorf("decode flight plans: %w", err)
	}
	if plans == nil {
		plans = []core.RemoteFlightPlan{}
	}

	p.logger.Debug("fetched flight plans", "url", p.url, "count", len(plans))
	if p.cache != nil {
		p.cache.Add(p.url, plans)
	}
	return plans, nil
}

var _ core.PlanFetcher = (*PlanClient)(nil)
