package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
)

// Compile-time interface check.
var _ domain.CatalogProvider = (*HTTPProvider)(nil)

// HTTPOption configures the HTTP provider.
type HTTPOption func(*HTTPProvider)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(p *HTTPProvider) { p.client.Timeout = d }
}

// HTTPProvider fetches the catalog from a remote endpoint.
type HTTPProvider struct {
	url    string
	client *http.Client
	log    *logger.Logger
}

// NewHTTPProvider creates a provider for the given URL.
func NewHTTPProvider(url string, log *logger.Logger, opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch downloads and decodes the catalog.
func (p *HTTPProvider) Fetch(ctx context.Context) (*domain.CatalogPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	p.log.Debug("fetching catalog from %s", p.url)
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog endpoint returned %d: %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return decodePayload(data)
}
