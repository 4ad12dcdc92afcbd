// Package provider implements the catalog data providers and the
// reload watcher. Providers return the raw payload envelope; deciding
// what to do with a bad one is the store's job.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
)

// Compile-time interface check.
var _ domain.CatalogProvider = (*FileProvider)(nil)

// FileProvider reads the catalog from a local JSON file.
type FileProvider struct {
	path string
	log  *logger.Logger
}

// NewFileProvider creates a provider for the given path.
func NewFileProvider(path string, log *logger.Logger) *FileProvider {
	return &FileProvider{path: path, log: log}
}

// Path returns the watched file path.
func (p *FileProvider) Path() string { return p.path }

// Fetch reads and decodes the catalog file. A payload without the
// recipe list is rejected whole.
func (p *FileProvider) Fetch(ctx context.Context) (*domain.CatalogPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p.path, err)
	}
	return decodePayload(data)
}

// decodePayload parses the envelope and validates its shape.
func decodePayload(data []byte) (*domain.CatalogPayload, error) {
	var payload domain.CatalogPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}
	if payload.Recipes == nil {
		return nil, domain.ErrInvalidPayload
	}
	return &payload, nil
}
