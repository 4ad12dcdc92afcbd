// Package catalog provides read-side operations over the entity store:
// search, the favorites listing, and category display lookups.
package catalog

import (
	"strings"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
	"github.com/davidlugo/recetasworld/internal/store"
)

// Catalog answers queries against the store. It never mutates anything.
type Catalog struct {
	store *store.Store
	log   *logger.Logger
}

// New creates a catalog over the given store.
func New(st *store.Store, log *logger.Logger) *Catalog {
	return &Catalog{store: st, log: log}
}

// Search returns recipes whose name, country, or any category contains
// the query, case-insensitively, in store order. A blank or
// whitespace-only query means "no filter" and returns the full catalog.
func (c *Catalog) Search(query string) []*domain.Recipe {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.store.All()
	}

	var out []*domain.Recipe
	for _, r := range c.store.All() {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	c.log.Debug("search %q: %d results", query, len(out))
	return out
}

func matches(r *domain.Recipe, q string) bool {
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Country), q) {
		return true
	}
	for _, cat := range r.Categories {
		if strings.Contains(strings.ToLower(cat), q) {
			return true
		}
	}
	return false
}

// Favorites returns the favorited recipes in catalog order, regardless
// of when each was toggled. Favorite ids that no longer resolve to a
// recipe are skipped silently; deleting a recipe never cleans up the
// favorite set.
func (c *Catalog) Favorites() []*domain.Recipe {
	var out []*domain.Recipe
	for _, r := range c.store.All() {
		if c.store.IsFavorite(r.ID) {
			out = append(out, r)
		}
	}
	return out
}
