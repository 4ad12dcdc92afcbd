package domain

import "context"

// CatalogProvider supplies the recipe collection. Implementations can
// read a local JSON file, fetch over HTTP, or serve a fixture in tests.
type CatalogProvider interface {
	Fetch(ctx context.Context) (*CatalogPayload, error)
}

// KeyValue is the persistent store for named string blobs. It survives
// restarts; the core keeps exactly two slots in it (favorites and the
// current user) and round-trips both as JSON.
type KeyValue interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Fixed KeyValue slot names.
const (
	KeyFavorites   = "favorites"
	KeyCurrentUser = "currentUser"
)

// Renderer paints a view. The core tells it what to show and forgets
// about it; drawing is entirely the renderer's business.
type Renderer interface {
	Render(payload ViewPayload)
}

// Confirmer asks the user to confirm a destructive action. Deletion of
// a recipe goes through this before anything is touched.
type Confirmer interface {
	Confirm(prompt string) bool
}
