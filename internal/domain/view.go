package domain

// ViewKind identifies the active display mode. Exactly one view is
// active at a time; switching views is the only way the grid changes.
type ViewKind int

const (
	ViewCatalog ViewKind = iota
	ViewSearchResults
	ViewFavorites
	ViewProducts
	ViewAdminPanel
)

// String returns a human-readable view name.
func (v ViewKind) String() string {
	switch v {
	case ViewCatalog:
		return "catalog"
	case ViewSearchResults:
		return "search-results"
	case ViewFavorites:
		return "favorites"
	case ViewProducts:
		return "products"
	case ViewAdminPanel:
		return "admin-panel"
	default:
		return "unknown"
	}
}

// AdminTab is the nested tab inside the admin panel. Switching tabs
// never changes the outer view, only this parameter.
type AdminTab string

const (
	TabRecipes  AdminTab = "recipes"
	TabUsers    AdminTab = "users"
	TabProducts AdminTab = "products"
)

// Valid reports whether the tab is one of the known values.
func (t AdminTab) Valid() bool {
	return t == TabRecipes || t == TabUsers || t == TabProducts
}

// ViewState is the tagged union of the view machine. Query is only
// meaningful for ViewSearchResults, Tab only for ViewAdminPanel. Not
// persisted; every run starts at the catalog.
type ViewState struct {
	Kind  ViewKind
	Query string
	Tab   AdminTab
}

// ViewPayload is what the renderer is handed after every state-changing
// operation. The renderer never mutates it and the core never retains
// rendered output.
type ViewPayload struct {
	Kind      ViewKind
	Title     string
	Query     string
	Tab       AdminTab
	Recipes   []*Recipe
	Favorites map[int]bool
	Session   *Session
}
