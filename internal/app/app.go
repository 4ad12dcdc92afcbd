// Package app wires the view state machine to the catalog operations.
// A user command comes in, state is mutated, and the active view's
// payload is recomputed and handed to the renderer. All transitions are
// explicit; nothing switches views on its own.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/davidlugo/recetasworld/internal/admin"
	"github.com/davidlugo/recetasworld/internal/catalog"
	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
	"github.com/davidlugo/recetasworld/internal/session"
	"github.com/davidlugo/recetasworld/internal/store"
)

// App is the application controller. Constructed once at startup with
// every collaborator injected; there are no package-level statics.
type App struct {
	mu       sync.Mutex
	store    *store.Store
	catalog  *catalog.Catalog
	sessions *session.Manager
	admin    *admin.Service
	provider domain.CatalogProvider
	renderer domain.Renderer
	log      *logger.Logger
	view     domain.ViewState
}

// New creates the controller. The initial view is the catalog.
func New(
	st *store.Store,
	cat *catalog.Catalog,
	sm *session.Manager,
	adm *admin.Service,
	provider domain.CatalogProvider,
	renderer domain.Renderer,
	log *logger.Logger,
) *App {
	return &App{
		store:    st,
		catalog:  cat,
		sessions: sm,
		admin:    adm,
		provider: provider,
		renderer: renderer,
		log:      log,
		view:     domain.ViewState{Kind: domain.ViewCatalog, Tab: domain.TabRecipes},
	}
}

// View returns the current view state.
func (a *App) View() domain.ViewState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// LoadCatalog fetches the collection from the provider and replaces the
// store's contents. Any failure (provider unreachable, malformed
// payload) leaves the store empty and the UI interactive; the error is
// returned for diagnostics only. Re-triggering at any time is safe and
// simply replaces the collection.
func (a *App) LoadCatalog(ctx context.Context) error {
	payload, err := a.provider.Fetch(ctx)
	if err != nil {
		a.store.Load(nil)
		a.log.Error("loading catalog: %v", err)
		a.rerender()
		return fmt.Errorf("loading catalog: %w", err)
	}
	if err := a.store.Load(payload); err != nil {
		a.rerender()
		return err
	}
	a.rerender()
	return nil
}

// Navigate switches to the given view. SearchResults cannot be entered
// here (it needs a query; use Search). Entering the admin panel without
// an admin session is refused and the view stays where it was.
func (a *App) Navigate(kind domain.ViewKind) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch kind {
	case domain.ViewSearchResults:
		return domain.ErrMissingQuery
	case domain.ViewAdminPanel:
		if !a.sessions.IsAdmin() {
			a.log.Warn("admin panel refused: no admin session")
			return domain.ErrAccessDenied
		}
		a.view = domain.ViewState{Kind: domain.ViewAdminPanel, Tab: domain.TabRecipes}
	default:
		a.view = domain.ViewState{Kind: kind}
	}
	a.render()
	return nil
}

// Search enters the search-results view for the query. A blank query is
// "no filter" and shows the catalog instead. Zero matches is a valid,
// displayable state, not an error.
func (a *App) Search(query string) []*domain.Recipe {
	a.mu.Lock()
	defer a.mu.Unlock()

	if isBlank(query) {
		a.view = domain.ViewState{Kind: domain.ViewCatalog}
		a.render()
		return a.store.All()
	}
	a.view = domain.ViewState{Kind: domain.ViewSearchResults, Query: query}
	matches := a.catalog.Search(query)
	a.render()
	return matches
}

// ToggleFavorite flips favorite membership for an existing recipe and
// re-renders. Unknown ids are reported, not toggled.
func (a *App) ToggleFavorite(id int) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.store.Find(id); !ok {
		return false, domain.ErrNotFound
	}
	state := a.store.ToggleFavorite(id)
	a.render()
	return state, nil
}

// FindRecipe looks a recipe up by id, for detail display.
func (a *App) FindRecipe(id int) (*domain.Recipe, bool) {
	return a.store.Find(id)
}

// IsFavorite reports favorite membership for an id.
func (a *App) IsFavorite(id int) bool {
	return a.store.IsFavorite(id)
}

// Login delegates to the session manager and repaints on success.
func (a *App) Login(username, password string, role domain.Role, adminKey string) (*domain.Session, error) {
	sess, err := a.sessions.Login(username, password, role, adminKey)
	if err != nil {
		return nil, err
	}
	a.rerender()
	return sess, nil
}

// Logout clears the session. If the admin panel was open its access
// just went away, so the view falls back to the catalog.
func (a *App) Logout() {
	a.sessions.Logout()
	a.mu.Lock()
	if a.view.Kind == domain.ViewAdminPanel {
		a.view = domain.ViewState{Kind: domain.ViewCatalog}
	}
	a.render()
	a.mu.Unlock()
}

// SwitchAdminTab changes the admin panel's active tab. Only meaningful
// while the panel is open; the outer view never changes. Returns
// whether the tab was applied.
func (a *App) SwitchAdminTab(tab domain.AdminTab) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.sessions.IsAdmin() {
		return false, domain.ErrAccessDenied
	}
	if a.view.Kind != domain.ViewAdminPanel || !tab.Valid() {
		return false, nil
	}
	a.view.Tab = tab
	a.render()
	return true, nil
}

// CreateRecipe adds a recipe through the admin service and repaints.
func (a *App) CreateRecipe(form admin.RecipeForm) (int, error) {
	id, err := a.admin.CreateRecipe(form)
	if err != nil {
		return 0, err
	}
	a.rerender()
	return id, nil
}

// UpdateRecipe edits a recipe through the admin service and repaints.
func (a *App) UpdateRecipe(id int, form admin.RecipeForm) error {
	if err := a.admin.UpdateRecipe(id, form); err != nil {
		return err
	}
	a.rerender()
	return nil
}

// DeleteRecipe removes a recipe through the admin service. Repaints
// only when something was actually deleted.
func (a *App) DeleteRecipe(id int) (bool, error) {
	deleted, err := a.admin.DeleteRecipe(id)
	if err != nil {
		return false, err
	}
	if deleted {
		a.rerender()
	}
	return deleted, nil
}

// rerender recomputes the current view under the lock.
func (a *App) rerender() {
	a.mu.Lock()
	a.render()
	a.mu.Unlock()
}

// render recomputes the active view's payload and hands it to the
// renderer. Callers hold the lock.
func (a *App) render() {
	p := domain.ViewPayload{
		Kind:    a.view.Kind,
		Query:   a.view.Query,
		Tab:     a.view.Tab,
		Session: a.sessions.Current(),
	}
	p.Favorites = make(map[int]bool)
	for _, id := range a.store.FavoriteIDs() {
		p.Favorites[id] = true
	}

	switch a.view.Kind {
	case domain.ViewCatalog:
		p.Recipes = a.store.All()
		p.Title = fmt.Sprintf("Recetas del Mundo (%d)", len(p.Recipes))
	case domain.ViewSearchResults:
		p.Recipes = a.catalog.Search(a.view.Query)
		p.Title = fmt.Sprintf("Resultados para: %q (%d)", a.view.Query, len(p.Recipes))
	case domain.ViewFavorites:
		p.Recipes = a.catalog.Favorites()
		p.Title = fmt.Sprintf("Mis Favoritas (%d)", len(p.Recipes))
	case domain.ViewProducts:
		p.Title = "Productos"
	case domain.ViewAdminPanel:
		p.Recipes = a.store.All()
		p.Title = "Panel de Administración"
	}

	a.renderer.Render(p)
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' {
			return false
		}
	}
	return true
}
