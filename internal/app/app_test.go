package app

import (
	"context"
	"errors"
	"testing"

	"github.com/davidlugo/recetasworld/internal/admin"
	"github.com/davidlugo/recetasworld/internal/catalog"
	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
	"github.com/davidlugo/recetasworld/internal/session"
	"github.com/davidlugo/recetasworld/internal/storage"
	"github.com/davidlugo/recetasworld/internal/store"
)

// fakeRenderer records every payload it was handed.
type fakeRenderer struct {
	payloads []domain.ViewPayload
}

func (f *fakeRenderer) Render(p domain.ViewPayload) {
	f.payloads = append(f.payloads, p)
}

func (f *fakeRenderer) last(t *testing.T) domain.ViewPayload {
	t.Helper()
	if len(f.payloads) == 0 {
		t.Fatal("nothing rendered")
	}
	return f.payloads[len(f.payloads)-1]
}

// fakeProvider returns a canned payload or error.
type fakeProvider struct {
	payload *domain.CatalogPayload
	err     error
}

func (f *fakeProvider) Fetch(ctx context.Context) (*domain.CatalogPayload, error) {
	return f.payload, f.err
}

// yesConfirmer approves everything; the confirmation flow itself is
// covered in the admin package tests.
type yesConfirmer struct{}

func (yesConfirmer) Confirm(string) bool { return true }

func setupApp(t *testing.T, prov domain.CatalogProvider) (*App, *fakeRenderer, *session.Manager) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	kv := storage.NewMemoryStore(log)
	st := store.New(kv, log)
	sessions := session.New(kv, log)
	cat := catalog.New(st, log)
	adm := admin.New(st, sessions, yesConfirmer{}, log)
	renderer := &fakeRenderer{}
	a := New(st, cat, sessions, adm, prov, renderer, log)
	return a, renderer, sessions
}

func goodProvider() *fakeProvider {
	return &fakeProvider{payload: &domain.CatalogPayload{
		Recipes: []domain.Recipe{
			{ID: 1, Name: "Tacos", Country: "Mexico", Categories: []string{"comidas"}},
			{ID: 2, Name: "Sushi", Country: "Japan", Categories: []string{"cenas"}},
		},
	}}
}

func loginAdmin(t *testing.T, a *App) {
	t.Helper()
	if _, err := a.Login("ana", "pw", domain.RoleAdmin, session.DefaultAdminKey); err != nil {
		t.Fatalf("admin login: %v", err)
	}
}

func TestInitialViewIsCatalog(t *testing.T) {
	a, _, _ := setupApp(t, goodProvider())
	if v := a.View(); v.Kind != domain.ViewCatalog {
		t.Fatalf("initial view = %s", v.Kind)
	}
}

func TestLoadCatalog(t *testing.T) {
	a, renderer, _ := setupApp(t, goodProvider())

	if err := a.LoadCatalog(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	p := renderer.last(t)
	if p.Kind != domain.ViewCatalog || len(p.Recipes) != 2 {
		t.Fatalf("rendered %s with %d recipes", p.Kind, len(p.Recipes))
	}
	if p.Title != "Recetas del Mundo (2)" {
		t.Fatalf("title = %q", p.Title)
	}
}

func TestLoadCatalogProviderFailure(t *testing.T) {
	a, renderer, _ := setupApp(t, &fakeProvider{err: errors.New("boom")})

	err := a.LoadCatalog(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}

	// The UI stays interactive: an empty catalog still gets rendered.
	p := renderer.last(t)
	if p.Kind != domain.ViewCatalog || len(p.Recipes) != 0 {
		t.Fatalf("rendered %s with %d recipes, want empty catalog", p.Kind, len(p.Recipes))
	}
}

func TestLoadCatalogMalformedPayload(t *testing.T) {
	a, renderer, _ := setupApp(t, &fakeProvider{payload: &domain.CatalogPayload{}})

	if err := a.LoadCatalog(context.Background()); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if p := renderer.last(t); len(p.Recipes) != 0 {
		t.Fatal("malformed payload was partially ingested")
	}
}

func TestSearch(t *testing.T) {
	a, renderer, _ := setupApp(t, goodProvider())
	a.LoadCatalog(context.Background())

	matches := a.Search("mexico")
	if len(matches) != 1 || matches[0].ID != 1 {
		t.Fatalf("search results = %v", matches)
	}
	if v := a.View(); v.Kind != domain.ViewSearchResults || v.Query != "mexico" {
		t.Fatalf("view = %+v", v)
	}
	if p := renderer.last(t); p.Title != `Resultados para: "mexico" (1)` {
		t.Fatalf("title = %q", p.Title)
	}
}

func TestSearchZeroMatchesIsValid(t *testing.T) {
	a, renderer, _ := setupApp(t, goodProvider())
	a.LoadCatalog(context.Background())

	if matches := a.Search("nada"); len(matches) != 0 {
		t.Fatalf("expected zero matches, got %d", len(matches))
	}
	if v := a.View(); v.Kind != domain.ViewSearchResults {
		t.Fatalf("zero matches should still enter search view, got %s", v.Kind)
	}
	if p := renderer.last(t); len(p.Recipes) != 0 {
		t.Fatal("payload should carry zero recipes")
	}
}

func TestSearchBlankShowsCatalog(t *testing.T) {
	a, _, _ := setupApp(t, goodProvider())
	a.LoadCatalog(context.Background())
	a.Search("sushi")

	matches := a.Search("   ")
	if len(matches) != 2 {
		t.Fatalf("blank search returned %d recipes", len(matches))
	}
	if v := a.View(); v.Kind != domain.ViewCatalog {
		t.Fatalf("blank search left view at %s", v.Kind)
	}
}

func TestNavigateAdminDenied(t *testing.T) {
	a, renderer, _ := setupApp(t, goodProvider())
	a.LoadCatalog(context.Background())
	before := len(renderer.payloads)

	err := a.Navigate(domain.ViewAdminPanel)
	if !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if v := a.View(); v.Kind != domain.ViewCatalog {
		t.Fatalf("refused navigation changed view to %s", v.Kind)
	}
	if len(renderer.payloads) != before {
		t.Fatal("refused navigation triggered a render")
	}
}

func TestNavigateAdminAsNonAdminUser(t *testing.T) {
	a, _, _ := setupApp(t, goodProvider())
	if _, err := a.Login("ana", "pw", domain.RoleUser, ""); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := a.Navigate(domain.ViewAdminPanel); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("user role entered admin panel: %v", err)
	}
}

func TestNavigateAdminAsAdmin(t *testing.T) {
	a, renderer, _ := setupApp(t, goodProvider())
	a.LoadCatalog(context.Background())
	loginAdmin(t, a)

	if err := a.Navigate(domain.ViewAdminPanel); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	v := a.View()
	if v.Kind != domain.ViewAdminPanel || v.Tab != domain.TabRecipes {
		t.Fatalf("view = %+v", v)
	}
	if p := renderer.last(t); p.Tab != domain.TabRecipes {
		t.Fatalf("payload tab = %s", p.Tab)
	}
}

func TestSwitchAdminTab(t *testing.T) {
	a, _, _ := setupApp(t, goodProvider())
	loginAdmin(t, a)

	// Outside the panel the tab command does nothing.
	applied, err := a.SwitchAdminTab(domain.TabUsers)
	if err != nil || applied {
		t.Fatalf("switch outside panel = (%v, %v)", applied, err)
	}

	a.Navigate(domain.ViewAdminPanel)
	applied, err = a.SwitchAdminTab(domain.TabUsers)
	if err != nil || !applied {
		t.Fatalf("switch = (%v, %v)", applied, err)
	}
	v := a.View()
	if v.Kind != domain.ViewAdminPanel {
		t.Fatalf("tab switch changed outer view to %s", v.Kind)
	}
	if v.Tab != domain.TabUsers {
		t.Fatalf("tab = %s", v.Tab)
	}

	// Unknown tabs are ignored.
	if applied, _ := a.SwitchAdminTab("nope"); applied {
		t.Fatal("invalid tab applied")
	}
}

func TestSwitchAdminTabDenied(t *testing.T) {
	a, _, _ := setupApp(t, goodProvider())
	if _, err := a.SwitchAdminTab(domain.TabUsers); !errors.Is(err, domain.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestToggleFavorite(t *testing.T) {
	a, renderer, _ := setupApp(t, goodProvider())
	a.LoadCatalog(context.Background())

	state, err := a.ToggleFavorite(2)
	if err != nil || !state {
		t.Fatalf("toggle = (%v, %v)", state, err)
	}
	if p := renderer.last(t); !p.Favorites[2] {
		t.Fatal("payload favorites missing toggled id")
	}

	if _, err := a.ToggleFavorite(99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFavoritesView(t *testing.T) {
	a, renderer, _ := setupApp(t, goodProvider())
	a.LoadCatalog(context.Background())
	a.ToggleFavorite(2)

	a.Navigate(domain.ViewFavorites)
	p := renderer.last(t)
	if len(p.Recipes) != 1 || p.Recipes[0].ID != 2 {
		t.Fatalf("favorites view recipes = %v", p.Recipes)
	}

	a.ToggleFavorite(2)
	p = renderer.last(t)
	if len(p.Recipes) != 0 {
		t.Fatal("second toggle should empty the favorites view")
	}
}

func TestLogoutClosesAdminPanel(t *testing.T) {
	a, _, _ := setupApp(t, goodProvider())
	loginAdmin(t, a)
	a.Navigate(domain.ViewAdminPanel)

	a.Logout()
	if v := a.View(); v.Kind != domain.ViewCatalog {
		t.Fatalf("view after logout = %s", v.Kind)
	}
}

func TestCreateAndDeleteRecipe(t *testing.T) {
	a, renderer, _ := setupApp(t, goodProvider())
	a.LoadCatalog(context.Background())
	loginAdmin(t, a)

	id, err := a.CreateRecipe(admin.RecipeForm{
		Name:         "Pozole",
		Ingredients:  "maíz\ncarne",
		Instructions: "cocer\nservir",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p := renderer.last(t); len(p.Recipes) != 3 {
		t.Fatalf("catalog not re-rendered after create: %d recipes", len(p.Recipes))
	}

	deleted, err := a.DeleteRecipe(id)
	if err != nil || !deleted {
		t.Fatalf("delete = (%v, %v)", deleted, err)
	}
	if _, ok := a.FindRecipe(id); ok {
		t.Fatal("recipe findable after delete")
	}
	if p := renderer.last(t); len(p.Recipes) != 2 {
		t.Fatalf("catalog not re-rendered after delete: %d recipes", len(p.Recipes))
	}
}

func TestCreateRecipeValidationLeavesStateAlone(t *testing.T) {
	a, renderer, _ := setupApp(t, goodProvider())
	a.LoadCatalog(context.Background())
	loginAdmin(t, a)
	before := len(renderer.payloads)

	if _, err := a.CreateRecipe(admin.RecipeForm{}); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(renderer.payloads) != before {
		t.Fatal("failed create triggered a render")
	}
}
