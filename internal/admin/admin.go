// Package admin implements the role-gated recipe mutations. Everything
// here is session-local: nothing is ever written back to the data
// provider, so a restart discards all of it. That is intentional.
package admin

import (
	"strconv"
	"strings"

	"github.com/davidlugo/recetasworld/internal/catalog"
	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
	"github.com/davidlugo/recetasworld/internal/session"
	"github.com/davidlugo/recetasworld/internal/store"
)

// Defaults applied to recipe forms with omitted optional fields.
const (
	DefaultCountry     = "Internacional"
	DefaultTimeMinutes = 30
)

// RecipeForm is the raw admin-form input for creating or editing a
// recipe. Ingredients and Instructions are newline-delimited text.
type RecipeForm struct {
	Name         string
	Country      string
	Time         string
	Categories   []string
	Ingredients  string
	Instructions string
	Image        string
}

// Service performs the gated mutations.
type Service struct {
	store    *store.Store
	sessions *session.Manager
	confirm  domain.Confirmer
	log      *logger.Logger
}

// New creates the admin service. The confirmer guards deletions; pass
// an always-yes implementation where no interaction is possible.
func New(st *store.Store, sm *session.Manager, confirm domain.Confirmer, log *logger.Logger) *Service {
	return &Service{store: st, sessions: sm, confirm: confirm, log: log}
}

// CreateRecipe validates the form and adds the recipe. Returns the new
// id. On a validation failure nothing has been stored.
func (s *Service) CreateRecipe(form RecipeForm) (int, error) {
	if !s.sessions.IsAdmin() {
		return 0, domain.ErrAccessDenied
	}
	r, err := buildRecipe(form)
	if err != nil {
		return 0, err
	}
	return s.store.Add(r), nil
}

// UpdateRecipe validates the form and replaces the recipe's fields.
// The id must exist; the recipe is untouched when validation fails.
func (s *Service) UpdateRecipe(id int, form RecipeForm) error {
	if !s.sessions.IsAdmin() {
		return domain.ErrAccessDenied
	}
	r, err := buildRecipe(form)
	if err != nil {
		return err
	}
	patch := domain.RecipePatch{
		Name:         &r.Name,
		Country:      &r.Country,
		TimeMinutes:  &r.TimeMinutes,
		Categories:   r.Categories,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
	if r.Image != domain.DefaultImage {
		patch.Image = &r.Image
	}
	if !s.store.Update(id, patch) {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe after external confirmation. Deleting
// an absent id is a reported failure, never a crash; a declined
// confirmation leaves everything as it was and returns false with no
// error. Favorite entries pointing at the deleted id stay behind and
// are filtered at render time.
func (s *Service) DeleteRecipe(id int) (bool, error) {
	if !s.sessions.IsAdmin() {
		return false, domain.ErrAccessDenied
	}
	r, ok := s.store.Find(id)
	if !ok {
		return false, domain.ErrNotFound
	}
	if !s.confirm.Confirm("¿Eliminar la receta \"" + r.Name + "\"?") {
		s.log.Debug("delete of recipe %d declined", id)
		return false, nil
	}
	if !s.store.Remove(id) {
		return false, domain.ErrNotFound
	}
	return true, nil
}

// buildRecipe turns a form into a recipe, applying defaults and
// collecting every missing required field into one ValidationError.
func buildRecipe(form RecipeForm) (*domain.Recipe, error) {
	var missing []string

	name := strings.TrimSpace(form.Name)
	if name == "" {
		missing = append(missing, "name")
	}
	ingredients := splitLines(form.Ingredients)
	if len(ingredients) == 0 {
		missing = append(missing, "ingredients")
	}
	instructions := splitLines(form.Instructions)
	if len(instructions) == 0 {
		missing = append(missing, "instructions")
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Fields: missing}
	}

	country := strings.TrimSpace(form.Country)
	if country == "" {
		country = DefaultCountry
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(form.Time))
	if err != nil || minutes < 0 {
		minutes = DefaultTimeMinutes
	}
	categories := form.Categories
	if len(categories) == 0 {
		categories = []string{catalog.DefaultCategory}
	}
	image := strings.TrimSpace(form.Image)
	if image == "" {
		image = domain.DefaultImage
	}

	r := &domain.Recipe{
		Name:        name,
		Country:     country,
		TimeMinutes: minutes,
		Categories:  categories,
		Image:       image,
	}
	for _, line := range ingredients {
		r.Ingredients = append(r.Ingredients, domain.PlainIngredient(line))
	}
	r.Instructions = instructions
	return r, nil
}

// splitLines splits newline-delimited text, trimming each line and
// dropping blank ones.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}
