// Package domain defines the core types and interfaces for the recipe
// catalog. All other packages depend on domain; domain depends on nothing.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultImage is the placeholder shown when a recipe has no image or
// the referenced one is broken.
const DefaultImage = "img/default-recipe.svg"

// Recipe represents a single catalog entry. JSON field names follow the
// data source format, which predates this program.
type Recipe struct {
	ID           int          `json:"id"`
	Name         string       `json:"nombre"`
	Country      string       `json:"pais"`
	TimeMinutes  int          `json:"tiempo"`
	Categories   []string     `json:"categorias"`
	Ingredients  []Ingredient `json:"ingredientes"`
	Instructions []string     `json:"instrucciones"`
	Rating       float64      `json:"calificacion"`
	Reviews      int          `json:"resenas"`
	Image        string       `json:"imagen"`
}

// ImageOrDefault returns the recipe image, falling back to the placeholder.
func (r *Recipe) ImageOrDefault() string {
	if r.Image == "" {
		return DefaultImage
	}
	return r.Image
}

// Clone returns a deep copy. Mutating operations work on copies so that
// a failed validation never leaves a half-patched recipe behind.
func (r *Recipe) Clone() *Recipe {
	out := *r
	out.Categories = append([]string(nil), r.Categories...)
	out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	out.Instructions = append([]string(nil), r.Instructions...)
	return &out
}

// Ingredient is either a plain text line or a structured entry with a
// quantity and an icon. The data source mixes both forms freely, so the
// JSON round-trip preserves whichever one was supplied.
type Ingredient struct {
	Name     string `json:"nombre"`
	Quantity string `json:"cantidad,omitempty"`
	Icon     string `json:"icono,omitempty"`

	// plain is true when the ingredient was supplied as a bare string.
	plain bool
}

// PlainIngredient wraps a bare string line as an ingredient.
func PlainIngredient(text string) Ingredient {
	return Ingredient{Name: text, plain: true}
}

// Plain reports whether the ingredient was supplied as a bare string.
func (i Ingredient) Plain() bool { return i.plain }

// Display returns the ingredient as a single human-readable line.
func (i Ingredient) Display() string {
	if i.plain {
		return i.Name
	}
	icon := i.Icon
	if icon == "" {
		icon = "🥄"
	}
	if i.Quantity == "" {
		return fmt.Sprintf("%s %s", icon, i.Name)
	}
	return fmt.Sprintf("%s %s %s", icon, i.Quantity, i.Name)
}

// UnmarshalJSON accepts both `"2 tomates"` and
// `{"cantidad":"2","nombre":"tomates","icono":"🍅"}`.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*i = PlainIngredient(s)
		return nil
	}

	type structured Ingredient
	var st structured
	if err := json.Unmarshal(trimmed, &st); err != nil {
		return err
	}
	*i = Ingredient(st)
	return nil
}

// MarshalJSON writes back the same shape the ingredient came in with.
func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.plain {
		return json.Marshal(i.Name)
	}
	type structured Ingredient
	return json.Marshal(structured(i))
}

// RecipePatch carries the fields of a partial update. Nil fields are
// left untouched by Store.Update.
type RecipePatch struct {
	Name         *string
	Country      *string
	TimeMinutes  *int
	Categories   []string
	Ingredients  []Ingredient
	Instructions []string
	Rating       *float64
	Reviews      *int
	Image        *string
}

// CatalogPayload is the envelope the data provider returns. Any payload
// without the recipe list is rejected whole; there is no partial ingestion.
type CatalogPayload struct {
	Recipes []Recipe `json:"recetas"`
}
