package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
)

const sampleJSON = `{
  "recetas": [
    {
      "id": 1,
      "nombre": "Tacos al Pastor",
      "pais": "Mexico",
      "tiempo": 45,
      "categorias": ["comidas", "rapidas"],
      "ingredientes": [
        "tortillas de maíz",
        {"cantidad": "500g", "nombre": "carne adobada", "icono": "🥩"}
      ],
      "instrucciones": ["Marinar la carne", "Asar", "Servir con piña"],
      "calificacion": 4.7,
      "resenas": 132,
      "imagen": "img/tacos.jpg"
    }
  ]
}`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestFileProviderFetch(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	p := NewFileProvider(writeFile(t, sampleJSON), log)

	payload, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(payload.Recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(payload.Recipes))
	}

	r := payload.Recipes[0]
	if r.Name != "Tacos al Pastor" || r.Country != "Mexico" || r.TimeMinutes != 45 {
		t.Fatalf("fields not decoded: %+v", r)
	}
	if len(r.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(r.Ingredients))
	}
	if !r.Ingredients[0].Plain() {
		t.Fatal("first ingredient should be the plain form")
	}
	if r.Ingredients[1].Plain() || r.Ingredients[1].Quantity != "500g" {
		t.Fatalf("second ingredient not structured: %+v", r.Ingredients[1])
	}
}

func TestFileProviderInvalidShape(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)

	tests := []struct {
		name    string
		content string
	}{
		{"wrong envelope key", `{"recipes": []}`},
		{"not an object", `[1, 2, 3]`},
		{"not json", `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewFileProvider(writeFile(t, tt.content), log)
			_, err := p.Fetch(context.Background())
			if !errors.Is(err, domain.ErrInvalidPayload) {
				t.Fatalf("expected ErrInvalidPayload, got %v", err)
			}
		})
	}
}

func TestFileProviderEmptyList(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	p := NewFileProvider(writeFile(t, `{"recetas": []}`), log)

	payload, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("an empty list is a valid catalog: %v", err)
	}
	if len(payload.Recipes) != 0 {
		t.Fatalf("expected empty list, got %d", len(payload.Recipes))
	}
}

func TestFileProviderMissingFile(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	p := NewFileProvider(filepath.Join(t.TempDir(), "nope.json"), log)

	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFileProviderCancelledContext(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	p := NewFileProvider(writeFile(t, sampleJSON), log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
