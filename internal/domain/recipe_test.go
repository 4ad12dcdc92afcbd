package domain

import (
	"encoding/json"
	"testing"
)

func TestRecipeDecode(t *testing.T) {
	blob := `{
		"id": 3,
		"nombre": "Mole Poblano",
		"pais": "Mexico",
		"tiempo": 120,
		"categorias": ["comidas"],
		"ingredientes": ["chiles secos", {"cantidad": "90g", "nombre": "chocolate", "icono": "🍫"}],
		"instrucciones": ["Tostar", "Moler", "Guisar"],
		"calificacion": 4.9,
		"resenas": 210,
		"imagen": "img/mole.jpg"
	}`

	var r Recipe
	if err := json.Unmarshal([]byte(blob), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.ID != 3 || r.Name != "Mole Poblano" || r.Country != "Mexico" || r.TimeMinutes != 120 {
		t.Fatalf("decoded %+v", r)
	}
	if r.Rating != 4.9 || r.Reviews != 210 {
		t.Fatalf("rating/reviews = %v/%v", r.Rating, r.Reviews)
	}
	if len(r.Ingredients) != 2 || len(r.Instructions) != 3 {
		t.Fatalf("lists = %d ingredients, %d instructions", len(r.Ingredients), len(r.Instructions))
	}
}

func TestIngredientUnion(t *testing.T) {
	tests := []struct {
		name  string
		blob  string
		plain bool
		want  Ingredient
	}{
		{
			name:  "bare string",
			blob:  `"2 tomates"`,
			plain: true,
			want:  PlainIngredient("2 tomates"),
		},
		{
			name: "structured",
			blob: `{"cantidad":"500g","nombre":"arroz","icono":"🍚"}`,
			want: Ingredient{Name: "arroz", Quantity: "500g", Icon: "🍚"},
		},
		{
			name: "structured without icon",
			blob: `{"cantidad":"1","nombre":"cebolla"}`,
			want: Ingredient{Name: "cebolla", Quantity: "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ing Ingredient
			if err := json.Unmarshal([]byte(tt.blob), &ing); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if ing.Plain() != tt.plain {
				t.Fatalf("Plain() = %v, want %v", ing.Plain(), tt.plain)
			}
			if ing != tt.want {
				t.Fatalf("decoded %+v, want %+v", ing, tt.want)
			}

			// Writing back reproduces the incoming shape.
			out, err := json.Marshal(ing)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			var again Ingredient
			if err := json.Unmarshal(out, &again); err != nil {
				t.Fatalf("re-decode %s: %v", out, err)
			}
			if again != ing {
				t.Fatalf("round trip changed %+v to %+v", ing, again)
			}
		})
	}
}

func TestIngredientDisplay(t *testing.T) {
	tests := []struct {
		ing  Ingredient
		want string
	}{
		{PlainIngredient("sal al gusto"), "sal al gusto"},
		{Ingredient{Name: "arroz", Quantity: "500g", Icon: "🍚"}, "🍚 500g arroz"},
		{Ingredient{Name: "cebolla", Quantity: "1"}, "🥄 1 cebolla"},
		{Ingredient{Name: "perejil", Icon: "🌿"}, "🌿 perejil"},
	}
	for _, tt := range tests {
		if got := tt.ing.Display(); got != tt.want {
			t.Errorf("Display(%+v) = %q, want %q", tt.ing, got, tt.want)
		}
	}
}

func TestImageOrDefault(t *testing.T) {
	r := &Recipe{Image: "img/tacos.jpg"}
	if got := r.ImageOrDefault(); got != "img/tacos.jpg" {
		t.Fatalf("got %q", got)
	}
	r.Image = ""
	if got := r.ImageOrDefault(); got != DefaultImage {
		t.Fatalf("got %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	r := &Recipe{
		ID:         1,
		Name:       "Tacos",
		Categories: []string{"comidas"},
	}
	c := r.Clone()
	c.Categories[0] = "cenas"
	if r.Categories[0] != "comidas" {
		t.Fatal("clone shares the categories slice")
	}
}
