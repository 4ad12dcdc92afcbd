package command

import (
	"testing"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
)

func TestParse(t *testing.T) {
	p := NewParser(logger.New(logger.LevelOff, nil))

	tests := []struct {
		input string
		want  domain.CommandType
		args  []string
	}{
		{"recetas", domain.CommandShowCatalog, nil},
		{"HOME", domain.CommandShowCatalog, nil},
		{"buscar pasta", domain.CommandSearch, []string{"pasta"}},
		{"search pollo con mole", domain.CommandSearch, []string{"pollo con mole"}},
		{"buscar", domain.CommandSearch, nil},
		{"favoritos", domain.CommandShowFavorites, nil},
		{"fav 3", domain.CommandToggleFavorite, []string{"3"}},
		{"productos", domain.CommandShowProducts, nil},
		{"admin", domain.CommandShowAdmin, nil},
		{"tab usuarios", domain.CommandSwitchTab, []string{"usuarios"}},
		{"ver 7", domain.CommandShowRecipe, []string{"7"}},
		{"12", domain.CommandShowRecipe, []string{"12"}},
		{"login ana pw", domain.CommandLogin, []string{"ana", "pw"}},
		{"login ana pw admin llave", domain.CommandLogin, []string{"ana", "pw", "admin", "llave"}},
		{"logout", domain.CommandLogout, nil},
		{"add", domain.CommandAddRecipe, nil},
		{"edit 4", domain.CommandEditRecipe, []string{"4"}},
		{"editar 4", domain.CommandEditRecipe, []string{"4"}},
		{"delete 2", domain.CommandDeleteRecipe, []string{"2"}},
		{"eliminar 5", domain.CommandDeleteRecipe, []string{"5"}},
		{"reload", domain.CommandReload, nil},
		{"help", domain.CommandHelp, nil},
		{"quit", domain.CommandQuit, nil},
		{"", domain.CommandUnknown, nil},
		{"hazme la cena", domain.CommandUnknown, []string{"hazme la cena"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := p.Parse(tt.input)
			if got.Type != tt.want {
				t.Fatalf("Parse(%q).Type = %s, want %s", tt.input, got.Type, tt.want)
			}
			if len(got.Args) != len(tt.args) {
				t.Fatalf("Parse(%q).Args = %v, want %v", tt.input, got.Args, tt.args)
			}
			for i := range tt.args {
				if got.Args[i] != tt.args[i] {
					t.Fatalf("Parse(%q).Args = %v, want %v", tt.input, got.Args, tt.args)
				}
			}
		})
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	p := NewParser(logger.New(logger.LevelOff, nil))
	got := p.Parse("   buscar tacos   ")
	if got.Type != domain.CommandSearch || got.Arg(0) != "tacos" {
		t.Fatalf("got %s %v", got.Type, got.Args)
	}
}
