// Package command turns typed input lines into structured commands.
// This is the abstract command surface; key bindings and buttons in a
// different front end would produce the same domain.Command values.
package command

import (
	"regexp"
	"strings"

	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
)

// Parser matches input against keyword patterns. Spanish and English
// forms are both accepted; the catalog data is Spanish, its users are
// not always.
type Parser struct {
	log   *logger.Logger
	rules []rule
}

type rule struct {
	regex   *regexp.Regexp
	kind    domain.CommandType
	argIdxs []int // submatch indexes carried as command args
}

// NewParser creates the keyword parser.
func NewParser(log *logger.Logger) *Parser {
	p := &Parser{log: log}
	p.rules = []rule{
		{regexp.MustCompile(`(?i)^(home|inicio|catalogo|recetas|catalog)$`), domain.CommandShowCatalog, nil},
		{regexp.MustCompile(`(?i)^(buscar|search)\s+(.+)$`), domain.CommandSearch, []int{2}},
		{regexp.MustCompile(`(?i)^(buscar|search)$`), domain.CommandSearch, nil},
		{regexp.MustCompile(`(?i)^(favoritos|favorites|favs)$`), domain.CommandShowFavorites, nil},
		{regexp.MustCompile(`(?i)^(fav|favorito|favorite)\s+(\d+)$`), domain.CommandToggleFavorite, []int{2}},
		{regexp.MustCompile(`(?i)^(productos|products)$`), domain.CommandShowProducts, nil},
		{regexp.MustCompile(`(?i)^(admin|panel)$`), domain.CommandShowAdmin, nil},
		{regexp.MustCompile(`(?i)^tab\s+(\w+)$`), domain.CommandSwitchTab, []int{1}},
		{regexp.MustCompile(`(?i)^(ver|show|open)\s+(\d+)$`), domain.CommandShowRecipe, []int{2}},
		{regexp.MustCompile(`(?i)^login\s+(\S+)\s+(\S+)$`), domain.CommandLogin, []int{1, 2}},
		{regexp.MustCompile(`(?i)^login\s+(\S+)\s+(\S+)\s+(admin|user)$`), domain.CommandLogin, []int{1, 2, 3}},
		{regexp.MustCompile(`(?i)^login\s+(\S+)\s+(\S+)\s+(admin|user)\s+(\S+)$`), domain.CommandLogin, []int{1, 2, 3, 4}},
		{regexp.MustCompile(`(?i)^(logout|cerrar)$`), domain.CommandLogout, nil},
		{regexp.MustCompile(`(?i)^(add|nueva|new)$`), domain.CommandAddRecipe, nil},
		{regexp.MustCompile(`(?i)^(edit|editar)\s+(\d+)$`), domain.CommandEditRecipe, []int{2}},
		{regexp.MustCompile(`(?i)^(delete|del|eliminar)\s+(\d+)$`), domain.CommandDeleteRecipe, []int{2}},
		{regexp.MustCompile(`(?i)^(reload|recargar)$`), domain.CommandReload, nil},
		{regexp.MustCompile(`(?i)^(help|ayuda|\?)$`), domain.CommandHelp, nil},
		{regexp.MustCompile(`(?i)^(quit|exit|q)$`), domain.CommandQuit, nil},
	}
	return p
}

// Parse converts an input line into a command. Unrecognized input is
// CommandUnknown with the raw line as its only argument.
func (p *Parser) Parse(input string) domain.Command {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return domain.Command{Type: domain.CommandUnknown}
	}

	// A bare number opens that recipe, like clicking its card.
	if isDigits(trimmed) {
		return domain.Command{Type: domain.CommandShowRecipe, Args: []string{trimmed}}
	}

	for _, r := range p.rules {
		m := r.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		cmd := domain.Command{Type: r.kind}
		for _, idx := range r.argIdxs {
			cmd.Args = append(cmd.Args, strings.TrimSpace(m[idx]))
		}
		p.log.Debug("parsed %q as %s", trimmed, cmd.Type)
		return cmd
	}

	p.log.Debug("unrecognized input: %q", trimmed)
	return domain.Command{Type: domain.CommandUnknown, Args: []string{trimmed}}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
