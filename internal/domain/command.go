package domain

// CommandType classifies a user action coming off the input surface.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandShowCatalog
	CommandSearch
	CommandShowFavorites
	CommandShowProducts
	CommandShowAdmin
	CommandSwitchTab
	CommandToggleFavorite
	CommandShowRecipe
	CommandLogin
	CommandLogout
	CommandAddRecipe
	CommandEditRecipe
	CommandDeleteRecipe
	CommandReload
	CommandHelp
	CommandQuit
)

// String returns a human-readable command name.
func (c CommandType) String() string {
	switch c {
	case CommandShowCatalog:
		return "show_catalog"
	case CommandSearch:
		return "search"
	case CommandShowFavorites:
		return "show_favorites"
	case CommandShowProducts:
		return "show_products"
	case CommandShowAdmin:
		return "show_admin"
	case CommandSwitchTab:
		return "switch_tab"
	case CommandToggleFavorite:
		return "toggle_favorite"
	case CommandShowRecipe:
		return "show_recipe"
	case CommandLogin:
		return "login"
	case CommandLogout:
		return "logout"
	case CommandAddRecipe:
		return "add_recipe"
	case CommandEditRecipe:
		return "edit_recipe"
	case CommandDeleteRecipe:
		return "delete_recipe"
	case CommandReload:
		return "reload"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a parsed user action. Args carries whatever the command
// needs: the search query, a recipe id, or login credentials.
type Command struct {
	Type CommandType
	Args []string
}

// Arg returns the i-th argument or "" when absent.
func (c Command) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}
