package catalog

// categoryEntry is one row of the fixed category table.
type categoryEntry struct {
	Icon string
	Name string
}

// categoryTable maps category tags from the data source to their
// display icon and name. Tags outside this table are expected input,
// not an error; they fall back to a generic icon and the raw tag.
var categoryTable = map[string]categoryEntry{
	"desayunos": {"🌅", "Desayunos"},
	"comidas":   {"🍽️", "Comidas"},
	"cenas":     {"🌙", "Cenas"},
	"postres":   {"🍰", "Postres"},
	"bebidas":   {"🥤", "Bebidas"},
	"botanas":   {"🍿", "Botanas"},
	"entradas":  {"🥗", "Entradas"},
	"rapidas":   {"⚡", "Rápidas"},
	"baratas":   {"💰", "Económicas"},
}

// categoryOrder fixes the listing order for forms and menus.
var categoryOrder = []string{
	"desayunos", "comidas", "cenas", "postres", "bebidas",
	"botanas", "entradas", "rapidas", "baratas",
}

// DefaultCategory is applied when a new recipe selects no category.
const DefaultCategory = "comidas"

// CategoryIcon returns the icon for a tag, or the generic fallback.
func CategoryIcon(tag string) string {
	if e, ok := categoryTable[tag]; ok {
		return e.Icon
	}
	return "🍴"
}

// CategoryName returns the display name for a tag, or the raw tag.
func CategoryName(tag string) string {
	if e, ok := categoryTable[tag]; ok {
		return e.Name
	}
	return tag
}

// Categories returns all known tags in display order.
func Categories() []string {
	return append([]string(nil), categoryOrder...)
}
