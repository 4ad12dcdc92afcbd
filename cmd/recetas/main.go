// RecetasWorld — a terminal recipe catalog browser.
//
// Usage:
//
//	recetas [-verbose] [-quiet] [-ephemeral] [-no-watch]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/davidlugo/recetasworld/internal/admin"
	"github.com/davidlugo/recetasworld/internal/app"
	"github.com/davidlugo/recetasworld/internal/catalog"
	"github.com/davidlugo/recetasworld/internal/command"
	"github.com/davidlugo/recetasworld/internal/display"
	"github.com/davidlugo/recetasworld/internal/domain"
	"github.com/davidlugo/recetasworld/internal/logger"
	"github.com/davidlugo/recetasworld/internal/provider"
	"github.com/davidlugo/recetasworld/internal/session"
	"github.com/davidlugo/recetasworld/internal/storage"
	"github.com/davidlugo/recetasworld/internal/store"
)

// config is the environment-driven part of the setup. Flags cover the
// per-run switches; these settle per installation.
type config struct {
	DataFile string `env:"RECETAS_DATA_FILE" envDefault:"data/recipes.json"`
	DataURL  string `env:"RECETAS_DATA_URL"`
	StateDir string `env:"RECETAS_STATE_DIR" envDefault:".recetas-state"`
	AdminKey string `env:"RECETAS_ADMIN_KEY"`
}

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".recetas-logs/recetas.log", "file to write logs to (use \"stderr\" to log to console)")
	ephemeral := flag.Bool("ephemeral", false, "keep favorites and session in memory only")
	noWatch := flag.Bool("no-watch", false, "disable live reload when the data file changes")
	flag.Parse()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: parsing environment: %v\n", err)
		os.Exit(1)
	}

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		f, err := openLogFile(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Third-party libraries that grab the default log package land in
	// the same place instead of the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persistent store: BadgerDB unless running ephemeral. A broken
	// state dir degrades to memory; favorites just won't survive.
	var kv domain.KeyValue
	var badgerStore *storage.BadgerStore
	if *ephemeral {
		kv = storage.NewMemoryStore(log)
	} else {
		bs, err := storage.OpenBadger(cfg.StateDir, log)
		if err != nil {
			log.Error("state db unavailable, favorites will not persist: %v", err)
			kv = storage.NewMemoryStore(log)
		} else {
			badgerStore = bs
			kv = bs
		}
	}
	if badgerStore != nil {
		defer badgerStore.Close()
	}

	// Wire collaborators.
	st := store.New(kv, log)
	st.RestoreFavorites()

	sessions := session.New(kv, log, session.WithAdminKey(cfg.AdminKey))
	sessions.Restore()

	cat := catalog.New(st, log)
	ui := display.NewUI()
	parser := command.NewParser(log)

	var prov domain.CatalogProvider
	if cfg.DataURL != "" {
		prov = provider.NewHTTPProvider(cfg.DataURL, log)
	} else {
		prov = provider.NewFileProvider(cfg.DataFile, log)
	}

	confirm := &replConfirmer{ui: ui}
	adm := admin.New(st, sessions, confirm, log)
	application := app.New(st, cat, sessions, adm, prov, ui, log)

	// Live reload on data-file changes (file provider only).
	if fp, ok := prov.(*provider.FileProvider); ok && !*noWatch {
		watcher := provider.NewWatcher(fp.Path(), func(ctx context.Context) {
			if err := application.LoadCatalog(ctx); err != nil {
				ui.PrintUrgent("No se pudo recargar el catálogo")
			}
		}, log)
		go watcher.Run(ctx)
	}

	repl := &repl{
		app:      application,
		sessions: sessions,
		parser:   parser,
		ui:       ui,
		log:      log,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Escribe 'help' para ver los comandos, 'quit' para salir."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()

		// The initial load is the only asynchronous operation. A
		// failure leaves an empty catalog; the UI stays interactive.
		if err := application.LoadCatalog(ctx); err != nil {
			ui.PrintUrgent("No se pudo cargar el catálogo — revisa la fuente de datos")
		}

		repl.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

// openLogFile opens the log file for appending, creating its directory
// first.
func openLogFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log dir: %w", err)
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// repl reads parsed commands and drives the application.
type repl struct {
	app      *app.App
	sessions *session.Manager
	parser   *command.Parser
	ui       *display.UI
	log      *logger.Logger
}

func (r *repl) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case line := <-r.ui.InputChan():
			if !r.handle(ctx, r.parser.Parse(line)) {
				return
			}
		}
	}
}

// handle executes one command. Returns false to quit.
func (r *repl) handle(ctx context.Context, cmd domain.Command) bool {
	switch cmd.Type {
	case domain.CommandQuit:
		return false

	case domain.CommandHelp:
		r.printHelp()

	case domain.CommandShowCatalog:
		r.app.Navigate(domain.ViewCatalog)

	case domain.CommandSearch:
		r.app.Search(cmd.Arg(0))

	case domain.CommandShowFavorites:
		r.app.Navigate(domain.ViewFavorites)

	case domain.CommandShowProducts:
		r.app.Navigate(domain.ViewProducts)

	case domain.CommandShowAdmin:
		if err := r.app.Navigate(domain.ViewAdminPanel); err != nil {
			r.ui.PrintUrgent("Acceso denegado — inicia sesión como admin")
		}

	case domain.CommandSwitchTab:
		tab := normalizeTab(cmd.Arg(0))
		applied, err := r.app.SwitchAdminTab(tab)
		if err != nil {
			r.ui.PrintUrgent("Acceso denegado — inicia sesión como admin")
		} else if !applied {
			r.ui.PrintHint("Abre el panel de administración primero ('admin')")
		}

	case domain.CommandToggleFavorite:
		id, _ := strconv.Atoi(cmd.Arg(0))
		state, err := r.app.ToggleFavorite(id)
		if err != nil {
			r.ui.PrintUrgent("Receta no encontrada")
		} else if state {
			r.ui.PrintInfo("Agregada a favoritas ❤")
		} else {
			r.ui.PrintInfo("Quitada de favoritas")
		}

	case domain.CommandShowRecipe:
		r.showRecipe(cmd.Arg(0))

	case domain.CommandLogin:
		r.login(cmd)

	case domain.CommandLogout:
		r.app.Logout()
		r.ui.PrintInfo("Sesión cerrada")

	case domain.CommandAddRecipe:
		r.addRecipe()

	case domain.CommandEditRecipe:
		r.editRecipe(cmd.Arg(0))

	case domain.CommandDeleteRecipe:
		id, _ := strconv.Atoi(cmd.Arg(0))
		deleted, err := r.app.DeleteRecipe(id)
		switch {
		case err == domain.ErrAccessDenied:
			r.ui.PrintUrgent("Acceso denegado — inicia sesión como admin")
		case err == domain.ErrNotFound:
			r.ui.PrintUrgent("Receta no encontrada")
		case deleted:
			r.ui.PrintInfo("Receta eliminada")
		default:
			r.ui.PrintHint("Eliminación cancelada")
		}

	case domain.CommandReload:
		if err := r.app.LoadCatalog(ctx); err != nil {
			r.ui.PrintUrgent("No se pudo recargar el catálogo")
		}

	default:
		r.ui.PrintHint("No entendí — escribe 'help' para ver los comandos")
	}
	return true
}

func (r *repl) showRecipe(arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		r.ui.PrintUrgent("Receta no encontrada")
		return
	}
	recipe, ok := r.app.FindRecipe(id)
	if !ok {
		r.ui.PrintUrgent("Receta no encontrada")
		return
	}
	r.ui.PrintRecipe(recipe, r.app.IsFavorite(id))
}

func (r *repl) login(cmd domain.Command) {
	role := domain.Role(cmd.Arg(2))
	if cmd.Arg(2) == "" {
		role = domain.RoleUser
	}
	sess, err := r.app.Login(cmd.Arg(0), cmd.Arg(1), role, cmd.Arg(3))
	switch err {
	case nil:
		r.ui.PrintInfo(fmt.Sprintf("Hola, %s (%s)", sess.Username, sess.Role))
	case domain.ErrMissingFields:
		r.ui.PrintUrgent("Usuario y contraseña son obligatorios")
	case domain.ErrInvalidAdminKey:
		r.ui.PrintUrgent("Clave de administrador incorrecta")
	default:
		r.ui.PrintUrgent("No se pudo iniciar sesión")
	}
}

// addRecipe walks the admin form field by field. A '.' line ends the
// multi-line fields, an empty answer accepts the default.
func (r *repl) addRecipe() {
	if !r.sessions.IsAdmin() {
		r.ui.PrintUrgent("Acceso denegado — inicia sesión como admin")
		return
	}

	form := admin.RecipeForm{
		Name:    r.ask("Nombre de la receta:"),
		Country: r.ask("País (vacío = Internacional):"),
		Time:    r.ask("Tiempo en minutos (vacío = 30):"),
	}
	cats := r.ask("Categorías, separadas por espacio (vacío = comidas):")
	if strings.TrimSpace(cats) != "" {
		form.Categories = strings.Fields(cats)
	}
	form.Ingredients = r.askMultiline("Ingredientes, uno por línea ('.' para terminar):")
	form.Instructions = r.askMultiline("Instrucciones, una por línea ('.' para terminar):")

	id, err := r.app.CreateRecipe(form)
	if err != nil {
		r.ui.PrintUrgent("Faltan campos: " + err.Error())
		return
	}
	r.ui.PrintInfo(fmt.Sprintf("Receta creada con id %d", id))
}

// editRecipe re-prompts the full form and replaces the recipe's fields.
// Blank answers keep the current scalar values; the list fields are
// re-entered from scratch.
func (r *repl) editRecipe(arg string) {
	if !r.sessions.IsAdmin() {
		r.ui.PrintUrgent("Acceso denegado — inicia sesión como admin")
		return
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		r.ui.PrintUrgent("Receta no encontrada")
		return
	}
	current, ok := r.app.FindRecipe(id)
	if !ok {
		r.ui.PrintUrgent("Receta no encontrada")
		return
	}

	form := admin.RecipeForm{
		Name:    r.ask(fmt.Sprintf("Nombre (vacío = %q):", current.Name)),
		Country: r.ask(fmt.Sprintf("País (vacío = %q):", current.Country)),
		Time:    r.ask(fmt.Sprintf("Tiempo en minutos (vacío = %d):", current.TimeMinutes)),
		Image:   current.Image,
	}
	if form.Name == "" {
		form.Name = current.Name
	}
	if form.Country == "" {
		form.Country = current.Country
	}
	if form.Time == "" {
		form.Time = strconv.Itoa(current.TimeMinutes)
	}
	cats := r.ask(fmt.Sprintf("Categorías, separadas por espacio (vacío = %s):", strings.Join(current.Categories, " ")))
	if strings.TrimSpace(cats) != "" {
		form.Categories = strings.Fields(cats)
	} else {
		form.Categories = current.Categories
	}
	form.Ingredients = r.askMultiline("Ingredientes, uno por línea ('.' para terminar):")
	form.Instructions = r.askMultiline("Instrucciones, una por línea ('.' para terminar):")

	if err := r.app.UpdateRecipe(id, form); err != nil {
		r.ui.PrintUrgent("Faltan campos: " + err.Error())
		return
	}
	r.ui.PrintInfo(fmt.Sprintf("Receta %d actualizada", id))
}

func (r *repl) ask(prompt string) string {
	r.ui.PrintHint(prompt)
	return strings.TrimSpace(<-r.ui.InputChan())
}

func (r *repl) askMultiline(prompt string) string {
	r.ui.PrintHint(prompt)
	var lines []string
	for {
		line := strings.TrimSpace(<-r.ui.InputChan())
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (r *repl) printHelp() {
	r.ui.PrintInfo("Comandos:")
	r.ui.PrintHint("recetas                 ver el catálogo")
	r.ui.PrintHint("buscar <texto>          buscar por nombre, país o categoría")
	r.ui.PrintHint("favoritos               ver tus favoritas")
	r.ui.PrintHint("fav <id>                marcar/quitar favorita")
	r.ui.PrintHint("ver <id> (o solo <id>)  abrir una receta")
	r.ui.PrintHint("login <usuario> <clave> [admin <llave>]")
	r.ui.PrintHint("logout                  cerrar sesión")
	r.ui.PrintHint("admin                   panel de administración")
	r.ui.PrintHint("tab <recetas|usuarios|productos>")
	r.ui.PrintHint("add / edit <id> / delete <id>   crear, editar o eliminar (solo admin)")
	r.ui.PrintHint("reload                  recargar el catálogo")
	r.ui.PrintHint("quit                    salir")
}

// normalizeTab accepts Spanish and English tab names.
func normalizeTab(name string) domain.AdminTab {
	switch strings.ToLower(name) {
	case "recetas", "recipes":
		return domain.TabRecipes
	case "usuarios", "users":
		return domain.TabUsers
	case "productos", "products":
		return domain.TabProducts
	default:
		return domain.AdminTab(strings.ToLower(name))
	}
}

// replConfirmer asks for confirmation through the UI and reads the
// answer from the next input line. Only ever called from the REPL
// goroutine, so it never races with the main loop for input.
type replConfirmer struct {
	ui *display.UI
}

var _ domain.Confirmer = (*replConfirmer)(nil)

func (c *replConfirmer) Confirm(prompt string) bool {
	c.ui.PrintInfo(prompt + " (s/n)")
	answer := strings.ToLower(strings.TrimSpace(<-c.ui.InputChan()))
	return answer == "s" || answer == "si" || answer == "sí" || answer == "y" || answer == "yes"
}
