// Package display renders the catalog in the terminal using Bubble Tea.
//
// The [UI] type keeps the active view's card grid on screen with an
// input prompt at the bottom. One-off output (recipe details, errors,
// confirmations) is printed above the rendered area via
// Program.Println so concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/davidlugo/recetasworld/internal/catalog"
	"github.com/davidlugo/recetasworld/internal/domain"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	// BannerStyle — muted slate for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#27272a")).
			Foreground(lipgloss.Color("#a1a1aa"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	heartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#27272a")).
			Background(lipgloss.Color("#bae6fd")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))
)

// ── UI ───────────────────────────────────────────────────────────

// Compile-time interface check.
var _ domain.Renderer = (*UI)(nil)

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely
// call [UI.Render], the print helpers, and read from [UI.InputChan]
// at any time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
}

// NewUI creates the display. Call Run() to start.
func NewUI() *UI {
	return &UI{
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// Render swaps in a new view payload. Thread-safe; the payload is
// treated as read-only.
func (u *UI) Render(payload domain.ViewPayload) {
	if u.program == nil {
		return
	}
	u.program.Send(payloadMsg{payload})
}

// Println prints a line above the prompt. Thread-safe.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// PrintInfo prints a regular informational line.
func (u *UI) PrintInfo(text string) {
	u.Println(primaryStyle.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(metaStyle.Render("  " + text))
}

// PrintUrgent prints an error or access-denied line.
func (u *UI) PrintUrgent(text string) {
	u.Println(urgentStyle.Render("  " + text))
}

// PrintRecipe prints a full recipe detail block into the scrollback,
// the terminal's stand-in for the card detail modal.
func (u *UI) PrintRecipe(r *domain.Recipe, favorite bool) {
	u.Println("")
	heart := ""
	if favorite {
		heart = " " + heartStyle.Render("❤")
	}
	u.Println(titleStyle.Render("  "+r.Name) + heart)
	u.PrintHint(fmt.Sprintf("%s · %d min · %s %.1f (%d reseñas)",
		r.Country, r.TimeMinutes, renderStars(r.Rating), r.Rating, r.Reviews))
	u.PrintHint("imagen: " + r.ImageOrDefault())

	var badges []string
	for _, c := range r.Categories {
		badges = append(badges, catalog.CategoryIcon(c)+" "+catalog.CategoryName(c))
	}
	u.Println(badgeStyle.Render("  " + strings.Join(badges, "  ")))

	u.Println(primaryStyle.Render("  Ingredientes:"))
	for _, ing := range r.Ingredients {
		u.Println(primaryStyle.Render("   · " + ing.Display()))
	}
	u.Println(primaryStyle.Render("  Instrucciones:"))
	for i, inst := range r.Instructions {
		u.Println(primaryStyle.Render(fmt.Sprintf("   %d. %s", i+1, inst)))
	}
	u.Println("")
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// Plain-text prompt: styled prompts add invisible ANSI bytes that
	// break textinput's width math on long input.
	ti.Prompt = "recetas> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = echoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 300
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		input:   ti,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		echoFn: func(v string) {
			u.Println(promptStyle.Render("recetas") + metaStyle.Render("> ") + echoStyle.Render(v))
		},
	}

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type payloadMsg struct {
	payload domain.ViewPayload
}

type model struct {
	payload domain.ViewPayload
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string)
	width   int
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, signalReady(m.readyCh))
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				echoFn := m.echoFn
				// Runs outside Update so it won't deadlock on msgs.
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		const promptLen = 9 // "recetas> "
		if msg.Width > promptLen {
			m.input.Width = msg.Width - promptLen
		}
		return m, nil

	case payloadMsg:
		m.payload = msg.payload
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.renderStatusBar())
	b.WriteByte('\n')

	if m.payload.Title != "" {
		b.WriteString(titleStyle.Render(" " + m.payload.Title))
		b.WriteByte('\n')
	}

	switch m.payload.Kind {
	case domain.ViewAdminPanel:
		b.WriteString(m.renderAdmin())
	case domain.ViewProducts:
		b.WriteString(emptyStyle.Render("  Productos próximamente"))
		b.WriteByte('\n')
	default:
		b.WriteString(m.renderCards())
	}

	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

// renderStatusBar paints the session line across the top.
func (m model) renderStatusBar() string {
	left := " RecetasWorld"
	right := "sin sesión · escribe 'login <usuario> <clave>' "
	if s := m.payload.Session; s != nil {
		right = fmt.Sprintf("%s (%s) ", s.Username, s.Role)
	}

	w := m.width
	if w <= 0 {
		w = 80
	}
	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return barStyle.Width(w).Render(left + strings.Repeat(" ", gap) + right)
}

// renderCards paints the recipe grid, one card per line pair.
func (m model) renderCards() string {
	if len(m.payload.Recipes) == 0 {
		switch m.payload.Kind {
		case domain.ViewSearchResults:
			return emptyStyle.Render("  No se encontraron recetas") + "\n"
		case domain.ViewFavorites:
			return emptyStyle.Render("  Aún no tienes favoritas") + "\n"
		default:
			return emptyStyle.Render("  No hay recetas disponibles") + "\n"
		}
	}

	var b strings.Builder
	for _, r := range m.payload.Recipes {
		heart := "  "
		if m.payload.Favorites[r.ID] {
			heart = heartStyle.Render("❤ ")
		}
		b.WriteString(fmt.Sprintf(" %s%s %s\n",
			heart,
			metaStyle.Render(fmt.Sprintf("%3d.", r.ID)),
			nameStyle.Render(r.Name),
		))

		var badges []string
		for _, c := range r.Categories {
			badges = append(badges, catalog.CategoryIcon(c)+" "+catalog.CategoryName(c))
		}
		b.WriteString(fmt.Sprintf("       %s\n",
			metaStyle.Render(fmt.Sprintf("%s · ⏱ %d min · ", r.Country, r.TimeMinutes))+
				starStyle.Render(renderStars(r.Rating))+
				metaStyle.Render(fmt.Sprintf(" %.1f (%d) · ", r.Rating, r.Reviews))+
				badgeStyle.Render(strings.Join(badges, " ")),
		))
	}
	return b.String()
}

// renderAdmin paints the admin panel with its tab strip.
func (m model) renderAdmin() string {
	var b strings.Builder

	tabs := []struct {
		tab   domain.AdminTab
		label string
	}{
		{domain.TabRecipes, "Recetas"},
		{domain.TabUsers, "Usuarios"},
		{domain.TabProducts, "Productos"},
	}
	var strip []string
	for _, t := range tabs {
		if t.tab == m.payload.Tab {
			strip = append(strip, tabActiveStyle.Render(t.label))
		} else {
			strip = append(strip, tabStyle.Render(t.label))
		}
	}
	b.WriteString(" " + strings.Join(strip, " ") + "\n\n")

	switch m.payload.Tab {
	case domain.TabUsers:
		if s := m.payload.Session; s != nil {
			b.WriteString(primaryStyle.Render(fmt.Sprintf("  %s — %s\n", s.Username, s.Role)))
		}
		b.WriteString(emptyStyle.Render("  La gestión de usuarios es local a esta sesión\n"))
	case domain.TabProducts:
		b.WriteString(emptyStyle.Render("  Sin productos registrados\n"))
	default:
		for _, r := range m.payload.Recipes {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				metaStyle.Render(fmt.Sprintf("%3d.", r.ID)),
				nameStyle.Render(r.Name),
				metaStyle.Render(fmt.Sprintf("(%s, %d min)", r.Country, r.TimeMinutes)),
			))
		}
		b.WriteString(emptyStyle.Render("\n  'add' crea, 'delete <id>' elimina — cambios solo en esta sesión\n"))
	}
	return b.String()
}

// renderStars returns a five-star bar for a 0–5 rating.
func renderStars(rating float64) string {
	full := int(rating + 0.5)
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}
