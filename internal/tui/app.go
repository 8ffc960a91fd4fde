// Package tui provides the interactive Bubble Tea dashboard for horeca.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/horeca/internal/config"
	"github.com/theirongolddev/horeca/internal/model"
	"github.com/theirongolddev/horeca/internal/pipeline"
	"github.com/theirongolddev/horeca/internal/service"
	"github.com/theirongolddev/horeca/internal/tui/components"
	"github.com/theirongolddev/horeca/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// DataLoadedMsg is sent when a dataset load finishes.
type DataLoadedMsg struct {
	Dataset  model.Dataset
	LoadTime time.Duration
	Err      error
}

// RecomputedMsg is sent when a full recompute finishes.
type RecomputedMsg struct {
	Summary service.RecomputeSummary
	Err     error
}

// DishCreatedMsg is sent when the new-dish form has been persisted.
type DishCreatedMsg struct {
	Dish model.Dish
	Err  error
}

// Tab indexes, in tab bar order.
const (
	tabSummary = iota
	tabMenu
	tabRecipe
	tabPrices
	tabAlerts
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
	loadTimeout      = 30 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	svc *service.Service
	cfg config.Config

	// Data
	ds       model.Dataset
	loaded   bool
	loadErr  error
	loadTime time.Duration
	busy     bool
	flash    string

	// Pre-computed for the current client scope
	scope   int64 // 0 = every client
	dash    service.Dashboard
	dishes  []model.Dish
	prices  []model.ClientPrice
	lines   []model.RecipeLine // lines of the selected dish
	clients []model.Client

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursor    int // selected dish in the menu tab
	scroll    int // scroll offset of the prices and alerts tabs

	// New-dish form (huh)
	dishForm *huh.Form
	dishVals DishValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool

	spinner spinner.Model
}

// NewApp creates a new TUI app model scoped to clientID (0 = all clients).
func NewApp(svc *service.Service, cfg config.Config, clientID int64) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		svc:       svc,
		cfg:       cfg,
		scope:     clientID,
		needSetup: !config.Exists(),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.svc),
		a.spinner.Tick,
	)
}

// rescope recomputes every derived view for the current client scope.
func (a *App) rescope() {
	a.clients = a.ds.Clients
	a.dash = a.svc.DashboardFrom(a.ds, a.scope)
	a.dishes = pipeline.FilterDishesByClient(a.ds.Dishes, a.scope)
	a.prices = pipeline.FilterPricesByClient(a.ds.Prices, a.scope)

	if a.cursor >= len(a.dishes) {
		a.cursor = len(a.dishes) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	a.selectDish()
}

func (a *App) selectDish() {
	a.lines = nil
	if d, ok := a.selected(); ok {
		a.lines = pipeline.FilterLinesByDish(a.ds.Lines, d.ID)
	}
}

func (a App) selected() (model.Dish, bool) {
	if a.cursor < 0 || a.cursor >= len(a.dishes) {
		return model.Dish{}, false
	}
	return a.dishes[a.cursor], true
}

// cycleClient moves the scope through "all clients" and each client in order.
func (a *App) cycleClient(step int) {
	ids := []int64{0}
	for _, c := range a.clients {
		ids = append(ids, c.ID)
	}
	idx := 0
	for i, id := range ids {
		if id == a.scope {
			idx = i
		}
	}
	idx = (idx + step + len(ids)) % len(ids)
	a.scope = ids[idx]
	a.cursor, a.scroll = 0, 0
	a.rescope()
}

func (a App) scopeName() string {
	if a.scope == 0 {
		return "Todos los clientes"
	}
	for _, c := range a.clients {
		if c.ID == a.scope {
			return c.Name
		}
	}
	return fmt.Sprintf("Cliente %d", a.scope)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.dishForm != nil {
			a.dishForm = a.dishForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.dishForm != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveUp()
		case tea.MouseButtonWheelDown:
			a.moveDown()
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.dishForm != nil {
			return a.updateDishForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if a.busy {
				return a, nil
			}
			a.busy = true
			a.flash = ""
			return a, recomputeCmd(a.svc)
		case "n":
			if len(a.clients) == 0 {
				a.flash = "Crea un cliente antes de añadir platos"
				return a, nil
			}
			a.dishVals = NewDishValues(a.scope, a.clients)
			a.dishForm = NewDishForm(a.clients, &a.dishVals)
			if a.width > 0 {
				a.dishForm = a.dishForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.dishForm.Init()
		case "[":
			a.cycleClient(-1)
		case "]":
			a.cycleClient(1)
		case "j", "down":
			a.moveDown()
		case "k", "up":
			a.moveUp()
		case "g":
			a.cursor, a.scroll = 0, 0
			a.selectDish()
		case "G":
			if a.activeTab == tabMenu || a.activeTab == tabRecipe {
				a.cursor = len(a.dishes) - 1
				if a.cursor < 0 {
					a.cursor = 0
				}
				a.selectDish()
			}
		case "enter":
			if a.activeTab == tabMenu {
				a.activeTab = tabRecipe
			}
		case "esc":
			if a.activeTab == tabRecipe {
				a.activeTab = tabMenu
			}
		case "left", "h":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			a.scroll = 0
		case "right", "l", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			a.scroll = 0
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
					a.scroll = 0
				}
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.ds = msg.Dataset
			a.rescope()
		}

		if a.needSetup && a.setupForm == nil {
			a.setupVals = NewSetupValues(a.cfg)
			a.setupForm = NewSetupForm(len(a.ds.Clients), &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RecomputedMsg:
		a.busy = false
		if msg.Err != nil {
			a.flash = "Error: " + msg.Err.Error()
			return a, nil
		}
		a.flash = fmt.Sprintf("%d platos, %d líneas actualizadas en %s",
			msg.Summary.DishesUpdated, msg.Summary.LinesUpdated,
			msg.Summary.Elapsed.Round(time.Millisecond))
		return a, loadDataCmd(a.svc)

	case DishCreatedMsg:
		if msg.Err != nil {
			a.flash = "Error: " + msg.Err.Error()
			return a, nil
		}
		a.flash = fmt.Sprintf("Plato %q creado (%s)", msg.Dish.Name, msg.Dish.Classification)
		return a, loadDataCmd(a.svc)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to an active form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.dishForm != nil {
		return a.updateDishForm(msg)
	}

	return a, nil
}

func (a *App) moveDown() {
	switch a.activeTab {
	case tabMenu, tabRecipe:
		if a.cursor < len(a.dishes)-1 {
			a.cursor++
			a.selectDish()
		}
	default:
		a.scroll++
	}
}

func (a *App) moveUp() {
	switch a.activeTab {
	case tabMenu, tabRecipe:
		if a.cursor > 0 {
			a.cursor--
			a.selectDish()
		}
	default:
		if a.scroll > 0 {
			a.scroll--
		}
	}
}

func (a App) updateDishForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.dishForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.dishForm = f
	}

	switch a.dishForm.State {
	case huh.StateCompleted:
		a.dishForm = nil
		in, err := a.dishVals.Input()
		if err != nil {
			a.flash = "Error: " + err.Error()
			return a, nil
		}
		return a, createDishCmd(a.svc, in)
	case huh.StateAborted:
		a.dishForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg, err := a.setupVals.Apply(a.cfg)
		if err != nil {
			a.flash = "Error: " + err.Error()
		} else if err := config.Save(cfg); err != nil {
			log.Error().Err(err).Msg("saving config")
			a.flash = "No se pudo guardar la configuración"
		} else {
			a.cfg = cfg
		}
		theme.SetActive(a.cfg.Appearance.Theme)
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.dishForm != nil {
		return a.dishForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}
	msg := fmt.Sprintf(
		"\n  Terminal demasiado estrecho (%d columnas)\n\n  horeca necesita al menos %d columnas.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ horeca"))
	b.WriteString(subtitleStyle.Render(" · Escandallos y márgenes"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Cargando datos..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Info).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navegación", []struct{ key, desc string }{
			{"1-5", "Ir a pestaña"},
			{"← →", "Pestaña anterior / siguiente"},
			{"j k", "Mover selección / desplazar"},
			{"g G", "Inicio / final"},
			{"[ ]", "Cliente anterior / siguiente"},
		}},
		{"Acciones", []struct{ key, desc string }{
			{"Enter", "Ver escandallo del plato"},
			{"Esc", "Volver a la carta"},
			{"n", "Nuevo plato"},
			{"r", "Recalcular todo"},
			{"?", "Mostrar ayuda"},
			{"q", "Salir"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Atajos de teclado"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Pulsa cualquier tecla para cerrar"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	info := a.flash
	if info == "" {
		info = fmt.Sprintf("Datos: %.2fs", a.loadTime.Seconds())
	}
	statusBar := components.RenderStatusBar(w, a.scopeName(), info, a.busy)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch {
	case a.loadErr != nil:
		content = components.ContentCard("Error",
			lipgloss.NewStyle().Foreground(t.Bad).Background(t.Surface).Render(a.loadErr.Error()), cw)
	default:
		switch a.activeTab {
		case tabSummary:
			content = a.renderSummaryTab(cw)
		case tabMenu:
			content = a.renderMenuTab(cw, contentH)
		case tabRecipe:
			content = a.renderRecipeTab(cw)
		case tabPrices:
			content = a.renderPricesTab(cw, contentH)
		case tabAlerts:
			content = a.renderAlertsTab(cw, contentH)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

func loadDataCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		start := time.Now()
		ds, err := svc.Snapshot(ctx)
		if err != nil {
			log.Error().Err(err).Msg("loading dataset")
		}
		return DataLoadedMsg{Dataset: ds, LoadTime: time.Since(start), Err: err}
	}
}

func recomputeCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		sum, err := svc.RecomputeAll(ctx)
		return RecomputedMsg{Summary: sum, Err: err}
	}
}

func createDishCmd(svc *service.Service, in service.NewDish) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		d, err := svc.CreateDish(ctx, in)
		return DishCreatedMsg{Dish: d, Err: err}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	return components.TabAtX(x, a.activeTab)
}

// window returns the [start, end) slice of n rows visible in h lines,
// keeping cursor on screen and starting from offset.
func window(n, cursor, offset, h int) (int, int) {
	if h < 1 {
		h = 1
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+h {
		offset = cursor - h + 1
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + h
	if end > n {
		end = n
	}
	return offset, end
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
