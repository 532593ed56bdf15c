package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/dexterm/internal/catalog"
	"github.com/matheuskafuri/dexterm/internal/config"
	"github.com/matheuskafuri/dexterm/internal/labels"
	"github.com/matheuskafuri/dexterm/internal/opener"
	"go.uber.org/zap"
)

type focusPane int

const (
	focusGrid focusPane = iota
	focusPager
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeFilter
	modeHelp
)

type App struct {
	ctx     context.Context
	cfg     *config.Config
	browser *catalog.Browser
	lister  catalog.Lister
	tr      *labels.Translator
	opener  *opener.Opener
	log     *zap.Logger

	cursor     int
	pagerFocus int
	focus      focusPane
	mode       mode

	width  int
	height int

	searchInput textinput.Model
	spinner     spinner.Model
	filterBar   filterBar

	filterDirty bool
	loadErr     error
	err         error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg     *config.Config
	Browser *catalog.Browser
	Lister  catalog.Lister
	Labels  *labels.Translator
	Opener  *opener.Opener
	Logger  *zap.Logger
}

func NewApp(ctx context.Context, opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = opts.Labels.SearchPlaceholder()
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100
	ti.SetValue(opts.Browser.Search())

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &App{
		ctx:         ctx,
		cfg:         opts.Cfg,
		browser:     opts.Browser,
		lister:      opts.Lister,
		tr:          opts.Labels,
		opener:      opts.Opener,
		log:         log,
		filterBar:   newFilterBar(opts.Cfg.Types),
		searchInput: ti,
		spinner:     sp,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(), a.spinner.Tick)
}

// loadCmd fetches the listing off the update loop; the store is filled when
// entriesLoadedMsg arrives.
func (a *App) loadCmd() tea.Cmd {
	ctx, lister := a.ctx, a.lister
	return func() tea.Msg {
		entries, err := lister.ListEntries(ctx)
		if err != nil {
			return loadErrMsg{err: err}
		}
		return entriesLoadedMsg{entries: entries}
	}
}

// applyCmd recomputes the filtered list for the current query.
func (a *App) applyCmd() tea.Cmd {
	if !a.browser.Loaded() {
		return nil
	}
	job := a.browser.BeginFilter()
	if job.Immediate() {
		a.browser.CommitFilter(job.Run(a.ctx))
		return a.showCmd(1)
	}
	ctx := a.ctx
	return tea.Batch(func() tea.Msg {
		return filterDoneMsg{result: job.Run(ctx)}
	}, a.spinner.Tick)
}

// showCmd displays page index and resets the card cursor to the top.
func (a *App) showCmd(index int) tea.Cmd {
	job := a.browser.BeginPage(index)
	a.cursor = 0
	a.focus = focusGrid
	ctx := a.ctx
	return tea.Batch(func() tea.Msg {
		return pageDoneMsg{result: job.Run(ctx)}
	}, a.spinner.Tick)
}

func (a *App) openImageCmd(d *catalog.Detail) tea.Cmd {
	o := a.opener
	raw := d.ImageURL("")
	placeholder := a.cfg.PlaceholderImage
	return func() tea.Msg {
		if err := o.Open(raw, placeholder); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) loading() bool {
	return a.loadErr == nil && (!a.browser.Loaded() || a.browser.Loading())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case entriesLoadedMsg:
		if err := a.browser.Load(a.ctx, catalog.StaticLister(msg.entries)); err != nil {
			a.loadErr = err
			return a, nil
		}
		a.log.Info("catalog loaded", zap.Int("entries", len(msg.entries)))
		return a, a.applyCmd()

	case loadErrMsg:
		a.loadErr = msg.err
		a.log.Error("loading catalog", zap.Error(msg.err))
		return a, nil

	case filterDoneMsg:
		if !a.browser.CommitFilter(msg.result) {
			return a, nil
		}
		return a, a.showCmd(1)

	case pageDoneMsg:
		if a.browser.CommitPage(msg.result) {
			a.pagerFocus = defaultPagerFocus(a.browser.View().Controls)
		}
		return a, nil

	case errMsg:
		a.err = msg.err
		a.log.Warn("action failed", zap.Error(msg.err))
		return a, nil

	case spinner.TickMsg:
		if a.loading() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	if a.focus == focusPager {
		if model, cmd, ok := a.handlePagerKey(msg); ok {
			return model, cmd
		}
	}

	view := a.browser.View()
	cols := gridColumns(a.width)

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "right", "l":
		if a.cursor < len(view.Cards)-1 {
			a.cursor++
		}
		return a, nil
	case "left", "h":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "down", "j":
		if a.cursor+cols < len(view.Cards) {
			a.cursor += cols
		}
		return a, nil
	case "up", "k":
		if a.cursor-cols >= 0 {
			a.cursor -= cols
		}
		return a, nil
	case "n":
		if target, ok := controlTarget(view.Controls, catalog.ControlNext); ok {
			return a, a.showCmd(target)
		}
		return a, nil
	case "p":
		if target, ok := controlTarget(view.Controls, catalog.ControlPrev); ok {
			return a, a.showCmd(target)
		}
		return a, nil
	case "tab":
		if len(view.Controls) > 0 {
			a.focus = focusPager
		}
		return a, nil
	case "o", "enter":
		if a.cursor < len(view.Cards) {
			return a, a.openImageCmd(view.Cards[a.cursor])
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.filterBar.filterMode = true
		return a, nil
	case "c":
		if !a.browser.Query().Active() {
			return a, nil
		}
		a.browser.ClearCategories()
		a.browser.SetSearch("")
		a.searchInput.SetValue("")
		return a, a.applyCmd()
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

// handlePagerKey handles keys while the pager has focus. ok is false for
// keys that fall through to normal handling.
func (a *App) handlePagerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	controls := a.browser.View().Controls
	switch msg.String() {
	case "left", "h":
		if a.pagerFocus > 0 {
			a.pagerFocus--
		}
		return a, nil, true
	case "right", "l":
		if a.pagerFocus < len(controls)-1 {
			a.pagerFocus++
		}
		return a, nil, true
	case "enter":
		if a.pagerFocus < len(controls) && controls[a.pagerFocus].Enabled() {
			return a, a.showCmd(controls[a.pagerFocus].Target), true
		}
		return a, nil, true
	case "tab", "esc":
		a.focus = focusGrid
		return a, nil, true
	}
	return a, nil, false
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.browser.SetSearch("")
		return a, a.applyCmd()
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		a.browser.SetSearch(a.searchInput.Value())
		return a, a.applyCmd()
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f", "enter":
		a.mode = modeNormal
		a.filterBar.filterMode = false
		if !a.filterDirty {
			return a, nil
		}
		a.filterDirty = false
		return a, a.applyCmd()
	case "left", "h":
		a.filterBar.move(-1)
		return a, nil
	case "right", "l":
		a.filterBar.move(1)
		return a, nil
	case " ", "x":
		a.filterBar.toggleCurrent(a.browser)
		a.filterDirty = true
		return a, nil
	case "backspace":
		if len(a.browser.Selected()) > 0 {
			a.browser.ClearCategories()
			a.filterDirty = true
		}
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  dexterm")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	header := a.renderHeader()

	filter := a.filterBar.render(a.browser, a.tr, a.width)
	if a.mode == modeSearch {
		filter = a.searchInput.View()
	}

	view := a.browser.View()
	pager := renderPager(view.Controls, a.tr, a.pagerIndex(), a.width)

	status := renderStatusBar(statusInfo{
		count:       view.Page.Count,
		filterLabel: activeLabel(a.browser, a.tr),
		search:      a.browser.Search(),
		page:        view.Page.Index,
		totalPages:  view.Page.Total,
		searching:   a.mode == modeSearch,
		filtering:   a.mode == modeFilter,
		pagerFocus:  a.focus == focusPager,
	}, a.width)
	if a.loading() {
		status = a.spinner.View() + " " + status
	}
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	contentHeight := a.height - lipgloss.Height(header) - 1 - 1 - 1
	if pager != "" {
		contentHeight -= lipgloss.Height(pager)
	}
	if contentHeight < cardRowHeight {
		contentHeight = cardRowHeight
	}

	content := a.renderContent(view, contentHeight)

	parts := []string{header, filter, content}
	if pager != "" {
		parts = append(parts, pager)
	}
	parts = append(parts, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderHeader() string {
	left := headerStyle.Render("dexterm")
	meta := fmt.Sprintf("%d entries · %s", len(a.browser.All()), a.tr.Tag())
	right := headerMetaStyle.Render(meta)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

func (a *App) renderContent(view catalog.View, height int) string {
	switch {
	case a.loadErr != nil:
		msg := errorStyle.Render("Could not load the catalog") + "\n\n" +
			helpDimStyle.Render(a.loadErr.Error()) + "\n\n" +
			helpDimStyle.Render("q quit")
		return lipglossCenter(msg, a.width, height)
	case !a.browser.Loaded():
		return lipglossCenter(a.spinner.View()+" loading catalog...", a.width, height)
	case view.Empty:
		return lipglossCenter(emptyStyle.Render(a.tr.Empty()), a.width, height)
	case a.browser.Landing() && !a.browser.Query().Active():
		return renderLanding(a.width, height, len(a.browser.All()))
	case len(view.Cards) == 0:
		if a.browser.Loading() {
			return lipglossCenter(a.spinner.View(), a.width, height)
		}
		return lipglossCenter("", a.width, height)
	}

	grid := renderGrid(view.Cards, a.tr, a.cursor, a.width, a.focus == focusGrid)
	grid = gridWindow(grid, a.cursor, gridColumns(a.width), height)
	return lipgloss.NewStyle().Height(height).Render(grid)
}

func (a *App) pagerIndex() int {
	if a.focus != focusPager {
		return -1
	}
	return a.pagerFocus
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("dexterm")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  ←/→/↑/↓, hjkl  Move between cards\n" +
		"  n / p          Next / previous page\n" +
		"  tab            Focus the pager\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter       Open the card image\n" +
		"  /              Search by name\n" +
		"  f              Type filter mode\n" +
		"  c              Clear search and types\n\n" +
		dim.Render("Filter Mode") + "\n" +
		"  ←/→, h/l       Move between types\n" +
		"  space          Toggle type\n" +
		"  backspace      Clear all types\n" +
		"  enter, esc, f  Apply and leave\n\n" +
		dim.Render("General") + "\n" +
		"  ?              Toggle this help\n" +
		"  q, ctrl+c      Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(ctx context.Context, opts RunOpts) error {
	app := NewApp(ctx, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
