package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/dexterm/internal/catalog"
	"github.com/matheuskafuri/dexterm/internal/config"
	"github.com/matheuskafuri/dexterm/internal/labels"
	"github.com/matheuskafuri/dexterm/internal/opener"
)

func monURL(i int) string { return fmt.Sprintf("https://pokeapi.test/pokemon/%d/", i) }

var starters = []string{
	"bulbasaur", "ivysaur", "venusaur",
	"charmander", "charmeleon", "charizard",
	"squirtle", "wartortle", "blastoise",
}

func starterListing(names []string) catalog.StaticLister {
	out := make(catalog.StaticLister, len(names))
	for i, n := range names {
		out[i] = catalog.Entry{Name: n, URL: monURL(i + 1)}
	}
	return out
}

type failingLister struct{}

func (failingLister) ListEntries(context.Context) ([]catalog.Entry, error) {
	return nil, errors.New("connection refused")
}

type launchRecorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *launchRecorder) launch(name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil
}

type harness struct {
	app      *App
	launches *launchRecorder

	mu          sync.Mutex
	typeFetches int
}

func newHarness(t *testing.T, lister catalog.Lister, names []string, landing bool) *harness {
	t.Helper()
	h := &harness{launches: &launchRecorder{}}

	members := map[string][]int{
		"grass": {1, 2, 3},
		"fire":  {4, 5, 6},
		"water": {7, 8, 9},
	}
	membership := func(_ context.Context, category string) (catalog.MembershipSet, error) {
		h.mu.Lock()
		h.typeFetches++
		h.mu.Unlock()
		set := catalog.NewMembershipSet()
		for _, i := range members[category] {
			set[monURL(i)] = struct{}{}
		}
		return set, nil
	}
	detail := func(_ context.Context, url string) (*catalog.Detail, error) {
		for i, n := range names {
			if monURL(i+1) == url {
				d := &catalog.Detail{ID: i + 1, Name: n, URL: url}
				if i%2 == 0 {
					d.Artwork = fmt.Sprintf("https://img.test/%d.png", i+1)
				}
				return d, nil
			}
		}
		return nil, errors.New("not found")
	}

	browser := catalog.NewBrowser(
		catalog.NewFilter(catalog.NewTypeCache(membership), 4),
		catalog.NewResolver(detail, 4, nil),
		catalog.Options{Landing: landing, PageSize: 4},
	)
	tr, err := labels.New("en", nil)
	require.NoError(t, err)

	h.app = NewApp(context.Background(), RunOpts{
		Cfg: &config.Config{
			Types:            []string{"fire", "grass", "water"},
			PlaceholderImage: "images/pokeball.png",
		},
		Browser: browser,
		Lister:  lister,
		Labels:  tr,
		Opener:  opener.NewWithLauncher("linux", h.launches.launch),
	})
	h.app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.run(h.app.Init())
	return h
}

// run executes cmd and feeds its messages back through Update until the
// chain settles. Spinner ticks are dropped so the chain terminates.
func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	default:
		_, next := h.app.Update(msg)
		h.run(next)
	}
}

func (h *harness) key(k string) {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := h.app.Update(msg)
	h.run(cmd)
}

func (h *harness) search(s string) {
	h.key("/")
	h.app.searchInput.SetValue(s)
	h.key("enter")
}

func cardNames(v catalog.View) []string {
	out := make([]string, len(v.Cards))
	for i, c := range v.Cards {
		out[i] = c.Name
	}
	return out
}

func TestLandingShowsSplashUntilQueried(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, true)

	require.True(t, h.app.browser.Loaded())
	assert.Empty(t, h.app.browser.View().Cards)
	assert.False(t, h.app.browser.View().Empty)
	assert.Contains(t, h.app.View(), "Search by name")
	assert.Zero(t, h.typeFetches)

	h.search("CHAR")
	assert.Equal(t, []string{"charmander", "charmeleon", "charizard"}, cardNames(h.app.browser.View()))
	assert.NotContains(t, h.app.View(), "Search by name")
}

func TestSearchEscClearsAndResubmits(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, true)

	h.search("saur")
	require.Len(t, h.app.browser.View().Cards, 3)

	h.key("/")
	h.key("esc")
	assert.Equal(t, "", h.app.browser.Search())
	assert.Empty(t, h.app.browser.View().Cards)
	assert.Contains(t, h.app.View(), "Search by name")
}

func TestNoMatchesShowsEmptyState(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, true)

	h.search("pikachu")
	assert.True(t, h.app.browser.View().Empty)
	assert.Contains(t, h.app.View(), "No results found")
}

func TestFilterAppliesWhenLeavingFilterMode(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, true)

	h.key("f")
	h.key(" ") // fire
	assert.True(t, h.app.browser.IsSelected("fire"))
	assert.Zero(t, h.typeFetches, "toggling alone must not fetch")

	h.key("f")
	assert.Equal(t, modeNormal, h.app.mode)
	assert.Equal(t, []string{"charmander", "charmeleon", "charizard"}, cardNames(h.app.browser.View()))
	assert.Equal(t, 1, h.typeFetches)

	// union with a second category, narrowed by search
	h.key("f")
	h.key("l")
	h.key(" ") // grass
	h.key("enter")
	h.search("char")
	assert.Equal(t, []string{"charmander", "charmeleon", "charizard"}, cardNames(h.app.browser.View()))
	assert.Equal(t, 2, h.typeFetches, "cached categories are not fetched again")
}

func TestLeavingFilterModeUnchangedDoesNothing(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, false)
	before := h.app.browser.View()

	h.key("f")
	h.key("l")
	h.key("esc")
	assert.Equal(t, before.Page, h.app.browser.View().Page)
	assert.Zero(t, h.typeFetches)
}

func TestPagingResetsCursor(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, false)

	v := h.app.browser.View()
	require.Equal(t, 3, v.Page.Total)
	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur", "charmander"}, cardNames(v))

	h.key("l")
	h.key("l")
	require.Equal(t, 2, h.app.cursor)

	h.key("n")
	assert.Equal(t, 2, h.app.browser.CurrentPage())
	assert.Equal(t, 0, h.app.cursor)
	assert.Equal(t, []string{"charmeleon", "charizard", "squirtle", "wartortle"}, cardNames(h.app.browser.View()))

	h.key("n")
	assert.Equal(t, []string{"blastoise"}, cardNames(h.app.browser.View()))

	// Next is disabled on the last page
	h.key("n")
	assert.Equal(t, 3, h.app.browser.CurrentPage())

	h.key("p")
	assert.Equal(t, 2, h.app.browser.CurrentPage())
}

func TestPagerFocus(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, false)

	h.key("tab")
	require.Equal(t, focusPager, h.app.focus)
	// Prev, 1, 2, 3, Next with the current page focused
	assert.Equal(t, 1, h.app.pagerFocus)

	h.key("enter")
	assert.Equal(t, 1, h.app.browser.CurrentPage(), "current page is inert")

	h.key("h")
	h.key("enter")
	assert.Equal(t, 1, h.app.browser.CurrentPage(), "disabled Prev is inert")

	h.app.pagerFocus = 3
	h.key("enter")
	assert.Equal(t, 3, h.app.browser.CurrentPage())
	assert.Equal(t, focusGrid, h.app.focus)
}

func TestStaleFilterResultIgnored(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, true)

	stale := h.app.browser.BeginFilter().Run(context.Background())
	h.search("squirtle")

	_, cmd := h.app.Update(filterDoneMsg{result: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"squirtle"}, cardNames(h.app.browser.View()))
}

func TestLoadFailureShowsError(t *testing.T) {
	h := newHarness(t, failingLister{}, nil, true)

	assert.False(t, h.app.browser.Loaded())
	assert.False(t, h.app.loading())
	out := h.app.View()
	assert.Contains(t, out, "Could not load the catalog")
	assert.Contains(t, out, "connection refused")

	// nothing to search against
	h.search("char")
	assert.Empty(t, h.app.browser.View().Cards)
}

func TestOpenImage(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, false)

	h.key("o") // bulbasaur has artwork
	h.key("l")
	h.key("o") // ivysaur has none

	require.Len(t, h.launches.calls, 2)
	assert.Equal(t, []string{"xdg-open", "https://img.test/1.png"}, h.launches.calls[0])

	abs, err := filepath.Abs("images/pokeball.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"xdg-open", abs}, h.launches.calls[1])
}

func TestClearResetsQuery(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, true)

	h.key("f")
	h.key(" ")
	h.key("f")
	h.search("char")
	require.NotEmpty(t, h.app.browser.View().Cards)

	h.key("c")
	assert.Empty(t, h.app.browser.Selected())
	assert.Empty(t, h.app.browser.Search())
	assert.Empty(t, h.app.browser.View().Cards)
}

func TestHelpToggles(t *testing.T) {
	h := newHarness(t, starterListing(starters), starters, false)

	h.key("?")
	require.Equal(t, modeHelp, h.app.mode)
	assert.True(t, strings.Contains(h.app.View(), "Keyboard Shortcuts"))
	h.key("esc")
	assert.Equal(t, modeNormal, h.app.mode)
}
