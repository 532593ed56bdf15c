package catalog

import (
	"context"
	"sort"
)

// Options configures a Browser.
type Options struct {
	// Landing views show nothing until the user searches or filters.
	Landing  bool
	PageSize int
}

const DefaultPageSize = 18

// View is everything the presentation layer needs for one render.
type View struct {
	Page     Page
	Cards    []*Detail
	Controls []Control
	Empty    bool
}

// Browser is the application state: dataset, selection, search text and
// current page. It has a single owner (the UI update loop or a CLI command)
// and is not safe for concurrent use. Background work is split into
// Begin/Run/Commit so only Run leaves the owner's goroutine; Commit drops
// results whose generation has been superseded.
type Browser struct {
	store    *Store
	filter   *Filter
	resolver *Resolver

	landing  bool
	pageSize int

	search   string
	selected map[string]bool
	page     int

	filterGen     uint64
	pageGen       uint64
	filterPending bool
	pagePending   bool

	view View
}

func NewBrowser(filter *Filter, resolver *Resolver, opts Options) *Browser {
	size := opts.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Browser{
		store:    NewStore(),
		filter:   filter,
		resolver: resolver,
		landing:  opts.Landing,
		pageSize: size,
		selected: make(map[string]bool),
		page:     1,
	}
}

// Load fetches the full listing once. The caller surfaces the error; the
// store stays empty on failure.
func (b *Browser) Load(ctx context.Context, l Lister) error {
	return b.store.Load(ctx, l, b.landing)
}

func (b *Browser) Loaded() bool { return b.store.Loaded() }

func (b *Browser) Landing() bool { return b.landing }

func (b *Browser) PageSize() int { return b.pageSize }

func (b *Browser) CurrentPage() int { return b.page }

func (b *Browser) All() []Entry { return b.store.All() }

func (b *Browser) Filtered() []Entry { return b.store.Filtered() }

// Loading is true while the latest filter or page job has not committed.
func (b *Browser) Loading() bool { return b.filterPending || b.pagePending }

// View returns the last committed render state.
func (b *Browser) View() View { return b.view }

func (b *Browser) SetSearch(s string) { b.search = s }

func (b *Browser) Search() string { return b.search }

// ToggleCategory flips key and reports whether it is now selected.
func (b *Browser) ToggleCategory(key string) bool {
	if b.selected[key] {
		delete(b.selected, key)
		return false
	}
	b.selected[key] = true
	return true
}

func (b *Browser) SetCategory(key string, on bool) {
	if on {
		b.selected[key] = true
	} else {
		delete(b.selected, key)
	}
}

func (b *Browser) IsSelected(key string) bool { return b.selected[key] }

func (b *Browser) ClearCategories() { b.selected = make(map[string]bool) }

// Selected returns the selected categories in sorted order.
func (b *Browser) Selected() []string {
	out := make([]string, 0, len(b.selected))
	for k := range b.selected {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Query snapshots the current search text and selection.
func (b *Browser) Query() Query {
	return Query{Search: b.search, Categories: b.Selected()}
}

// FilterJob is a snapshot of the inputs to one filter recomputation.
type FilterJob struct {
	gen     uint64
	full    []Entry
	query   Query
	landing bool
	filter  *Filter
}

// Immediate reports whether the job needs no network work (the landing
// view with nothing searched or selected).
func (j FilterJob) Immediate() bool {
	return j.landing && !j.query.Active()
}

// Run computes the filtered list. Safe to call off the owner's goroutine.
func (j FilterJob) Run(ctx context.Context) FilterResult {
	return FilterResult{
		gen:     j.gen,
		Query:   j.query,
		Entries: j.filter.Recompute(ctx, j.full, j.query, j.landing),
	}
}

type FilterResult struct {
	gen     uint64
	Query   Query
	Entries []Entry
}

// BeginFilter starts a new filter generation. Any in-flight filter or page
// job becomes stale.
func (b *Browser) BeginFilter() FilterJob {
	b.filterGen++
	b.pageGen++
	job := FilterJob{
		gen:     b.filterGen,
		full:    b.store.All(),
		query:   b.Query(),
		landing: b.landing,
		filter:  b.filter,
	}
	b.filterPending = !job.Immediate()
	b.pagePending = false
	return job
}

// CommitFilter stores r if it is still current and resets to page 1.
func (b *Browser) CommitFilter(r FilterResult) bool {
	if r.gen != b.filterGen {
		return false
	}
	b.filterPending = false
	b.store.SetFiltered(r.Entries)
	b.page = 1
	return true
}

// PageJob is a snapshot of one page display.
type PageJob struct {
	gen      uint64
	page     Page
	query    Query
	landing  bool
	resolver *Resolver
}

// Page returns the slice the job will resolve.
func (j PageJob) Page() Page { return j.page }

// Run fetches details for the page. Safe to call off the owner's goroutine.
func (j PageJob) Run(ctx context.Context) PageResult {
	r := PageResult{gen: j.gen, Page: j.page, query: j.query, landing: j.landing}
	if len(j.page.Items) > 0 {
		r.Details = j.resolver.Resolve(ctx, j.page.Items)
	}
	return r
}

type PageResult struct {
	gen     uint64
	query   Query
	landing bool
	Page    Page
	Details []*Detail
}

// BeginPage moves to page index and snapshots its slice.
func (b *Browser) BeginPage(index int) PageJob {
	b.pageGen++
	b.page = index
	p := Paginate(b.store.Filtered(), index, b.pageSize)
	b.pagePending = len(p.Items) > 0
	return PageJob{
		gen:      b.pageGen,
		page:     p,
		query:    b.Query(),
		landing:  b.landing,
		resolver: b.resolver,
	}
}

// CommitPage publishes r as the current view if it is still current.
func (b *Browser) CommitPage(r PageResult) bool {
	if r.gen != b.pageGen {
		return false
	}
	b.pagePending = false
	v := View{
		Page:  r.Page,
		Empty: ShowEmptyState(r.Page.Count, r.landing, r.query),
	}
	if r.Page.Count > 0 {
		v.Cards = Cards(r.Details)
		v.Controls = Layout(r.Page.Index, r.Page.Total)
	}
	b.view = v
	return true
}

// Apply recomputes the filtered list and shows page 1, synchronously.
func (b *Browser) Apply(ctx context.Context) (View, error) {
	if !b.Loaded() {
		return View{}, ErrNotLoaded
	}
	b.CommitFilter(b.BeginFilter().Run(ctx))
	return b.Show(ctx, 1)
}

// Show displays page index of the current filtered list, synchronously.
func (b *Browser) Show(ctx context.Context, index int) (View, error) {
	if !b.Loaded() {
		return View{}, ErrNotLoaded
	}
	b.CommitPage(b.BeginPage(index).Run(ctx))
	return b.view, nil
}
