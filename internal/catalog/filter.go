package catalog

import (
	"context"
	"sort"
	"strings"
)

// Query is the user's search text plus selected categories.
type Query struct {
	Search     string
	Categories []string
}

// NormalizeSearch lower-cases and trims a raw search string.
func NormalizeSearch(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (q Query) SearchActive() bool { return NormalizeSearch(q.Search) != "" }

func (q Query) FilterActive() bool { return len(q.Categories) > 0 }

// Active reports whether either dimension narrows the list.
func (q Query) Active() bool { return q.SearchActive() || q.FilterActive() }

// Filter combines free-text search and category membership.
type Filter struct {
	cache       *TypeCache
	concurrency int
}

func NewFilter(cache *TypeCache, concurrency int) *Filter {
	return &Filter{cache: cache, concurrency: concurrency}
}

// Recompute derives the filtered list from full. The result keeps full's
// order and never aliases it.
func (f *Filter) Recompute(ctx context.Context, full []Entry, q Query, landing bool) []Entry {
	search := NormalizeSearch(q.Search)
	searchActive := search != ""
	filterActive := q.FilterActive()

	if !searchActive && !filterActive {
		if landing {
			return nil
		}
		return append([]Entry(nil), full...)
	}

	var allowed MembershipSet
	if filterActive {
		allowed = f.allowed(ctx, q.Categories)
	}

	out := make([]Entry, 0, len(full))
	for _, e := range full {
		if searchActive && !strings.Contains(e.Name, search) {
			continue
		}
		if filterActive && !allowed.Has(e.URL) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// allowed resolves every category concurrently and unions the sets.
func (f *Filter) allowed(ctx context.Context, categories []string) MembershipSet {
	keys := append([]string(nil), categories...)
	sort.Strings(keys)

	sets := Join(ctx, f.concurrency, len(keys), func(ctx context.Context, i int) (MembershipSet, error) {
		return f.cache.Membership(ctx, keys[i]), nil
	})

	union := MembershipSet{}
	for _, r := range sets {
		if r.OK() {
			union.AddAll(r.Value)
		}
	}
	return union
}
