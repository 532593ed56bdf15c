package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotLoaded is returned when the full listing has not been fetched.
var ErrNotLoaded = errors.New("catalog not loaded")

// Lister fetches the complete listing in one call.
type Lister interface {
	ListEntries(ctx context.Context) ([]Entry, error)
}

// Store holds the full listing, fetched once, and the current filtered
// subset. The filtered slice is only ever replaced, never edited in place.
type Store struct {
	all      []Entry
	filtered []Entry
	loaded   bool
}

func NewStore() *Store {
	return &Store{}
}

// Load fetches the listing and assigns IDs 1..n in arrival order. On error
// the store is left untouched.
func (s *Store) Load(ctx context.Context, l Lister, landing bool) error {
	entries, err := l.ListEntries(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	all := make([]Entry, len(entries))
	for i, e := range entries {
		all[i] = Entry{ID: i + 1, Name: e.Name, URL: e.URL}
	}
	s.all = all
	s.loaded = true
	if landing {
		s.filtered = nil
	} else {
		s.filtered = append([]Entry(nil), all...)
	}
	return nil
}

func (s *Store) Loaded() bool { return s.loaded }

func (s *Store) All() []Entry { return s.all }

func (s *Store) Filtered() []Entry { return s.filtered }

func (s *Store) SetFiltered(list []Entry) { s.filtered = list }

// StaticLister serves a listing that was already fetched, so the owner can
// commit it to the store on its own goroutine.
type StaticLister []Entry

func (s StaticLister) ListEntries(context.Context) ([]Entry, error) { return s, nil }
