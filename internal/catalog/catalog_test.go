package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Shared fixtures for the package tests.

type fakeLister struct {
	entries []Entry
	err     error
	calls   int
}

func (f *fakeLister) ListEntries(ctx context.Context) ([]Entry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func entryURL(name string) string {
	return "https://pokeapi.test/api/v2/pokemon/" + name + "/"
}

func named(names ...string) []Entry {
	out := make([]Entry, len(names))
	for i, n := range names {
		out[i] = Entry{ID: i + 1, Name: n, URL: entryURL(n)}
	}
	return out
}

func numbered(n int) []Entry {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("mon-%02d", i+1)
	}
	return named(names...)
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// membershipServer is a MembershipFunc backed by a map, counting calls per key.
type membershipServer struct {
	mu      sync.Mutex
	members map[string][]string // category -> entry names
	failing map[string]bool
	calls   map[string]int
	total   atomic.Int64
}

func newMembershipServer(members map[string][]string) *membershipServer {
	return &membershipServer{
		members: members,
		failing: map[string]bool{},
		calls:   map[string]int{},
	}
}

func (m *membershipServer) fetch(ctx context.Context, category string) (MembershipSet, error) {
	m.total.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[category]++
	if m.failing[category] {
		return nil, errors.New("category endpoint unavailable")
	}
	list, ok := m.members[category]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	s := MembershipSet{}
	for _, n := range list {
		s[entryURL(n)] = struct{}{}
	}
	return s, nil
}

func (m *membershipServer) callsFor(category string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[category]
}

func (m *membershipServer) setFailing(category string, failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing[category] = failing
}

// detailServer is a DetailFunc that can fail selected URLs.
type detailServer struct {
	mu      sync.Mutex
	failing map[string]bool
	calls   int
}

func (d *detailServer) fetch(ctx context.Context, url string) (*Detail, error) {
	d.mu.Lock()
	d.calls++
	fail := d.failing[url]
	d.mu.Unlock()
	if fail {
		return nil, errors.New("detail unavailable")
	}
	return &Detail{URL: url, Name: url, Types: []TypeSlot{{Slot: 1, Name: "normal"}}}, nil
}

func (d *detailServer) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}
