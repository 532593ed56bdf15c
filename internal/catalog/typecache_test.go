package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestTypeCacheServesSecondLookupFromCache(t *testing.T) {
	srv := newMembershipServer(map[string][]string{"fire": {"charmander"}})
	c := NewTypeCache(srv.fetch, WithCacheLogger(zaptest.NewLogger(t)))

	first := c.Membership(context.Background(), "fire")
	second := c.Membership(context.Background(), "fire")

	require.True(t, first.Has(entryURL("charmander")))
	require.Equal(t, first, second)
	require.Equal(t, 1, srv.callsFor("fire"))
	require.Equal(t, 1, c.Len())
}

func TestTypeCacheFailureRetriesByDefault(t *testing.T) {
	srv := newMembershipServer(map[string][]string{"water": {"squirtle"}})
	srv.setFailing("water", true)
	c := NewTypeCache(srv.fetch)

	got := c.Membership(context.Background(), "water")
	require.Equal(t, 0, got.Len())
	_, cached := c.Lookup("water")
	require.False(t, cached, "failure must not be cached")

	srv.setFailing("water", false)
	got = c.Membership(context.Background(), "water")
	require.True(t, got.Has(entryURL("squirtle")))
	require.Equal(t, 2, srv.callsFor("water"))
}

func TestTypeCacheFailureCachedEmptyWhenConfigured(t *testing.T) {
	srv := newMembershipServer(map[string][]string{"water": {"squirtle"}})
	srv.setFailing("water", true)
	c := NewTypeCache(srv.fetch, WithFailurePolicy(CacheEmptyOnFailure))

	require.Equal(t, 0, c.Membership(context.Background(), "water").Len())
	srv.setFailing("water", false)
	require.Equal(t, 0, c.Membership(context.Background(), "water").Len())
	require.Equal(t, 1, srv.callsFor("water"))
}

func TestTypeCacheNilSetTreatedAsFailure(t *testing.T) {
	c := NewTypeCache(func(ctx context.Context, category string) (MembershipSet, error) {
		return nil, nil
	})
	got := c.Membership(context.Background(), "ghost")
	require.NotNil(t, got)
	require.Equal(t, 0, got.Len())
	require.Equal(t, 0, c.Len())
}

func TestTypeCacheConcurrentMissesShareFetch(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	c := NewTypeCache(func(ctx context.Context, category string) (MembershipSet, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return NewMembershipSet(entryURL("gastly")), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, c.Membership(context.Background(), "ghost").Has(entryURL("gastly")))
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 1, calls)
}

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		input string
		want  FailurePolicy
		err   bool
	}{
		{"", RetryOnFailure, false},
		{"retry", RetryOnFailure, false},
		{"cache-empty", CacheEmptyOnFailure, false},
		{"forever", RetryOnFailure, true},
	}
	for _, tt := range tests {
		got, err := ParseFailurePolicy(tt.input)
		if tt.err {
			require.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		require.Equal(t, tt.want, got, tt.input)
		require.Equal(t, got, mustParse(t, got.String()))
	}
}

func mustParse(t *testing.T, s string) FailurePolicy {
	t.Helper()
	p, err := ParseFailurePolicy(s)
	require.NoError(t, err)
	return p
}
