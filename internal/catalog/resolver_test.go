package catalog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestJoinPreservesOrderWithFailures(t *testing.T) {
	results := Join(context.Background(), 2, 6, func(ctx context.Context, i int) (int, error) {
		// later indexes finish first
		time.Sleep(time.Duration(6-i) * time.Millisecond)
		if i%3 == 0 {
			return 0, errors.New("boom")
		}
		return i * 10, nil
	})

	require.Len(t, results, 6)
	for i, r := range results {
		if i%3 == 0 {
			require.Error(t, r.Err)
			require.False(t, r.OK())
			continue
		}
		require.NoError(t, r.Err)
		require.Equal(t, i*10, r.Value)
	}
}

func TestJoinRespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	Join(context.Background(), 3, 12, func(ctx context.Context, i int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})
	require.LessOrEqual(t, peak.Load(), int32(3))
}

func TestJoinCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	results := Join(ctx, 0, 2, func(ctx context.Context, i int) (int, error) {
		called = true
		return i, nil
	})
	require.False(t, called)
	for _, r := range results {
		require.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestJoinEmpty(t *testing.T) {
	require.Empty(t, Join(context.Background(), 4, 0, func(ctx context.Context, i int) (int, error) {
		t.Fatal("fn must not run")
		return 0, nil
	}))
}

func TestResolverNilSlotsForFailures(t *testing.T) {
	items := named("bulbasaur", "ivysaur", "venusaur")
	srv := &detailServer{failing: map[string]bool{entryURL("ivysaur"): true}}
	r := NewResolver(srv.fetch, 2, zaptest.NewLogger(t))

	got := r.Resolve(context.Background(), items)

	require.Len(t, got, 3)
	require.NotNil(t, got[0])
	require.Nil(t, got[1])
	require.NotNil(t, got[2])
	require.Equal(t, entryURL("bulbasaur"), got[0].URL)
	require.Equal(t, entryURL("venusaur"), got[2].URL)

	cards := Cards(got)
	require.Len(t, cards, 2)
	require.Equal(t, entryURL("venusaur"), cards[1].URL)
}

func TestResolverDoesNotCache(t *testing.T) {
	items := named("pikachu")
	srv := &detailServer{}
	r := NewResolver(srv.fetch, 0, nil)

	r.Resolve(context.Background(), items)
	r.Resolve(context.Background(), items)
	require.Equal(t, 2, srv.callCount())
}

func TestDetailPrimaryTypeAndImage(t *testing.T) {
	d := &Detail{Types: []TypeSlot{{Slot: 2, Name: "flying"}, {Slot: 1, Name: "normal"}}}
	require.Equal(t, "normal", d.PrimaryType())

	d = &Detail{Types: []TypeSlot{{Slot: 2, Name: "flying"}}}
	require.Equal(t, "flying", d.PrimaryType())

	d = &Detail{}
	require.Equal(t, "normal", d.PrimaryType())
	require.Equal(t, "placeholder.png", d.ImageURL("placeholder.png"))

	d.Sprite = "sprite.png"
	require.Equal(t, "sprite.png", d.ImageURL("placeholder.png"))
	d.Artwork = "art.png"
	require.Equal(t, "art.png", d.ImageURL("placeholder.png"))
}
