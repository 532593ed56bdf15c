package catalog

import (
	"context"

	"go.uber.org/zap"
)

// DetailFunc fetches one detail record by its endpoint URL.
type DetailFunc func(ctx context.Context, url string) (*Detail, error)

// Resolver fetches details for the entries on the visible page. Nothing is
// cached: revisiting a page fetches again.
type Resolver struct {
	fetch       DetailFunc
	concurrency int
	logger      *zap.Logger
}

func NewResolver(fetch DetailFunc, concurrency int, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{fetch: fetch, concurrency: concurrency, logger: logger}
}

// Resolve returns one slot per item in input order; failed fetches are nil.
func (r *Resolver) Resolve(ctx context.Context, items []Entry) []*Detail {
	results := Join(ctx, r.concurrency, len(items), func(ctx context.Context, i int) (*Detail, error) {
		return r.fetch(ctx, items[i].URL)
	})

	out := make([]*Detail, len(items))
	for i, res := range results {
		if !res.OK() {
			r.logger.Warn("detail fetch failed",
				zap.String("name", items[i].Name),
				zap.String("url", items[i].URL),
				zap.Error(res.Err),
			)
			continue
		}
		out[i] = res.Value
	}
	return out
}

// Cards drops the nil slots left by failed fetches.
func Cards(details []*Detail) []*Detail {
	out := make([]*Detail, 0, len(details))
	for _, d := range details {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}
