// Package bootstrap fetches the grid's sources and assembles the initial
// canonical order.
package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/shufflegrid/internal/card"
	"github.com/arcanaland/shufflegrid/internal/grid"
	"github.com/arcanaland/shufflegrid/internal/normalize"
	"github.com/arcanaland/shufflegrid/internal/source"
)

// Options is what Load needs to build a grid
type Options struct {
	Intro    card.Card
	Social   []card.Card
	Feed     source.Fetcher[[]normalize.FeedPost]
	Projects source.Fetcher[[]card.Card]

	// FetchTimeout bounds each fetch. Zero waits as long as the source takes.
	FetchTimeout time.Duration
	Grid         []grid.Option
	Logger       *zap.Logger
}

// Load issues both fetches concurrently, waits for both to settle and
// assembles the result. A failed source only shrinks the grid.
func Load(ctx context.Context, opts Options) *grid.Grid {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var (
		feed     grid.Result[[]normalize.FeedPost]
		projects grid.Result[[]card.Card]
	)

	// Each fetch records its own outcome; the group never fails
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		feed = fetch(gctx, opts.Feed, opts.FetchTimeout, log.With(zap.String("source", "feed")))
		return nil
	})
	g.Go(func() error {
		projects = fetch(gctx, opts.Projects, opts.FetchTimeout, log.With(zap.String("source", "projects")))
		return nil
	})
	_ = g.Wait()

	cards := grid.Assemble(grid.Sources{
		Intro:    opts.Intro,
		Feed:     feed,
		Social:   opts.Social,
		Projects: projects,
	}, log)

	log.Info("grid ready", zap.Int("cards", len(cards)))
	return grid.New(cards, opts.Grid...)
}

func fetch[T any](ctx context.Context, f source.Fetcher[T], timeout time.Duration, log *zap.Logger) grid.Result[T] {
	if f == nil {
		return grid.Result[T]{}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	v, err := f.Fetch(ctx)
	if err != nil {
		log.Debug("fetch failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return grid.Failed[T](err)
	}
	log.Debug("fetch done", zap.Duration("elapsed", time.Since(start)))
	return grid.OK(v)
}
