package source

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sensordonut/sensordonut/pkg/types"
)

// Sink receives fetched values. *store.Store satisfies it.
type Sink interface {
	PutAll(values []types.LiveValue)
}

// Result summarises one source's fetch within a poll cycle.
type Result struct {
	SourceID string
	Count    int
	Err      error
}

// Poller fetches a set of sources on an interval and writes to a Sink.
type Poller struct {
	sources  []Source
	sink     Sink
	interval time.Duration
}

// NewPoller creates a Poller. interval must be positive for Run.
func NewPoller(sources []Source, sink Sink, interval time.Duration) *Poller {
	return &Poller{sources: sources, sink: sink, interval: interval}
}

// PollOnce fetches every source concurrently and stores the values of those
// that succeeded. Results are returned in source order. A failing source is
// logged and reported in its Result; it does not cancel the others.
func (p *Poller) PollOnce(ctx context.Context) []Result {
	results := make([]Result, len(p.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range p.sources {
		g.Go(func() error {
			values, err := src.Fetch(gctx)
			results[i] = Result{SourceID: src.ID(), Count: len(values), Err: err}
			if err != nil {
				slog.Warn("source: fetch failed", "source", src.ID(), "err", err)
				return nil // non-fatal
			}
			p.sink.PutAll(values)
			return nil
		})
	}
	_ = g.Wait()

	slog.Debug("source: poll cycle complete", "sources", len(p.sources))
	return results
}

// Run polls immediately and then once per interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	if len(p.sources) == 0 {
		<-ctx.Done()
		return
	}
	p.PollOnce(ctx)

	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.PollOnce(ctx)
		}
	}
}
