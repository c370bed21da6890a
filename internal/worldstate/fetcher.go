package worldstate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Uraniumking007/frametracking/internal/cache"
	"github.com/Uraniumking007/frametracking/internal/fetch"
)

// Fetcher retrieves world-state snapshots with a per-platform TTL cache
// and in-flight request coalescing, so N near-simultaneous callers during
// a cache-miss window share one outbound request.
type Fetcher struct {
	client     *fetch.Client
	primaryURL string
	mirrorURL  string
	snapshots  *cache.TTL
	inflight   *cache.Inflight
	log        *slog.Logger
}

// NewFetcher wires a Fetcher to the shared HTTP client and cache service.
func NewFetcher(client *fetch.Client, primaryURL, mirrorURL string, caches *cache.Service, ttl time.Duration) *Fetcher {
	return &Fetcher{
		client:     client,
		primaryURL: primaryURL,
		mirrorURL:  mirrorURL,
		snapshots:  caches.WorldState,
		inflight:   cache.NewInflight(ttl),
		log:        slog.Default(),
	}
}

// Fetch returns the current snapshot for a platform. Within the TTL window
// repeated calls return the identical cached snapshot without network I/O.
// This is the one resolution-layer call that can fail hard: nothing
// downstream can proceed without a snapshot.
func (f *Fetcher) Fetch(ctx context.Context, platform Platform) (*Snapshot, error) {
	platform = ValidatePlatform(string(platform))
	key := string(platform)

	if v, ok := f.snapshots.Get(key); ok {
		return v.(*Snapshot), nil
	}

	call, lead := f.inflight.Join(key)
	if !lead {
		f.log.Debug("joining in-flight world-state request", "platform", platform)
		v, err := call.Wait(ctx)
		if err != nil {
			return nil, err
		}
		return v.(*Snapshot), nil
	}

	snap, err := f.fetchRemote(ctx, platform)
	if err != nil {
		// Settling with an error clears the in-flight marker immediately,
		// so the next caller retries instead of waiting out the TTL.
		f.inflight.Settle(key, call, nil, err)
		return nil, err
	}

	f.snapshots.Set(key, snap)
	f.inflight.Settle(key, call, snap, nil)
	return snap, nil
}

func (f *Fetcher) fetchRemote(ctx context.Context, platform Platform) (*Snapshot, error) {
	f.log.Info("fetching world state", "platform", platform, "url", f.primaryURL)

	var snap Snapshot
	err := f.client.GetJSON(ctx, f.primaryURL, &snap)
	if err == nil {
		return &snap, nil
	}

	if f.mirrorURL == "" {
		return nil, fmt.Errorf("fetching world state for %s: %w", platform, err)
	}

	f.log.Warn("primary world-state source failed, trying mirror", "platform", platform, "err", err)
	snap = Snapshot{}
	if merr := f.client.GetJSON(ctx, f.mirrorURL, &snap); merr != nil {
		return nil, fmt.Errorf("fetching world state for %s: primary: %v; mirror: %w", platform, err, merr)
	}
	return &snap, nil
}

// Invalidate drops the cached snapshot for a platform; the next Fetch will
// refetch from upstream.
func (f *Fetcher) Invalidate(platform Platform) {
	f.snapshots.Delete(string(ValidatePlatform(string(platform))))
}
