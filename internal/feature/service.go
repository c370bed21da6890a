// Package feature turns raw world-state entities and text feeds into the
// resolved records the dashboard endpoints serve. Each file covers one
// feature; all of them share the resolver set wired into Service.
package feature

import (
	"log/slog"

	"github.com/Uraniumking007/frametracking/internal/cache"
	"github.com/Uraniumking007/frametracking/internal/fetch"
	"github.com/Uraniumking007/frametracking/internal/resolve"
	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

// FeedURLs are the plain-text and JSON side feeds that live outside the
// world-state snapshot.
type FeedURLs struct {
	Arbitration string
	Incursions  string
	BountyCycle string
}

// Service resolves world-state entities into display-ready records.
type Service struct {
	World     *worldstate.Fetcher
	Nodes     *resolve.NodeResolver
	Items     *resolve.ItemResolver
	Dict      *resolve.DictResolver
	Factions  *resolve.FactionResolver
	Client    *fetch.Client
	Feeds     FeedURLs
	Rotations *cache.TTL
	log       *slog.Logger
}

// NewService wires the feature layer to its resolvers and feeds.
func NewService(world *worldstate.Fetcher, nodes *resolve.NodeResolver, items *resolve.ItemResolver, dict *resolve.DictResolver, factions *resolve.FactionResolver, client *fetch.Client, feeds FeedURLs, caches *cache.Service) *Service {
	return &Service{
		World:     world,
		Nodes:     nodes,
		Items:     items,
		Dict:      dict,
		Factions:  factions,
		Client:    client,
		Feeds:     feeds,
		Rotations: caches.Rotations,
		log:       slog.Default(),
	}
}
