package feature

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

// ResolvedAlert is an alert with every internal identifier replaced by
// display text. The raw entity rides along for clients that want it.
type ResolvedAlert struct {
	worldstate.Alert
	ResolvedDescription string   `json:"resolvedDescription"`
	ResolvedNodeLabel   string   `json:"resolvedNodeLabel"`
	ResolvedFaction     string   `json:"resolvedFaction"`
	ResolvedRewards     []string `json:"resolvedRewards"`
}

// Alerts fetches the snapshot for a platform and resolves every live alert.
func (s *Service) Alerts(ctx context.Context, platform worldstate.Platform) ([]ResolvedAlert, error) {
	snap, err := s.World.Fetch(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("resolving alerts: %w", err)
	}

	out := make([]ResolvedAlert, len(snap.Alerts))
	g, gctx := errgroup.WithContext(ctx)
	for i, alert := range snap.Alerts {
		i, alert := i, alert
		g.Go(func() error {
			out[i] = s.resolveAlert(gctx, alert)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) resolveAlert(ctx context.Context, alert worldstate.Alert) ResolvedAlert {
	r := ResolvedAlert{Alert: alert, ResolvedRewards: []string{}}

	r.ResolvedDescription = s.Dict.LocalizedText(ctx, alert.MissionInfo.Description, "en")

	node := alert.Node
	if node == "" {
		node = alert.MissionInfo.Location
	}
	if node != "" {
		r.ResolvedNodeLabel = s.Nodes.Label(node)
	}

	if alert.MissionInfo.Faction != "" {
		label, _ := s.Factions.FactionLabel(ctx, alert.MissionInfo.Faction)
		r.ResolvedFaction = label
	}

	r.ResolvedRewards = s.rewardNames(alert.MissionInfo.MissionReward)
	return r
}

// rewardNames flattens a reward block into display strings. An itemString
// is already display text and short-circuits item-path resolution.
func (s *Service) rewardNames(reward worldstate.MissionReward) []string {
	if reward.ItemString != "" {
		return []string{reward.ItemString}
	}

	var names []string
	for _, path := range reward.Items {
		names = append(names, s.Items.Name(path))
	}
	for _, it := range reward.CountedItems {
		name := s.Items.Name(it.ItemType)
		if it.ItemCount > 1 {
			name = fmt.Sprintf("%dx %s", it.ItemCount, name)
		}
		names = append(names, name)
	}
	return dedupe(names)
}

// dedupe drops repeated strings, keeping first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if out == nil {
		return []string{}
	}
	return out
}
