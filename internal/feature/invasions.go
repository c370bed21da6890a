package feature

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

// ResolvedInvasion is an invasion with node, factions and both reward
// sides resolved into one display line.
type ResolvedInvasion struct {
	worldstate.Invasion
	ResolvedNodeLabel       string `json:"resolvedNodeLabel"`
	ResolvedAttackerFaction string `json:"resolvedAttackerFaction"`
	ResolvedDefenderFaction string `json:"resolvedDefenderFaction"`
	ResolvedRewardText      string `json:"resolvedRewardText"`
}

// Invasions fetches the snapshot for a platform and resolves every live
// invasion.
func (s *Service) Invasions(ctx context.Context, platform worldstate.Platform) ([]ResolvedInvasion, error) {
	snap, err := s.World.Fetch(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("resolving invasions: %w", err)
	}

	out := make([]ResolvedInvasion, len(snap.Invasions))
	g, gctx := errgroup.WithContext(ctx)
	for i, inv := range snap.Invasions {
		i, inv := i, inv
		g.Go(func() error {
			out[i] = s.resolveInvasion(gctx, inv)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) resolveInvasion(ctx context.Context, inv worldstate.Invasion) ResolvedInvasion {
	r := ResolvedInvasion{Invasion: inv}

	r.ResolvedNodeLabel = s.Nodes.Label(inv.Node)
	if inv.Faction != "" {
		label, _ := s.Factions.FactionLabel(ctx, inv.Faction)
		r.ResolvedAttackerFaction = label
	}
	if inv.DefenderFaction != "" {
		label, _ := s.Factions.FactionLabel(ctx, inv.DefenderFaction)
		r.ResolvedDefenderFaction = label
	}

	var sides []string
	if atk := s.countedRewardText(inv.AttackerReward); atk != "" {
		sides = append(sides, "Atk: "+atk)
	}
	if def := s.countedRewardText(inv.DefenderReward); def != "" {
		sides = append(sides, "Def: "+def)
	}
	r.ResolvedRewardText = strings.Join(sides, "  |  ")
	return r
}

// countedRewardText renders one invasion side's counted items as
// "<n>x Name + <n>x Name".
func (s *Service) countedRewardText(reward worldstate.MissionReward) string {
	var parts []string
	for _, it := range reward.CountedItems {
		if it.ItemType == "" {
			continue
		}
		name := s.Items.Name(it.ItemType)
		if it.ItemCount > 0 {
			parts = append(parts, fmt.Sprintf("%dx %s", it.ItemCount, name))
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, " + ")
}
