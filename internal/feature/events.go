package feature

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

// ResolvedEvent is a goal/operation with display text attached.
type ResolvedEvent struct {
	worldstate.Goal
	ResolvedDescription string   `json:"resolvedDescription"`
	ResolvedLocation    string   `json:"resolvedLocation"`
	ResolvedFaction     string   `json:"resolvedFaction"`
	ResolvedRewards     []string `json:"resolvedRewards"`
}

// Events fetches the snapshot for a platform and resolves every live goal.
func (s *Service) Events(ctx context.Context, platform worldstate.Platform) ([]ResolvedEvent, error) {
	snap, err := s.World.Fetch(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("resolving events: %w", err)
	}

	out := make([]ResolvedEvent, len(snap.Goals))
	g, gctx := errgroup.WithContext(ctx)
	for i, goal := range snap.Goals {
		i, goal := i, goal
		g.Go(func() error {
			out[i] = s.resolveEvent(gctx, goal)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) resolveEvent(ctx context.Context, goal worldstate.Goal) ResolvedEvent {
	r := ResolvedEvent{Goal: goal, ResolvedRewards: []string{}}

	desc := goal.Desc
	if desc == "" {
		desc = goal.ToolTip
	}
	r.ResolvedDescription = s.Dict.LocalizedText(ctx, desc, "en")

	if goal.Node != "" {
		r.ResolvedLocation = s.Nodes.Label(goal.Node)
	}
	if goal.Faction != "" {
		label, _ := s.Factions.FactionLabel(ctx, goal.Faction)
		r.ResolvedFaction = label
	}

	names := s.rewardNames(goal.Reward)
	for _, interim := range goal.InterimRewards {
		names = append(names, s.rewardNames(interim)...)
	}
	r.ResolvedRewards = dedupe(names)
	return r
}
