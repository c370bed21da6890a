package feature

import (
	"context"
	"fmt"
)

// Bounties fetches the oracle bounty-cycle document and annotates every
// bounty carrying a node field with its resolved label. The document's
// shape is not pinned upstream, so it is traversed loosely: the root may
// be an object with per-syndicate bounty arrays under "bounties", or a
// bare array of bounty objects.
func (s *Service) Bounties(ctx context.Context) (any, error) {
	var doc any
	if err := s.Client.GetJSON(ctx, s.Feeds.BountyCycle, &doc); err != nil {
		return nil, fmt.Errorf("fetching bounty cycle: %w", err)
	}

	switch root := doc.(type) {
	case map[string]any:
		if bySyndicate, ok := root["bounties"].(map[string]any); ok {
			resolved := make(map[string]any, len(bySyndicate))
			for tag, v := range bySyndicate {
				if list, ok := v.([]any); ok {
					resolved[tag] = s.resolveBountyList(list)
				} else {
					resolved[tag] = v
				}
			}
			root["bounties"] = resolved
		}
		return root, nil
	case []any:
		return s.resolveBountyList(root), nil
	}
	return doc, nil
}

func (s *Service) resolveBountyList(list []any) []any {
	out := make([]any, len(list))
	for i, v := range list {
		bounty, ok := v.(map[string]any)
		if !ok {
			out[i] = v
			continue
		}
		if node, ok := bounty["node"].(string); ok && node != "" {
			bounty["resolvedNodeLabel"] = s.Nodes.Label(node)
		}
		out[i] = bounty
	}
	return out
}
