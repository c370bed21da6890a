package feature

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

// SortieVariant is one resolved mission slot of a sortie or archon hunt.
type SortieVariant struct {
	MissionType       string `json:"missionType"`
	ModifierType      string `json:"modifierType,omitempty"`
	Node              string `json:"node"`
	ResolvedNodeLabel string `json:"resolvedNodeLabel"`
	Tileset           string `json:"tileset,omitempty"`
}

// SortieSummary is the display form of the daily sortie.
type SortieSummary struct {
	Boss     string          `json:"boss"`
	Faction  string          `json:"faction"`
	ETA      string          `json:"eta"`
	Variants []SortieVariant `json:"variants"`
}

// ArchonHuntSummary is the display form of the weekly archon hunt.
type ArchonHuntSummary struct {
	Boss     string          `json:"boss"`
	ETA      string          `json:"eta"`
	Missions []SortieVariant `json:"missions"`
}

// Sortie resolves the current daily sortie. An empty summary with an
// explanatory ETA is returned when none is live.
func (s *Service) Sortie(ctx context.Context, platform worldstate.Platform) (SortieSummary, error) {
	snap, err := s.World.Fetch(ctx, platform)
	if err != nil {
		return SortieSummary{}, fmt.Errorf("resolving sortie: %w", err)
	}
	if len(snap.Sorties) == 0 {
		return SortieSummary{ETA: "No sortie available", Variants: []SortieVariant{}}, nil
	}

	raw := snap.Sorties[0]
	return SortieSummary{
		Boss:     strings.TrimPrefix(raw.Boss, "SORTIE_BOSS_"),
		Faction:  bossFaction(raw.Boss),
		ETA:      formatETA(raw.Expiry, time.Now()),
		Variants: s.resolveVariants(raw.Variants),
	}, nil
}

// ArchonHunt resolves the current archon hunt (upstream calls these lite
// sorties; their mission slots live under Missions instead of Variants).
func (s *Service) ArchonHunt(ctx context.Context, platform worldstate.Platform) (ArchonHuntSummary, error) {
	snap, err := s.World.Fetch(ctx, platform)
	if err != nil {
		return ArchonHuntSummary{}, fmt.Errorf("resolving archon hunt: %w", err)
	}
	if len(snap.LiteSorties) == 0 {
		return ArchonHuntSummary{ETA: "No archon hunt available", Missions: []SortieVariant{}}, nil
	}

	raw := snap.LiteSorties[0]
	return ArchonHuntSummary{
		Boss:     strings.TrimPrefix(raw.Boss, "SORTIE_BOSS_"),
		ETA:      formatETA(raw.Expiry, time.Now()),
		Missions: s.resolveVariants(raw.Missions),
	}, nil
}

func (s *Service) resolveVariants(variants []worldstate.SortieVariant) []SortieVariant {
	out := make([]SortieVariant, len(variants))
	for i, v := range variants {
		label := "Unknown Node"
		if v.Node != "" {
			label = s.Nodes.Label(v.Node)
		}
		out[i] = SortieVariant{
			MissionType:       v.MissionType,
			ModifierType:      v.ModifierType,
			Node:              v.Node,
			ResolvedNodeLabel: label,
			Tileset:           v.Tileset,
		}
	}
	return out
}

// bossFaction infers the faction from known boss-tag substrings.
func bossFaction(boss string) string {
	switch {
	case strings.Contains(boss, "JACKAL"), strings.Contains(boss, "CORPUS"):
		return "Corpus"
	case strings.Contains(boss, "GRINEER"), strings.Contains(boss, "VOR"), strings.Contains(boss, "KRIL"):
		return "Grineer"
	case strings.Contains(boss, "INFESTED"), strings.Contains(boss, "LEPHANTIS"):
		return "Infested"
	}
	return ""
}

// formatETA renders time remaining until expiry as "3h 12m" or "45m",
// or "Expired" once past.
func formatETA(expiry worldstate.Date, now time.Time) string {
	remaining := expiry.Time().Sub(now)
	if remaining <= 0 {
		return "Expired"
	}
	hours := int(remaining / time.Hour)
	minutes := int(remaining%time.Hour) / int(time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
