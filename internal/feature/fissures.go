package feature

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

// FissureKind selects which subset of active missions to return.
type FissureKind string

const (
	FissureNormal    FissureKind = "normal"
	FissureSteelPath FissureKind = "steelPath"
	FissureAll       FissureKind = "all"
)

// ParseFissureKind maps a query value to a kind, defaulting to all.
func ParseFissureKind(s string) FissureKind {
	switch FissureKind(s) {
	case FissureNormal, FissureSteelPath:
		return FissureKind(s)
	}
	return FissureAll
}

// Fissure is one resolved void fissure mission.
type Fissure struct {
	Node              string `json:"node"`
	ResolvedNodeLabel string `json:"resolvedNodeLabel"`
	Tier              string `json:"tier"`
	MissionType       string `json:"missionType"`
	Expiry            int64  `json:"expiry"`
	TimeLeft          string `json:"timeLeft,omitempty"`
	Hard              bool   `json:"hard,omitempty"`
}

var fissureTiers = map[string]string{
	"VoidT1": "Lith",
	"VoidT2": "Meso",
	"VoidT3": "Neo",
	"VoidT4": "Axi",
	"VoidT5": "Requiem",
	"VoidT6": "Omnia",
}

// FissureTier maps a relic-era modifier to its display name; unknown
// modifiers pass through unchanged.
func FissureTier(modifier string) string {
	if tier, ok := fissureTiers[modifier]; ok {
		return tier
	}
	return modifier
}

// Fissures fetches the snapshot and resolves the active missions matching
// the requested kind. Steel-path missions carry the Hard marker.
func (s *Service) Fissures(ctx context.Context, platform worldstate.Platform, kind FissureKind) ([]Fissure, error) {
	snap, err := s.World.Fetch(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("resolving fissures: %w", err)
	}

	now := time.Now()
	out := []Fissure{}
	for _, m := range snap.ActiveMissions {
		switch kind {
		case FissureNormal:
			if m.Hard {
				continue
			}
		case FissureSteelPath:
			if !m.Hard {
				continue
			}
		}
		label := "Unknown Node"
		if m.Node != "" {
			label = s.Nodes.Label(m.Node)
		}
		out = append(out, Fissure{
			Node:              m.Node,
			ResolvedNodeLabel: label,
			Tier:              FissureTier(m.Modifier),
			MissionType:       MissionTypeLabel(m.MissionType),
			Expiry:            m.Expiry.Millis,
			TimeLeft:          fissureTimeLeft(m.Expiry, now),
			Hard:              m.Hard,
		})
	}
	return out, nil
}

func fissureTimeLeft(expiry worldstate.Date, now time.Time) string {
	if expiry.IsZero() {
		return ""
	}
	remaining := expiry.Time().Sub(now)
	if remaining <= 0 {
		return "Expired"
	}
	mins := int(remaining / time.Minute)
	secs := int(remaining%time.Minute) / int(time.Second)
	return fmt.Sprintf("%dm %ds", mins, secs)
}

var (
	fissureTierOrder      = []string{"Lith", "Neo", "Meso", "Axi", "Requiem", "Omnia"}
	fissureTierOrderOmnia = []string{"Omnia", "Lith", "Neo", "Meso", "Axi", "Requiem"}
)

// SortFissuresByTier orders fissures by relic era, optionally moving
// Omnia to the front. Unknown tiers sort after known ones, alphabetically.
func SortFissuresByTier(fissures []Fissure, omniaFirst bool) []Fissure {
	order := fissureTierOrder
	if omniaFirst {
		order = fissureTierOrderOmnia
	}
	rank := func(tier string) int {
		for i, t := range order {
			if t == tier {
				return i
			}
		}
		return -1
	}

	sorted := make([]Fissure, len(fissures))
	copy(sorted, fissures)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := rank(sorted[i].Tier), rank(sorted[j].Tier)
		switch {
		case ri != -1 && rj != -1:
			return ri < rj
		case ri != -1:
			return true
		case rj != -1:
			return false
		}
		return strings.Compare(sorted[i].Tier, sorted[j].Tier) < 0
	})
	return sorted
}
