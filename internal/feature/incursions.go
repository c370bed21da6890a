package feature

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Incursion is one resolved steel-path incursion node for today.
type Incursion struct {
	TS           string `json:"ts"`
	Code         string `json:"code"`
	Label        string `json:"label"`
	Faction      string `json:"faction"`
	FactionLabel string `json:"factionLabel"`
	MissionType  string `json:"missionType,omitempty"`
}

var incursionSegmentRe = regexp.MustCompile(`\d{10};`)

// splitIncursionSegments breaks feed lines into "<ts>;<codes>" segments.
// Segments are sometimes concatenated on one line, so each line is also
// split at every interior 10-digit-timestamp boundary.
func splitIncursionSegments(raw string) []string {
	var segments []string
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		starts := incursionSegmentRe.FindAllStringIndex(line, -1)
		if len(starts) == 0 {
			segments = append(segments, line)
			continue
		}
		cuts := []int{0}
		for _, m := range starts {
			if m[0] > 0 {
				cuts = append(cuts, m[0])
			}
		}
		cuts = append(cuts, len(line))
		for i := 0; i+1 < len(cuts); i++ {
			if seg := strings.TrimSpace(line[cuts[i]:cuts[i+1]]); seg != "" {
				segments = append(segments, seg)
			}
		}
	}
	return segments
}

type incursionEntry struct {
	ts   string
	code string
}

// expandIncursions selects today's segments and expands each node code
// into its own entry sharing the segment timestamp. Segments stamped with
// the literal marker "now" always win: when any are present, only they
// are returned; otherwise segments are kept when their timestamp falls on
// the current UTC day.
func expandIncursions(segments []string, now time.Time) []incursionEntry {
	y, m, d := now.UTC().Date()

	var todays, marked []incursionEntry
	for _, seg := range segments {
		tsStr, rest, ok := strings.Cut(seg, ";")
		if !ok {
			// Legacy "<ts>,<code>" lines carry a single node.
			tsStr, rest, ok = strings.Cut(seg, ",")
			if !ok {
				continue
			}
		}
		tsStr = strings.TrimSpace(tsStr)

		isNow := strings.EqualFold(tsStr, "now")
		if !isNow {
			ts, err := strconv.ParseInt(tsStr, 10, 64)
			if err != nil {
				continue
			}
			ey, em, ed := time.Unix(ts, 0).UTC().Date()
			if ey != y || em != m || ed != d {
				continue
			}
		}

		for _, code := range strings.Split(rest, ",") {
			code = strings.TrimSpace(code)
			if code == "" {
				continue
			}
			e := incursionEntry{ts: tsStr, code: code}
			if isNow {
				marked = append(marked, e)
			} else {
				todays = append(todays, e)
			}
		}
	}

	if len(marked) > 0 {
		return marked
	}
	return todays
}

// Incursions fetches the steel-path incursion feed and resolves today's
// entries. The feed covering only one platform, there is no platform
// parameter.
func (s *Service) Incursions(ctx context.Context) ([]Incursion, error) {
	raw, err := s.Client.GetText(ctx, s.Feeds.Incursions)
	if err != nil {
		return nil, fmt.Errorf("fetching incursion feed: %w", err)
	}

	entries := expandIncursions(splitIncursionSegments(raw), time.Now())

	out := make([]Incursion, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			faction := s.Factions.FactionForNode(gctx, e.code)
			factionLabel := ""
			if faction != "" {
				factionLabel, _ = s.Factions.FactionLabel(gctx, faction)
			}
			out[i] = Incursion{
				TS:           e.ts,
				Code:         e.code,
				Label:        s.Nodes.Label(e.code),
				Faction:      faction,
				FactionLabel: factionLabel,
				MissionType:  s.Nodes.Meta(e.code).Type,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
