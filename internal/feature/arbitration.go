package feature

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Uraniumking007/frametracking/internal/resolve"
)

// Rotation is one arbitration schedule entry.
type Rotation struct {
	TS    int64            `json:"ts"` // epoch millis
	Code  string           `json:"code"`
	Label string           `json:"label,omitempty"`
	Meta  resolve.NodeMeta `json:"meta,omitempty"`
}

// ArbitrationSchedule is the parsed and partially-resolved feed.
type ArbitrationSchedule struct {
	Rotations []Rotation `json:"rotations"`
}

// ParseArbitrationSchedule parses the "unixSeconds,nodeCode" line feed.
// Malformed lines are dropped; the result is sorted ascending by time.
func ParseArbitrationSchedule(text string) []Rotation {
	var rotations []Rotation
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tsStr, code, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		ts, err := strconv.ParseInt(strings.TrimSpace(tsStr), 10, 64)
		if err != nil {
			continue
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		rotations = append(rotations, Rotation{TS: ts * 1000, Code: code})
	}
	sort.Slice(rotations, func(i, j int) bool { return rotations[i].TS < rotations[j].TS })
	return rotations
}

// Arbitration fetches the schedule feed and resolves labels for the
// rotations starting within the next two hours (at most ten of them).
// Per-node resolutions go through the rotation cache so refreshes of the
// feed reuse recent lookups.
func (s *Service) Arbitration(ctx context.Context) (ArbitrationSchedule, error) {
	text, err := s.Client.GetText(ctx, s.Feeds.Arbitration)
	if err != nil {
		return ArbitrationSchedule{}, fmt.Errorf("fetching arbitration schedule: %w", err)
	}

	rotations := ParseArbitrationSchedule(text)

	horizon := time.Now().Add(2 * time.Hour).UnixMilli()
	resolved := 0
	for i := range rotations {
		if rotations[i].TS > horizon || resolved >= 10 {
			break
		}
		label, meta := s.rotationResolution(rotations[i].Code)
		rotations[i].Label = label
		rotations[i].Meta = meta
		resolved++
	}
	return ArbitrationSchedule{Rotations: rotations}, nil
}

type rotationEntry struct {
	label string
	meta  resolve.NodeMeta
}

func (s *Service) rotationResolution(code string) (string, resolve.NodeMeta) {
	if v, ok := s.Rotations.Get(code); ok {
		e := v.(rotationEntry)
		return e.label, e.meta
	}
	e := rotationEntry{label: s.Nodes.Label(code), meta: s.Nodes.Meta(code)}
	s.Rotations.Set(code, e)
	return e.label, e.meta
}

// Current returns the latest rotation already started, or false when the
// schedule has none.
func (a ArbitrationSchedule) Current(now time.Time) (Rotation, bool) {
	nowMS := now.UnixMilli()
	var cur Rotation
	found := false
	for _, r := range a.Rotations {
		if r.TS > nowMS {
			break
		}
		cur = r
		found = true
	}
	return cur, found
}

// Upcoming returns up to limit rotations starting after now.
func (a ArbitrationSchedule) Upcoming(now time.Time, limit int) []Rotation {
	nowMS := now.UnixMilli()
	out := []Rotation{}
	for _, r := range a.Rotations {
		if r.TS <= nowMS {
			continue
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}

// FormatArbitrationLine renders "<type> - <enemy> @ <label>", degrading
// to whichever parts exist and a placeholder when none do.
func FormatArbitrationLine(missionType, enemy, label string) string {
	var parts []string
	if missionType != "" {
		parts = append(parts, missionType)
	}
	if enemy != "" {
		parts = append(parts, enemy)
	}
	prefix := strings.Join(parts, " - ")
	switch {
	case prefix != "" && label != "":
		return prefix + " @ " + label
	case label != "":
		return label
	case prefix != "":
		return prefix
	}
	return resolve.Placeholder
}
