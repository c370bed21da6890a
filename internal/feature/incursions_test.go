package feature

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestSplitIncursionSegments(t *testing.T) {
	// Two segments concatenated on one line, one on its own.
	raw := "1700000000;SolNode1,SolNode21700003600;SolNode3\n1700007200;SolNode4\n"
	segments := splitIncursionSegments(raw)

	want := []string{
		"1700000000;SolNode1,SolNode2",
		"1700003600;SolNode3",
		"1700007200;SolNode4",
	}
	if len(segments) != len(want) {
		t.Fatalf("segments = %v, want %v", segments, want)
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment[%d] = %q, want %q", i, segments[i], want[i])
		}
	}
}

func TestExpandIncursionsTodayFilter(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	today := now.Add(-3 * time.Hour).Unix()
	yesterday := now.Add(-30 * time.Hour).Unix()

	segments := []string{
		fmt.Sprintf("%d;SolNode1,SolNode2", today),
		fmt.Sprintf("%d;SolNode3", yesterday),
	}
	entries := expandIncursions(segments, now)

	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want 2 from today's segment", entries)
	}
	// Both expanded records share the segment timestamp.
	wantTS := fmt.Sprintf("%d", today)
	if entries[0].ts != wantTS || entries[1].ts != wantTS {
		t.Errorf("timestamps = %q, %q, want %q", entries[0].ts, entries[1].ts, wantTS)
	}
	if entries[0].code != "SolNode1" || entries[1].code != "SolNode2" {
		t.Errorf("codes = %q, %q", entries[0].code, entries[1].code)
	}
}

func TestExpandIncursionsNowMarkerWins(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
	today := now.Add(-time.Hour).Unix()

	segments := []string{
		fmt.Sprintf("%d;SolNode1", today),
		"now;SolNode2,SolNode3",
	}
	entries := expandIncursions(segments, now)

	// Marker segments take absolute precedence over day-matched ones.
	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want only the marked ones", entries)
	}
	if entries[0].code != "SolNode2" || entries[1].code != "SolNode3" {
		t.Errorf("codes = %q, %q", entries[0].code, entries[1].code)
	}
	if entries[0].ts != "now" {
		t.Errorf("ts = %q, want the literal marker", entries[0].ts)
	}
}

func TestExpandIncursionsNowMarkerAnyCase(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

	entries := expandIncursions([]string{"Now;SolNode2,SolNode3"}, now)
	if len(entries) != 2 {
		t.Fatalf("entries = %+v, want 2 from the capitalized marker", entries)
	}
	if entries[0].code != "SolNode2" || entries[1].code != "SolNode3" {
		t.Errorf("codes = %q, %q", entries[0].code, entries[1].code)
	}
}

func TestIncursionsEndToEnd(t *testing.T) {
	ts := time.Now().UTC().Add(-time.Hour)
	if ts.Day() != time.Now().UTC().Day() {
		ts = time.Now().UTC() // near midnight, stay inside today
	}
	feed := fmt.Sprintf("%d;SolNode1,SolNode2\n", ts.Unix())

	svc := newTestService(t, upstream{
		Incursions: feed,
		Factions:   `{"FC_CORPUS": {"name": "Corpus"}}`,
		Regions:    `[{"nodeCode": "SolNode1", "faction": "FC_CORPUS"}]`,
	})

	incursions, err := svc.Incursions(context.Background())
	if err != nil {
		t.Fatalf("Incursions: %v", err)
	}
	if len(incursions) != 2 {
		t.Fatalf("expected 2 incursions, got %d", len(incursions))
	}

	first := incursions[0]
	if first.Code != "SolNode1" {
		t.Errorf("code = %q", first.Code)
	}
	if first.Label != "Galatea (Neptune)" {
		t.Errorf("label = %q", first.Label)
	}
	// The region table names the faction "Corpus"; relabeling that through
	// the faction table lands on the FC_CORPUS key, prefix stripped.
	if first.Faction != "Corpus" || first.FactionLabel != "CORPUS" {
		t.Errorf("faction = %q / %q", first.Faction, first.FactionLabel)
	}
	if first.MissionType != "Capture" {
		t.Errorf("mission type = %q, want Capture", first.MissionType)
	}

	second := incursions[1]
	if second.TS != first.TS {
		t.Errorf("expanded records should share the timestamp: %q vs %q", first.TS, second.TS)
	}
}
