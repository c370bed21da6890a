package feature

import (
	"context"
	"testing"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

func TestEventsResolve(t *testing.T) {
	svc := newTestService(t, upstream{
		WorldState: `{
			"Goals": [{
				"_id": {"$oid": "g1"},
				"Node": "SolNode2",
				"Faction": "Corpus02",
				"Desc": "/Lotus/Language/Events/OperationName",
				"Reward": {"items": ["/Lotus/Types/Items/MiscItems/OrokinCatalyst"]},
				"InterimRewards": [
					{"items": ["/Lotus/Types/Items/MiscItems/Forma"]},
					{"items": ["/Lotus/Types/Items/MiscItems/OrokinCatalyst"]}
				]
			}]
		}`,
		Dict:     `{"/Lotus/Language/Events/OperationName": "Operation: Test"}`,
		Factions: `{"FC_CORPUS": {"name": "Corpus"}}`,
		Regions:  `[]`,
	})

	events, err := svc.Events(context.Background(), worldstate.PlatformPC)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	ev := events[0]
	if ev.ResolvedDescription != "Operation: Test" {
		t.Errorf("description = %q", ev.ResolvedDescription)
	}
	if ev.ResolvedLocation != "Aphrodite (Venus)" {
		t.Errorf("location = %q", ev.ResolvedLocation)
	}
	if ev.ResolvedFaction != "CORPUS" {
		t.Errorf("faction = %q", ev.ResolvedFaction)
	}

	// Main and interim rewards merge and dedupe.
	want := []string{"Orokin Catalyst", "Forma"}
	if len(ev.ResolvedRewards) != len(want) {
		t.Fatalf("rewards = %v, want %v", ev.ResolvedRewards, want)
	}
	for i := range want {
		if ev.ResolvedRewards[i] != want[i] {
			t.Errorf("reward[%d] = %q, want %q", i, ev.ResolvedRewards[i], want[i])
		}
	}
}

func TestEventsToolTipFallback(t *testing.T) {
	svc := newTestService(t, upstream{
		WorldState: `{"Goals": [{"ToolTip": "Plain tooltip text"}]}`,
	})

	events, err := svc.Events(context.Background(), worldstate.PlatformPC)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if events[0].ResolvedDescription != "Plain tooltip text" {
		t.Errorf("description = %q, want the tooltip", events[0].ResolvedDescription)
	}
}
