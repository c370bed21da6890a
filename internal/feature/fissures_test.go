package feature

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

func fissureWorldState(expiry int64) string {
	return fmt.Sprintf(`{
		"ActiveMissions": [
			{"Node": "SolNode10", "MissionType": "MT_SABOTAGE", "Modifier": "VoidT1", "Expiry": {"$date": {"$numberLong": "%[1]d"}}},
			{"Node": "SolNode3", "MissionType": "MT_TERRITORY", "Modifier": "VoidT6", "Hard": true, "Expiry": {"$date": {"$numberLong": "%[1]d"}}},
			{"Node": "SolNode2", "MissionType": "MT_DEFENSE", "Modifier": "VoidT4", "Expiry": {"$date": {"$numberLong": "%[1]d"}}}
		]
	}`, expiry)
}

func TestFissuresKinds(t *testing.T) {
	expiry := time.Now().Add(time.Hour).UnixMilli()
	svc := newTestService(t, upstream{WorldState: fissureWorldState(expiry)})
	ctx := context.Background()

	all, err := svc.Fissures(ctx, worldstate.PlatformPC, FissureAll)
	if err != nil {
		t.Fatalf("Fissures: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d fissures, want 3", len(all))
	}

	normal, err := svc.Fissures(ctx, worldstate.PlatformPC, FissureNormal)
	if err != nil {
		t.Fatalf("Fissures: %v", err)
	}
	if len(normal) != 2 {
		t.Errorf("normal = %d fissures, want 2", len(normal))
	}
	for _, f := range normal {
		if f.Hard {
			t.Errorf("normal fissure %s marked hard", f.Node)
		}
	}

	steel, err := svc.Fissures(ctx, worldstate.PlatformPC, FissureSteelPath)
	if err != nil {
		t.Fatalf("Fissures: %v", err)
	}
	if len(steel) != 1 || !steel[0].Hard {
		t.Fatalf("steel path = %+v, want the single hard mission", steel)
	}
	if steel[0].Tier != "Omnia" {
		t.Errorf("tier = %q, want Omnia", steel[0].Tier)
	}
	if steel[0].MissionType != "Interception" {
		t.Errorf("mission type = %q, want Interception", steel[0].MissionType)
	}
	if steel[0].ResolvedNodeLabel != "Gaia (Earth)" {
		t.Errorf("node label = %q", steel[0].ResolvedNodeLabel)
	}
}

func TestFissureTier(t *testing.T) {
	cases := map[string]string{
		"VoidT1":  "Lith",
		"VoidT2":  "Meso",
		"VoidT3":  "Neo",
		"VoidT4":  "Axi",
		"VoidT5":  "Requiem",
		"VoidT6":  "Omnia",
		"VoidT99": "VoidT99",
	}
	for mod, want := range cases {
		if got := FissureTier(mod); got != want {
			t.Errorf("FissureTier(%q) = %q, want %q", mod, got, want)
		}
	}
}

func TestSortFissuresByTier(t *testing.T) {
	in := []Fissure{
		{Tier: "Axi"}, {Tier: "Omnia"}, {Tier: "Lith"}, {Tier: "Mystery"}, {Tier: "Neo"},
	}

	got := SortFissuresByTier(in, false)
	wantOrder := []string{"Lith", "Neo", "Axi", "Omnia", "Mystery"}
	for i, w := range wantOrder {
		if got[i].Tier != w {
			t.Errorf("default order[%d] = %q, want %q", i, got[i].Tier, w)
		}
	}

	got = SortFissuresByTier(in, true)
	wantOrder = []string{"Omnia", "Lith", "Neo", "Axi", "Mystery"}
	for i, w := range wantOrder {
		if got[i].Tier != w {
			t.Errorf("omnia-first order[%d] = %q, want %q", i, got[i].Tier, w)
		}
	}

	// The input slice is left untouched.
	if in[0].Tier != "Axi" {
		t.Errorf("input mutated: %v", in)
	}
}

func TestParseFissureKind(t *testing.T) {
	if ParseFissureKind("normal") != FissureNormal {
		t.Error("normal not recognized")
	}
	if ParseFissureKind("steelPath") != FissureSteelPath {
		t.Error("steelPath not recognized")
	}
	if ParseFissureKind("") != FissureAll || ParseFissureKind("bogus") != FissureAll {
		t.Error("unknown kinds should default to all")
	}
}
