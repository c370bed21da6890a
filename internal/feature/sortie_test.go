package feature

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

func TestSortieResolve(t *testing.T) {
	expiry := time.Now().Add(5*time.Hour + 30*time.Minute).UnixMilli()
	svc := newTestService(t, upstream{
		WorldState: fmt.Sprintf(`{
			"Sorties": [{
				"_id": {"$oid": "s1"},
				"Expiry": {"$date": {"$numberLong": "%d"}},
				"Boss": "SORTIE_BOSS_KRIL",
				"Variants": [
					{"missionType": "MT_EXTERMINATION", "modifierType": "SORTIE_MODIFIER_LOW_ENERGY", "node": "SolNode000", "tileset": "GrineerForest"},
					{"missionType": "MT_DEFENSE", "modifierType": "SORTIE_MODIFIER_ARMOR", "node": "SolNode3", "tileset": "GrineerFortress"}
				]
			}]
		}`, expiry),
	})

	sortie, err := svc.Sortie(context.Background(), worldstate.PlatformPC)
	if err != nil {
		t.Fatalf("Sortie: %v", err)
	}

	if sortie.Boss != "KRIL" {
		t.Errorf("boss = %q, want KRIL", sortie.Boss)
	}
	if sortie.Faction != "Grineer" {
		t.Errorf("faction = %q, want Grineer", sortie.Faction)
	}
	if sortie.ETA != "5h 29m" && sortie.ETA != "5h 30m" {
		t.Errorf("eta = %q, want about 5h 30m", sortie.ETA)
	}
	if len(sortie.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(sortie.Variants))
	}
	if sortie.Variants[0].ResolvedNodeLabel != "SUISEI (Mercury)" {
		t.Errorf("variant label = %q", sortie.Variants[0].ResolvedNodeLabel)
	}
}

func TestSortieAbsent(t *testing.T) {
	svc := newTestService(t, upstream{WorldState: `{}`})

	sortie, err := svc.Sortie(context.Background(), worldstate.PlatformPC)
	if err != nil {
		t.Fatalf("Sortie: %v", err)
	}
	if sortie.ETA != "No sortie available" || len(sortie.Variants) != 0 {
		t.Errorf("empty sortie = %+v", sortie)
	}
}

func TestArchonHuntResolve(t *testing.T) {
	expiry := time.Now().Add(30 * time.Minute).UnixMilli()
	svc := newTestService(t, upstream{
		WorldState: fmt.Sprintf(`{
			"LiteSorties": [{
				"Expiry": {"$date": {"$numberLong": "%d"}},
				"Boss": "SORTIE_BOSS_AMAR",
				"Missions": [{"missionType": "MT_INTEL", "node": "SolNode2"}]
			}]
		}`, expiry),
	})

	hunt, err := svc.ArchonHunt(context.Background(), worldstate.PlatformPC)
	if err != nil {
		t.Fatalf("ArchonHunt: %v", err)
	}
	if hunt.Boss != "AMAR" {
		t.Errorf("boss = %q, want AMAR", hunt.Boss)
	}
	if hunt.ETA != "29m" && hunt.ETA != "30m" {
		t.Errorf("eta = %q, want about 30m", hunt.ETA)
	}
	if len(hunt.Missions) != 1 || hunt.Missions[0].ResolvedNodeLabel != "Aphrodite (Venus)" {
		t.Errorf("missions = %+v", hunt.Missions)
	}
}

func TestFormatETA(t *testing.T) {
	// Whole millis on both sides, or the sub-millisecond remainder in now
	// floors "2h 5m" down to "2h 4m".
	now := time.Now().Truncate(time.Millisecond)
	mk := func(d time.Duration) worldstate.Date {
		return worldstate.Date{Millis: now.Add(d).UnixMilli()}
	}

	if got := formatETA(mk(2*time.Hour+5*time.Minute), now); got != "2h 5m" {
		t.Errorf("eta = %q, want 2h 5m", got)
	}
	if got := formatETA(mk(25*time.Minute), now); got != "25m" {
		t.Errorf("eta = %q, want 25m", got)
	}
	if got := formatETA(mk(-time.Minute), now); got != "Expired" {
		t.Errorf("eta = %q, want Expired", got)
	}
}

func TestBossFaction(t *testing.T) {
	cases := map[string]string{
		"SORTIE_BOSS_JACKAL":    "Corpus",
		"SORTIE_BOSS_VOR":       "Grineer",
		"SORTIE_BOSS_LEPHANTIS": "Infested",
		"SORTIE_BOSS_MYSTERY":   "",
	}
	for boss, want := range cases {
		if got := bossFaction(boss); got != want {
			t.Errorf("bossFaction(%q) = %q, want %q", boss, got, want)
		}
	}
}
