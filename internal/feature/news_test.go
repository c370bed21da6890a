package feature

import (
	"context"
	"testing"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

func TestNewsResolve(t *testing.T) {
	svc := newTestService(t, upstream{
		WorldState: `{
			"Events": [
				{
					"_id": {"$oid": "n1"},
					"Messages": [
						{"LanguageCode": "de", "Message": "Altes"},
						{"LanguageCode": "en", "Message": "Oldest news"}
					],
					"Prop": "https://example.com/old",
					"Date": {"$date": {"$numberLong": "1700000000000"}}
				},
				{
					"_id": {"$oid": "n2"},
					"Messages": [{"LanguageCode": "fr", "Message": "Pas d'anglais"}],
					"Date": {"$date": {"$numberLong": "1700100000000"}}
				},
				{
					"_id": {"$oid": "n3"},
					"Messages": [{"LanguageCode": "en", "Message": "No date"}]
				},
				{
					"_id": {"$oid": "n4"},
					"Messages": [{"LanguageCode": "en", "Message": "<b>Newest</b> news"}],
					"ImageUrl": "https://example.com/img.png",
					"Priority": true,
					"Date": {"$date": {"$numberLong": "1700200000000"}}
				}
			]
		}`,
	})

	news, err := svc.News(context.Background(), worldstate.PlatformPC)
	if err != nil {
		t.Fatalf("News: %v", err)
	}

	// Entries without an English message or a date are dropped; the rest
	// come back newest first.
	if len(news) != 2 {
		t.Fatalf("expected 2 news items, got %d: %+v", len(news), news)
	}
	if news[0].ID != "n4" || news[1].ID != "n1" {
		t.Errorf("order = %s, %s, want n4, n1", news[0].ID, news[1].ID)
	}
	if news[0].Title != "Newest news" {
		t.Errorf("markup not stripped: %q", news[0].Title)
	}
	if !news[0].Priority || news[0].ImageURL != "https://example.com/img.png" {
		t.Errorf("metadata lost: %+v", news[0])
	}
	if news[1].Title != "Oldest news" || news[1].URL != "https://example.com/old" {
		t.Errorf("oldest item = %+v", news[1])
	}
	if news[1].ETA == "" {
		t.Error("missing formatted date")
	}
}
