package feature

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

// NewsItem is one display-ready news entry.
type NewsItem struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	ETA       string          `json:"eta"`
	URL       string          `json:"url,omitempty"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Priority  bool            `json:"priority,omitempty"`
	Community bool            `json:"community,omitempty"`
	Date      worldstate.Date `json:"date"`
}

// News fetches the snapshot and maps its Events into news items. Entries
// without an English message or a date are skipped; the result is
// reversed so the newest entry comes first.
func (s *Service) News(ctx context.Context, platform worldstate.Platform) ([]NewsItem, error) {
	snap, err := s.World.Fetch(ctx, platform)
	if err != nil {
		return nil, fmt.Errorf("resolving news: %w", err)
	}

	items := []NewsItem{}
	for _, ev := range snap.Events {
		title := englishMessage(ev.Messages)
		if title == "" || ev.Date.IsZero() {
			continue
		}
		items = append(items, NewsItem{
			ID:        string(ev.ID),
			Title:     stripMarkup(title),
			ETA:       ev.Date.Time().Format(time.RFC3339),
			URL:       ev.Prop,
			ImageURL:  ev.ImageURL,
			Priority:  ev.Priority,
			Community: ev.Community,
			Date:      ev.Date,
		})
	}

	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

func englishMessage(messages []worldstate.NewsMessage) string {
	for _, m := range messages {
		if m.LanguageCode == "en" {
			return m.Message
		}
	}
	return ""
}

// stripMarkup flattens any HTML in a message to its text content.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
