package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/Uraniumking007/frametracking/internal/fetch"
)

// LocaleKeyPrefix marks strings that are localization keys rather than
// already-human-readable text.
const LocaleKeyPrefix = "/Lotus/Language/"

var localeVariableSegmentRe = regexp.MustCompile(`^/Lotus/Language/[^/]+/`)

// DictResolver fetches and caches per-language localization tables from a
// primary source with a fallback mirror, and resolves localization keys
// with progressively fuzzier matching. Tables live for the process
// lifetime; ClearCache is the only invalidation.
type DictResolver struct {
	client      *fetch.Client
	primaryURL  string // template, %s = language code
	fallbackURL string

	mu     sync.Mutex
	tables map[string]map[string]string
	log    *slog.Logger
}

// NewDictResolver wires a resolver to the shared HTTP client.
func NewDictResolver(client *fetch.Client, primaryURL, fallbackURL string) *DictResolver {
	return &DictResolver{
		client:      client,
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		tables:      make(map[string]map[string]string),
		log:         slog.Default(),
	}
}

// Dictionary returns the table for a language, loading it on first use.
// Both sources failing caches an empty table; this never returns an error.
func (d *DictResolver) Dictionary(ctx context.Context, language string) map[string]string {
	lang := strings.ToLower(language)
	if lang == "" {
		lang = "en"
	}

	d.mu.Lock()
	if table, ok := d.tables[lang]; ok {
		d.mu.Unlock()
		return table
	}
	d.mu.Unlock()

	table := d.fetchTable(ctx, lang)

	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.tables[lang]; ok {
		return existing
	}
	d.tables[lang] = table
	return table
}

func (d *DictResolver) fetchTable(ctx context.Context, lang string) map[string]string {
	for _, tmpl := range []string{d.primaryURL, d.fallbackURL} {
		if tmpl == "" {
			continue
		}
		url := fmt.Sprintf(tmpl, lang)
		var table map[string]string
		if err := d.client.GetJSON(ctx, url, &table); err != nil {
			d.log.Warn("fetching dictionary", "lang", lang, "url", url, "err", err)
			continue
		}
		if table != nil {
			return table
		}
	}
	return map[string]string{}
}

// LocalizedText resolves a localization key to display text. Strings
// without the locale key prefix pass through unchanged with no fetch, and
// any failure degrades to returning the key itself.
func (d *DictResolver) LocalizedText(ctx context.Context, key, language string) string {
	if key == "" {
		return ""
	}
	if !strings.HasPrefix(key, LocaleKeyPrefix) {
		return key
	}

	dict := d.Dictionary(ctx, language)

	if v, ok := dict[key]; ok && v != "" {
		return v
	}

	lastPart := key[strings.LastIndex(key, "/")+1:]

	// Progressively looser key shapes.
	candidates := []string{
		lastPart,
		strings.TrimPrefix(key, LocaleKeyPrefix),
		localeVariableSegmentRe.ReplaceAllString(key, ""),
	}
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		if v, ok := dict[cand]; ok && v != "" {
			return v
		}
	}

	// Fuzzy suffix match: the first table key, in sorted order, sharing
	// the candidate's tail. Sorting keeps ties stable across calls.
	if lastPart != "" {
		keys := make([]string, 0, len(dict))
		for k := range dict {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, dictKey := range keys {
			seg := dictKey[strings.LastIndex(dictKey, "/")+1:]
			if strings.HasSuffix(dictKey, lastPart) || (seg != "" && strings.Contains(lastPart, seg)) {
				return dict[dictKey]
			}
		}
	}

	return key
}

// ClearCache drops every loaded table (test isolation).
func (d *DictResolver) ClearCache() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables = make(map[string]map[string]string)
}
