package resolve

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Uraniumking007/frametracking/internal/fetch"
)

// FactionProvenance records how a faction label was produced, so callers
// (and tests) can tell a real table match from a degraded guess.
type FactionProvenance string

const (
	// FactionMatch: a faction's display name contains the cleaned tag;
	// the label is that faction's key minus its FC_ prefix.
	FactionMatch FactionProvenance = "match"
	// FactionCleanedTag: the faction table is unavailable; the label is
	// the tag with digits removed.
	FactionCleanedTag FactionProvenance = "cleaned-tag"
	// FactionLastResort: the table had no match; the label is the cleaned
	// tag reduced to letters.
	FactionLastResort FactionProvenance = "last-resort"
)

// FactionResolver maps node codes to factions using two upstream tables
// (a faction index and a region list). Both tables are fetched once per
// process; a failed fetch is remembered as absent and label resolution
// degrades to cleaning up the raw tag.
type FactionResolver struct {
	client      *fetch.Client
	factionsURL string
	regionsURL  string

	mu       sync.Mutex
	fetched  bool
	factions any
	regions  any
	log      *slog.Logger
}

// NewFactionResolver wires a resolver to the shared HTTP client.
func NewFactionResolver(client *fetch.Client, factionsURL, regionsURL string) *FactionResolver {
	return &FactionResolver{
		client:      client,
		factionsURL: factionsURL,
		regionsURL:  regionsURL,
		log:         slog.Default(),
	}
}

func (f *FactionResolver) load(ctx context.Context) (any, any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetched {
		return f.factions, f.regions
	}
	f.fetched = true

	if f.factionsURL != "" {
		if err := f.client.GetJSON(ctx, f.factionsURL, &f.factions); err != nil {
			f.log.Warn("fetching faction table", "err", err)
			f.factions = nil
		}
	}
	if f.regionsURL != "" {
		if err := f.client.GetJSON(ctx, f.regionsURL, &f.regions); err != nil {
			f.log.Warn("fetching region table", "err", err)
			f.regions = nil
		}
	}
	return f.factions, f.regions
}

// ClearCache forces the next call to refetch both tables (test isolation).
func (f *FactionResolver) ClearCache() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = false
	f.factions = nil
	f.regions = nil
}

// FactionForNode finds the faction controlling a node. The region table's
// shape is not pinned upstream, so the traversal accepts both an array of
// region objects and a map keyed by node code, and matches the code
// case-insensitively against any string field or string array member.
func (f *FactionResolver) FactionForNode(ctx context.Context, code string) string {
	if code == "" {
		return ""
	}
	factions, regions := f.load(ctx)
	if regions == nil {
		return ""
	}

	norm := NormalizeNodeCode(code)

	var entries []any
	switch r := regions.(type) {
	case []any:
		entries = r
	case map[string]any:
		if v, ok := r[norm]; ok {
			return f.factionName(factions, factionRef(v))
		}
		if v, ok := r[code]; ok {
			return f.factionName(factions, factionRef(v))
		}
		for _, v := range r {
			entries = append(entries, v)
		}
	default:
		return ""
	}

	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if regionMatches(obj, norm) || regionMatches(obj, code) {
			return f.factionName(factions, factionRef(obj))
		}
	}
	return ""
}

// regionMatches reports whether any string field or array-of-strings
// member of the region object equals the code, ignoring case. nodeCode
// being the conventional field name, it gets checked first.
func regionMatches(obj map[string]any, code string) bool {
	if s, ok := obj["nodeCode"].(string); ok && strings.EqualFold(s, code) {
		return true
	}
	for _, v := range obj {
		switch t := v.(type) {
		case string:
			if strings.EqualFold(t, code) {
				return true
			}
		case []any:
			for _, m := range t {
				if s, ok := m.(string); ok && strings.EqualFold(s, code) {
					return true
				}
			}
		}
	}
	return false
}

// factionRef digs the faction reference out of a region entry. It can be
// a numeric index, a string key, or already a display name.
func factionRef(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}
	for _, key := range []string{"faction", "factionIndex", "fc"} {
		if ref, ok := obj[key]; ok {
			return ref
		}
	}
	return nil
}

// factionName resolves a faction reference against the faction table.
func (f *FactionResolver) factionName(factions, ref any) string {
	if ref == nil {
		return ""
	}
	switch r := ref.(type) {
	case float64:
		idx := int(r)
		switch t := factions.(type) {
		case []any:
			if idx >= 0 && idx < len(t) {
				return factionDisplay(t[idx])
			}
		case map[string]any:
			if v, ok := t[strconv.Itoa(idx)]; ok {
				return factionDisplay(v)
			}
		}
	case string:
		if t, ok := factions.(map[string]any); ok {
			if v, ok := t[r]; ok {
				return factionDisplay(v)
			}
		}
		return r
	}
	return ""
}

// factionDisplay extracts a human name from a faction table entry.
func factionDisplay(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		for _, key := range []string{"name", "label", "locName"} {
			if s, ok := t[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// FactionLabel turns a raw faction tag (FC_GRINEER, Grineer01) into
// display text. The tag is cleaned by stripping digits; a faction whose
// display name contains the cleaned tag wins and yields that faction's
// key minus its FC_ prefix. Without a table the cleaned tag is returned
// as-is; with a table but no match it is reduced to letters. Never errors.
func (f *FactionResolver) FactionLabel(ctx context.Context, tag string) (string, FactionProvenance) {
	if tag == "" {
		return "", FactionLastResort
	}
	cleaned := stripDigits(tag)

	factions, _ := f.load(ctx)
	table, ok := factions.(map[string]any)
	if !ok {
		return cleaned, FactionCleanedTag
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if name := factionDisplay(table[key]); name != "" && strings.Contains(name, cleaned) {
			return stripFactionPrefix(key), FactionMatch
		}
	}
	return stripAlpha(cleaned), FactionLastResort
}

// stripFactionPrefix removes a leading FC_ from a faction table key,
// ignoring case.
func stripFactionPrefix(key string) string {
	if len(key) >= 3 && strings.EqualFold(key[:3], "FC_") {
		return key[3:]
	}
	return key
}

func stripDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, s)
}

// stripAlpha keeps only letters, dropping separators and digits.
func stripAlpha(s string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, s)
}
