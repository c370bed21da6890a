package resolve

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Uraniumking007/frametracking/internal/cache"
)

//go:embed items_map.json
var itemsMapJSON []byte

// ItemResolver maps full item path identifiers to display names using the
// bundled item table, with a heuristic formatter for paths the table does
// not cover. All results, whatever their provenance, land in a shared
// cross-call cache.
type ItemResolver struct {
	once    sync.Once
	table   map[string]string
	cache   *cache.TTL
	lookups atomic.Int64
	log     *slog.Logger
}

// NewItemResolver creates a resolver backed by the service's item cache.
func NewItemResolver(caches *cache.Service) *ItemResolver {
	return &ItemResolver{cache: caches.Items, log: slog.Default()}
}

func (r *ItemResolver) items() map[string]string {
	r.once.Do(func() {
		var parsed map[string]string
		if err := json.Unmarshal(itemsMapJSON, &parsed); err != nil {
			r.log.Warn("decoding bundled item table", "err", err)
			parsed = map[string]string{}
		}
		r.table = parsed
	})
	return r.table
}

// TableLookups reports how many table lookups have been dispatched, cache
// hits excluded. Tests use it to verify batch caching behavior.
func (r *ItemResolver) TableLookups() int64 {
	return r.lookups.Load()
}

// lookup consults the table directly: exact key first, then a
// case-insensitive scan, then the heuristic cleaner.
func (r *ItemResolver) lookup(identifier string) string {
	r.lookups.Add(1)
	table := r.items()

	if name, ok := table[identifier]; ok {
		return name
	}

	lower := strings.ToLower(identifier)
	for key, name := range table {
		if strings.ToLower(key) == lower {
			return name
		}
	}

	return CleanItemIdentifier(identifier)
}

// Name resolves a single item identifier to a display name. Identifiers
// absent from the table get a heuristically formatted name, never the raw
// slash-delimited path.
func (r *ItemResolver) Name(identifier string) string {
	if identifier == "" {
		return "Unknown Item"
	}
	if v, ok := r.cache.Get(identifier); ok {
		return v.(string)
	}
	name := r.lookup(identifier)
	r.cache.Set(identifier, name)
	return name
}

// Many resolves a batch of identifiers. Already-cached identifiers are
// filtered out before any lookup is dispatched; results are merged with
// the cache. Callers needing deterministic ordering iterate the input
// slice, not the returned map.
func (r *ItemResolver) Many(identifiers []string) map[string]string {
	result := make(map[string]string, len(identifiers))

	var uncached []string
	for _, id := range identifiers {
		if id == "" {
			continue
		}
		if v, ok := r.cache.Get(id); ok {
			result[id] = v.(string)
		} else {
			uncached = append(uncached, id)
		}
	}

	for _, id := range uncached {
		name := r.lookup(id)
		r.cache.Set(id, name)
		result[id] = name
	}

	return result
}

// Structural path segments that never serve as a display name.
var structuralSegments = map[string]bool{
	"Types": true,
	"Items": true,
}

// CleanItemIdentifier derives a readable name from an item path that is
// missing from the table: the last meaningful segment, formatted.
func CleanItemIdentifier(identifier string) string {
	if identifier == "" {
		return "Unknown Item"
	}

	parts := strings.Split(identifier, "/")
	last := parts[len(parts)-1]
	if last != "" && !structuralSegments[last] {
		return formatItemName(last)
	}

	for i := len(parts) - 2; i >= 0; i-- {
		part := parts[i]
		if part != "" && !structuralSegments[part] && part != "Lotus" {
			return formatItemName(part)
		}
	}

	return identifier
}

// Variant tokens that expand to a specific display form. Checked longest
// first so the charger variants don't half-match.
var itemSpecialTokens = []struct {
	token   string
	display string
}{
	{"HelminthChargerInfestedPet", "Helminth Charger"},
	{"HelminthChargerInfested", "Helminth Charger"},
	{"HelminthCharger", "Helminth Charger"},
}

var (
	// 2–4 word PascalCase compounds split into spaced words.
	compoundRes = []*regexp.Regexp{
		regexp.MustCompile(`^([A-Z][a-z]+)([A-Z][a-z]+)$`),
		regexp.MustCompile(`^([A-Z][a-z]+)([A-Z][a-z]+)([A-Z][a-z]+)$`),
		regexp.MustCompile(`^([A-Z][a-z]+)([A-Z][a-z]+)([A-Z][a-z]+)([A-Z][a-z]+)$`),
	}
	// Boundary between a lower/digit and an upper starts a new word; runs
	// of capitals (MK1, Dex) stay intact.
	camelBoundaryRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	multiSpaceRe    = regexp.MustCompile(`\s+`)
)

func formatItemName(name string) string {
	if name == "" {
		return "Unknown Item"
	}

	for _, re := range compoundRes {
		if re.MatchString(name) {
			name = re.ReplaceAllString(name, wordRefs(re.NumSubexp()))
			break
		}
	}

	for _, sc := range itemSpecialTokens {
		if strings.Contains(name, sc.token) {
			name = strings.ReplaceAll(name, sc.token, sc.display)
		}
	}

	name = camelBoundaryRe.ReplaceAllString(name, "$1 $2")
	name = multiSpaceRe.ReplaceAllString(strings.TrimSpace(name), " ")
	if name == "" {
		return "Unknown Item"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// wordRefs builds the "$1 $2 … $n" replacement for an n-group compound.
func wordRefs(n int) string {
	refs := make([]string, n)
	for i := range refs {
		refs[i] = "$" + string(rune('1'+i))
	}
	return strings.Join(refs, " ")
}
