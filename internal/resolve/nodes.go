// Package resolve translates opaque internal codes — node codes, item
// paths, localization keys, faction tags — into display strings. Every
// resolver here is total: malformed input degrades to a placeholder or a
// raw passthrough, never an error.
package resolve

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

// Placeholder is shown for absent or empty input.
const Placeholder = "—"

// NodeEntry is one row of the bundled node table.
type NodeEntry struct {
	Value string `json:"value"`
	Enemy string `json:"enemy,omitempty"`
	Type  string `json:"type,omitempty"`
}

// NodeMeta is the non-label metadata of a node.
type NodeMeta struct {
	Enemy string `json:"enemy,omitempty"`
	Type  string `json:"type,omitempty"`
}

//go:embed nodes.json
var nodesJSON []byte

var nodeCodeRe = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// NormalizeNodeCode canonicalizes the variant spellings a node code shows
// up under: whitespace, the SoleNode typo, case-mangled prefixes, and
// zero-padded numeric suffixes (SolNode000 → SolNode0). It is idempotent.
func NormalizeNodeCode(input string) string {
	s := strings.TrimSpace(input)

	// Fix the common typo variant before anything else.
	s = replacePrefixFold(s, "SoleNode", "SolNode")
	s = replacePrefixFold(s, "solnode", "SolNode")
	s = replacePrefixFold(s, "hexnode", "HexNode")

	m := nodeCodeRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	prefix := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
	switch prefix {
	case "Solnode":
		prefix = "SolNode"
	case "Hexnode":
		prefix = "HexNode"
	}

	num := strings.TrimLeft(m[2], "0")
	if num == "" {
		num = "0"
	}
	return prefix + num
}

// replacePrefixFold swaps a case-insensitive prefix for its canonical form.
func replacePrefixFold(s, prefix, canonical string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return canonical + s[len(prefix):]
	}
	return s
}

// NodeResolver maps node codes to labels and metadata using the bundled
// node table, loaded once per instance.
type NodeResolver struct {
	once  sync.Once
	table map[string]NodeEntry
	log   *slog.Logger
}

// NewNodeResolver creates a resolver with an unloaded table; the table is
// decoded lazily on first lookup.
func NewNodeResolver() *NodeResolver {
	return &NodeResolver{log: slog.Default()}
}

func (r *NodeResolver) nodes() map[string]NodeEntry {
	r.once.Do(func() {
		var parsed map[string]NodeEntry
		if err := json.Unmarshal(nodesJSON, &parsed); err != nil {
			r.log.Warn("decoding bundled node table", "err", err)
			parsed = map[string]NodeEntry{}
		}
		r.table = parsed
	})
	return r.table
}

// coerce extracts a usable string from the heterogeneous shapes node codes
// arrive in: plain strings, wrapped value/type/enemy objects, or anything
// else stringable.
func coerce(v any) string {
	if s := worldstate.CoerceText(v).Str; s != "" {
		return s
	}
	switch v.(type) {
	case nil, string, worldstate.Text, map[string]any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Label resolves a node code to its display label. Empty input yields the
// placeholder; codes missing from the table fall back to a synthesized
// Hex label or the raw input. Never fails.
func (r *NodeResolver) Label(code any) string {
	raw := coerce(code)
	if raw == "" {
		return Placeholder
	}

	normalized := NormalizeNodeCode(raw)
	lookupKey := normalized
	if lookupKey == "" {
		lookupKey = raw
	}

	table := r.nodes()
	label := table[lookupKey].Value
	if label == "" {
		label = table[raw].Value
	}

	// Hex nodes are newer content that the static table may not cover yet;
	// synthesize something better than a raw code.
	if label == "" && strings.HasPrefix(lookupKey, "HexNode") {
		if num := strings.TrimPrefix(lookupKey, "HexNode"); num != "" {
			label = "Hex Node " + num
		} else {
			label = "The Hex"
		}
	}

	if label == "" {
		return raw
	}
	return label
}

// Meta returns the enemy and mission-type metadata for a node code, zero
// when the table has no entry.
func (r *NodeResolver) Meta(code any) NodeMeta {
	raw := coerce(code)
	if raw == "" {
		return NodeMeta{}
	}
	entry, ok := r.nodes()[NormalizeNodeCode(raw)]
	if !ok {
		return NodeMeta{}
	}
	return NodeMeta{Enemy: entry.Enemy, Type: entry.Type}
}
