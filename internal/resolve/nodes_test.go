package resolve

import "testing"

func TestNormalizeNodeCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"SolNode0", "SolNode0"},
		{"SolNode000", "SolNode0"},
		{"solnode000", "SolNode0"},
		{"SOLNODE042", "SolNode42"},
		{"SoleNode1", "SolNode1"},
		{"  SolNode2  ", "SolNode2"},
		{"hexnode005", "HexNode5"},
		{"HexNode12", "HexNode12"},
		{"SolNode", "SolNode"},         // no numeric suffix, untouched
		{"PlutoHUB", "PlutoHUB"},       // no digits, untouched
		{"CrewBattleNode501", "Crewbattlenode501"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeNodeCode(c.in); got != c.want {
			t.Errorf("NormalizeNodeCode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeNodeCodeIdempotent(t *testing.T) {
	inputs := []string{"SolNode000", "solnode17", "SoleNode9", "hexnode003", "CrewBattleNode501", "weird input"}
	for _, in := range inputs {
		once := NormalizeNodeCode(in)
		twice := NormalizeNodeCode(once)
		if once != twice {
			t.Errorf("NormalizeNodeCode not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNodeLabelVariantsAgree(t *testing.T) {
	r := NewNodeResolver()
	want := r.Label("SolNode0")
	if want == "SolNode0" || want == Placeholder {
		t.Fatalf("expected a table label for SolNode0, got %q", want)
	}
	for _, variant := range []string{"SolNode000", "solnode0", "SoleNode0", "  SolNode0 "} {
		if got := r.Label(variant); got != want {
			t.Errorf("Label(%q) = %q, want %q", variant, got, want)
		}
	}
}

func TestNodeLabelEmptyAndUnknown(t *testing.T) {
	r := NewNodeResolver()

	if got := r.Label(""); got != Placeholder {
		t.Errorf("Label(\"\") = %q, want placeholder", got)
	}
	if got := r.Label(nil); got != Placeholder {
		t.Errorf("Label(nil) = %q, want placeholder", got)
	}
	// Unknown codes come back verbatim rather than erroring.
	if got := r.Label("SolNode99999"); got != "SolNode99999" {
		t.Errorf("Label unknown = %q, want raw code", got)
	}
}

func TestNodeLabelRawKeyFallback(t *testing.T) {
	// Mixed-case prefixes the normalizer mangles still resolve through
	// the raw key.
	r := NewNodeResolver()
	if got := r.Label("CrewBattleNode519"); got == "CrewBattleNode519" || got == "Crewbattlenode519" {
		t.Errorf("Label(CrewBattleNode519) = %q, want table label", got)
	}
}

func TestNodeLabelHexFallback(t *testing.T) {
	r := NewNodeResolver()

	if got := r.Label("HexNode7"); got != "Hex Node 7" {
		t.Errorf("Label(HexNode7) = %q, want %q", got, "Hex Node 7")
	}
	if got := r.Label("hexnode042"); got != "Hex Node 42" {
		t.Errorf("Label(hexnode042) = %q, want %q", got, "Hex Node 42")
	}
}

func TestNodeLabelCoercesObjectShapes(t *testing.T) {
	r := NewNodeResolver()
	want := r.Label("SolNode1")

	shapes := []any{
		map[string]any{"value": "SolNode1"},
		map[string]any{"type": "SolNode1"},
		map[string]any{"enemy": "SolNode1"},
	}
	for _, shape := range shapes {
		if got := r.Label(shape); got != want {
			t.Errorf("Label(%v) = %q, want %q", shape, got, want)
		}
	}
}

func TestNodeMeta(t *testing.T) {
	r := NewNodeResolver()

	meta := r.Meta("SolNode000")
	if meta.Enemy == "" || meta.Type == "" {
		t.Fatalf("expected metadata for SolNode0, got %+v", meta)
	}

	if got := r.Meta("SolNode99999"); got != (NodeMeta{}) {
		t.Errorf("Meta unknown = %+v, want zero", got)
	}
	if got := r.Meta(""); got != (NodeMeta{}) {
		t.Errorf("Meta empty = %+v, want zero", got)
	}
}
