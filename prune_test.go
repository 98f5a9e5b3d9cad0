package shapz

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeundefined_RemovesUndefinedKeys(t *testing.T) {
	m := NewMapping(
		P(StringKey("a"), 1),
		P(StringKey("b"), 2),
		P(StringKey("c"), Undefined),
	)

	got := Deundefined(m)
	if got != m {
		t.Error("expected the same mapping pointer back")
	}

	want := map[string]any{"a": 1, "b": 2}
	if diff := cmp.Diff(want, got.StringMap()); diff != "" {
		t.Errorf("mapping mismatch (-want +got):\n%s", diff)
	}

	// The key is gone, not merely still set to Undefined.
	if m.Has(StringKey("c")) {
		t.Error("expected key c removed entirely")
	}
}

func TestDeundefined_VisitsHiddenAndSymbolKeys(t *testing.T) {
	sym := NewSymbol("gone")
	m := NewMapping()
	m.SetHidden(StringKey("h"), Undefined)
	m.Set(sym, Undefined)
	m.Set(StringKey("keep"), nil) // nil is a value, not Undefined

	Deundefined(m)

	if m.Has(StringKey("h")) || m.Has(sym) {
		t.Error("expected hidden and symbol-keyed Undefined entries removed")
	}
	if !m.Has(StringKey("keep")) {
		t.Error("expected nil-valued key kept")
	}
}

func TestDeundefined_Idempotent(t *testing.T) {
	m := NewMapping(P(StringKey("a"), 1), P(StringKey("b"), Undefined))

	Deundefined(m)
	first := m.StringMap()
	Deundefined(m)

	if diff := cmp.Diff(first, m.StringMap()); diff != "" {
		t.Errorf("second application changed the mapping (-first +second):\n%s", diff)
	}
}

func TestDeundefined_NilMapping(t *testing.T) {
	if got := Deundefined(nil); got != nil {
		t.Errorf("expected nil back, got %v", got)
	}
}

func TestDeempty_RemovesEmptyMappings(t *testing.T) {
	m := NewMapping(
		P(StringKey("a"), 1),
		P(StringKey("b"), 2),
		P(StringKey("c"), NewMapping()),
	)

	got := Deempty(m)
	if got != m {
		t.Error("expected the same mapping pointer back")
	}

	want := map[string]any{"a": 1, "b": 2}
	if diff := cmp.Diff(want, got.StringMap()); diff != "" {
		t.Errorf("mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestDeempty_KeepsNonEmptyMappings(t *testing.T) {
	nested := NewMapping(P(StringKey("x"), 1))
	m := NewMapping(P(StringKey("a"), 1), P(StringKey("b"), nested))

	Deempty(m)

	if got := m.Get(StringKey("b")); got != nested {
		t.Error("expected non-empty nested mapping kept")
	}
}

func TestDeempty_OnlyGenuineMappingsQualify(t *testing.T) {
	m := NewMapping(
		P(StringKey("gomap"), map[string]any{}),
		P(StringKey("slice"), []any{}),
		P(StringKey("seq"), NewSequence()),
		P(StringKey("str"), ""),
		P(StringKey("empty"), NewMapping()),
	)

	Deempty(m)

	for _, key := range []StringKey{"gomap", "slice", "seq", "str"} {
		if !m.Has(key) {
			t.Errorf("expected key %q kept, only *Mapping values are prunable", key)
		}
	}
	if m.Has(StringKey("empty")) {
		t.Error("expected empty *Mapping pruned")
	}
}

func TestDeempty_NotRecursive(t *testing.T) {
	inner := NewMapping(P(StringKey("leaf"), NewMapping()))
	m := NewMapping(P(StringKey("outer"), inner))

	Deempty(m)

	// outer is non-empty so it stays, and its own contents are not pruned.
	if !m.Has(StringKey("outer")) {
		t.Error("expected non-empty outer mapping kept")
	}
	if !inner.Has(StringKey("leaf")) {
		t.Error("expected nested contents untouched")
	}
}

func TestDeempty_Idempotent(t *testing.T) {
	m := NewMapping(P(StringKey("a"), 1), P(StringKey("b"), NewMapping()))

	Deempty(m)
	first := m.StringMap()
	Deempty(m)

	if diff := cmp.Diff(first, m.StringMap()); diff != "" {
		t.Errorf("second application changed the mapping (-first +second):\n%s", diff)
	}
}

func TestDeempty_NilMapping(t *testing.T) {
	if got := Deempty(nil); got != nil {
		t.Errorf("expected nil back, got %v", got)
	}
}
