package shapz

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssignWithin_PickRenameConvert(t *testing.T) {
	source := NewMapping(
		P(StringKey("a"), 1),
		P(StringKey("b"), 2),
		P(StringKey("c"), 3),
	)
	target := NewMapping()

	got, err := AssignWithin(target, source, []Field{
		Pick(StringKey("a")),
		PickAs(StringKey("b"), StringKey("x")),
		PickWith(StringKey("c"), StringKey("c"), func(v any) any { return v.(int) + 1 }),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != target {
		t.Error("expected the same target pointer back")
	}

	want := map[string]any{"a": 1, "x": 2, "c": 4}
	if diff := cmp.Diff(want, got.StringMap()); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignWithin_NilTarget(t *testing.T) {
	source := NewMapping(P(StringKey("a"), 1))

	_, err := AssignWithin(nil, source, []Field{Pick(StringKey("a"))})
	if err == nil {
		t.Fatal("expected error for nil target")
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}

	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatal("expected *ArgumentError")
	}
	if argErr.Op != "AssignWithin" {
		t.Errorf("expected op AssignWithin, got %s", argErr.Op)
	}
}

func TestAssignWithin_NilSourceIsNoOp(t *testing.T) {
	target := NewMapping(P(StringKey("keep"), true))

	got, err := AssignWithin(target, nil, []Field{Pick(StringKey("a"))})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != target || got.Len() != 1 {
		t.Error("expected target returned unchanged")
	}
}

func TestAssignWithin_SkipsAbsentAndNonEnumerable(t *testing.T) {
	source := NewMapping(P(StringKey("a"), 1))
	source.SetHidden(StringKey("secret"), 42)
	target := NewMapping()

	_, err := AssignWithin(target, source, []Field{
		Pick(StringKey("missing")),
		Pick(StringKey("secret")),
		Pick(StringKey("a")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{"a": 1}
	if diff := cmp.Diff(want, target.StringMap()); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignWithin_SkipsInvalidInstructions(t *testing.T) {
	source := NewMapping(P(StringKey("a"), 1))
	target := NewMapping()

	_, err := AssignWithin(target, source, []Field{
		{},                          // zero Field
		Pick(nil),                   // nil source key
		PickAs(StringKey("a"), nil), // nil target key
		PickWith(nil, StringKey("x"), nil),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Len() != 0 {
		t.Errorf("expected empty target, got %v", target.StringMap())
	}
}

func TestAssignWithin_LastWriteWins(t *testing.T) {
	source := NewMapping(P(StringKey("a"), 1), P(StringKey("b"), 2))
	target := NewMapping()

	_, err := AssignWithin(target, source, []Field{
		PickAs(StringKey("a"), StringKey("out")),
		PickAs(StringKey("b"), StringKey("out")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := target.Get(StringKey("out")); got != 2 {
		t.Errorf("expected later instruction to win with 2, got %v", got)
	}
}

func TestAssignWithin_NilConverterCopiesDirectly(t *testing.T) {
	source := NewMapping(P(StringKey("a"), 7))
	target := NewMapping()

	_, err := AssignWithin(target, source, []Field{
		PickWith(StringKey("a"), StringKey("b"), nil),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := target.Get(StringKey("b")); got != 7 {
		t.Errorf("expected 7, got %v", got)
	}
}

func TestAssignWithout_Excludes(t *testing.T) {
	source := NewMapping(
		P(StringKey("a"), 1),
		P(StringKey("b"), 2),
		P(StringKey("c"), 3),
	)
	target := NewMapping()

	got, err := AssignWithout(target, source, []Key{StringKey("c")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != target {
		t.Error("expected the same target pointer back")
	}

	want := map[string]any{"a": 1, "b": 2}
	if diff := cmp.Diff(want, got.StringMap()); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignWithout_NilTarget(t *testing.T) {
	_, err := AssignWithout(nil, NewMapping(), nil)
	if err == nil {
		t.Fatal("expected error for nil target")
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestAssignWithout_NilSourceIsNoOp(t *testing.T) {
	target := NewMapping()

	got, err := AssignWithout(target, nil, []Key{StringKey("a")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != target || got.Len() != 0 {
		t.Error("expected target returned unchanged")
	}
}

func TestAssignWithout_SkipsNonEnumerable(t *testing.T) {
	source := NewMapping(P(StringKey("a"), 1))
	source.SetHidden(StringKey("secret"), 2)
	target := NewMapping()

	_, err := AssignWithout(target, source, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{"a": 1}
	if diff := cmp.Diff(want, target.StringMap()); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestAssignWithout_SymbolExclusionByIdentity(t *testing.T) {
	excluded := NewSymbol("skip")
	copied := NewSymbol("skip") // same description, different key

	source := NewMapping()
	source.Set(excluded, 1)
	source.Set(copied, 2)
	target := NewMapping()

	_, err := AssignWithout(target, source, []Key{excluded})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if target.Has(excluded) {
		t.Error("expected excluded symbol to be skipped")
	}
	if got := target.Get(copied); got != 2 {
		t.Errorf("expected other symbol copied with 2, got %v", got)
	}
}

func TestAssignWithout_ExclusionOfAbsentKeys(t *testing.T) {
	source := NewMapping(P(StringKey("a"), 1))
	target := NewMapping()

	_, err := AssignWithout(target, source, []Key{StringKey("ghost"), StringKey("a")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if target.Len() != 0 {
		t.Errorf("expected empty target, got %v", target.StringMap())
	}
}
