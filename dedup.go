package shapz

import "reflect"

// seenSet tracks first occurrences under strict equality: two values are
// duplicates only when their dynamic types and values are identical, with no
// coercion. Values whose dynamic type is not comparable (slices, maps,
// functions) can never equal anything and are always treated as first
// occurrences; the sequences this library targets hold primitive values.
type seenSet struct {
	values map[any]struct{}
}

func newSeenSet(capacity int) *seenSet {
	return &seenSet{values: make(map[any]struct{}, capacity)}
}

// add records value and reports whether this is its first occurrence.
func (s *seenSet) add(value any) bool {
	if value != nil && !reflect.ValueOf(value).Comparable() {
		return true
	}
	if _, ok := s.values[value]; ok {
		return false
	}
	s.values[value] = struct{}{}
	return true
}

// Dedup returns a new Sequence containing each distinct value of s in order
// of first occurrence. Holes are skipped and the input is left untouched.
// A nil input yields an empty Sequence.
func Dedup(s *Sequence) *Sequence {
	out := &Sequence{}
	if s == nil {
		return out
	}
	out.slots = make([]seqSlot, 0, len(s.slots))
	seen := newSeenSet(len(s.slots))
	for _, sl := range s.slots {
		if !sl.present {
			continue
		}
		if seen.add(sl.value) {
			out.slots = append(out.slots, sl)
		}
	}
	return out
}

// DedupInPlace removes duplicate values from s, preserving first-occurrence
// order, and truncates the length by the number of duplicates removed.
// Assigned values are packed into the leading indices; holes already present
// in the input end up collected at the tail, since only duplicate removals
// shorten the sequence. Sequences shorter than 2 (and nil) are left
// untouched. Nothing is returned. Idempotent.
func DedupInPlace(s *Sequence) {
	if s == nil || len(s.slots) < 2 {
		return
	}
	seen := newSeenSet(len(s.slots))
	deleted := 0
	for i := range s.slots {
		if !s.slots[i].present {
			continue
		}
		if !seen.add(s.slots[i].value) {
			s.slots[i] = seqSlot{}
			deleted++
		}
	}
	// Single compaction pass: pack assigned values left, leave holes behind.
	w := 0
	for i := range s.slots {
		if !s.slots[i].present {
			continue
		}
		if i != w {
			s.slots[w] = s.slots[i]
			s.slots[i] = seqSlot{}
		}
		w++
	}
	s.slots = s.slots[:len(s.slots)-deleted]
}

// DedupSlice returns a duplicate-free copy of a plain slice, keeping the
// first occurrence of each element in order. Slices shorter than 2 are
// returned as-is, including nil.
func DedupSlice[S ~[]T, T comparable](xs S) S {
	if len(xs) < 2 {
		return xs
	}
	seen := make(map[T]struct{}, len(xs))
	out := make(S, 0, len(xs))
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
