package shapz

// seqSlot is one position of a Sequence. A hole is an explicit tombstone
// (present == false), not a nil value.
type seqSlot struct {
	value   any
	present bool
}

// Sequence is a 0-based indexable list of values that may contain holes.
// Indices never hold implicit nils: a position either has an assigned value
// or is a hole. Sequences are caller-owned and not safe for concurrent
// mutation.
type Sequence struct {
	slots []seqSlot
}

// NewSequence creates a Sequence with every position assigned, in argument
// order.
func NewSequence(values ...any) *Sequence {
	s := &Sequence{slots: make([]seqSlot, len(values))}
	for i, v := range values {
		s.slots[i] = seqSlot{value: v, present: true}
	}
	return s
}

// Len returns the sequence length, counting holes. A nil Sequence has
// length zero.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}

// At returns the value at index i and whether the position is assigned.
// Out-of-range indices report false.
func (s *Sequence) At(i int) (any, bool) {
	if s == nil || i < 0 || i >= len(s.slots) {
		return nil, false
	}
	sl := s.slots[i]
	return sl.value, sl.present
}

// IsHole reports whether index i is within range but unassigned.
func (s *Sequence) IsHole(i int) bool {
	if s == nil || i < 0 || i >= len(s.slots) {
		return false
	}
	return !s.slots[i].present
}

// Set assigns value at index i, extending the sequence with holes when i is
// beyond the current length. Negative indices are ignored.
func (s *Sequence) Set(i int, value any) {
	if i < 0 {
		return
	}
	for i >= len(s.slots) {
		s.slots = append(s.slots, seqSlot{})
	}
	s.slots[i] = seqSlot{value: value, present: true}
}

// Unset clears index i to a hole. The length does not change.
// Out-of-range indices are ignored.
func (s *Sequence) Unset(i int) {
	if s == nil || i < 0 || i >= len(s.slots) {
		return
	}
	s.slots[i] = seqSlot{}
}

// Values returns the assigned values in index order, skipping holes.
// The result is a fresh slice, never nil.
func (s *Sequence) Values() []any {
	out := make([]any, 0, s.Len())
	if s == nil {
		return out
	}
	for _, sl := range s.slots {
		if sl.present {
			out = append(out, sl.value)
		}
	}
	return out
}
