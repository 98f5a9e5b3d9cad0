package shapz

// Undefined is the sentinel for "explicit no value". Setting a key to
// Undefined is not the same as deleting it: the key remains an own key and
// still shows up in OwnKeys until Deundefined removes it.
var Undefined = undefined{}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// slot is the backing storage for an entry's value. Aliased entries share
// one slot, so a write through either key is visible through both.
type slot struct {
	value any
}

type entry struct {
	key        Key
	slot       *slot
	enumerable bool
}

// Mapping is an insertion-ordered collection of key/value entries.
//
// Every entry is an "own" entry: there is no inheritance or delegation, so
// traversal never sees keys the caller did not attach. Each entry carries an
// enumerable flag. Enumerable entries (the default) participate in the
// copying operations AssignWithin and AssignWithout; non-enumerable entries
// are skipped by those but still visited by OwnKeys, Convert, and the
// pruners.
//
// A Mapping is caller-owned and not safe for concurrent mutation.
type Mapping struct {
	entries []entry
	index   map[Key]int
}

// Pair is a key/value pair for NewMapping.
type Pair struct {
	Key   Key
	Value any
}

// P builds a Pair for NewMapping.
func P(key Key, value any) Pair {
	return Pair{Key: key, Value: value}
}

// NewMapping creates a Mapping holding the given pairs in argument order.
// Later pairs with a duplicate key overwrite earlier ones without changing
// the key's position.
func NewMapping(pairs ...Pair) *Mapping {
	m := &Mapping{index: make(map[Key]int, len(pairs))}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

func (m *Mapping) ensureIndex() {
	if m.index == nil {
		m.index = make(map[Key]int)
	}
}

// Len returns the number of own entries. A nil Mapping has zero entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Set attaches an enumerable entry for key, or overwrites the value of an
// existing entry. Overwriting preserves the entry's position and its
// enumerable flag. A nil key is ignored. Returns m for chaining.
func (m *Mapping) Set(key Key, value any) *Mapping {
	if key == nil {
		return m
	}
	m.ensureIndex()
	if i, ok := m.index[key]; ok {
		m.entries[i].slot.value = value
		return m
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, entry{key: key, slot: &slot{value: value}, enumerable: true})
	return m
}

// SetHidden attaches a non-enumerable entry for key. If the key already
// exists, its value is overwritten and the entry is marked non-enumerable.
// Returns m for chaining.
func (m *Mapping) SetHidden(key Key, value any) *Mapping {
	if key == nil {
		return m
	}
	m.ensureIndex()
	if i, ok := m.index[key]; ok {
		m.entries[i].slot.value = value
		m.entries[i].enumerable = false
		return m
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, entry{key: key, slot: &slot{value: value}, enumerable: false})
	return m
}

// Get returns the value stored under key, or Undefined if the key is not an
// own key. Use GetOK to distinguish a stored Undefined from a missing key.
func (m *Mapping) Get(key Key) any {
	v, ok := m.GetOK(key)
	if !ok {
		return Undefined
	}
	return v
}

// GetOK returns the value stored under key and whether the key is an own key.
func (m *Mapping) GetOK(key Key) (any, bool) {
	if m == nil || key == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i].slot.value, true
}

// Has reports whether key is an own key of the mapping.
func (m *Mapping) Has(key Key) bool {
	_, ok := m.GetOK(key)
	return ok
}

// Enumerable reports whether key is an own key flagged enumerable.
// Missing keys report false.
func (m *Mapping) Enumerable(key Key) bool {
	if m == nil || key == nil {
		return false
	}
	i, ok := m.index[key]
	if !ok {
		return false
	}
	return m.entries[i].enumerable
}

// Delete removes the entry for key and reports whether it existed. Deleting
// one of two aliased keys leaves the other intact; the shared slot survives.
func (m *Mapping) Delete(key Key) bool {
	if m == nil || key == nil {
		return false
	}
	i, ok := m.index[key]
	if !ok {
		return false
	}
	delete(m.index, key)
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].key] = j
	}
	return true
}

// Alias attaches alias as a second enumerable key sharing the backing slot
// of existing, so writes through either key are visible through both.
// Reports false without modifying the mapping when existing is not an own
// key, when alias is nil, or when alias equals existing. An alias that was
// already an own key is re-pointed at the shared slot.
func (m *Mapping) Alias(existing, alias Key) bool {
	if m == nil || alias == nil || alias == existing {
		return false
	}
	i, ok := m.index[existing]
	if !ok {
		return false
	}
	shared := m.entries[i].slot
	m.Delete(alias)
	m.index[alias] = len(m.entries)
	m.entries = append(m.entries, entry{key: alias, slot: shared, enumerable: true})
	return true
}

// StringMap returns a snapshot of the enumerable string-keyed entries as a
// plain Go map. Symbol-keyed and non-enumerable entries are omitted. The
// snapshot is independent of the Mapping.
func (m *Mapping) StringMap() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, e := range m.entries {
		if !e.enumerable {
			continue
		}
		if sk, ok := e.key.(StringKey); ok {
			out[string(sk)] = e.slot.value
		}
	}
	return out
}

// OwnKeys returns every own key of the mapping regardless of enumerability:
// string keys first in insertion order, then symbol keys in insertion order.
// The result is a fresh slice, never nil; a nil or empty mapping yields an
// empty slice.
func OwnKeys(m *Mapping) []Key {
	if m == nil {
		return []Key{}
	}
	keys := make([]Key, 0, len(m.entries))
	for _, e := range m.entries {
		if _, ok := e.key.(StringKey); ok {
			keys = append(keys, e.key)
		}
	}
	for _, e := range m.entries {
		if _, ok := e.key.(*Symbol); ok {
			keys = append(keys, e.key)
		}
	}
	return keys
}
