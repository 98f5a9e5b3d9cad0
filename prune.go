package shapz

// Deundefined removes every own key whose value is the Undefined sentinel.
// The key is deleted outright, not merely cleared. All own keys are visited
// regardless of enumerability. Returns the same mapping pointer; nil is
// returned unchanged. Idempotent.
func Deundefined(m *Mapping) *Mapping {
	if m == nil {
		return nil
	}
	for _, key := range OwnKeys(m) {
		if value, ok := m.GetOK(key); ok && value == Undefined {
			m.Delete(key)
		}
	}
	return m
}

// Deempty removes every own key whose value is a *Mapping with zero own
// keys. Only genuine Mappings qualify: Go maps, slices, Sequences, and any
// other value kind are never pruned. The check is one level deep and not
// recursive — a nested mapping must already be empty when Deempty runs;
// emptiness produced by pruning deeper levels is not re-examined. Returns
// the same mapping pointer; nil is returned unchanged. Idempotent.
func Deempty(m *Mapping) *Mapping {
	if m == nil {
		return nil
	}
	for _, key := range OwnKeys(m) {
		if nested, ok := m.Get(key).(*Mapping); ok && nested.Len() == 0 {
			m.Delete(key)
		}
	}
	return m
}
