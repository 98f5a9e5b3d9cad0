package shapz

type fieldKind int

const (
	fieldInvalid fieldKind = iota
	fieldCopy
	fieldRename
	fieldConvert
)

// Field is a single remap instruction for AssignWithin, resolved into one of
// three variants at construction: copy a key unchanged (Pick), copy under a
// different key (PickAs), or copy through a converter (PickWith). The zero
// Field is invalid and skipped.
type Field struct {
	src  Key
	dst  Key
	fn   func(any) any
	kind fieldKind
}

// Pick copies the value under key to the same key on the target.
func Pick(key Key) Field {
	if key == nil {
		return Field{}
	}
	return Field{kind: fieldCopy, src: key, dst: key}
}

// PickAs copies the value under src to dst on the target.
func PickAs(src, dst Key) Field {
	if src == nil {
		return Field{}
	}
	return Field{kind: fieldRename, src: src, dst: dst}
}

// PickWith copies the value under src to dst on the target, passing it
// through fn. A nil fn copies the value unchanged, same as PickAs.
func PickWith(src, dst Key, fn func(any) any) Field {
	if src == nil {
		return Field{}
	}
	return Field{kind: fieldConvert, src: src, dst: dst, fn: fn}
}

// AssignWithin copies the declared fields from source to target, in
// instruction order. A field is silently skipped when its source key is not
// an enumerable own key of source, or when its target key is nil. Later
// instructions targeting the same key overwrite earlier ones.
//
// A nil source or nil/empty fields slice is a no-op. Returns the same target
// pointer, mutated. The only error is a nil target, reported as
// ErrInvalidArgument.
func AssignWithin(target, source *Mapping, fields []Field) (*Mapping, error) {
	if target == nil {
		return nil, nilTargetError("AssignWithin")
	}
	if source == nil {
		return target, nil
	}
	for _, f := range fields {
		if f.kind == fieldInvalid || f.dst == nil {
			continue
		}
		if !source.Enumerable(f.src) {
			continue
		}
		value := source.Get(f.src)
		if f.fn != nil {
			value = f.fn(value)
		}
		target.Set(f.dst, value)
	}
	return target, nil
}

// AssignWithout copies every enumerable own field of source to target except
// those named in excluded. Exclusion is a linear containment check; string
// keys compare by value and Symbols by identity. Keys in excluded that are
// not own keys of source are never considered.
//
// A nil source is a no-op; a nil excluded slice excludes nothing. Returns
// the same target pointer, mutated. The only error is a nil target, reported
// as ErrInvalidArgument.
func AssignWithout(target, source *Mapping, excluded []Key) (*Mapping, error) {
	if target == nil {
		return nil, nilTargetError("AssignWithout")
	}
	if source == nil {
		return target, nil
	}
	for _, key := range OwnKeys(source) {
		if !source.Enumerable(key) || containsKey(excluded, key) {
			continue
		}
		target.Set(key, source.Get(key))
	}
	return target, nil
}

func containsKey(keys []Key, key Key) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
