package shapz

type conversionKind int

const (
	conversionInvalid conversionKind = iota
	conversionFunc
	conversionLiteral
)

// Conversion is a single in-place transform instruction for Convert, with an
// explicit function/literal variant chosen at construction: ConvertWith
// replaces a field's value with the result of a function applied to the
// current value, ConvertTo replaces it with a literal. The zero Conversion
// is invalid and skipped.
type Conversion struct {
	key     Key
	fn      func(any) any
	literal any
	kind    conversionKind
}

// ConvertWith replaces the value under key with fn(current value).
// A nil fn yields an invalid instruction, skipped by Convert.
func ConvertWith(key Key, fn func(any) any) Conversion {
	if key == nil || fn == nil {
		return Conversion{}
	}
	return Conversion{kind: conversionFunc, key: key, fn: fn}
}

// ConvertTo replaces the value under key with literal, verbatim.
func ConvertTo(key Key, literal any) Conversion {
	if key == nil {
		return Conversion{}
	}
	return Conversion{kind: conversionLiteral, key: key, literal: literal}
}

// Convert applies each instruction to the mapping in place, in order.
// Instructions referencing keys the mapping does not own are skipped
// silently, as are invalid instructions and empty string keys. Conversion
// visits all own keys regardless of enumerability, and replacing a value
// never changes the entry's position or its enumerable flag.
//
// Returns the same mapping pointer; a nil mapping is returned unchanged.
func Convert(m *Mapping, convs []Conversion) *Mapping {
	if m == nil {
		return nil
	}
	for _, c := range convs {
		if c.kind == conversionInvalid {
			continue
		}
		if sk, ok := c.key.(StringKey); ok && sk == "" {
			continue
		}
		current, ok := m.GetOK(c.key)
		if !ok {
			continue
		}
		switch c.kind {
		case conversionFunc:
			m.Set(c.key, c.fn(current))
		case conversionLiteral:
			m.Set(c.key, c.literal)
		}
	}
	return m
}
