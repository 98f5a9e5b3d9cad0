package shapz

import "fmt"

// Key identifies an entry in a Mapping. A Key is either a StringKey or a
// *Symbol; the interface is sealed so no other variant can exist.
//
// StringKey values compare by string value. Symbols compare by identity:
// two Symbols are the same key only if they are the same pointer, regardless
// of description. This mirrors the split between ordinary and hidden/unique
// keys found in dynamic object models, made explicit as a tagged variant.
type Key interface {
	fmt.Stringer
	isKey()
}

// StringKey is an ordinary string-valued key.
type StringKey string

func (StringKey) isKey() {}

// String returns the key's string value.
func (k StringKey) String() string { return string(k) }

// Symbol is an opaque unique key. Every call to NewSymbol yields a distinct
// key, even for equal descriptions. The description exists only for
// debugging output and carries no identity.
type Symbol struct {
	description string
}

// NewSymbol creates a new unique Symbol with the given description.
func NewSymbol(description string) *Symbol {
	return &Symbol{description: description}
}

func (*Symbol) isKey() {}

// Description returns the debugging description the Symbol was created with.
func (s *Symbol) Description() string { return s.description }

// String returns a debugging representation of the Symbol.
func (s *Symbol) String() string {
	return fmt.Sprintf("Symbol(%s)", s.description)
}
