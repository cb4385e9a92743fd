package evaluator

import (
	"fmt"
)

// Number. All numbers in the language are float64.
type Number struct {
	Value float64
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return fmt.Sprintf("%g", n.Value) }

// Text
type Text struct {
	Value string
}

func (t *Text) Type() ObjectType { return TEXT_OBJ }
func (t *Text) Inspect() string  { return t.Value }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

// Null
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }

// CoerceBoolean applies the truthiness rules to any value: null is false,
// zero and empty text are false, everything else is true. Runs before any
// chaos is considered.
func CoerceBoolean(obj Object) *Boolean {
	switch obj := obj.(type) {
	case *Boolean:
		return nativeBool(obj.Value)
	case *Null:
		return FALSE
	case *Number:
		return nativeBool(obj.Value != 0)
	case *Text:
		return nativeBool(obj.Value != "")
	default:
		return TRUE
	}
}
