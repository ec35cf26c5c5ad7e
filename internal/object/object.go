// Package object defines the runtime values and static types of DumbBrain.
package object

import (
	"fmt"
	"strconv"
)

// Type is the static type class of an expression.
type Type int

const (
	TypeNumber Type = iota
	TypeBoolean
)

// String returns the name of the type
func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypeBoolean:
		return "Boolean"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Object is a runtime value. The set of implementations is closed:
// Number and Boolean.
type Object interface {
	// Type returns the static type class this value belongs to
	Type() Type
	String() string
	object()
}

// Number is a double precision runtime number.
type Number float64

// Boolean is a runtime truth value.
type Boolean bool

func (Number) Type() Type  { return TypeNumber }
func (Boolean) Type() Type { return TypeBoolean }

func (n Number) String() string  { return strconv.FormatFloat(float64(n), 'f', -1, 64) }
func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

func (Number) object()  {}
func (Boolean) object() {}

// Equal reports whether a and b are the same variant holding the same value.
// Values of different variants are never equal.
func Equal(a, b Object) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x == y
	case Boolean:
		y, ok := b.(Boolean)
		return ok && x == y
	default:
		return a == nil && b == nil
	}
}

// AsNumber unwraps o as a Number.
func AsNumber(o Object) (float64, bool) {
	n, ok := o.(Number)
	return float64(n), ok
}

// AsBoolean unwraps o as a Boolean.
func AsBoolean(o Object) (bool, bool) {
	b, ok := o.(Boolean)
	return bool(b), ok
}

// Describe renders an optional value, using "none" for a missing one.
func Describe(o Object) string {
	if o == nil {
		return "none"
	}
	return o.String()
}
