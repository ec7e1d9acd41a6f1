package ast

import (
	"fmt"
	"strconv"
)

// ValueKind represents the type of a literal value in a Kryon document.
type ValueKind string

const (
	ValueString  ValueKind = "string"
	ValueInteger ValueKind = "integer"
	ValueFloat   ValueKind = "float"
	ValueBoolean ValueKind = "boolean"
	ValueNull    ValueKind = "null"
	ValueColor   ValueKind = "color"
	ValueUnit    ValueKind = "unit"
)

// Value is a literal value carried by a Literal node. Exactly one of the
// payload fields is meaningful, selected by Kind. Unit values keep their
// numeric part in Float and the unit suffix (px, %, em, ...) in Unit.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Color uint32 // packed 0xAARRGGBB
	Unit  string
}

// StringValue returns a string literal value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// IntValue returns an integer literal value.
func IntValue(i int64) Value { return Value{Kind: ValueInteger, Int: i} }

// FloatValue returns a float literal value.
func FloatValue(f float64) Value { return Value{Kind: ValueFloat, Float: f} }

// BoolValue returns a boolean literal value.
func BoolValue(b bool) Value { return Value{Kind: ValueBoolean, Bool: b} }

// NullValue returns the null literal value.
func NullValue() Value { return Value{Kind: ValueNull} }

// ColorValue returns a color literal value packed as 0xAARRGGBB.
func ColorValue(argb uint32) Value { return Value{Kind: ValueColor, Color: argb} }

// UnitValue returns a dimension literal such as 12px or 1.5em.
func UnitValue(f float64, unit string) Value {
	return Value{Kind: ValueUnit, Float: f, Unit: unit}
}

// IsNumeric returns true for integer, float and unit values.
func (v Value) IsNumeric() bool {
	return v.Kind == ValueInteger || v.Kind == ValueFloat || v.Kind == ValueUnit
}

// AsFloat returns the numeric payload widened to float64.
// Non-numeric values yield 0.
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case ValueInteger:
		return float64(v.Int)
	case ValueFloat, ValueUnit:
		return v.Float
	}
	return 0
}

// String renders the value in its source text form. This is the form used
// when literal segments of a template are concatenated.
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueInteger:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueBoolean:
		return strconv.FormatBool(v.Bool)
	case ValueNull:
		return ""
	case ValueColor:
		return fmt.Sprintf("#%08X", v.Color)
	case ValueUnit:
		return strconv.FormatFloat(v.Float, 'g', -1, 64) + v.Unit
	}
	return ""
}
