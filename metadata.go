package uview

import (
	"bytes"
	"fmt"
	"strconv"
)

// Kind is the shape of a metadata value.
type Kind int

const (
	KindNone     Kind = iota // No value (e.g. FOV of a LEED image).
	KindInt                  // Bare integer.
	KindQuantity             // Float with an optional unit.
	KindBool
	KindText
)

// A Value is one metadata entry. Quantities come from 32-bit floats and
// an empty Unit means a bare number.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Unit  string
	Bool  bool
	Text  string
}

// None returns an empty value.
func None() Value { return Value{Kind: KindNone} }

// Int returns an integer value.
func Int(v int64) Value { return Value{Kind: KindInt, Int: v} }

// Quantity returns a float value with a unit.
func Quantity(v float64, unit string) Value { return Value{Kind: KindQuantity, Float: v, Unit: unit} }

// Number returns a float value without unit.
func Number(v float64) Value { return Quantity(v, "") }

// Bool returns a flag value.
func Bool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// Text returns a string value.
func Text(v string) Value { return Value{Kind: KindText, Text: v} }

// IsNone reports whether v carries no value.
func (v Value) IsNone() bool { return v.Kind == KindNone }

// FormatNumber formats the numeric part of v like "%g" would with six
// significant digits.
func (v Value) FormatNumber() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindQuantity:
		return strconv.FormatFloat(v.Float, 'g', 6, 64)
	}
	return ""
}

// String implements Stringer.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return v.FormatNumber()
	case KindQuantity:
		if v.Unit == "" {
			return v.FormatNumber()
		}
		return v.FormatNumber() + " " + v.Unit
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindText:
		return v.Text
	default:
		return "None"
	}
}

// Metadata is an insertion-ordered mapping of field names to values.
// Setting an existing name replaces its value and keeps its position.
type Metadata struct {
	keys   []string
	values map[string]Value
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]Value)}
}

// Set records name -> v.
func (m *Metadata) Set(name string, v Value) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = v
}

// Get returns the value recorded for name.
func (m *Metadata) Get(name string) (Value, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Has reports whether name is recorded.
func (m *Metadata) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Keys returns the names in insertion order.
func (m *Metadata) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// Each calls fn for every entry in insertion order until fn returns false.
func (m *Metadata) Each(fn func(name string, v Value) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Averaging returns the classified averaging mode of the camera exposure
// record, if present.
func (m *Metadata) Averaging() (AveragingMode, bool) {
	v, ok := m.values[NameAverageImages]
	if !ok || v.Kind != KindInt {
		return 0, false
	}
	return AveragingMode(v.Int), true
}

// String implements Stringer.
func (m *Metadata) String() string {
	buf := bytes.NewBufferString("")
	m.Each(func(name string, v Value) bool {
		fmt.Fprintf(buf, "%s: %v\n", name, v)
		return true
	})
	return buf.String()
}
