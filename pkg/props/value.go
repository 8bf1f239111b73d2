package props

import (
	"strconv"
	"strings"
)

// Kind tags the shape in which a raw style value reached us.
type Kind uint8

const (
	Absent Kind = iota
	Number
	Unparsed
	List
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Unparsed:
		return "unparsed"
	case List:
		return "list"
	default:
		return "absent"
	}
}

// Value is a raw style input: a typed number (with an optional unit), an
// unparsed string, several raw entries, or nothing at all.
type Value struct {
	kind Kind
	num  float64
	unit string
	str  string
	list []string
}

func NumberValue(v float64) Value {
	return Value{kind: Number, num: v}
}

// UnitValue is a typed number carrying a CSS unit such as "px" or "percent".
func UnitValue(v float64, unit string) Value {
	return Value{kind: Number, num: v, unit: unit}
}

func StringValue(s string) Value {
	return Value{kind: Unparsed, str: s}
}

func ListValue(entries ...string) Value {
	return Value{kind: List, list: append([]string(nil), entries...)}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Number() float64 { return v.num }

func (v Value) Unit() string { return v.unit }

// Empty is true for absent values and for strings or lists with no content.
func (v Value) Empty() bool {
	switch v.kind {
	case Unparsed:
		return strings.TrimSpace(v.str) == ""
	case List:
		for _, e := range v.list {
			if strings.TrimSpace(e) != "" {
				return false
			}
		}
		return true
	case Number:
		return false
	}
	return true
}

// String renders the raw value the way a stylesheet would.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64) + v.unit
	case Unparsed:
		return v.str
	case List:
		return strings.Join(v.list, ", ")
	}
	return ""
}
