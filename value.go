package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindNone is the zero Value: nothing stored and no default supplied.
	KindNone Kind = iota
	KindString
	KindInt
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a coerced configuration value. It is one of a string, an
// integer, a boolean or an ordered list of values. The zero Value is
// KindNone.
type Value struct {
	kind Kind
	str  string
	num  int64
	flag bool
	list []Value
}

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// IntValue returns an integer Value.
func IntValue(n int64) Value { return Value{kind: KindInt, num: n} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: KindBool, flag: b} }

// ListValue returns a list Value holding vs in order.
func ListValue(vs ...Value) Value {
	list := make([]Value, len(vs))
	copy(list, vs)
	return Value{kind: KindList, list: list}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether v holds nothing.
func (v Value) IsNone() bool { return v.kind == KindNone }

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, v.kind, want)
}

// Str returns the string held by v.
func (v Value) Str() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.str, nil
}

// Int returns the integer held by v.
func (v Value) Int() (int64, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.num, nil
}

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, v.mismatch(KindBool)
	}
	return v.flag, nil
}

// List returns a copy of the values held by a list Value.
func (v Value) List() ([]Value, error) {
	if v.kind != KindList {
		return nil, v.mismatch(KindList)
	}
	list := make([]Value, len(v.list))
	copy(list, v.list)
	return list, nil
}

// Interface returns v as a plain Go value: nil, string, int64, bool or
// []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return v.num
	case KindBool:
		return v.flag
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// String formats v. Lists are joined with commas, so a list read from a
// file formats back to its raw form.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
