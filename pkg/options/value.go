package options

import (
	"fmt"
	"strconv"

	"github.com/hustcer/crowbook/pkg/schema"
)

// Value is a typed option value. Exactly one of the five kinds is active.
type Value struct {
	kind schema.Kind
	s    string
	b    bool
	c    rune
	i    int32
}

func StringValue(s string) Value { return Value{kind: schema.KindString, s: s} }
func PathValue(p string) Value   { return Value{kind: schema.KindPath, s: p} }
func BoolValue(b bool) Value     { return Value{kind: schema.KindBool, b: b} }
func CharValue(c rune) Value     { return Value{kind: schema.KindChar, c: c} }
func IntValue(i int32) Value     { return Value{kind: schema.KindInt, i: i} }

// Kind returns the active kind.
func (v Value) Kind() schema.Kind {
	return v.kind
}

// Str returns the value if it is a string.
func (v Value) Str() (string, error) {
	if v.kind != schema.KindString {
		return "", v.wrongKind("a string")
	}
	return v.s, nil
}

// Path returns the value if it is a path.
func (v Value) Path() (string, error) {
	if v.kind != schema.KindPath {
		return "", v.wrongKind("a path")
	}
	return v.s, nil
}

// Bool returns the value if it is a boolean.
func (v Value) Bool() (bool, error) {
	if v.kind != schema.KindBool {
		return false, v.wrongKind("a bool")
	}
	return v.b, nil
}

// Char returns the value if it is a character.
func (v Value) Char() (rune, error) {
	if v.kind != schema.KindChar {
		return 0, v.wrongKind("a char")
	}
	return v.c, nil
}

// Int returns the value if it is an integer.
func (v Value) Int() (int32, error) {
	if v.kind != schema.KindInt {
		return 0, v.wrongKind("an i32")
	}
	return v.i, nil
}

func (v Value) wrongKind(want string) error {
	return fmt.Errorf("%w: %#v is not %s", ErrWrongKind, v, want)
}

// String renders the value the way it would be written in a book file.
func (v Value) String() string {
	switch v.kind {
	case schema.KindString, schema.KindPath:
		return v.s
	case schema.KindBool:
		return strconv.FormatBool(v.b)
	case schema.KindChar:
		return "'" + string(v.c) + "'"
	case schema.KindInt:
		return strconv.FormatInt(int64(v.i), 10)
	default:
		return ""
	}
}

// GoString is the debug representation used in error messages.
func (v Value) GoString() string {
	switch v.kind {
	case schema.KindString:
		return fmt.Sprintf("String(%q)", v.s)
	case schema.KindPath:
		return fmt.Sprintf("Path(%q)", v.s)
	case schema.KindBool:
		return fmt.Sprintf("Bool(%t)", v.b)
	case schema.KindChar:
		return fmt.Sprintf("Char(%q)", v.c)
	case schema.KindInt:
		return fmt.Sprintf("Int(%d)", v.i)
	default:
		return "Value(invalid)"
	}
}

// Interface returns the value as a plain Go value suitable for JSON
// encoding. A char becomes a one-character string.
func (v Value) Interface() any {
	switch v.kind {
	case schema.KindString, schema.KindPath:
		return v.s
	case schema.KindBool:
		return v.b
	case schema.KindChar:
		return string(v.c)
	case schema.KindInt:
		return v.i
	default:
		return nil
	}
}

// parseValue converts raw text to a value of kind k.
func parseValue(k schema.Kind, raw string) (Value, error) {
	switch k {
	case schema.KindString:
		return StringValue(raw), nil
	case schema.KindPath:
		return PathValue(raw), nil
	case schema.KindChar:
		c, ok := schema.ParseChar(raw)
		if !ok {
			return Value{}, ErrParseChar
		}
		return CharValue(c), nil
	case schema.KindBool:
		b, ok := schema.ParseBool(raw)
		if !ok {
			return Value{}, ErrParseBool
		}
		return BoolValue(b), nil
	case schema.KindInt:
		i, ok := schema.ParseInt(raw)
		if !ok {
			return Value{}, ErrParseInt
		}
		return IntValue(i), nil
	}
	return Value{}, fmt.Errorf("unsupported kind %v", k)
}
