package schema

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the declared type of an option.
type Kind int

const (
	KindString Kind = iota + 1
	KindBool
	KindChar
	KindInt
	KindPath
)

// Kinds lists every kind in the order keys are looked up by the option store.
var Kinds = []Kind{KindString, KindPath, KindChar, KindBool, KindInt}

var kindTokens = map[string]Kind{
	"str":  KindString,
	"bool": KindBool,
	"char": KindChar,
	"int":  KindInt,
	"path": KindPath,
}

// ParseKind maps a schema type token (str, bool, char, int, path) to a Kind.
func ParseKind(token string) (Kind, error) {
	k, ok := kindTokens[token]
	if !ok {
		return 0, fmt.Errorf("unrecognized type %q", token)
	}
	return k, nil
}

// String returns the schema token of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindInt:
		return "int"
	case KindPath:
		return "path"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// HumanName returns the name used in generated documentation.
func (k Kind) HumanName() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindChar:
		return "char"
	case KindInt:
		return "integer"
	case KindPath:
		return "path"
	default:
		return k.String()
	}
}

// ParseChar accepts exactly a single-quoted single character, e.g. "' '".
// Surrounding whitespace is ignored.
func ParseChar(raw string) (rune, bool) {
	s := strings.TrimSpace(raw)
	if len(s) < 3 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return 0, false
	}
	inner := s[1 : len(s)-1]
	r, size := utf8.DecodeRuneInString(inner)
	if r == utf8.RuneError || size != len(inner) || r == '\'' {
		return 0, false
	}
	return r, true
}

// ParseBool accepts only the literals "true" and "false".
func ParseBool(raw string) (bool, bool) {
	switch raw {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// ParseInt accepts a base-10 signed 32-bit integer.
func ParseInt(raw string) (int32, bool) {
	i, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(i), true
}

// CheckLiteral reports whether raw is a valid literal for kind k.
func CheckLiteral(k Kind, raw string) bool {
	switch k {
	case KindString, KindPath:
		return true
	case KindChar:
		_, ok := ParseChar(raw)
		return ok
	case KindBool:
		_, ok := ParseBool(raw)
		return ok
	case KindInt:
		_, ok := ParseInt(raw)
		return ok
	}
	return false
}
