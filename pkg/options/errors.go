package options

import (
	"errors"
	"fmt"
)

// Errors returned by Store operations. They are wrapped in *Error; match
// with errors.Is.
var (
	ErrUnrecognizedKey = errors.New("unrecognized key")
	ErrParseChar       = errors.New("could not parse char")
	ErrParseBool       = errors.New("could not parse bool")
	ErrParseInt        = errors.New("could not parse int")
	ErrNotPresent      = errors.New("option not present")
	ErrWrongKind       = errors.New("wrong option kind")
	ErrInvalidPath     = errors.New("path contains invalid UTF-8")
)

// Error carries the key, and for parse failures the raw value, of a failed
// store operation.
type Error struct {
	Op    string // "set" or "get"
	Key   string
	Value string // raw value, set only for parse failures
	Err   error
}

func (e *Error) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %s=%q: %v", e.Op, e.Key, e.Value, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
