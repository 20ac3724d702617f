// Package schema holds the catalog of every option a book understands.
//
// The catalog is a plain-text document compiled into the binary. Each
// non-blank line is either a section heading or an option definition:
//
//	# Metadata
//	author:str:Anonymous      # The author of the book
//	cover:path                # File name of the cover of the book
//
// An option line is key:type[:default]#comment, where type is one of str,
// bool, char, int or path. Headings only group options in generated
// documentation.
//
// The compiled-in catalog is parsed once by [Entries]. A malformed catalog is
// a defect of the program itself, so [Entries] and [MustParse] panic instead
// of returning an error.
package schema

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Source is the compiled-in option catalog.
//
//go:embed book.options
var Source string

// Entry is one line of the catalog: a section heading when Key is empty,
// an option definition otherwise.
type Entry struct {
	Section    string
	Key        string
	Kind       Kind
	Default    string
	HasDefault bool
	Comment    string
}

// IsSection reports whether the entry is a heading.
func (e Entry) IsSection() bool {
	return e.Key == ""
}

// SyntaxError describes a malformed catalog line.
type SyntaxError struct {
	Line   int
	Text   string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("schema line %d %q: %s", e.Line, e.Text, e.Reason)
}

// optionLine is the raw shape of an option definition before kind resolution.
type optionLine struct {
	Key  string `validate:"required,option_key"`
	Type string `validate:"required,oneof=str bool char int path"`
}

var validate *validator.Validate

// keyRe matches dotted lower-case identifiers such as "tex.links_as_footnotes".
var keyRe = regexp.MustCompile(`^[a-z][a-z0-9_]*(?:\.[a-z][a-z0-9_]*)*$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("option_key", func(fl validator.FieldLevel) bool {
		return keyRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Errorf("register validator option_key: %w", err))
	}
}

// Parse turns catalog text into entries, preserving declaration order.
func Parse(text string) ([]Entry, error) {
	var entries []Entry
	seen := make(map[string]int)

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			entries = append(entries, Entry{Section: strings.TrimSpace(line[1:])})
			continue
		}

		content, comment, _ := strings.Cut(line, "#")
		fields := strings.SplitN(content, ":", 3)
		if len(fields) < 2 {
			return nil, &SyntaxError{Line: lineNo, Text: line, Reason: "expected key:type[:default]"}
		}

		ol := optionLine{
			Key:  strings.TrimSpace(fields[0]),
			Type: strings.TrimSpace(fields[1]),
		}
		if err := validate.Struct(ol); err != nil {
			return nil, &SyntaxError{Line: lineNo, Text: line, Reason: formatValidationError(err)}
		}

		kind, err := ParseKind(ol.Type)
		if err != nil {
			return nil, &SyntaxError{Line: lineNo, Text: line, Reason: err.Error()}
		}

		if prev, dup := seen[ol.Key]; dup {
			return nil, &SyntaxError{Line: lineNo, Text: line, Reason: fmt.Sprintf("key %q already declared on line %d", ol.Key, prev)}
		}
		seen[ol.Key] = lineNo

		entry := Entry{
			Key:     ol.Key,
			Kind:    kind,
			Comment: strings.TrimSpace(comment),
		}
		if len(fields) == 3 {
			entry.Default = strings.TrimSpace(fields[2])
			entry.HasDefault = true
			if !CheckLiteral(kind, entry.Default) {
				return nil, &SyntaxError{Line: lineNo, Text: line, Reason: fmt.Sprintf("default %q is not a valid %s", entry.Default, kind)}
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// MustParse is like Parse but panics on a malformed catalog.
func MustParse(text string) []Entry {
	entries, err := Parse(text)
	if err != nil {
		panic(fmt.Errorf("ill-formatted option schema: %w", err))
	}
	return entries
}

var (
	builtinOnce    sync.Once
	builtinEntries []Entry
)

// Entries returns the parsed compiled-in catalog. The slice is a copy and may
// be modified by the caller.
func Entries() []Entry {
	builtinOnce.Do(func() {
		builtinEntries = MustParse(Source)
	})
	out := make([]Entry, len(builtinEntries))
	copy(out, builtinEntries)
	return out
}

// Lookup finds the option definition for key in the compiled-in catalog.
func Lookup(key string) (Entry, bool) {
	for _, e := range Entries() {
		if !e.IsSection() && e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Keys lists every option key of the compiled-in catalog in declaration order.
func Keys() []string {
	var keys []string
	for _, e := range Entries() {
		if !e.IsSection() {
			keys = append(keys, e.Key)
		}
	}
	return keys
}

// formatValidationError renders validator errors as a single line.
func formatValidationError(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	var msgs []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "option_key":
			msgs = append(msgs, fmt.Sprintf("key %q must be dotted lower-case identifiers", fe.Value()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("unrecognized type %q (want one of %s)", fe.Value(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
