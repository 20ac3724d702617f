package options

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/hustcer/crowbook/internal/log"
	"github.com/hustcer/crowbook/pkg/schema"
	"github.com/rs/zerolog"
)

// TempDirKey is the option whose default comes from the host's temporary
// directory instead of the catalog.
const TempDirKey = "temp_dir"

// Store holds the current value of a book's options. It is not safe for
// concurrent use; callers configure it first and then only read from it.
type Store struct {
	valid  map[schema.Kind]map[string]struct{}
	order  []string
	values map[string]Value
	root   string
	logger zerolog.Logger
}

// Pair is a raw key/value assignment, as read from a book file or the
// command line.
type Pair struct {
	Key   string
	Value string
}

// Setting is a present option rendered for display.
type Setting struct {
	Key   string
	Kind  schema.Kind
	Value Value
}

// New creates a store from the compiled-in catalog with every default applied.
func New() *Store {
	return NewFromEntries(schema.Entries())
}

// NewFromEntries creates a store from parsed catalog entries. It panics if
// an entry has an unknown kind or a default that does not parse, since both
// mean the catalog itself is broken.
func NewFromEntries(entries []schema.Entry) *Store {
	s := &Store{
		valid:  make(map[schema.Kind]map[string]struct{}, len(schema.Kinds)),
		values: make(map[string]Value),
		logger: log.WithComponent("options"),
	}
	for _, k := range schema.Kinds {
		s.valid[k] = make(map[string]struct{})
	}

	for _, e := range entries {
		if e.IsSection() {
			continue
		}
		set, ok := s.valid[e.Kind]
		if !ok {
			panic(fmt.Sprintf("ill-formatted option schema: unrecognized type %v for %q", e.Kind, e.Key))
		}
		set[e.Key] = struct{}{}
		s.order = append(s.order, e.Key)

		if e.Key == TempDirKey {
			s.mustSet(e.Key, os.TempDir())
			continue
		}
		if e.HasDefault {
			s.mustSet(e.Key, e.Default)
		}
	}

	s.logger.Debug().
		Str(log.FieldEvent, "options.init").
		Int(log.FieldCount, len(s.order)).
		Msg("option store initialised")

	return s
}

func (s *Store) mustSet(key, value string) {
	if err := s.Set(key, value); err != nil {
		panic(fmt.Sprintf("ill-formatted option schema: %v", err))
	}
}

// SetRoot sets the directory path options are resolved against.
func (s *Store) SetRoot(root string) {
	s.root = root
}

// Root returns the directory path options are resolved against.
func (s *Store) Root() string {
	return s.root
}

// Kind returns the declared kind of key.
func (s *Store) Kind(key string) (schema.Kind, bool) {
	for _, k := range schema.Kinds {
		if _, ok := s.valid[k][key]; ok {
			return k, true
		}
	}
	return 0, false
}

// Keys lists every declared key in catalog order.
func (s *Store) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Set converts value according to the declared kind of key and stores it.
// On failure the previous value is left untouched.
func (s *Store) Set(key, value string) error {
	kind, ok := s.Kind(key)
	if !ok {
		return &Error{Op: "set", Key: key, Err: ErrUnrecognizedKey}
	}

	v, err := parseValue(kind, value)
	if err != nil {
		s.logger.Debug().
			Str(log.FieldEvent, "options.set_failed").
			Str(log.FieldKey, key).
			Str(log.FieldValue, value).
			Err(err).
			Msg("rejected option value")
		return &Error{Op: "set", Key: key, Value: value, Err: err}
	}

	s.values[key] = v
	return nil
}

// Apply sets every pair in order. Failed pairs do not stop the others; all
// failures are returned joined.
func (s *Store) Apply(pairs []Pair) error {
	var errs []error
	for _, p := range pairs {
		if err := s.Set(p.Key, p.Value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get returns the stored value of key.
func (s *Store) Get(key string) (Value, error) {
	v, ok := s.values[key]
	if !ok {
		if _, declared := s.Kind(key); !declared {
			return Value{}, &Error{Op: "get", Key: key, Err: ErrUnrecognizedKey}
		}
		return Value{}, &Error{Op: "get", Key: key, Err: ErrNotPresent}
	}
	return v, nil
}

// GetStr returns a string option.
func (s *Store) GetStr(key string) (string, error) {
	v, err := s.Get(key)
	if err != nil {
		return "", err
	}
	str, err := v.Str()
	if err != nil {
		return "", &Error{Op: "get", Key: key, Err: err}
	}
	return str, nil
}

// GetBool returns a boolean option.
func (s *Store) GetBool(key string) (bool, error) {
	v, err := s.Get(key)
	if err != nil {
		return false, err
	}
	b, err := v.Bool()
	if err != nil {
		return false, &Error{Op: "get", Key: key, Err: err}
	}
	return b, nil
}

// GetChar returns a character option.
func (s *Store) GetChar(key string) (rune, error) {
	v, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	c, err := v.Char()
	if err != nil {
		return 0, &Error{Op: "get", Key: key, Err: err}
	}
	return c, nil
}

// GetI32 returns an integer option.
func (s *Store) GetI32(key string) (int32, error) {
	v, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	i, err := v.Int()
	if err != nil {
		return 0, &Error{Op: "get", Key: key, Err: err}
	}
	return i, nil
}

// GetPath returns a path option joined onto the store's root. An absolute
// option value is returned as is.
func (s *Store) GetPath(key string) (string, error) {
	p, err := s.GetRelativePath(key)
	if err != nil {
		return "", err
	}
	joined := p
	if !filepath.IsAbs(p) {
		joined = filepath.Join(s.root, p)
	}
	if !utf8.ValidString(joined) {
		return "", &Error{Op: "get", Key: key, Err: ErrInvalidPath}
	}
	return joined, nil
}

// GetRelativePath returns a path option without applying the root.
func (s *Store) GetRelativePath(key string) (string, error) {
	v, err := s.Get(key)
	if err != nil {
		return "", err
	}
	p, err := v.Path()
	if err != nil {
		return "", &Error{Op: "get", Key: key, Err: err}
	}
	return p, nil
}

// Resolved lists every present option in catalog order.
func (s *Store) Resolved() []Setting {
	var out []Setting
	for _, key := range s.order {
		v, ok := s.values[key]
		if !ok {
			continue
		}
		out = append(out, Setting{Key: key, Kind: v.Kind(), Value: v})
	}
	return out
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	c := &Store{
		valid:  make(map[schema.Kind]map[string]struct{}, len(s.valid)),
		order:  append([]string(nil), s.order...),
		values: make(map[string]Value, len(s.values)),
		root:   s.root,
		logger: s.logger,
	}
	for k, set := range s.valid {
		cs := make(map[string]struct{}, len(set))
		for key := range set {
			cs[key] = struct{}{}
		}
		c.valid[k] = cs
	}
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}
