// Package loader reads book option files and command line assignments into
// raw key/value pairs for the option store.
//
// Book option files may be YAML, TOML or HCL. Nested maps, tables and blocks
// flatten to dotted keys, so these are equivalent:
//
//	output.epub: book.epub
//
//	output:
//	  epub: book.epub
//
// Every scalar is turned back into text; the option store does the type
// checking.
package loader

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hustcer/crowbook/internal/log"
	"github.com/hustcer/crowbook/pkg/options"
)

// Format identifies a book option file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatHCL  Format = "hcl"
)

// FormatFor picks the file format from the path's extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return "", fmt.Errorf("unsupported option file extension %q (want .yaml, .yml, .toml or .hcl)", filepath.Ext(path))
	}
}

// LoadFile reads a book option file and returns its pairs sorted by key.
func LoadFile(path string) ([]options.Pair, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("option file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read option file %s: %w", path, err)
	}

	pairs, err := Decode(format, path, data)
	if err != nil {
		return nil, err
	}

	logger := log.WithComponent("loader")
	logger.Debug().
		Str(log.FieldEvent, "loader.file_loaded").
		Str(log.FieldPath, path).
		Str(log.FieldFormat, string(format)).
		Int(log.FieldCount, len(pairs)).
		Msg("loaded option file")

	return pairs, nil
}

// Decode parses data in the given format. name is used in error messages.
func Decode(format Format, name string, data []byte) ([]options.Pair, error) {
	var (
		pairs []options.Pair
		err   error
	)
	switch format {
	case FormatYAML:
		pairs, err = decodeYAML(data)
	case FormatTOML:
		pairs, err = decodeTOML(data)
	case FormatHCL:
		pairs, err = decodeHCL(name, data)
	default:
		return nil, fmt.Errorf("unsupported option file format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s in %s: %w", strings.ToUpper(string(format)), name, err)
	}

	seen := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := seen[p.Key]; dup {
			return nil, fmt.Errorf("option %q is set more than once in %s", p.Key, name)
		}
		seen[p.Key] = struct{}{}
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs, nil
}

// Apply loads path and applies it to store. An empty path is a no-op.
func Apply(store *options.Store, path string) error {
	if path == "" {
		return nil
	}
	pairs, err := LoadFile(path)
	if err != nil {
		return err
	}
	return store.Apply(pairs)
}

// flatten walks a decoded document and appends one pair per scalar.
func flatten(prefix string, node any, out *[]options.Pair) error {
	switch v := node.(type) {
	case map[string]any:
		for k, child := range v {
			if err := flatten(join(prefix, k), child, out); err != nil {
				return err
			}
		}
		return nil
	case map[any]any:
		for k, child := range v {
			ks, ok := k.(string)
			if !ok {
				return fmt.Errorf("key %v under %q is not a string", k, prefix)
			}
			if err := flatten(join(prefix, ks), child, out); err != nil {
				return err
			}
		}
		return nil
	}

	if prefix == "" {
		return fmt.Errorf("document must be a map of options, got %T", node)
	}
	text, err := scalarText(node)
	if err != nil {
		return fmt.Errorf("option %q: %w", prefix, err)
	}
	*out = append(*out, options.Pair{Key: prefix, Value: text})
	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// scalarText renders a decoded scalar the way it would be typed by hand.
func scalarText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", fmt.Errorf("unsupported number %v", x)
		}
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case nil:
		return "", fmt.Errorf("value is empty")
	case []any:
		return "", fmt.Errorf("lists are not supported")
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}
