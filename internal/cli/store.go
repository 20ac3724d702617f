package cli

import (
	"fmt"
	"path/filepath"

	"github.com/hustcer/crowbook/internal/loader"
	"github.com/hustcer/crowbook/pkg/options"
)

// StoreOptions describes where a command's option store comes from
type StoreOptions struct {
	Root    string   // directory relative paths are resolved against
	Config  string   // book option file (yaml, toml or hcl), may be empty
	Sets    []string // key=value overrides applied after Config
	Verbose bool
}

// BuildStore creates a store holding the catalog defaults, the values of
// the option file and the command line overrides, in that order.
func BuildStore(opts StoreOptions) (*options.Store, error) {
	base, err := baseStore(opts)
	if err != nil {
		return nil, err
	}
	if err := applyLayers(base, opts); err != nil {
		return nil, err
	}
	return base, nil
}

// Builder returns a function that rebuilds the store from opts on every
// call. Catalog defaults and the root are resolved once; each call starts
// from a clone of that base and re-reads the option file.
func Builder(opts StoreOptions) (func() (*options.Store, error), error) {
	base, err := baseStore(opts)
	if err != nil {
		return nil, err
	}
	return func() (*options.Store, error) {
		store := base.Clone()
		if err := applyLayers(store, opts); err != nil {
			return nil, err
		}
		return store, nil
	}, nil
}

// baseStore holds the catalog defaults with the root applied.
func baseStore(opts StoreOptions) (*options.Store, error) {
	store := options.New()

	root := opts.Root
	if root == "" && opts.Config != "" {
		root = filepath.Dir(opts.Config)
	}
	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
		}
		store.SetRoot(abs)
	}
	return store, nil
}

// applyLayers applies the option file, then the overrides.
func applyLayers(store *options.Store, opts StoreOptions) error {
	if err := loader.Apply(store, opts.Config); err != nil {
		return err
	}

	pairs, err := loader.ParseAssignments(opts.Sets)
	if err != nil {
		return err
	}
	return store.Apply(pairs)
}
