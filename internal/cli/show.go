package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/hustcer/crowbook/internal/gitinfo"
	"github.com/hustcer/crowbook/pkg/options"
	"github.com/hustcer/crowbook/pkg/schema"
)

// Show prints every option that has a value, path options resolved against
// the book root.
func Show(w io.Writer, opts StoreOptions) error {
	store, err := BuildStore(opts)
	if err != nil {
		return err
	}

	if root := store.Root(); root != "" {
		fmt.Fprintf(w, "Book root: %s\n", root)
		rev, err := gitinfo.Describe(root)
		switch {
		case err == nil:
			fmt.Fprintf(w, "Revision:  %s\n", rev)
		case errors.Is(err, gitinfo.ErrNotRepository):
			if opts.Verbose {
				fmt.Fprintln(w, "Revision:  not a git repository")
			}
		default:
			fmt.Fprintf(w, "⚠️  Warning: %v\n", err)
		}
		fmt.Fprintln(w)
	}

	for _, s := range store.Resolved() {
		text, err := displayValue(store, s)
		if err != nil {
			return err
		}
		if opts.Verbose {
			fmt.Fprintf(w, "%s (%s) = %s\n", s.Key, s.Kind.HumanName(), text)
		} else {
			fmt.Fprintf(w, "%s = %s\n", s.Key, text)
		}
	}
	return nil
}

// Get prints the resolved value of a single option.
func Get(w io.Writer, key string, opts StoreOptions) error {
	store, err := BuildStore(opts)
	if err != nil {
		return err
	}

	v, err := store.Get(key)
	if err != nil {
		return err
	}

	text, err := displayValue(store, options.Setting{Key: key, Kind: v.Kind(), Value: v})
	if err != nil {
		return err
	}
	fmt.Fprintln(w, text)
	return nil
}

func displayValue(store *options.Store, s options.Setting) (string, error) {
	if s.Kind == schema.KindPath {
		return store.GetPath(s.Key)
	}
	return s.Value.String(), nil
}
