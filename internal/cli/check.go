package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hustcer/crowbook/internal/loader"
	"github.com/hustcer/crowbook/pkg/options"
)

// ErrCheckFailed is returned by Check when at least one option is rejected.
var ErrCheckFailed = errors.New("option check failed")

// Check validates an option file and overrides against the catalog,
// reporting every rejected option instead of stopping at the first one.
func Check(w io.Writer, opts StoreOptions) error {
	if opts.Config == "" && len(opts.Sets) == 0 {
		return fmt.Errorf("nothing to check: pass --config or --set")
	}

	var pairs []options.Pair
	if opts.Config != "" {
		fmt.Fprintf(w, "🔍 Checking book options in %s...\n", opts.Config)
		loaded, err := loader.LoadFile(opts.Config)
		if err != nil {
			fmt.Fprintf(w, "❌ %v\n", err)
			return fmt.Errorf("%w: %w", ErrCheckFailed, err)
		}
		pairs = append(pairs, loaded...)
	}

	overrides, err := loader.ParseAssignments(opts.Sets)
	if err != nil {
		fmt.Fprintf(w, "❌ %v\n", err)
		return fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}
	pairs = append(pairs, overrides...)

	store := options.New()
	if opts.Config != "" {
		if abs, err := filepath.Abs(filepath.Dir(opts.Config)); err == nil {
			store.SetRoot(abs)
		}
	}

	failed := 0
	for _, p := range pairs {
		if err := store.Set(p.Key, p.Value); err != nil {
			failed++
			fmt.Fprintf(w, "❌ %s\n", describeSetError(err))
			continue
		}
		if opts.Verbose {
			fmt.Fprintf(w, "   %s = %s\n", p.Key, p.Value)
		}
	}

	if failed > 0 {
		fmt.Fprintf(w, "❌ Check failed with %d of %d options rejected\n", failed, len(pairs))
		fmt.Fprintln(w, "\n💡 Run `crowbook describe` to list the valid options and their types")
		return fmt.Errorf("%w: %d of %d options rejected", ErrCheckFailed, failed, len(pairs))
	}

	fmt.Fprintf(w, "✅ All %d options are valid!\n", len(pairs))
	return nil
}

// describeSetError turns a store error into a one-line report.
func describeSetError(err error) string {
	var oe *options.Error
	if !errors.As(err, &oe) {
		return err.Error()
	}
	switch {
	case errors.Is(err, options.ErrUnrecognizedKey):
		return fmt.Sprintf("Unknown option: %s", oe.Key)
	case errors.Is(err, options.ErrParseBool),
		errors.Is(err, options.ErrParseChar),
		errors.Is(err, options.ErrParseInt):
		return fmt.Sprintf("Invalid value for %s: %q (%v)", oe.Key, oe.Value, oe.Err)
	default:
		return err.Error()
	}
}
