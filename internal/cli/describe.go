package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hustcer/crowbook/pkg/options"
)

// DescribeOptions holds configuration for the describe command
type DescribeOptions struct {
	Markdown bool
	JSON     bool
}

// Describe writes the documentation of every option to w
func Describe(w io.Writer, opts DescribeOptions) error {
	if opts.Markdown && opts.JSON {
		return fmt.Errorf("--markdown and --json are mutually exclusive")
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(options.DescribeKeys())
	}

	_, err := io.WriteString(w, options.Description(opts.Markdown))
	return err
}
