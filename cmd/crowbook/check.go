package main

import (
	"github.com/hustcer/crowbook/internal/cli"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a book option file",
	Long: `Validate book options against the option catalog.

This command checks for:
- Unknown option names
- Values that do not parse as the option's type (bool, char, integer)
- Malformed --set assignments

Every rejected option is reported, not only the first one.

Examples:
  crowbook check --config book.yaml
  crowbook check --config book.toml --set numbering=2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Check(cmd.OutOrStdout(), storeOptions())
	},
}

func init() {
	addStoreFlags(checkCmd)
}
