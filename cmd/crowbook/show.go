package main

import (
	"github.com/hustcer/crowbook/internal/cli"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved options of a book",
	Long: `Print every option that has a value after applying the catalog defaults,
the book option file and --set overrides. Path options are resolved
against the book root. When the root is inside a git repository its
revision is reported too.

Examples:
  crowbook show --config book.yaml
  crowbook show --root ./mybook --set lang=fr`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Show(cmd.OutOrStdout(), storeOptions())
	},
}

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the resolved value of one option",
	Long: `Print the resolved value of a single option.

Examples:
  crowbook get author --config book.yaml
  crowbook get output.epub --config book.toml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Get(cmd.OutOrStdout(), args[0], storeOptions())
	},
}

func init() {
	addStoreFlags(showCmd)
	addStoreFlags(getCmd)
}
