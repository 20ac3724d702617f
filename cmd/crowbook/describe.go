package main

import (
	"github.com/hustcer/crowbook/internal/cli"
	"github.com/spf13/cobra"
)

var describeOpts cli.DescribeOptions

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "List every book option with its type and default",
	Long: `List every book option crowbook understands, grouped by section, with
its type, default value and description.

Examples:
  crowbook describe
  crowbook describe --markdown > options.md
  crowbook describe --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Describe(cmd.OutOrStdout(), describeOpts)
	},
}

func init() {
	describeCmd.Flags().BoolVarP(&describeOpts.Markdown, "markdown", "m", false, "Render as Markdown")
	describeCmd.Flags().BoolVar(&describeOpts.JSON, "json", false, "Render as JSON")
}
