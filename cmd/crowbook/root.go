package main

import (
	"os"

	"github.com/hustcer/crowbook/internal/cli"
	"github.com/hustcer/crowbook/internal/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags (available to all commands)
	verbose  bool
	logLevel string

	// Book option flags, shared by the commands that build a store
	bookRoot   string
	bookConfig string
	bookSets   []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crowbook",
	Short: "Inspect and validate crowbook book options",
	Long: `Crowbook renders a Markdown book to HTML, EPUB and PDF, driven by a set
of typed book options.

This tool documents every option crowbook understands, checks book option
files (YAML, TOML or HCL) against that catalog, shows the values a book
resolves to, and serves them over HTTP.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevel
		if level == "" && verbose {
			level = "debug"
		}
		log.Configure(log.Config{
			Level:   level,
			Output:  os.Stderr,
			Console: true,
		})
	},
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); defaults to $LOG_LEVEL or warn")

	// Add subcommands to root
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// addStoreFlags registers the flags that describe where book options come from.
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&bookRoot, "root", "", "Book root that relative paths are resolved against (defaults to the option file's directory)")
	cmd.Flags().StringVarP(&bookConfig, "config", "c", "", "Book option file (.yaml, .yml, .toml or .hcl)")
	cmd.Flags().StringArrayVarP(&bookSets, "set", "s", nil, "Override an option as key=value (repeatable)")
}

func storeOptions() cli.StoreOptions {
	return cli.StoreOptions{
		Root:    bookRoot,
		Config:  bookConfig,
		Sets:    bookSets,
		Verbose: verbose,
	}
}
