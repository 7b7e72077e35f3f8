package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	catalogFile string
	snapshotID  string
	verbose     bool
	journal     bool
)

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Explore a catalog of technical assets grouped into functional areas",
	Long: `Atlas builds a directed graph of technical assets and a derived overview
of the functional areas they belong to. Start at the overview, drill into
an area, and pick any node to read its details, from the terminal, a
browser, an MCP client or a generated static site.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".atlas.yml", "config file path")
	rootCmd.PersistentFlags().StringVar(&catalogFile, "catalog", "", "catalog definition file (overrides the config; default is the built-in catalog)")
	rootCmd.PersistentFlags().StringVar(&snapshotID, "snapshot-id", "", "load the catalog from an exported snapshot instead")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&journal, "journal", false, "record view changes and picks in the snapshot database")
}
