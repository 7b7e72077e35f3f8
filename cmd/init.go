package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/asset-atlas/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize atlas configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to choose the catalog, title, explorer port and layout seed, and writes a .atlas.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
