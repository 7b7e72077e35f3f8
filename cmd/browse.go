package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Explore the atlas in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		j, closeJournal, err := openJournal(cfg, audit.ActorTUI)
		if err != nil {
			return err
		}
		defer closeJournal()
		return tui.Run(a, j)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
