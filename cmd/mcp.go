package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/asset-atlas/internal/audit"
	mcpserver "github.com/ziadkadry99/asset-atlas/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to list areas, show views, pick nodes and read asset details.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		j, closeJournal, err := openJournal(cfg, audit.ActorMCP)
		if err != nil {
			return err
		}
		defer closeJournal()
		if j != nil {
			defer a.Subscribe(j)()
		}

		mcpserver.Version = Version

		// Stdout carries the protocol; everything else goes to stderr.
		fmt.Fprintf(os.Stderr, "atlas MCP server started on stdio (%d assets, %d areas)\n",
			a.Catalog().Len(), a.Areas().Len())

		return mcpserver.NewServer(a, j).Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
