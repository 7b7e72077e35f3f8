package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/asset-atlas/internal/diagrams"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram [area]",
	Short: "Print a view as a mermaid flowchart",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, a, err := setup(cmd.Context())
		if err != nil {
			return err
		}

		label := ""
		if len(args) == 1 {
			label = args[0]
		}
		f, err := a.FrameFor(label)
		if err != nil {
			return err
		}
		chart := diagrams.ViewDiagram(f)

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			fmt.Fprint(cmd.OutOrStdout(), chart)
			return nil
		}
		if err := os.WriteFile(out, []byte(chart), 0o644); err != nil {
			return fmt.Errorf("writing diagram: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Diagram written to %s\n", out)
		return nil
	},
}

func init() {
	diagramCmd.Flags().String("out", "", "write the diagram to this file instead of stdout")
	rootCmd.AddCommand(diagramCmd)
}
