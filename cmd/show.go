package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/details"
	"github.com/ziadkadry99/asset-atlas/internal/selection"
	"github.com/ziadkadry99/asset-atlas/internal/view"
)

var showCmd = &cobra.Command{
	Use:   "show [area]",
	Short: "Print a view: its nodes in draw order and its edges",
	Long: `Prints the Overview, or the detail view of an area, as text. Nodes are
numbered in draw order; --pick N prints the details of node N. --match
lists the assets whose id matches a glob pattern instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().Int("pick", -1, "print the details of the node at this draw-order index")
	showCmd.Flags().String("match", "", "list assets whose id matches this glob pattern (e.g. \"S*\")")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	j, closeJournal, err := openJournal(cfg, audit.ActorCLI)
	if err != nil {
		return err
	}
	defer closeJournal()
	out := cmd.OutOrStdout()

	if pattern, _ := cmd.Flags().GetString("match"); pattern != "" {
		assets, err := a.Catalog().Match(pattern)
		if err != nil {
			return err
		}
		if len(assets) == 0 {
			fmt.Fprintf(out, "No assets match %q\n", pattern)
			return nil
		}
		for i, asset := range assets {
			if i > 0 {
				fmt.Fprintln(out, "\n---")
			}
			fmt.Fprintln(out, details.Format(&selection.SelectedAsset{Asset: asset}))
		}
		return nil
	}

	label := view.OverviewLabel
	if len(args) == 1 {
		label = args[0]
	}
	if j != nil {
		defer a.Subscribe(j)()
	}
	if err := a.Select(label); err != nil {
		return err
	}
	f := a.CurrentFrame()
	fmt.Fprint(out, f.Outline())

	if !cmd.Flags().Changed("pick") {
		return nil
	}
	pick, _ := cmd.Flags().GetInt("pick")
	e, err := a.Pick(pick, f.Nodes)
	j.RecordPick(cmd.Context(), f.Label, pick, e, err)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s\n", details.Format(e))
	return nil
}
