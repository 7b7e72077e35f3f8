package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/asset-atlas/internal/db"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save a snapshot of the catalog and both graphs to SQLite",
	Long: `Writes the assets, the entity edges and the area edges to a SQLite
database (snapshot in the config, or --db). A snapshot can be explored later
with --snapshot-id. --list prints the snapshots already stored.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("db", "", "database path (defaults to snapshot from the config)")
	exportCmd.Flags().String("title", "", "snapshot title (defaults to the atlas title)")
	exportCmd.Flags().Bool("list", false, "list stored snapshots instead of exporting")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		cfg.Snapshot = path
	}

	database, err := db.Open(cfg.Snapshot)
	if err != nil {
		return err
	}
	defer database.Close()
	store := db.NewStore(database)
	out := cmd.OutOrStdout()

	if list, _ := cmd.Flags().GetBool("list"); list {
		snaps, err := store.ListSnapshots(cmd.Context())
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Fprintf(out, "No snapshots in %s\n", cfg.Snapshot)
			return nil
		}
		for _, s := range snaps {
			fmt.Fprintf(out, "%s  %s  %q  %d assets, %d entity edges, %d area edges\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.Title,
				s.AssetCount, s.EntityEdgeCount, s.AreaEdgeCount)
		}
		return nil
	}

	a, err := loadAtlas(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = a.Title()
	}

	snap, err := store.Export(cmd.Context(), a, title)
	if err != nil {
		return fmt.Errorf("exporting snapshot: %w", err)
	}
	fmt.Fprintf(out, "Snapshot %s written to %s (%d assets, %d entity edges, %d area edges)\n",
		snap.ID, cfg.Snapshot, snap.AssetCount, snap.EntityEdgeCount, snap.AreaEdgeCount)
	return nil
}
