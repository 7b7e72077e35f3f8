package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/db"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the exploration journal",
	Long: `Lists the view changes and picks recorded by commands run with
--journal, newest first. --prune removes entries older than a duration.`,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().String("view", "", "only entries for this view label")
	journalCmd.Flags().String("action", "", "only entries with this action (view_changed, node_picked, pick_failed)")
	journalCmd.Flags().String("actor", "", "only entries from this actor (web, tui, mcp, cli)")
	journalCmd.Flags().Int("limit", 50, "maximum number of entries to print")
	journalCmd.Flags().Duration("prune", 0, "delete entries older than this duration instead of listing")
	rootCmd.AddCommand(journalCmd)
}

func runJournal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := db.Open(cfg.Snapshot)
	if err != nil {
		return err
	}
	defer database.Close()
	store := audit.NewStore(database)
	out := cmd.OutOrStdout()

	if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
		n, err := store.DeleteBefore(cmd.Context(), time.Now().Add(-prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pruned %d journal entries\n", n)
		return nil
	}

	filter := audit.QueryFilter{}
	filter.View, _ = cmd.Flags().GetString("view")
	action, _ := cmd.Flags().GetString("action")
	filter.Action = audit.Action(action)
	actor, _ := cmd.Flags().GetString("actor")
	filter.Actor = audit.Actor(actor)
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	entries, err := store.Query(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No journal entries")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-4s %-12s %s", e.Timestamp.Format(time.DateTime), e.Actor, e.Action, e.View)
		if e.Subject != "" {
			line += "  " + e.Subject
		}
		if e.Detail != "" {
			line += "  (" + e.Detail + ")"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
