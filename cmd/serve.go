package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/explorer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web explorer",
	Long: `Starts the web explorer: the current view is drawn in the browser,
view changes are pushed over a websocket, and Prometheus metrics are
exposed on /metrics. With --journal, views and picks are recorded and
served on /api/audit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, a, err := setup(cmd.Context())
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		j, closeJournal, err := openJournal(cfg, audit.ActorWeb)
		if err != nil {
			return err
		}
		defer closeJournal()

		srv := explorer.New(explorer.Config{
			Port:     port,
			AllowAll: cfg.Server.AllowAll,
			Journal:  j,
		}, a, nil)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down explorer...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		fmt.Fprintf(os.Stderr, "atlas explorer v%s on http://localhost:%d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  %s\n", a.Summary())

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on (defaults to server.port from the config)")
	rootCmd.AddCommand(serveCmd)
}
