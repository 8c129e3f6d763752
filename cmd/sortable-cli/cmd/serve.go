package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sortable/internal/adapters/httpapi"
)

var (
	serveAddr    string
	serveOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reorder endpoints over HTTP",
	Long: `Serve the reorder endpoints of every scope over HTTP.

  POST /scopes/{scope}/sortable/update   move one entry
  POST /scopes/{scope}/sortable/actions  move a selection to another page
  GET  /scopes/{scope}/entries           list a page
  GET  /scopes/{scope}/history           latest rank changes

Use "_" as the scope segment for the table-wide scope.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}

		srv, err := httpapi.NewServer(httpapi.Options{
			Store:      GetStore(),
			Observer:   Observer(),
			Authorizer: httpapi.NewTokenAuthorizer(cfg.Token),
			History:    store.AuditLog(),
			Logger:     logger,
			PageSize:   cfg.PageSize,
			RateLimit:  cfg.RateLimit,
			RateBurst:  cfg.RateBurst,
			Origins:    serveOrigins,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting server", "addr", addr, "auth", cfg.Token != "", "origins", len(serveOrigins))
		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "origin", nil, "trusted cross-origin client, e.g. https://admin.example.com")

	rootCmd.AddCommand(serveCmd)
}
