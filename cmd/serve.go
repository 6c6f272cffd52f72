package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"explaindeck/internal/config"
	"explaindeck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the records directory and the regenerate endpoint",
	Long: `Run the local HTTP server: records under /outputs/ (with an index.json
manifest), POST /api/generate to produce a new article, GET /api/health.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		gen := newGenerator(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addr := cfg.Listen
		if addr == "" {
			addr = "127.0.0.1:8377"
		}
		srv := server.New(cfg.ResolvedOutputsDir(), gen.Run)
		return srv.ListenAndServe(ctx, addr)
	},
}
