package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"explaindeck/internal/config"
	"explaindeck/internal/fetch"
	"explaindeck/internal/store"
	"explaindeck/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(config.StorePath())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	// Cached records give the UI something to show while the fresh
	// load runs; the load then replaces the whole set.
	cached, err := db.All()
	if err != nil {
		log.Warn("reading cached records", "err", err)
		cached = nil
	}

	return tui.Run(tui.RunOpts{
		Cfg:     cfg,
		DB:      db,
		Source:  newSource(cfg),
		Records: cached,
	})
}

func newSource(cfg *config.Config) fetch.Source {
	if cfg.BaseURL != "" {
		return fetch.NewHTTPSource(cfg.BaseURL)
	}
	return fetch.DirSource{Dir: cfg.ResolvedOutputsDir()}
}
