package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"explaindeck/internal/config"
	"explaindeck/internal/generate"
)

var flagGenerateCount int

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate new article records from the local model",
	Long: `Walk the deterministic topic space and ask the configured Ollama model
for the next explainer article(s), writing one JSON record per article.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		gen := newGenerator(cfg)
		for i := 0; i < flagGenerateCount; i++ {
			name, err := gen.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("generating: %w", err)
			}
			fmt.Printf("Saved %s\n", name)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntVarP(&flagGenerateCount, "count", "n", 1, "number of articles to generate")
}

func newGenerator(cfg *config.Config) *generate.Generator {
	return &generate.Generator{
		Model:       cfg.ResolvedModel(),
		Temperature: cfg.ResolvedTemperature(),
		MaxTokens:   cfg.ResolvedMaxTokens(),
		NumCtx:      cfg.Ollama.NumCtx,
		OutputDir:   cfg.ResolvedOutputsDir(),
		StateDir:    cfg.ResolvedStateDir(),
	}
}
