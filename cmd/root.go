package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civicmaps/overlay/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Census tract enrichment and camera density analysis",
	Long:  "Joins ACS demographic tables, counts camera locations inside census tract polygons, and reports density metrics, correlations, and bracket summaries.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
