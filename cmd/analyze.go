package main

import (
	"encoding/json"
	"os"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/civicmaps/overlay/internal/overlay"
	"github.com/civicmaps/overlay/internal/stats"
)

var (
	analyzeIn   string
	analyzeAttr string
	analyzeJSON string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Correlation and bracket analysis over an enriched GeoJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(analyzeIn)
		if err != nil {
			return eris.Wrapf(err, "analyze: open %s", analyzeIn)
		}
		defer f.Close() //nolint:errcheck

		records, err := overlay.ReadGeoJSON(f)
		if err != nil {
			return err
		}

		attrs := overlay.AttrNames(records)
		if !slices.Contains(attrs, analyzeAttr) {
			return eris.Errorf("analyze: attribute %q not in artifact (have: %s)", analyzeAttr, strings.Join(attrs, ", "))
		}

		report, err := stats.Analyze(records, analyzeAttr)
		if err != nil {
			return err
		}

		if err := report.Render(cmd.OutOrStdout()); err != nil {
			return err
		}

		if analyzeJSON != "" {
			out, err := os.Create(analyzeJSON)
			if err != nil {
				return eris.Wrapf(err, "analyze: create %s", analyzeJSON)
			}
			defer out.Close() //nolint:errcheck
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return eris.Wrap(err, "analyze: write json report")
			}
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeIn, "in", "enriched.geojson", "enriched GeoJSON path")
	analyzeCmd.Flags().StringVar(&analyzeAttr, "attr", overlay.AttrIncome, "attribute to analyze against camera density")
	analyzeCmd.Flags().StringVar(&analyzeJSON, "json", "", "also write the report as JSON to this path")
	rootCmd.AddCommand(analyzeCmd)
}
