package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civicmaps/overlay/internal/acs"
	"github.com/civicmaps/overlay/internal/camera"
	"github.com/civicmaps/overlay/internal/overlay"
	"github.com/civicmaps/overlay/internal/tract"
)

var (
	enrichTracts   string
	enrichTable    string
	enrichCameras  string
	enrichOut      string
	enrichSkipRows int
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Build the enriched tract GeoJSON from demographics and camera locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		tracts, err := tract.LoadShapefile(enrichTracts)
		if err != nil {
			return err
		}

		table, err := acs.ReadTable(enrichTable, acs.ReadOptions{SkipRows: enrichSkipRows})
		if err != nil {
			return err
		}
		attrCols := map[string]string{
			overlay.AttrPopulation: cfg.Enrich.PopulationColumn,
			overlay.AttrIncome:     cfg.Enrich.IncomeColumn,
		}
		for _, col := range cfg.Enrich.ExtraColumns {
			attrCols[col] = col
		}
		demo, err := acs.ExtractDemographics(table, cfg.Join.KeyColumn, "NAME", attrCols)
		if err != nil {
			return err
		}

		kind, err := camera.DetectSource(enrichCameras)
		if err != nil {
			return err
		}
		locs, err := camera.Load(enrichCameras, kind)
		if err != nil {
			return err
		}

		join := overlay.ContainmentJoin(locs, tracts)

		attrNames := make([]string, 0, len(attrCols))
		for name := range attrCols {
			attrNames = append(attrNames, name)
		}
		records := overlay.BuildEnriched(tracts, demo, join.Counts, attrNames)

		out, err := os.Create(enrichOut)
		if err != nil {
			return eris.Wrapf(err, "enrich: create %s", enrichOut)
		}
		defer out.Close() //nolint:errcheck

		if err := overlay.WriteGeoJSON(out, records); err != nil {
			return err
		}

		zap.L().Info("enrich complete",
			zap.String("output", enrichOut),
			zap.Int("tracts", len(records)),
			zap.Int("cameras_assigned", join.Assigned),
			zap.Int("cameras_dropped", join.Dropped),
		)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichTracts, "tracts", "", "tract shapefile (.shp)")
	enrichCmd.Flags().StringVar(&enrichTable, "table", "", "joined demographic table (.csv or .xlsx)")
	enrichCmd.Flags().StringVar(&enrichCameras, "cameras", "", "camera locations (.geojson or .csv)")
	enrichCmd.Flags().StringVar(&enrichOut, "out", "enriched.geojson", "output GeoJSON path")
	enrichCmd.Flags().IntVar(&enrichSkipRows, "skip-rows", 0, "header description rows to skip after the column row")
	enrichCmd.MarkFlagRequired("tracts")  //nolint:errcheck
	enrichCmd.MarkFlagRequired("table")   //nolint:errcheck
	enrichCmd.MarkFlagRequired("cameras") //nolint:errcheck
	rootCmd.AddCommand(enrichCmd)
}
