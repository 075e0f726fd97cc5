package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/civicmaps/overlay/pkg/geocode"
)

var (
	geocodeIn  string
	geocodeOut string
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Geocode a CSV of addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Geocode.Key == "" {
			return eris.New("geocode: api key not configured (set OVERLAY_GEOCODE_KEY)")
		}

		opts := []geocode.Option{
			geocode.WithRateLimit(cfg.Geocode.RatePerSecond),
		}
		if cfg.Geocode.BaseURL != "" {
			opts = append(opts, geocode.WithBaseURL(cfg.Geocode.BaseURL))
		}
		if cfg.Geocode.FocusLat != 0 || cfg.Geocode.FocusLon != 0 {
			opts = append(opts, geocode.WithFocusPoint(geocode.FocusPoint{
				Lat: cfg.Geocode.FocusLat,
				Lon: cfg.Geocode.FocusLon,
			}))
		}
		client := geocode.NewClient(cfg.Geocode.Key, opts...)

		in, err := os.Open(geocodeIn)
		if err != nil {
			return eris.Wrapf(err, "geocode: open %s", geocodeIn)
		}
		defer in.Close() //nolint:errcheck

		out, err := os.Create(geocodeOut)
		if err != nil {
			return eris.Wrapf(err, "geocode: create %s", geocodeOut)
		}
		defer out.Close() //nolint:errcheck

		return geocode.GeocodeCSV(cmd.Context(), client, in, out, geocode.BatchOptions{
			AddressColumn: cfg.Geocode.AddressColumn,
			Concurrency:   cfg.Geocode.Concurrency,
		})
	},
}

func init() {
	geocodeCmd.Flags().StringVar(&geocodeIn, "in", "", "input CSV with an address column")
	geocodeCmd.Flags().StringVar(&geocodeOut, "out", "geocoded.csv", "output CSV path")
	geocodeCmd.MarkFlagRequired("in") //nolint:errcheck
	rootCmd.AddCommand(geocodeCmd)
}
