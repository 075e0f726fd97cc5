package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civicmaps/overlay/internal/acs"
)

var (
	joinLeft     string
	joinRight    string
	joinKey      string
	joinOut      string
	joinSkipRows int
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Inner-join two ACS tables on their geographic identifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		key := joinKey
		if key == "" {
			key = cfg.Join.KeyColumn
		}
		opts := acs.ReadOptions{SkipRows: joinSkipRows}

		left, err := acs.ReadTable(joinLeft, opts)
		if err != nil {
			return err
		}
		right, err := acs.ReadTable(joinRight, opts)
		if err != nil {
			return err
		}

		joined, err := acs.InnerJoin(left, right, key)
		if err != nil {
			return err
		}

		out, err := os.Create(joinOut)
		if err != nil {
			return eris.Wrapf(err, "join: create %s", joinOut)
		}
		defer out.Close() //nolint:errcheck

		if err := acs.WriteCSV(out, joined); err != nil {
			return err
		}

		zap.L().Info("join complete",
			zap.String("output", joinOut),
			zap.Int("rows", len(joined.Rows)),
			zap.Int("columns", len(joined.Columns)),
		)
		return nil
	},
}

func init() {
	joinCmd.Flags().StringVar(&joinLeft, "left", "", "left ACS table (.csv or .xlsx)")
	joinCmd.Flags().StringVar(&joinRight, "right", "", "right ACS table (.csv or .xlsx)")
	joinCmd.Flags().StringVar(&joinKey, "key", "", "join key column (default from config)")
	joinCmd.Flags().StringVar(&joinOut, "out", "joined.csv", "output CSV path")
	joinCmd.Flags().IntVar(&joinSkipRows, "skip-rows", 1, "header description rows to skip after the column row")
	joinCmd.MarkFlagRequired("left")  //nolint:errcheck
	joinCmd.MarkFlagRequired("right") //nolint:errcheck
	rootCmd.AddCommand(joinCmd)
}
