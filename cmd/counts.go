package main

import (
	"bufio"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civicmaps/overlay/internal/store"
	"github.com/civicmaps/overlay/pkg/connectdash"
)

var (
	countsURLFile string
	countsDB      string
	countsExport  string
)

var countsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Sample camera counters from dashboard stats endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath := countsDB
		if dbPath == "" {
			dbPath = cfg.Counts.DatabasePath
		}
		st, err := store.NewSQLite(dbPath)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		if countsExport != "" {
			samples, err := st.ListSamples(ctx, store.SampleFilter{})
			if err != nil {
				return err
			}
			out, err := os.Create(countsExport)
			if err != nil {
				return eris.Wrapf(err, "counts: create %s", countsExport)
			}
			defer out.Close() //nolint:errcheck
			return store.ExportCSV(out, samples)
		}

		urlFile := countsURLFile
		if urlFile == "" {
			urlFile = cfg.Counts.URLFile
		}
		urls, err := readURLFile(urlFile)
		if err != nil {
			return err
		}

		client := connectdash.NewClient(connectdash.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Counts.TimeoutSecs) * time.Second,
		}))

		var failed int
		for _, url := range urls {
			sample := store.Sample{URL: url}
			stats, err := client.FetchStats(ctx, url)
			if err != nil {
				// Record the gap and keep going; one dead dashboard must
				// not lose the rest of the batch.
				failed++
				sample.Err = err.Error()
				zap.L().Warn("counts: dashboard fetch failed",
					zap.String("url", url),
					zap.Error(err),
				)
			} else {
				sample.Registered = stats.Registered
				sample.Integrated = stats.Integrated
			}
			if err := st.AppendSample(ctx, sample); err != nil {
				return err
			}
		}

		zap.L().Info("counts: sampling complete",
			zap.Int("dashboards", len(urls)),
			zap.Int("failed", failed),
		)
		return nil
	},
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "counts: open url file %s", path)
	}
	defer f.Close() //nolint:errcheck

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "counts: read url file %s", path)
	}
	if len(urls) == 0 {
		return nil, eris.Errorf("counts: url file %s has no urls", path)
	}
	return urls, nil
}

func init() {
	countsCmd.Flags().StringVar(&countsURLFile, "urls", "", "file with one dashboard stats URL per line (default from config)")
	countsCmd.Flags().StringVar(&countsDB, "db", "", "sqlite database path (default from config)")
	countsCmd.Flags().StringVar(&countsExport, "export", "", "export the sample log to this CSV instead of sampling")
	rootCmd.AddCommand(countsCmd)
}
