package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"index-observer/src/analysis"
	"index-observer/src/config"
	datasource "index-observer/src/data_source"
	"index-observer/src/data_source/csvfile"
	"index-observer/src/logger"
	"index-observer/src/models"
	"index-observer/src/network"
	"index-observer/src/utils"
)

// report prints one view model as JSON and exits.
func main() {
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	dataPath := flag.String("data", "", "CSV dataset (overrides dataset.path)")
	index := flag.String("index", "", "index name (default: first in dataset)")
	rangeToken := flag.String("range", "", "range token: 1D, 1W, 1M, 3M, 1Y, 5Y, ALL")
	anchorDate := flag.String("anchor", "", "anchor date YYYY-MM-DD (overrides anchor.date)")
	listIndices := flag.Bool("list", false, "print index names instead of a view")
	flag.Parse()

	if err := run(*configPath, *dataPath, *index, *rangeToken, *anchorDate, *listIndices); err != nil {
		fmt.Fprintf(os.Stderr, "report: %v\n", err)
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------

func run(configPath, dataPath, index, rangeToken, anchorDate string, listIndices bool) error {
	conf, err := config.NewConfig(configPath)
	if err != nil {
		return err
	}
	if dataPath != "" {
		conf.Dataset.Path = dataPath
	}
	if anchorDate != "" {
		conf.Anchor.Date = anchorDate
	}

	// logs go to stderr so stdout stays valid JSON
	appLogger := logger.NewLoggerTo(os.Stderr, conf.LogLevel, conf.LogFormat, "Report")

	nm := network.NewHTTPNetworkManager(conf.RequestTimeout(), appLogger.Named("Network"))
	source := csvfile.NewCSVSource(conf.Dataset.Path, nm, appLogger.Named("CSVSource"))
	manager := datasource.NewDatasetManager(source, appLogger.Named("DatasetManager"), nil, conf.Dataset.LoadRetries)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ds, err := manager.Reload(ctx)
	if err != nil {
		return err
	}

	if listIndices {
		return printJSON(ds.Indices)
	}

	date, err := conf.AnchorDate()
	if err != nil {
		return fmt.Errorf("invalid anchor date '%s': %w", conf.Anchor.Date, err)
	}
	anchor := utils.ResolveAnchor(date, conf.Anchor.SnapToSession, conf.Anchor.MIC)

	rng := conf.Range()
	if rangeToken != "" {
		rng = models.ParseRange(rangeToken)
	}

	cfg := *conf.MConfig
	cfg.Cache.Enabled = false
	facade, err := analysis.NewAnalysisFacade(&cfg, appLogger.Named("Analysis"), nil)
	if err != nil {
		return err
	}
	defer facade.Close()

	view, err := facade.Recompute(ds, index, rng, anchor)
	if err != nil {
		return err
	}
	return printJSON(view)
}

// -----------------------------------------------------------------------------

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
