package main

import (
	"context"
	"time"

	"index-observer/src/analysis"
	"index-observer/src/config"
	datasource "index-observer/src/data_source"
	"index-observer/src/data_source/csvfile"
	"index-observer/src/interfaces"
	"index-observer/src/llm"
	"index-observer/src/logger"
	"index-observer/src/models"
	"index-observer/src/network"
	"index-observer/src/utils"
)

// -----------------------------------------------------------------------------

// setupDataset wires the CSV source into a dataset manager
func setupDataset(conf *config.Config, appLogger *logger.Logger, rec interfaces.IRecorder) *datasource.DatasetManager {
	nm := network.NewHTTPNetworkManager(conf.RequestTimeout(), appLogger.Named("Network"))
	source := csvfile.NewCSVSource(conf.Dataset.Path, nm, appLogger.Named("CSVSource"))
	return datasource.NewDatasetManager(source, appLogger.Named("DatasetManager"), rec, conf.Dataset.LoadRetries)
}

// -----------------------------------------------------------------------------

// setupAnalysis initializes the analysis facade
func setupAnalysis(config *models.MConfig, appLogger *logger.Logger, rec interfaces.IRecorder) (*analysis.AnalysisFacade, error) {
	return analysis.NewAnalysisFacade(config, appLogger.Named("Analysis"), rec)
}

// -----------------------------------------------------------------------------

// setupAnalyst returns nil when analysis is disabled or cannot start
func setupAnalyst(ctx context.Context, conf *config.Config, appLogger *logger.Logger) interfaces.IAnalyst {
	if !conf.Analysis.Enabled {
		appLogger.Info("Analysis disabled")
		return nil
	}

	analyst, err := llm.NewGeminiAnalyst(ctx, conf.Analysis, conf.AnalysisTimeout(), appLogger.Named("Analyst"))
	if err != nil {
		appLogger.Error("Analysis unavailable: %v", err)
		return nil
	}
	appLogger.Info("Analysis enabled with model %s", analyst.Model)
	return analyst
}

// -----------------------------------------------------------------------------

// resolveAnchor returns the date every window ends on
func resolveAnchor(conf *config.Config, appLogger *logger.Logger) time.Time {
	date, err := conf.AnchorDate()
	if err != nil {
		appLogger.Critical("Invalid anchor date: %v", err)
	}

	anchor := utils.ResolveAnchor(date, conf.Anchor.SnapToSession, conf.Anchor.MIC)
	if !anchor.Equal(date) {
		appLogger.Info("Anchor %s snapped to last %s session %s", conf.Anchor.Date, conf.Anchor.MIC, anchor.Format(config.AnchorLayout))
	}
	return anchor
}
