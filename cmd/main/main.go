package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"index-observer/src/config"
	"index-observer/src/interfaces"
	"index-observer/src/logger"
	"index-observer/src/metrics"
	"index-observer/src/server"

	"github.com/prometheus/client_golang/prometheus"
)

// -----------------------------------------------------------------------------

func main() {

	// 1. Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	envPath := flag.String("env", ".env", "optional dotenv file with secrets")
	flag.Parse()

	// 2. Load config (.env first so it can override the file)
	if err := config.LoadDotEnv(*envPath); err != nil {
		fmt.Printf("Error loading %s: %v\n", *envPath, err)
		os.Exit(1)
	}
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.LogLevel, conf.LogFormat, conf.Name)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 4. Setup Components
	recorder := metrics.New(prometheus.DefaultRegisterer)
	manager := setupDataset(conf, appLogger, recorder)

	analyzer, err := setupAnalysis(conf.MConfig, appLogger, recorder)
	if err != nil {
		appLogger.Critical("Failed to init analysis: %v", err)
	}
	defer analyzer.Close()

	analyst := setupAnalyst(ctx, conf, appLogger)
	anchor := resolveAnchor(conf, appLogger)

	var srv interfaces.IDataExchanger = server.NewAPIServer(
		conf.MConfig,
		appLogger.Named("Server"),
		manager,
		analyzer,
		analyst,
		anchor,
		prometheus.DefaultGatherer,
	)
	manager.Subscribe(srv.DatasetChanged)

	// 5. Initial Load
	appLogger.Info("Loading dataset from %s...", conf.Dataset.Path)
	if _, err := manager.Reload(ctx); err != nil {
		appLogger.Critical("Initial dataset load failed: %v", err)
	}

	// 6. Scheduled reloads
	if err := manager.Start(ctx, conf.Dataset.ReloadCron); err != nil {
		appLogger.Critical("Failed to schedule reloads: %v", err)
	}

	// 7. Start Server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down...")
	manager.Stop()
	if err := srv.Stop(); err != nil {
		appLogger.Error("Server shutdown: %v", err)
	}
	appLogger.Info("Shutdown complete.")
}
