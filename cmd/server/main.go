package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/config"
	"github.com/phonglive/live-manager/internal/export"
	httpserver "github.com/phonglive/live-manager/internal/interfaces/http"
	"github.com/phonglive/live-manager/internal/reporting"
	"github.com/phonglive/live-manager/internal/repository"
	"github.com/phonglive/live-manager/internal/service"
	"github.com/phonglive/live-manager/pkg/database"
	"github.com/phonglive/live-manager/pkg/utils"
)

func main() {
	// Local .env overrides are optional
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting live manager service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	expenseRepo := repository.NewExpenseRepository(db, logger)
	dailyReportRepo := repository.NewDailyReportRepository(db, logger)
	metricRepo := repository.NewMetricRepository(db, logger)
	storeRepo := repository.NewStoreRepository(db, logger)
	personnelRepo := repository.NewPersonnelRepository(db, logger)

	expenseService := service.NewExpenseService(expenseRepo, logger)
	reportService := service.NewReportService(
		dailyReportRepo,
		metricRepo,
		storeRepo,
		personnelRepo,
		reporting.CrossMetricOptions{DistinctKOC: cfg.Report.DistinctKOC},
		logger,
	)

	exporter := export.NewExcelExporter(logger)

	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, expenseService, reportService, exporter, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
