package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/akankshagoel28/masterlist/internal/config"
	repo "github.com/akankshagoel28/masterlist/internal/repository/masterdata"
	"github.com/akankshagoel28/masterlist/internal/repository/sheets"
	"github.com/akankshagoel28/masterlist/internal/scheduler"
	"github.com/akankshagoel28/masterlist/internal/server/handlers"
	"github.com/akankshagoel28/masterlist/internal/server/router"
	"github.com/akankshagoel28/masterlist/internal/service/bulkupload"
	masterlistsvc "github.com/akankshagoel28/masterlist/internal/service/masterlist"
	"github.com/akankshagoel28/masterlist/pkg/clients/masterdata"
	"github.com/akankshagoel28/masterlist/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	client := masterdata.NewClient(cfg.API)

	itemRepo := repo.NewItemRepository(client, baseLogger.Named("repo.items"))
	bomRepo := repo.NewBOMRepository(client, baseLogger.Named("repo.bom"))
	processRepo := repo.NewProcessRepository(client, baseLogger.Named("repo.process"))
	stepRepo := repo.NewProcessStepRepository(client, baseLogger.Named("repo.steps"))

	masterlist := masterlistsvc.NewService(itemRepo, bomRepo, processRepo, stepRepo, baseLogger.Named("svc.masterlist"))
	bulkSvc := bulkupload.NewService(client, itemRepo, bomRepo, cfg.BOM.QuantityPolicy, baseLogger.Named("svc.bulkupload"))
	audit := masterlistsvc.NewAuditLog()

	var sheetSource sheets.ImportSource
	if cfg.Sheets.Enabled() {
		sheetSource, err = sheets.NewGoogleSheetSource(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets import source", zap.Error(err))
		}
		baseLogger.Info("google sheets import source enabled")
	} else {
		baseLogger.Info("google sheets import source not configured")
	}

	// Warm the caches so validation and the dashboard have a snapshot to work
	// against. A failure here is survivable; the scheduler retries.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := masterlist.RefreshAll(startupCtx); err != nil {
		baseLogger.Warn("initial cache load failed", zap.Error(err))
	}
	cancelStartup()

	engine := router.New(router.Handlers{
		Items:     handlers.NewItemHandler(itemRepo, audit, baseLogger.Named("handlers.items")),
		BOM:       handlers.NewBOMHandler(itemRepo, bomRepo, cfg.BOM.QuantityPolicy, audit, baseLogger.Named("handlers.bom")),
		Process:   handlers.NewProcessHandler(processRepo, stepRepo, audit, baseLogger.Named("handlers.process")),
		Bulk:      handlers.NewBulkHandler(bulkSvc, sheetSource, audit, baseLogger.Named("handlers.bulk")),
		Dashboard: handlers.NewDashboardHandler(masterlist, audit, baseLogger.Named("handlers.dashboard")),
	}, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, masterlist, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
