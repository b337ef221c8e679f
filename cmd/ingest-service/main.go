package main

import (
	"fmt"
	"os"

	"github.com/nurpe/orimex-orders/internal/auth"
	"github.com/nurpe/orimex-orders/internal/config"
	"github.com/nurpe/orimex-orders/internal/db"
	"github.com/nurpe/orimex-orders/internal/excel"
	httphandler "github.com/nurpe/orimex-orders/internal/http"
	"github.com/nurpe/orimex-orders/internal/http/middleware"
	"github.com/nurpe/orimex-orders/internal/logger"
	"github.com/nurpe/orimex-orders/internal/pdf"
	"github.com/nurpe/orimex-orders/internal/repository"
	"github.com/nurpe/orimex-orders/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	ingestRepo := repository.NewIngestRepository(database)
	reportRepo := repository.NewReportRepository(database)

	pdfGenerator, err := pdf.NewGenerator(cfg.Report.PDFFontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	ingestService := service.NewIngestService(ingestRepo, cfg, log)
	reportService := service.NewReportService(reportRepo, excel.NewGenerator(), pdfGenerator)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(ingestService, reportService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.Ingest.MaxUploadMB)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting orders ingest service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
