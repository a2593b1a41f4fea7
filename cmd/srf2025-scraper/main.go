package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	scraper "github.com/cobrasuicida/srf2025-scraper"
	"github.com/cobrasuicida/srf2025-scraper/export"
	"github.com/cobrasuicida/srf2025-scraper/internal/config"
	"github.com/cobrasuicida/srf2025-scraper/internal/publish"
	"github.com/cobrasuicida/srf2025-scraper/internal/web"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Config load error", zap.Error(err))
	}

	command := "extract"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	switch command {
	case "extract":
		runExtract(cfg, logger)
	case "serve":
		if err := web.New(cfg, logger).Run(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case "publish":
		runPublish(cfg, logger)
	default:
		logger.Fatal("Unknown command (want extract, serve or publish)",
			zap.String("command", command))
	}
}

// runExtract runs one extraction pass and writes the artifact bundle.
func runExtract(cfg *config.Config, logger *zap.Logger) {
	ext := scraper.Open(cfg.InputPath).IDOffset(cfg.IDOffset)
	if cfg.FirstPage > 0 {
		ext = ext.FirstPage(cfg.FirstPage)
	}
	if cfg.SourceLabel != "" {
		ext = ext.SourceLabel(cfg.SourceLabel)
	}
	if cfg.KeepEmptySessions {
		ext = ext.KeepEmptySessions()
	}

	catalog, anomalies, err := ext.Catalog()
	if err != nil {
		logger.Fatal("Extraction failed", zap.String("input", cfg.InputPath), zap.Error(err))
	}

	if err := catalog.Validate(); err != nil {
		logger.Warn("Catalog failed validation", zap.Error(err))
	}

	if err := export.WriteBundle(catalog, anomalies, cfg.OutputDir); err != nil {
		logger.Fatal("Writing bundle failed", zap.Error(err))
	}

	logger.Info("Extraction completed",
		zap.String("input", cfg.InputPath),
		zap.String("output", cfg.OutputDir),
		zap.Int("sessions", catalog.SessionCount()),
		zap.Int("papers", catalog.PaperCount()),
		zap.Int("anomalies", len(anomalies)))

	if len(anomalies) > 0 {
		logger.Warn("Run completed with anomalies; see the extraction report",
			zap.Int("count", len(anomalies)))
	}
}

// runPublish extracts, writes the bundle, and uploads it.
func runPublish(cfg *config.Config, logger *zap.Logger) {
	runExtract(cfg, logger)

	ctx := context.Background()
	client, err := publish.NewS3Client(ctx, cfg)
	if err != nil {
		logger.Fatal("S3 client creation failed", zap.Error(err))
	}

	links, err := publish.UploadBundle(ctx, client, cfg, cfg.OutputDir)
	if err != nil {
		logger.Fatal("Bundle upload failed", zap.Error(err))
	}
	logger.Info("Bundle published", zap.Strings("objects", links))
}
