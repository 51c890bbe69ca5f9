package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkraev/smeta-sorter/internal/config"
	"github.com/mkraev/smeta-sorter/internal/core/ports"
	"github.com/mkraev/smeta-sorter/internal/core/usecase"
	"github.com/mkraev/smeta-sorter/internal/infrastructure/catalog/jsonstore"
	"github.com/mkraev/smeta-sorter/internal/infrastructure/extractor"
	"github.com/mkraev/smeta-sorter/internal/infrastructure/extractor/pdfpage"
	"github.com/mkraev/smeta-sorter/internal/infrastructure/extractor/workbook"
	"github.com/mkraev/smeta-sorter/internal/infrastructure/ocr/tesseract"
	"github.com/mkraev/smeta-sorter/internal/infrastructure/render/poppler"
	"github.com/mkraev/smeta-sorter/internal/infrastructure/resilience"
	"github.com/mkraev/smeta-sorter/internal/infrastructure/storage/localfs"
	"github.com/mkraev/smeta-sorter/internal/observability/logging"
	"github.com/mkraev/smeta-sorter/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Catalog ports.CatalogService
	Runs    ports.RunService

	HTTPMetrics   *metrics.HTTPServerMetrics
	EngineMetrics *metrics.EngineMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger("smeta-sorter", cfg.LogLevel)
	slog.SetDefault(logger)

	store := jsonstore.New(cfg.CatalogPath, logger)
	catalogUC, err := usecase.NewCatalogUseCase(ctx, store, logger)
	if err != nil {
		return nil, fmt.Errorf("init catalog: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    cfg.RetryMaxAttempts,
		BreakerEnabled:      true,
		BreakerMinRequests:  uint32(cfg.BreakerMinRequests),
		BreakerFailureRatio: cfg.BreakerFailureRatio,
		BreakerOpenTimeout:  time.Duration(cfg.BreakerOpenTimeoutSeconds) * time.Second,
	})

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	engineMetrics := metrics.NewEngineMetrics("api")

	renderer := poppler.New(cfg.PdftoppmBinary, cfg.RenderDPI, executor, logger)
	ocr := tesseract.New(cfg.TesseractBinary, cfg.OCRLanguages, time.Duration(cfg.OCRTimeoutSeconds)*time.Second, executor, logger)

	dispatch := extractor.NewDispatcher(
		workbook.New(logger),
		pdfpage.New(renderer, ocr, logger),
		engineMetrics,
		logger,
	)

	scanUC := usecase.NewScanUseCase(catalogUC, dispatch, logger)
	applyUC := usecase.NewApplyUseCase(localfs.New(), logger)
	runs := usecase.NewRunManager(ctx, scanUC, applyUC, engineMetrics, logger)

	return &App{
		Config: cfg,

		Catalog: catalogUC,
		Runs:    runs,

		HTTPMetrics:   httpMetrics,
		EngineMetrics: engineMetrics,

		closeFn: func() {
			runs.Shutdown()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
