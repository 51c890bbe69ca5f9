package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/mkraev/smeta-sorter/internal/config"
	"github.com/mkraev/smeta-sorter/internal/core/domain"
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
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dir := flag.String("dir", "", "directory to scan (required)")
	recursive := flag.Bool("recursive", true, "descend into subdirectories")
	names := flag.Bool("names", true, "match tags against filenames")
	content := flag.Bool("content", true, "match tags against document content")
	comment := flag.Bool("comment", false, "append a fragment of the original name to proposed names")
	commentLen := flag.Int("comment-len", 15, "length of the appended fragment")
	mode := flag.String("apply", "", "apply proposed names: rename, copy or subfolder")
	target := flag.String("target", "", "destination directory for copy mode")
	subfolder := flag.String("subfolder", "Отсортировано", "subfolder name for subfolder mode")
	overwrite := flag.Bool("overwrite", false, "replace existing files instead of skipping them")
	flag.Parse()

	if *dir == "" && flag.NArg() > 0 {
		*dir = flag.Arg(0)
	}
	if *dir == "" {
		return fmt.Errorf("usage: sorter -dir <directory> [-apply rename|copy|subfolder]")
	}

	cfg := config.Load()
	logger := logging.NewTextLogger("sorter", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := jsonstore.New(cfg.CatalogPath, logger)
	catalogUC, err := usecase.NewCatalogUseCase(ctx, store, logger)
	if err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    cfg.RetryMaxAttempts,
		BreakerEnabled:      true,
		BreakerMinRequests:  uint32(cfg.BreakerMinRequests),
		BreakerFailureRatio: cfg.BreakerFailureRatio,
		BreakerOpenTimeout:  time.Duration(cfg.BreakerOpenTimeoutSeconds) * time.Second,
	})
	renderer := poppler.New(cfg.PdftoppmBinary, cfg.RenderDPI, executor, logger)
	ocr := tesseract.New(cfg.TesseractBinary, cfg.OCRLanguages, time.Duration(cfg.OCRTimeoutSeconds)*time.Second, executor, logger)
	dispatch := extractor.NewDispatcher(workbook.New(logger), pdfpage.New(renderer, ocr, logger), nil, logger)

	scanUC := usecase.NewScanUseCase(catalogUC, dispatch, logger)

	params := domain.ScanParams{
		Directory:         *dir,
		Recursive:         *recursive,
		SearchInName:      *names,
		SearchInContent:   *content,
		AppendOriginal:    *comment,
		OriginalPrefixLen: *commentLen,
	}

	started := time.Now()
	result, err := scanUC.Scan(ctx, params, func(done, total int) {
		fmt.Fprintf(os.Stderr, "\rprocessed %d/%d", done, total)
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("scan %s: %w", *dir, err)
	}

	printReport(result)
	fmt.Printf("\n%d files: %d classified, %d unknown, %d failed, %d skipped (%.1fs)\n",
		result.Summary.Total, result.Summary.Classified, result.Summary.Unknown,
		result.Summary.Failed, result.Summary.Skipped, time.Since(started).Seconds())

	if *mode == "" {
		return nil
	}
	return applyNames(ctx, logger, result, *mode, *target, *subfolder, *overwrite)
}

func applyNames(ctx context.Context, logger *slog.Logger, result *domain.ScanResult, mode, target, subfolder string, overwrite bool) error {
	opMode, ok := domain.ParseOperationMode(mode)
	if !ok {
		return fmt.Errorf("unknown apply mode %q: want rename, copy or subfolder", mode)
	}

	items := selectedItems(result.Records)
	if len(items) == 0 {
		fmt.Println("nothing to apply: no classified files")
		return nil
	}

	req := domain.ApplyRequest{
		Mode:      opMode,
		TargetDir: target,
		Subfolder: subfolder,
		Items:     items,
	}
	if overwrite {
		req.Overwrite = domain.OverwriteReplace
	}

	applyUC := usecase.NewApplyUseCase(localfs.New(), logger)
	applied, err := applyUC.Apply(ctx, result.Records, req)
	if err != nil {
		return fmt.Errorf("apply %s: %w", mode, err)
	}

	for _, res := range applied.Results {
		if res.Outcome == domain.OutcomeSucceeded {
			continue
		}
		fmt.Printf("%-9s %s (%s)\n", res.Outcome, res.SourcePath, res.Reason)
	}
	fmt.Printf("applied: %d succeeded, %d failed, %d skipped\n", applied.Succeeded, applied.Failed, applied.Skipped)
	if applied.Failed > 0 {
		return fmt.Errorf("%d operations failed", applied.Failed)
	}
	return nil
}

func printReport(result *domain.ScanResult) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tTYPE\tNO\tPROPOSED NAME")
	for _, rec := range result.Records {
		number := rec.EstimateNumber
		if number == "" {
			number = "-"
		}
		proposed := rec.ProposedName
		if rec.Error != "" {
			proposed = "error: " + rec.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.OriginalName, rec.DisplayType, number, proposed)
	}
	w.Flush()
}

func selectedItems(records []domain.FileRecord) []domain.ApplyItem {
	items := make([]domain.ApplyItem, 0, len(records))
	for _, rec := range records {
		if !rec.Classified() || rec.ProposedName == domain.Unknown || rec.Error != "" {
			continue
		}
		items = append(items, domain.ApplyItem{
			SourcePath: rec.SourcePath,
			Name:       rec.ProposedFilename(),
			Selected:   true,
		})
	}
	return items
}
