package poppler

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mkraev/smeta-sorter/internal/infrastructure/resilience"
)

// Renderer rasterizes the first page of a PDF with pdftoppm so scanned
// documents can go through OCR.
type Renderer struct {
	binary   string
	dpi      int
	executor *resilience.Executor
	logger   *slog.Logger
}

func New(binary string, dpi int, executor *resilience.Executor, logger *slog.Logger) *Renderer {
	if binary == "" {
		binary = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 300
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		binary:   binary,
		dpi:      dpi,
		executor: executor,
		logger:   logger,
	}
}

func (r *Renderer) RenderFirstPage(ctx context.Context, pdfPath, outDir string) (string, error) {
	prefix := filepath.Join(outDir, "page")
	err := r.executor.Execute(ctx, "pdf.render", func(ctx context.Context) error {
		return r.run(ctx, pdfPath, prefix)
	}, classifyExecError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("render first page", err)
	}

	image := prefix + ".jpg"
	if _, err := os.Stat(image); err != nil {
		return "", fmt.Errorf("rendered image missing: %w", err)
	}
	return image, nil
}

func (r *Renderer) run(ctx context.Context, pdfPath, prefix string) error {
	cmd := exec.CommandContext(ctx, r.binary, r.args(pdfPath, prefix)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return &CommandError{Tool: "pdftoppm", Err: err, Stderr: stderr.String()}
	}
	r.logger.Debug("first page rendered",
		"pdf", pdfPath,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (r *Renderer) args(pdfPath, prefix string) []string {
	return []string{
		"-f", "1",
		"-l", "1",
		"-r", strconv.Itoa(r.dpi),
		"-jpeg",
		"-singlefile",
		pdfPath,
		prefix,
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
