package tesseract

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/mkraev/smeta-sorter/internal/infrastructure/resilience"
)

// Client shells out to the tesseract binary. One page image in, recognized
// text on stdout.
type Client struct {
	binary    string
	languages string
	timeout   time.Duration
	executor  *resilience.Executor
	logger    *slog.Logger
}

func New(binary, languages string, timeout time.Duration, executor *resilience.Executor, logger *slog.Logger) *Client {
	if binary == "" {
		binary = "tesseract"
	}
	if languages == "" {
		languages = "rus+eng"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		binary:    binary,
		languages: languages,
		timeout:   timeout,
		executor:  executor,
		logger:    logger,
	}
}

func (c *Client) Recognize(ctx context.Context, imagePath string) (string, error) {
	var output string
	err := c.executor.Execute(ctx, "ocr.tesseract", func(ctx context.Context) error {
		text, err := c.run(ctx, imagePath)
		if err != nil {
			return err
		}
		output = text
		return nil
	}, classifyExecError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("recognize image", err)
	}
	return output, nil
}

func (c *Client) run(ctx context.Context, imagePath string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.binary, c.args(imagePath)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return "", &CommandError{Tool: "tesseract", Err: err, Stderr: stderr.String()}
	}
	c.logger.Debug("page recognized",
		"image", imagePath,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return stdout.String(), nil
}

func (c *Client) args(imagePath string) []string {
	return []string{imagePath, "stdout", "-l", c.languages}
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
