package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Operator performs the real filesystem work behind apply operations.
type Operator struct{}

func New() *Operator {
	return &Operator{}
}

func (*Operator) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (*Operator) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	return nil
}

func (*Operator) Rename(_ context.Context, src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

// Copy preserves the source's permission bits and modification time.
func (*Operator) Copy(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy contents: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserve timestamps: %w", err)
	}
	return nil
}
