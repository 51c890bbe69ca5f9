package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyPreservesContentsAndModTime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "ЛС-02-01.xlsx")
	dst := filepath.Join(dir, "renamed.xlsx")
	if err := os.WriteFile(src, []byte("workbook bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	past := time.Date(2023, 11, 5, 12, 30, 0, 0, time.UTC)
	if err := os.Chtimes(src, past, past); err != nil {
		t.Fatalf("set source mtime: %v", err)
	}

	if err := New().Copy(context.Background(), src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(data) != "workbook bytes" {
		t.Fatalf("unexpected destination contents %q", data)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat destination: %v", err)
	}
	if !info.ModTime().Truncate(time.Second).Equal(past) {
		t.Fatalf("expected mtime %v, got %v", past, info.ModTime())
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("copy must keep the source: %v", err)
	}
}

func TestCopyFailsForMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := New().Copy(context.Background(), filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "out.pdf"))
	if err == nil {
		t.Fatalf("expected error for a missing source")
	}
}

func TestRenameMovesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "old.pdf")
	dst := filepath.Join(dir, "new.pdf")
	if err := os.WriteFile(src, []byte("pdf"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	op := New()
	if err := op.Rename(context.Background(), src, dst); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if op.Exists(src) {
		t.Fatalf("expected source to be gone")
	}
	if !op.Exists(dst) {
		t.Fatalf("expected destination to exist")
	}
}

func TestEnsureDirCreatesNestedPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	op := New()
	if op.Exists(dir) {
		t.Fatalf("expected dir to be absent before EnsureDir")
	}
	if err := op.EnsureDir(dir); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	if !op.Exists(dir) {
		t.Fatalf("expected dir after EnsureDir")
	}
	if err := op.EnsureDir(dir); err != nil {
		t.Fatalf("ensure dir twice: %v", err)
	}
}
