package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
)

type fileOperatorFake struct {
	existing  map[string]bool
	renames   [][2]string
	copies    [][2]string
	dirs      []string
	renameErr error
	copyErr   error
}

func newFileOperatorFake(existing ...string) *fileOperatorFake {
	f := &fileOperatorFake{existing: make(map[string]bool)}
	for _, path := range existing {
		f.existing[path] = true
	}
	return f
}

func (f *fileOperatorFake) Exists(path string) bool { return f.existing[path] }

func (f *fileOperatorFake) EnsureDir(path string) error {
	f.dirs = append(f.dirs, path)
	return nil
}

func (f *fileOperatorFake) Rename(_ context.Context, src, dst string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	f.renames = append(f.renames, [2]string{src, dst})
	return nil
}

func (f *fileOperatorFake) Copy(_ context.Context, src, dst string) error {
	if f.copyErr != nil {
		return f.copyErr
	}
	f.copies = append(f.copies, [2]string{src, dst})
	return nil
}

func classifiedRecord(path, proposed string) domain.FileRecord {
	rec := domain.NewFileRecord(path)
	rec.ProposedName = proposed
	return rec
}

func TestApplyRenamesInPlace(t *testing.T) {
	src := filepath.Join("/work", "смета_1.xlsx")
	files := newFileOperatorFake(src)
	uc := NewApplyUseCase(files, testLogger())

	records := []domain.FileRecord{classifiedRecord(src, "ЛС-02-01-01-БАЗ")}
	result, err := uc.Apply(context.Background(), records, domain.ApplyRequest{
		Mode:  domain.ModeRename,
		Items: []domain.ApplyItem{{SourcePath: src, Name: "ЛС-02-01-01-БАЗ.xlsx", Selected: true}},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if result.Succeeded != 1 || result.Failed != 0 || result.Skipped != 0 {
		t.Fatalf("unexpected tally %+v", result)
	}
	want := [2]string{src, filepath.Join("/work", "ЛС-02-01-01-БАЗ.xlsx")}
	if len(files.renames) != 1 || files.renames[0] != want {
		t.Fatalf("expected rename %v, got %v", want, files.renames)
	}
}

func TestApplySkipsUnselectedItems(t *testing.T) {
	src := filepath.Join("/work", "смета_1.xlsx")
	uc := NewApplyUseCase(newFileOperatorFake(src), testLogger())

	records := []domain.FileRecord{classifiedRecord(src, "ЛС-02-01-01-БАЗ")}
	result, err := uc.Apply(context.Background(), records, domain.ApplyRequest{
		Mode:  domain.ModeRename,
		Items: []domain.ApplyItem{{SourcePath: src, Name: "ЛС-02-01-01-БАЗ.xlsx", Selected: false}},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if result.Skipped != 1 || result.Succeeded != 0 {
		t.Fatalf("expected the unselected item skipped, got %+v", result)
	}
}

func TestApplyFailsInvalidNames(t *testing.T) {
	src := filepath.Join("/work", "письмо.docx")
	uc := NewApplyUseCase(newFileOperatorFake(src), testLogger())

	records := []domain.FileRecord{domain.NewFileRecord(src)}
	result, err := uc.Apply(context.Background(), records, domain.ApplyRequest{
		Mode:  domain.ModeRename,
		Items: []domain.ApplyItem{{SourcePath: src, Name: "?.docx", Selected: true}},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if result.Failed != 1 {
		t.Fatalf("expected the placeholder name to fail, got %+v", result)
	}
	if result.Results[0].Reason == "" {
		t.Fatalf("expected a reason on the failed item")
	}
}

func TestApplyFailsMissingSource(t *testing.T) {
	src := filepath.Join("/work", "смета_1.xlsx")
	uc := NewApplyUseCase(newFileOperatorFake(), testLogger())

	records := []domain.FileRecord{classifiedRecord(src, "ЛС-02-01-01-БАЗ")}
	result, err := uc.Apply(context.Background(), records, domain.ApplyRequest{
		Mode:  domain.ModeRename,
		Items: []domain.ApplyItem{{SourcePath: src, Name: "ЛС-02-01-01-БАЗ.xlsx", Selected: true}},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if result.Failed != 1 || result.Results[0].Reason != "source file is missing" {
		t.Fatalf("expected a missing-source failure, got %+v", result)
	}
}

func TestApplyOverwritePolicy(t *testing.T) {
	src := filepath.Join("/work", "смета_1.xlsx")
	dst := filepath.Join("/work", "ЛС-02-01-01-БАЗ.xlsx")

	records := []domain.FileRecord{classifiedRecord(src, "ЛС-02-01-01-БАЗ")}
	items := []domain.ApplyItem{{SourcePath: src, Name: "ЛС-02-01-01-БАЗ.xlsx", Selected: true}}

	files := newFileOperatorFake(src, dst)
	uc := NewApplyUseCase(files, testLogger())
	result, err := uc.Apply(context.Background(), records, domain.ApplyRequest{Mode: domain.ModeRename, Overwrite: domain.OverwriteSkip, Items: items})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if result.Skipped != 1 {
		t.Fatalf("expected the existing destination skipped, got %+v", result)
	}

	files = newFileOperatorFake(src, dst)
	uc = NewApplyUseCase(files, testLogger())
	result, err = uc.Apply(context.Background(), records, domain.ApplyRequest{Mode: domain.ModeRename, Overwrite: domain.OverwriteReplace, Items: items})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if result.Succeeded != 1 || len(files.renames) != 1 {
		t.Fatalf("expected the destination replaced, got %+v", result)
	}
}

func TestApplyCopyModesBuildTargets(t *testing.T) {
	src := filepath.Join("/work", "смета_1.xlsx")
	records := []domain.FileRecord{classifiedRecord(src, "ЛС-02-01-01-БАЗ")}
	items := []domain.ApplyItem{{SourcePath: src, Name: "ЛС-02-01-01-БАЗ.xlsx", Selected: true}}

	files := newFileOperatorFake(src)
	uc := NewApplyUseCase(files, testLogger())
	if _, err := uc.Apply(context.Background(), records, domain.ApplyRequest{Mode: domain.ModeCopy, TargetDir: "/sorted", Items: items}); err != nil {
		t.Fatalf("copy apply failed: %v", err)
	}
	wantCopy := [2]string{src, filepath.Join("/sorted", "ЛС-02-01-01-БАЗ.xlsx")}
	if len(files.copies) != 1 || files.copies[0] != wantCopy {
		t.Fatalf("expected copy %v, got %v", wantCopy, files.copies)
	}

	files = newFileOperatorFake(src)
	uc = NewApplyUseCase(files, testLogger())
	if _, err := uc.Apply(context.Background(), records, domain.ApplyRequest{Mode: domain.ModeCopySubdir, Subfolder: "переименовано", Items: items}); err != nil {
		t.Fatalf("subfolder apply failed: %v", err)
	}
	wantSub := [2]string{src, filepath.Join("/work", "переименовано", "ЛС-02-01-01-БАЗ.xlsx")}
	if len(files.copies) != 1 || files.copies[0] != wantSub {
		t.Fatalf("expected copy %v, got %v", wantSub, files.copies)
	}
	if len(files.dirs) == 0 || files.dirs[0] != filepath.Join("/work", "переименовано") {
		t.Fatalf("expected the subfolder created, got %v", files.dirs)
	}
}

func TestApplyRejectsBadRequests(t *testing.T) {
	uc := NewApplyUseCase(newFileOperatorFake(), testLogger())

	cases := []domain.ApplyRequest{
		{Mode: "move", Items: []domain.ApplyItem{{SourcePath: "x", Name: "y", Selected: true}}},
		{Mode: domain.ModeCopy, Items: []domain.ApplyItem{{SourcePath: "x", Name: "y", Selected: true}}},
		{Mode: domain.ModeCopySubdir, Items: []domain.ApplyItem{{SourcePath: "x", Name: "y", Selected: true}}},
		{Mode: domain.ModeRename, Overwrite: "ask", Items: []domain.ApplyItem{{SourcePath: "x", Name: "y", Selected: true}}},
		{Mode: domain.ModeRename},
	}
	for i, req := range cases {
		if _, err := uc.Apply(context.Background(), nil, req); !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestApplyDetectsDuplicatesInsideBatch(t *testing.T) {
	srcA := filepath.Join("/work", "смета_a.xlsx")
	srcB := filepath.Join("/work", "смета_b.xlsx")
	uc := NewApplyUseCase(newFileOperatorFake(srcA, srcB), testLogger())

	records := []domain.FileRecord{
		classifiedRecord(srcA, "ЛС-01-01-БАЗ"),
		classifiedRecord(srcB, "ЛС-02-02-БАЗ"),
	}
	result, err := uc.Apply(context.Background(), records, domain.ApplyRequest{
		Mode: domain.ModeRename,
		Items: []domain.ApplyItem{
			{SourcePath: srcA, Name: "ЛС-01-01-БАЗ.xlsx", Selected: true},
			{SourcePath: srcB, Name: "ЛС-01-01-БАЗ.xlsx", Selected: true},
		},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if result.Failed != 2 {
		t.Fatalf("expected both clashing items to fail, got %+v", result)
	}
}

func TestApplyContinuesPastOperationErrors(t *testing.T) {
	srcA := filepath.Join("/work", "смета_a.xlsx")
	srcB := filepath.Join("/work", "вор_b.pdf")
	files := newFileOperatorFake(srcA, srcB)
	files.renameErr = errors.New("permission denied")
	uc := NewApplyUseCase(files, testLogger())

	records := []domain.FileRecord{
		classifiedRecord(srcA, "ЛС-01-01-БАЗ"),
		classifiedRecord(srcB, "ПОДТВ-ВОР-1-БАЗ"),
	}
	result, err := uc.Apply(context.Background(), records, domain.ApplyRequest{
		Mode: domain.ModeRename,
		Items: []domain.ApplyItem{
			{SourcePath: srcA, Name: "ЛС-01-01-БАЗ.xlsx", Selected: true},
			{SourcePath: srcB, Name: "ПОДТВ-ВОР-1-БАЗ.pdf", Selected: true},
		},
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if result.Failed != 2 || len(result.Results) != 2 {
		t.Fatalf("expected both failures reported without aborting, got %+v", result)
	}
}
