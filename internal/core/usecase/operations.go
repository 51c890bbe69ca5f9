package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
	"github.com/mkraev/smeta-sorter/internal/core/ports"
)

// ApplyUseCase executes proposed renames on the filesystem. The batch never
// aborts: every item lands in succeeded, failed or skipped.
type ApplyUseCase struct {
	files  ports.FileOperator
	logger *slog.Logger
}

func NewApplyUseCase(files ports.FileOperator, logger *slog.Logger) *ApplyUseCase {
	return &ApplyUseCase{files: files, logger: logger}
}

func (uc *ApplyUseCase) Apply(ctx context.Context, records []domain.FileRecord, req domain.ApplyRequest) (*domain.ApplyResult, error) {
	if err := validateApplyRequest(req); err != nil {
		return nil, err
	}

	byPath := make(map[string]domain.FileRecord, len(records))
	for _, rec := range records {
		byPath[rec.SourcePath] = rec
	}

	// Duplicate checks run against the table with the requested names laid
	// over the proposed ones.
	names := make(map[string]string, len(records))
	for _, rec := range records {
		names[rec.SourcePath] = rec.ProposedFilename()
	}
	for _, item := range req.Items {
		if item.Name != "" {
			names[item.SourcePath] = item.Name
		}
	}

	result := &domain.ApplyResult{Results: make([]domain.OperationResult, 0, len(req.Items))}
	for _, item := range req.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		outcome := uc.applyOne(ctx, byPath, names, req, item)
		result.Results = append(result.Results, outcome)
		switch outcome.Outcome {
		case domain.OutcomeSucceeded:
			result.Succeeded++
		case domain.OutcomeFailed:
			result.Failed++
		default:
			result.Skipped++
		}
	}

	uc.logger.Info("apply complete",
		"mode", string(req.Mode),
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (uc *ApplyUseCase) applyOne(ctx context.Context, byPath map[string]domain.FileRecord, names map[string]string, req domain.ApplyRequest, item domain.ApplyItem) domain.OperationResult {
	out := domain.OperationResult{SourcePath: item.SourcePath, Outcome: domain.OutcomeSkipped}
	if !item.Selected {
		out.Reason = "not selected"
		return out
	}

	rec, ok := byPath[item.SourcePath]
	if !ok {
		out.Outcome = domain.OutcomeFailed
		out.Reason = "unknown source path"
		return out
	}
	if check := CheckName(item.Name, rec.Extension, otherNames(names, item.SourcePath)); !check.Valid {
		out.Outcome = domain.OutcomeFailed
		out.Reason = check.Reason
		return out
	}
	if !uc.files.Exists(item.SourcePath) {
		out.Outcome = domain.OutcomeFailed
		out.Reason = "source file is missing"
		return out
	}

	target, err := targetPath(req, item)
	if err != nil {
		out.Outcome = domain.OutcomeFailed
		out.Reason = err.Error()
		return out
	}
	out.TargetPath = target

	if uc.files.Exists(target) && req.Overwrite != domain.OverwriteReplace {
		out.Reason = "destination already exists"
		return out
	}
	if err := uc.files.EnsureDir(filepath.Dir(target)); err != nil {
		out.Outcome = domain.OutcomeFailed
		out.Reason = err.Error()
		return out
	}

	var opErr error
	if req.Mode == domain.ModeRename {
		opErr = uc.files.Rename(ctx, item.SourcePath, target)
	} else {
		opErr = uc.files.Copy(ctx, item.SourcePath, target)
	}
	if opErr != nil {
		uc.logger.Error("apply operation failed",
			"source", item.SourcePath,
			"target", target,
			"error", opErr,
		)
		out.Outcome = domain.OutcomeFailed
		out.Reason = opErr.Error()
		return out
	}

	out.Outcome = domain.OutcomeSucceeded
	return out
}

func targetPath(req domain.ApplyRequest, item domain.ApplyItem) (string, error) {
	dir := filepath.Dir(item.SourcePath)
	switch req.Mode {
	case domain.ModeRename:
		return filepath.Join(dir, item.Name), nil
	case domain.ModeCopy:
		return filepath.Join(req.TargetDir, item.Name), nil
	case domain.ModeCopySubdir:
		return filepath.Join(dir, req.Subfolder, item.Name), nil
	default:
		return "", fmt.Errorf("unsupported mode %q", req.Mode)
	}
}

func validateApplyRequest(req domain.ApplyRequest) error {
	switch req.Mode {
	case domain.ModeRename, domain.ModeCopy, domain.ModeCopySubdir:
	default:
		return domain.WrapError(domain.ErrInvalidInput, "apply names", fmt.Errorf("unknown mode %q", req.Mode))
	}
	if req.Mode == domain.ModeCopy && strings.TrimSpace(req.TargetDir) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "apply names", errors.New("copy mode requires target_dir"))
	}
	if req.Mode == domain.ModeCopySubdir && strings.TrimSpace(req.Subfolder) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "apply names", errors.New("subfolder mode requires subfolder"))
	}
	switch req.Overwrite {
	case "", domain.OverwriteSkip, domain.OverwriteReplace:
	default:
		return domain.WrapError(domain.ErrInvalidInput, "apply names", fmt.Errorf("unknown overwrite policy %q", req.Overwrite))
	}
	if len(req.Items) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, "apply names", errors.New("items are empty"))
	}
	return nil
}

func otherNames(names map[string]string, exclude string) []string {
	out := make([]string, 0, len(names))
	for path, name := range names {
		if path == exclude {
			continue
		}
		out = append(out, name)
	}
	return out
}
