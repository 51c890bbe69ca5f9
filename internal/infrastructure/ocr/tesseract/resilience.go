package tesseract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/mkraev/smeta-sorter/internal/core/domain"
	"github.com/mkraev/smeta-sorter/internal/infrastructure/resilience"
)

// CommandError carries the exit error of a tool invocation together with the
// tail of its stderr, which is where tesseract puts the useful part.
type CommandError struct {
	Tool   string
	Err    error
	Stderr string
}

func (e *CommandError) Error() string {
	if e == nil {
		return "command error"
	}
	if msg := lastLine(e.Stderr); msg != "" {
		return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, msg)
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func classifyExecError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}
	if errors.Is(err, exec.ErrNotFound) {
		// The binary is not installed. Retrying cannot fix that, but the
		// breaker should notice so later files fail fast.
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: true,
		}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Nonzero exit means a bad input file, not a sick tool.
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}

	return resilience.ErrorClassification{
		Retryable:     true,
		RecordFailure: true,
	}
}

func wrapTemporaryIfNeeded(operation string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return err
	}

	class := classifyExecError(err)
	if class.Retryable || resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrTemporary, operation, err)
	}
	return err
}
