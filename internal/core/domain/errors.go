package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTypeNotFound   = errors.New("document type not found")
	ErrTagNotFound    = errors.New("tag not found")
	ErrRunNotFound    = errors.New("run not found")
	ErrRecordNotFound = errors.New("file record not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("conflict")
	ErrTemporary      = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
