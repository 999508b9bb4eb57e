package application

import (
	"errors"
	"fmt"
	"io/fs"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrWatcherFailure   = errors.New("watcher failure")
	ErrNoVault          = errors.New("no vault is open")
	ErrNoOpenNote       = errors.New("no note is open")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is makes validation failures match ErrInvalidOperation
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// MoveError represents a move-related failure
type MoveError struct {
	Source string
	Dest   string
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %s", e.Source, e.Dest, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// OperationError records which vault operation failed on which path
type OperationError struct {
	Op   string
	Path string
	Err  error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Classify maps an error onto the vault error taxonomy.
// Errors already in the taxonomy are returned unchanged.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrInvalidOperation),
		errors.Is(err, ErrWatcherFailure),
		errors.Is(err, ErrNoVault),
		errors.Is(err, ErrNoOpenNote):
		return err
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		// fs.ErrExist and anything else the file system refuses
		return fmt.Errorf("%w: %w", ErrInvalidOperation, err)
	}
}

// Wrap classifies err and attaches the operation and path
func Wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Path: path, Err: Classify(err)}
}
