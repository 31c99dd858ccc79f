package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBillNotFound  = errors.New("bill not found")
	ErrDuplicateBill = errors.New("duplicate bill number")
)

// ValidationError is a field-attributable input error. It always surfaces
// before any persistence attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// StorageError wraps a database failure. The failed operation is aborted;
// previously persisted state is untouched.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// ExportError wraps a receipt rendering or delivery failure. Once the bill
// is saved, an export failure is reported as a warning and never rolls the
// bill back.
type ExportError struct {
	Stage string // "render" or "deliver"
	Err   error
}

func (e *ExportError) Error() string { return fmt.Sprintf("export: %s: %v", e.Stage, e.Err) }
func (e *ExportError) Unwrap() error { return e.Err }
