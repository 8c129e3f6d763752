package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrCapacity         = errors.New("not enough room on target page")
	ErrInconsistent     = errors.New("inconsistent ranking")
	ErrPermission       = errors.New("permission denied")
	ErrPageOutOfRange   = errors.New("page out of range")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// NotFoundError reports a missing entry, usually a stale start rank after a
// concurrent reorder
type NotFoundError struct {
	Scope string
	Rank  int
	ID    string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("entry %s not found in scope %q", e.ID, e.Scope)
	}
	return fmt.Sprintf("no entry at rank %d in scope %q; reload and try again", e.Rank, e.Scope)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CapacityError represents a bulk move whose selection does not fit the
// target page
type CapacityError struct {
	Page     int
	Capacity int
	Selected int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot move %d entries to page %d: it holds only %d", e.Selected, e.Page, e.Capacity)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// PageError represents a bulk move destination outside the paginator
type PageError struct {
	Page  int
	Pages int
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d does not exist (1-%d)", e.Page, e.Pages)
}

func (e *PageError) Is(target error) bool {
	return target == ErrPageOutOfRange
}

// ConsistencyError reports duplicate ranks in a scope. The ranking must be
// repaired by an operator; it is never corrected automatically.
type ConsistencyError struct {
	Scope string
	Rank  int
	Count int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("detected %d entries sharing rank %d in scope %q; "+
		"renumber the scope to 1..N before reordering again", e.Count, e.Rank, e.Scope)
}

func (e *ConsistencyError) Is(target error) bool {
	return target == ErrInconsistent
}

// PermissionError represents a caller without write access to a scope
type PermissionError struct {
	Scope  string
	Reason string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("cannot reorder scope %q: %s", e.Scope, e.Reason)
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrPermission
}
