// Package apperrors defines the error kinds every store and service surfaces to its caller.
// Callers tell them apart with errors.As / errors.Is, or with KindOf.
package apperrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrEmptyCart is returned when checkout is attempted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports bad or missing input fields, keyed by field name.
type ValidationError struct {
	Violations map[string]string
}

// NewValidationError builds a ValidationError from field/message pairs.
func NewValidationError(pairs ...string) *ValidationError {
	v := &ValidationError{Violations: make(map[string]string, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Violations[pairs[i]] = pairs[i+1]
	}
	return v
}

// Add records a violation for field. The first message for a field wins.
func (e *ValidationError) Add(field, message string) {
	if e.Violations == nil {
		e.Violations = make(map[string]string)
	}
	if _, ok := e.Violations[field]; !ok {
		e.Violations[field] = message
	}
}

// Empty reports whether no violation was recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Violations) == 0
}

// Fields returns the offending field names, sorted.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields(), ", "))
}

// NotFoundError reports an identity that does not resolve.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// InvalidStateError reports a transition attempted from a state that does not permit it.
type InvalidStateError struct {
	ID     string
	State  string
	Action string
}

func NewInvalidState(id, state, action string) *InvalidStateError {
	return &InvalidStateError{ID: id, State: state, Action: action}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s transaction %s in state %s", e.Action, e.ID, e.State)
}

// ReferentialIntegrityError reports a delete blocked by live references.
type ReferentialIntegrityError struct {
	Entity       string
	ID           string
	ReferencedBy string
	Count        int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: referenced by %d %s", e.Entity, e.ID, e.Count, e.ReferencedBy)
}

// StorageError reports a Persistence Gateway read or write failure.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Kind classifies an error for callers deciding between retry, user correction, and abort.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindInvalidState
	KindReferentialIntegrity
	KindEmptyCart
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindReferentialIntegrity:
		return "referential_integrity"
	case KindEmptyCart:
		return "empty_cart"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

// KindOf returns the kind of err, looking through wrapped errors.
func KindOf(err error) Kind {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		stateErr      *InvalidStateError
		refErr        *ReferentialIntegrityError
		storageErr    *StorageError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &notFoundErr):
		return KindNotFound
	case errors.As(err, &stateErr):
		return KindInvalidState
	case errors.As(err, &refErr):
		return KindReferentialIntegrity
	case errors.Is(err, ErrEmptyCart):
		return KindEmptyCart
	case errors.As(err, &storageErr):
		return KindStorage
	}
	return KindUnknown
}
