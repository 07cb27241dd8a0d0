package errors

import (
	"errors"
	"fmt"
)

// BadRequestError indicates the caller supplied a query or configuration
// that cannot be translated.
type BadRequestError struct {
	msg string
}

func NewBadRequestError(format string, args ...any) *BadRequestError {
	return &BadRequestError{msg: fmt.Sprintf(format, args...)}
}

func NewInvalidIdentifierError(name string) *BadRequestError {
	return NewBadRequestError("%s is not a valid identifier. Identifiers must be under 128 characters in length, start with a letter or underscore, and can contain only alpha-numeric and underscore characters.", name)
}

func NewUnsupportedFlavorError(flavor string) *BadRequestError {
	return NewBadRequestError("unsupported sql flavor %q", flavor)
}

func (e *BadRequestError) Error() string {
	return e.msg
}

// IsBadRequestError checks if the error is a BadRequestError.
func IsBadRequestError(err error) bool {
	var e *BadRequestError
	return errors.As(err, &e)
}

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
	ID   string
}

func NewResourceNotFoundError(kind, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: kind, ID: id}
}

func NewTableNotFoundError(name string) *ResourceNotFoundError {
	return NewResourceNotFoundError("table", name)
}

func (e *ResourceNotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// DuplicateResourceError indicates a resource with the same key already exists.
type DuplicateResourceError struct {
	Kind string
	ID   string
}

func NewDuplicateResourceError(kind, id string) *DuplicateResourceError {
	return &DuplicateResourceError{Kind: kind, ID: id}
}

func (e *DuplicateResourceError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.ID)
}

func IsDuplicateResourceError(err error) bool {
	var e *DuplicateResourceError
	return errors.As(err, &e)
}
