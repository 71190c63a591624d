package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")

	ErrProductNotFound   = errors.New("product not found")
	ErrProductInactive   = errors.New("product inactive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidSize       = errors.New("invalid size")

	ErrAlreadyReviewed = NewConflict("Product already reviewed")
	ErrCategoryInUse   = NewConflict("Cannot delete category as it is currently in use by products")
)

// kindError carries a user-facing message while still matching one of the
// taxonomy sentinels through errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string        { return e.msg }
func (e *kindError) Is(target error) bool { return target == e.kind }

func NewConflict(msg string) error  { return &kindError{kind: ErrConflict, msg: msg} }
func NewNotFound(msg string) error  { return &kindError{kind: ErrNotFound, msg: msg} }
func NewForbidden(msg string) error { return &kindError{kind: ErrForbidden, msg: msg} }

func NewUnauthorized(msg string) error { return &kindError{kind: ErrUnauthorized, msg: msg} }

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is malformed or missing input, reported field by field.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func NewValidationError(msg string, fields ...FieldError) *ValidationError {
	return &ValidationError{Message: msg, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s %s", e.Message, e.Fields[0].Field, e.Fields[0].Message)
}

// ProductError is an order line that failed its catalog precondition.
type ProductError struct {
	Kind      error
	ProductID uuid.UUID
	Name      string
}

func (e *ProductError) Error() string {
	switch e.Kind {
	case ErrInsufficientStock:
		return fmt.Sprintf("Insufficient stock for %s", e.label())
	case ErrProductInactive:
		return fmt.Sprintf("Product is not available: %s", e.label())
	case ErrInvalidSize:
		return fmt.Sprintf("Selected size is not offered for %s", e.label())
	default:
		return fmt.Sprintf("Product not found: %s", e.ProductID)
	}
}

func (e *ProductError) Unwrap() error { return e.Kind }

func (e *ProductError) label() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ProductID.String()
}
