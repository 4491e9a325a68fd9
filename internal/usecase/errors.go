package usecase

import (
	"errors"
	"fmt"

	"github.com/hamza13-12/flickfeed/internal/data/repository"
	"github.com/hamza13-12/flickfeed/internal/permission"
	"github.com/hamza13-12/flickfeed/pkg/utils"

	"github.com/google/uuid"
)

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Error is a business error with a client-facing message.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationError(fields map[string]string) *Error {
	return &Error{
		Kind:    ErrValidation,
		Message: "validation failed: " + utils.FormatValidationErrors(fields),
		Fields:  fields,
	}
}

func notFound(what string) *Error {
	return newError(ErrNotFound, "%s not found", what)
}

func forbidden() *Error {
	return newError(ErrForbidden, "%s", permission.ErrDenied.Error())
}

// parseID treats a malformed path id like an unknown one.
func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, notFound(what)
	}
	return id, nil
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	return nil
}

// storageError classifies repository errors that a client can cause.
// Anything else is returned wrapped and ends up as a 500.
func storageError(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrUniqueViolation):
		return newError(ErrConflict, "%s: record already exists", op)
	case errors.Is(err, repository.ErrNotFound):
		return newError(ErrNotFound, "%s: record not found", op)
	case errors.Is(err, repository.ErrCheckViolation):
		return newError(ErrValidation, "%s: value violates a constraint", op)
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return newError(ErrValidation, "%s: referenced record does not exist", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
