package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("resource already exists")
	ErrConflict           = errors.New("conflict with current state")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidSupplier    = errors.New("invalid supplier for the product")
	ErrInvalidStatus      = errors.New("invalid order status")
)

// NotFoundError identifica la entidad y el ID ausentes. errors.Is(err, ErrNotFound) es true.
type NotFoundError struct {
	Entity string
	ID     int64
}

// NewNotFound construye el error para la entidad indicada.
func NewNotFound(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %d", e.Entity, e.ID)
}

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ImportError fallo fatal de lectura del CSV completo (no de una fila).
type ImportError struct {
	Cause error
}

func (e *ImportError) Error() string {
	return "error reading CSV file: " + e.Cause.Error()
}

func (e *ImportError) Unwrap() error { return e.Cause }
