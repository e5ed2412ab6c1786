package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/domain"
)

const (
	msgUnauthorized = "Authentication is required to access this resource."
	msgForbidden    = "You do not have permission to access this resource."
)

// respondError traduce los errores de dominio a su status HTTP. Cada error tiene un único status.
func respondError(c *fiber.Ctx, err error) error {
	var (
		verr *ValidationError
		nf   *domain.NotFoundError
		ierr *domain.ImportError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{Status: fiber.StatusBadRequest, Errors: verr.Errors})
	case errors.As(err, &nf):
		return message(c, fiber.StatusNotFound, nf.Error())
	case errors.As(err, &ierr):
		log.Error().Err(err).Str("path", c.Path()).Msg("importación CSV fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.CSVResponse{Status: "error", Message: "Failed to import data from CSV file."})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return message(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		return securityError(c, fiber.StatusForbidden)
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidSupplier):
		return message(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return message(c, fiber.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return message(c, fiber.StatusInternalServerError, "Internal server error")
	}
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.MessageResponse{Status: status, Message: msg})
}

// securityError cuerpo de 401/403 del pipeline de autorización.
func securityError(c *fiber.Ctx, status int) error {
	body := dto.SecurityErrorResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     "Unauthorized",
		Message:   msgUnauthorized,
	}
	if status == fiber.StatusForbidden {
		body.Error = "Forbidden"
		body.Message = msgForbidden
	}
	return c.Status(status).JSON(body)
}

// gateError rechazo temprano del middleware de autenticación: {"error": msg}.
func gateError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.GateErrorResponse{Error: msg})
}

// pathID lee el parámetro :id como entero positivo.
func pathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &ValidationError{Errors: []string{"id: must be a positive integer"}}
	}
	return id, nil
}
