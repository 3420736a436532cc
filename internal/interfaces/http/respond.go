package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// errorStatus traduce un error de dominio a status HTTP y código.
func errorStatus(err error) (int, string, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, "VALIDATION", verr.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK", err.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrCompanyRequired):
		return fiber.StatusPreconditionFailed, "COMPANY_REQUIRED", domain.ErrCompanyRequired.Error()
	}
	return fiber.StatusInternalServerError, "INTERNAL", "error interno"
}

// respondError escribe {"error","code"}. Los errores internos se registran con el request id.
func respondError(c *fiber.Ctx, err error) error {
	status, code, msg := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		requestLogger(c).Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// requestLogger logger de la petición (lo deja RequestLogger en Locals); Nop si no existe.
func requestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok && l != nil {
		return l
	}
	return logger.Nop()
}

// parseID lee el parámetro :id de la ruta.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "id inválido")
	}
	return int64(id), nil
}
