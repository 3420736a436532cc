package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
)

// companyChecker contrato mínimo para saber si la empresa está configurada.
// Lo implementa *usecase.CompanyUseCase.
type companyChecker interface {
	Exists(ctx context.Context) (bool, error)
}

// RequireCompany bloquea las pantallas de inventario mientras no existan los datos de la empresa.
//
// Comportamiento:
//   - 412 Precondition Failed → empresa no configurada.
//   - 503 Service Unavailable → fallo al consultar la DB.
func RequireCompany(checker companyChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		exists, err := checker.Exists(c.UserContext())
		if err != nil {
			requestLogger(c).Error().Err(err).Msg("verificar empresa")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "COMPANY_CHECK_FAILED",
				Message: "no se pudo verificar la empresa, intente más tarde",
			})
		}
		if !exists {
			return c.Status(fiber.StatusPreconditionFailed).JSON(dto.ErrorResponse{
				Code:    "COMPANY_REQUIRED",
				Message: "debe configurar los datos de la empresa",
			})
		}
		return c.Next()
	}
}
