package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// DashboardHandler panel principal.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Totales mensuales de entradas y productos con stock bajo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (por defecto el actual)"
// @Success      200   {object}  dto.DashboardResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /dashboard/ [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.QueryInt("year", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
