package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// CompanyHandler datos de la empresa (una sola fila).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Get godoc
// @Summary      Datos de la empresa (null si no está configurada)
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Router       /company/update/ [get]
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Actions acciones de POST /company/update/.
func (h *CompanyHandler) Actions() actionTable {
	return actionTable{ActionEdit: h.edit}
}

func (h *CompanyHandler) edit(c *fiber.Ctx, p *payload) error {
	var in dto.SaveCompanyRequest
	if err := p.bind(&in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IDResponse{ID: out.ID})
}
