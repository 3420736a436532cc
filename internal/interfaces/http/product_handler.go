package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain"
)

// ProductHandler maneja las pantallas de productos. El stock no se edita aquí.
type ProductHandler struct {
	catalogHandler[dto.SaveProductRequest, dto.ProductResponse]
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{
		catalogHandler: catalogHandler[dto.SaveProductRequest, dto.ProductResponse]{
			create: uc.Create,
			update: uc.Update,
			list:   uc.List,
			remove: uc.Delete,
			idOf:   func(p *dto.ProductResponse) int64 { return p.ID },
		},
		uc: uc,
	}
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /product/update/{id}/ [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(out)
}
