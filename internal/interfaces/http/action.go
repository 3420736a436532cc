package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
)

// Action valor del campo "action" que envían las pantallas.
type Action string

const (
	ActionSearch                Action = "search"
	ActionSearchData            Action = "searchdata"
	ActionSearchProductsDetail  Action = "search_products_detail"
	ActionSearchProducts        Action = "search_products"
	ActionSearchProductsSelect2 Action = "search_products_select2"
	ActionSearchClient          Action = "search_client"
	ActionCreateClient          Action = "create_client"
	ActionAdd                   Action = "add"
	ActionEdit                  Action = "edit"
)

// actionHandler atiende una acción con el payload ya leído.
type actionHandler func(c *fiber.Ctx, p *payload) error

// actionTable acciones que acepta una vista.
type actionTable map[Action]actionHandler

// dispatch lee el payload y delega a la acción correspondiente.
// Acción vacía o desconocida → 400 UNKNOWN_ACTION.
func dispatch(table actionTable) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := newPayload(c)
		if err != nil {
			return respondError(c, err)
		}
		h, ok := table[p.action()]
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "UNKNOWN_ACTION",
				Message: "No ha ingresado a ninguna opción",
			})
		}
		return h(c, p)
	}
}
